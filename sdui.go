package sdui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/html"

	httpadapter "github.com/3-lines-studio/sdui/internal/adapters/http"
	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/metrics"
	"github.com/3-lines-studio/sdui/internal/renderers"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

type Document = core.Document

type Screen = core.Screen

type Action = core.Action

type ActionKind = core.ActionKind

const (
	ActionNavigate = core.ActionNavigate
	ActionDeeplink = core.ActionDeeplink
	ActionWebview  = core.ActionWebview
	ActionAPI      = core.ActionAPI
)

type Node = core.Node

type NodeID = core.NodeID

const RootID = core.RootID

type Tree = core.Tree

type Props = core.Props

type Predicate = core.Predicate

type Component = core.Component

type (
	Header      = core.Header
	Carousel    = core.Carousel
	Section     = core.Section
	ProductList = core.ProductList
	Button      = core.Button
	Footer      = core.Footer
	Unknown     = core.Unknown
)

type RetainedRenderer = core.RetainedRenderer

type RetainedFunc = core.RetainedFunc

type VirtualRenderer = core.VirtualRenderer

type VirtualFunc = core.VirtualFunc

type Element = vdom.Element

type BuildOptions = core.BuildOptions

type StatusError = core.StatusError

type SchemaError = core.SchemaError

type Metrics = metrics.Metrics

var ErrNoScreen = core.ErrNoScreen

var ErrDocumentTooLarge = core.ErrDocumentTooLarge

func NewMetrics() *Metrics {
	return metrics.New()
}

func ParseDocument(data []byte) (*Document, error) {
	return core.ParseDocument(data)
}

func H(typ string, props map[string]any, children ...*Element) *Element {
	return vdom.H(typ, props, children...)
}

func Text(s string) *Element {
	return vdom.Text(s)
}

// Engine owns the current screen tree and the renderer registries for both
// output modes. All methods are safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	doc    *core.Document
	tree   *core.Tree
	issues []error

	dispatch     *core.Dispatcher
	client       *http.Client
	loader       *httpadapter.Loader
	logger       *slog.Logger
	actions      ActionHandler
	recorder     Recorder
	buildOpts    core.BuildOptions
	withDefaults bool
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.Default(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.dispatch = core.NewDispatcher(e.logger, e.recorder)
	e.loader = httpadapter.NewLoader(e.client)
	if e.actions == nil {
		e.actions = logActions(e.logger)
	}
	if e.withDefaults {
		e.RegisterDefaults()
	}
	return e
}

func (e *Engine) RegisterDefaults() {
	e.RegisterRenderers(renderers.Retained())
	e.RegisterComponents(renderers.Virtual())
}

// LoadData replaces the current tree with one built from doc.
func (e *Engine) LoadData(doc *Document) {
	tree, issues := core.Build(doc, e.buildOpts)
	for _, issue := range issues {
		e.logger.Warn("component failed schema validation", "error", issue)
	}

	e.mu.Lock()
	e.doc = doc
	e.tree = tree
	e.issues = issues
	e.mu.Unlock()
}

func (e *Engine) LoadJSON(data []byte) error {
	doc, err := core.ParseDocument(data)
	if err != nil {
		return err
	}
	e.LoadData(doc)
	return nil
}

// LoadFromURL fetches a document and replaces the current tree with it. On
// failure the current tree is kept. Overlapping calls are not coordinated:
// whichever completes last determines the final state.
func (e *Engine) LoadFromURL(ctx context.Context, url string) error {
	start := time.Now()
	doc, err := e.loader.Fetch(ctx, url)
	e.recorder.DocumentLoaded(err, time.Since(start))
	if err != nil {
		e.logger.Error("failed to load screen document", "url", url, "error", err)
		return err
	}

	e.LoadData(doc)
	return nil
}

func (e *Engine) RegisterComponent(typ string, component VirtualRenderer) {
	e.dispatch.Virtual.Register(typ, component)
}

func (e *Engine) RegisterComponents(components map[string]VirtualRenderer) {
	e.dispatch.Virtual.RegisterMany(components)
}

func (e *Engine) RegisterRenderer(typ string, renderer RetainedRenderer) {
	e.dispatch.Retained.Register(typ, renderer)
}

func (e *Engine) RegisterRenderers(renderers map[string]RetainedRenderer) {
	e.dispatch.Retained.RegisterMany(renderers)
}

func (e *Engine) Component(typ string) (VirtualRenderer, bool) {
	return e.dispatch.Virtual.Get(typ)
}

func (e *Engine) Renderer(typ string) (RetainedRenderer, bool) {
	return e.dispatch.Retained.Get(typ)
}

func (e *Engine) Document() *Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// Tree returns the current tree. Trees are never modified after they are
// built, so the result stays valid after later loads.
func (e *Engine) Tree() *Tree {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree
}

// Snapshot returns the current document and tree as one consistent pair.
func (e *Engine) Snapshot() (*Document, *Tree) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc, e.tree
}

func (e *Engine) RootNode() *Node {
	return e.Tree().Root()
}

// Issues returns the schema errors reported by the last build.
func (e *Engine) Issues() []error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]error(nil), e.issues...)
}

// RenderToDOM renders the subtree at from, or the root, into html elements.
func (e *Engine) RenderToDOM(from ...NodeID) *html.Node {
	return e.dispatch.RenderRetained(e.Tree(), start(from))
}

func (e *Engine) RenderHTML(w io.Writer, from ...NodeID) error {
	return e.RenderTreeHTML(w, e.Tree(), from...)
}

// RenderTreeHTML renders tree, usually taken from Snapshot, with the
// retained renderers.
func (e *Engine) RenderTreeHTML(w io.Writer, tree *Tree, from ...NodeID) error {
	n := e.dispatch.RenderRetained(tree, start(from))
	if n == nil {
		return ErrNoScreen
	}
	return html.Render(w, n)
}

// CreateVirtualDOM renders the subtree at from, or the root, into virtual
// elements.
func (e *Engine) CreateVirtualDOM(from ...NodeID) *Element {
	return e.TreeVirtualDOM(e.Tree(), from...)
}

func (e *Engine) TreeVirtualDOM(tree *Tree, from ...NodeID) *Element {
	return e.dispatch.RenderVirtual(tree, start(from))
}

func (e *Engine) FindNode(match Predicate, from ...NodeID) *Node {
	return core.FindFirst(e.Tree(), start(from), match)
}

func (e *Engine) FindNodes(match Predicate, from ...NodeID) []*Node {
	return core.FindAll(e.Tree(), start(from), match)
}

// HandleAction forwards an action to the configured handler.
func (e *Engine) HandleAction(ctx context.Context, action Action) error {
	return e.actions.HandleAction(ctx, action)
}

func start(from []NodeID) NodeID {
	if len(from) > 0 {
		return from[0]
	}
	return core.RootID
}
