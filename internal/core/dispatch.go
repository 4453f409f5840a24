package core

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/3-lines-studio/sdui/internal/vdom"
)

type RetainedRenderer interface {
	RenderRetained(props Props, children []*html.Node) *html.Node
}

type RetainedFunc func(props Props, children []*html.Node) *html.Node

func (f RetainedFunc) RenderRetained(props Props, children []*html.Node) *html.Node {
	return f(props, children)
}

type VirtualRenderer interface {
	RenderVirtual(props Props) *vdom.Element
}

type VirtualFunc func(props Props) *vdom.Element

func (f VirtualFunc) RenderVirtual(props Props) *vdom.Element {
	return f(props)
}

type Mode string

const (
	ModeRetained Mode = "retained"
	ModeVirtual  Mode = "virtual"
)

type Recorder interface {
	NodeRendered(mode Mode, typ string)
	RendererMissing(mode Mode, typ string)
	ContractViolation(mode Mode, typ string)
}

type nopRecorder struct{}

func (nopRecorder) NodeRendered(Mode, string)      {}
func (nopRecorder) RendererMissing(Mode, string)   {}
func (nopRecorder) ContractViolation(Mode, string) {}

// Dispatcher walks a tree and resolves each node's renderer from the registry
// of the requested output mode. Lookups happen on every call, so registry
// changes apply to the next render without rebuilding the tree.
type Dispatcher struct {
	Retained *Registry[RetainedRenderer]
	Virtual  *Registry[VirtualRenderer]
	Logger   *slog.Logger
	Recorder Recorder
}

func NewDispatcher(logger *slog.Logger, recorder Recorder) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Dispatcher{
		Retained: NewRegistry[RetainedRenderer](),
		Virtual:  NewRegistry[VirtualRenderer](),
		Logger:   logger,
		Recorder: recorder,
	}
}

// RenderRetained renders the subtree at id into html elements. Nodes without
// a renderer become a generic div carrying their scalar props as data
// attributes; a renderer that breaks its contract contributes nothing.
func (d *Dispatcher) RenderRetained(t *Tree, id NodeID) *html.Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	children := make([]*html.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if el := d.RenderRetained(t, c); el != nil {
			children = append(children, el)
		}
	}

	renderer, ok := d.Retained.Get(n.Type)
	if !ok {
		d.Recorder.RendererMissing(ModeRetained, n.Type)
		return d.genericElement(n, children)
	}

	el, err := callRetained(renderer, Props(n.Props).clone(), children)
	if err == nil && !isDetachedElement(el) {
		err = fmt.Errorf("renderer did not return a detached element node")
	}
	if err != nil {
		d.Recorder.ContractViolation(ModeRetained, n.Type)
		d.Logger.Warn("renderer returned no valid element", "type", n.Type, "node", int(n.ID), "error", err)
		return nil
	}

	setAttr(el, "data-component-type", n.Type)
	d.Recorder.NodeRendered(ModeRetained, n.Type)
	return el
}

// RenderVirtual renders the subtree at id into virtual elements. Nodes without
// a renderer produce nil; there is no generic virtual element.
func (d *Dispatcher) RenderVirtual(t *Tree, id NodeID) *vdom.Element {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	renderer, ok := d.Virtual.Get(n.Type)
	if !ok {
		d.Recorder.RendererMissing(ModeVirtual, n.Type)
		d.Logger.Warn("no virtual renderer registered", "type", n.Type, "node", int(n.ID))
		return nil
	}

	children := make([]*vdom.Element, 0, len(n.Children))
	for _, c := range n.Children {
		if el := d.RenderVirtual(t, c); el != nil {
			children = append(children, el)
		}
	}

	props := Props(n.Props).clone()
	props[ChildrenProp] = children

	el, err := callVirtual(renderer, props)
	if err != nil {
		d.Recorder.ContractViolation(ModeVirtual, n.Type)
		d.Logger.Warn("virtual renderer failed", "type", n.Type, "node", int(n.ID), "error", err)
		return nil
	}
	d.Recorder.NodeRendered(ModeVirtual, n.Type)
	return el
}

func callRetained(r RetainedRenderer, props Props, children []*html.Node) (el *html.Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			el, err = nil, fmt.Errorf("renderer panicked: %v", rec)
		}
	}()
	return r.RenderRetained(props, children), nil
}

func callVirtual(r VirtualRenderer, props Props) (el *vdom.Element, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			el, err = nil, fmt.Errorf("renderer panicked: %v", rec)
		}
	}()
	return r.RenderVirtual(props), nil
}

func isDetachedElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Parent == nil &&
		n.PrevSibling == nil && n.NextSibling == nil
}

func (d *Dispatcher) genericElement(n *Node, children []*html.Node) *html.Node {
	el := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	el.Attr = append(el.Attr, html.Attribute{Key: "data-type", Val: n.Type})

	for _, key := range slices.Sorted(maps.Keys(n.Props)) {
		s, ok := vdom.Scalar(n.Props[key])
		if !ok {
			continue
		}
		if !vdom.ValidAttrName(key) {
			d.Logger.Warn("skipping prop with invalid attribute name", "type", n.Type, "node", int(n.ID), "key", key)
			continue
		}
		el.Attr = append(el.Attr, html.Attribute{Key: "data-" + key, Val: s})
	}

	for _, c := range children {
		el.AppendChild(c)
	}
	return el
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
