package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/3-lines-studio/sdui/internal/core"
	"github.com/3-lines-studio/sdui/internal/vdom"
)

// ScreenSource is the engine surface the handler serves from. Each request
// renders from a single snapshot.
type ScreenSource interface {
	Snapshot() (*core.Document, *core.Tree)
	RenderTreeHTML(w io.Writer, tree *core.Tree, from ...core.NodeID) error
	TreeVirtualDOM(tree *core.Tree, from ...core.NodeID) *vdom.Element
	HandleAction(ctx context.Context, action core.Action) error
}

type ScreenHandlerConfig struct {
	IsDev     bool
	ScriptSrc string
	CSSHref   string
	// Reload refetches the screen document; nil disables POST /reload.
	Reload func(ctx context.Context) error
	Logger *slog.Logger
}

type ScreenHandler struct {
	source ScreenSource
	config ScreenHandlerConfig
	logger *slog.Logger
	router chi.Router
}

func NewScreenHandler(source ScreenSource, config ScreenHandlerConfig) *ScreenHandler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &ScreenHandler{
		source: source,
		config: config,
		logger: logger,
		router: chi.NewRouter(),
	}

	h.router.Get("/", h.servePage)
	h.router.Get("/vdom", h.serveVirtual)
	h.router.Get("/tree", h.serveTree)
	h.router.Post("/actions", h.serveAction)
	h.router.Post("/reload", h.serveReload)

	return h
}

func (h *ScreenHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

// servePage renders the body with the retained renderers, or with the
// virtual components when mode=virtual.
func (h *ScreenHandler) servePage(w http.ResponseWriter, req *http.Request) {
	doc, tree := h.source.Snapshot()
	if tree == nil {
		h.serveError(w, http.StatusNotFound, fmt.Errorf("no screen loaded"))
		return
	}

	virtual := h.source.TreeVirtualDOM(tree)

	var body bytes.Buffer
	var err error
	if req.URL.Query().Get("mode") == string(core.ModeVirtual) {
		err = vdom.Render(&body, virtual)
	} else {
		err = h.source.RenderTreeHTML(&body, tree)
	}
	if err != nil {
		if errors.Is(err, core.ErrNoScreen) {
			h.serveError(w, http.StatusNotFound, fmt.Errorf("no screen loaded"))
			return
		}
		h.serveError(w, http.StatusInternalServerError, err)
		return
	}

	page := core.ShellPage{
		BodyHTML:  body.String(),
		Virtual:   virtual,
		ScriptSrc: h.config.ScriptSrc,
		CSSHref:   h.config.CSSHref,
	}
	if doc != nil && doc.Screen != nil {
		page.Title = doc.Screen.Title
		page.BackgroundColor = doc.Screen.BackgroundColor
	}

	out, err := core.RenderHTMLShell(page)
	if err != nil {
		h.serveError(w, http.StatusInternalServerError, err)
		return
	}
	h.serveHTML(w, req, out)
}

func (h *ScreenHandler) serveVirtual(w http.ResponseWriter, req *http.Request) {
	_, tree := h.source.Snapshot()
	if tree == nil {
		h.serveJSONError(w, http.StatusNotFound, "no screen loaded")
		return
	}
	h.serveJSON(w, req, h.source.TreeVirtualDOM(tree))
}

func (h *ScreenHandler) serveTree(w http.ResponseWriter, req *http.Request) {
	_, tree := h.source.Snapshot()
	if tree == nil {
		h.serveJSONError(w, http.StatusNotFound, "no screen loaded")
		return
	}
	h.serveJSON(w, req, tree)
}

func (h *ScreenHandler) serveAction(w http.ResponseWriter, req *http.Request) {
	var action core.Action
	if err := json.NewDecoder(io.LimitReader(req.Body, 1<<20)).Decode(&action); err != nil {
		h.serveJSONError(w, http.StatusBadRequest, "invalid action: "+err.Error())
		return
	}
	if action.Type == "" || action.Destination == "" {
		h.serveJSONError(w, http.StatusBadRequest, "action requires type and destination")
		return
	}

	if err := h.source.HandleAction(req.Context(), action); err != nil {
		h.logger.Error("action handler failed", "type", string(action.Type), "error", err)
		h.serveJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScreenHandler) serveReload(w http.ResponseWriter, req *http.Request) {
	if h.config.Reload == nil {
		h.serveJSONError(w, http.StatusNotImplemented, "reload is not configured")
		return
	}
	if err := h.config.Reload(req.Context()); err != nil {
		h.serveJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScreenHandler) serveHTML(w http.ResponseWriter, req *http.Request, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	h.serveContent(w, req, []byte(html))
}

// serveContent writes body with an ETag and answers matching conditional
// requests with 304.
func (h *ScreenHandler) serveContent(w http.ResponseWriter, req *http.Request, body []byte) {
	etag := core.ContentETag(body)
	w.Header().Set("ETag", etag)
	if match := req.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ScreenHandler) serveJSON(w http.ResponseWriter, req *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.serveJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	h.serveContent(w, req, data)
}

func (h *ScreenHandler) serveJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *ScreenHandler) serveError(w http.ResponseWriter, status int, err error) {
	data := core.ErrorData{
		Status:  status,
		Message: err.Error(),
		IsDev:   h.config.IsDev,
	}

	var buf bytes.Buffer
	if err := core.ErrorTemplate.Execute(&buf, data); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
