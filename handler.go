package sdui

import (
	"net/http"

	httpadapter "github.com/3-lines-studio/sdui/internal/adapters/http"
)

type HandlerConfig = httpadapter.ScreenHandlerConfig

// Handler serves the current screen: GET / (html page), GET /vdom, GET /tree,
// POST /actions and POST /reload.
func (e *Engine) Handler(config HandlerConfig) http.Handler {
	if config.Logger == nil {
		config.Logger = e.logger
	}
	return httpadapter.NewScreenHandler(e, config)
}
