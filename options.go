package sdui

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/3-lines-studio/sdui/internal/core"
)

type Option func(*Engine)

// ActionHandler receives actions the host decides to perform. The engine
// never invokes it while rendering.
type ActionHandler interface {
	HandleAction(ctx context.Context, action Action) error
}

type ActionHandlerFunc func(ctx context.Context, action Action) error

func (f ActionHandlerFunc) HandleAction(ctx context.Context, action Action) error {
	return f(ctx, action)
}

type Recorder interface {
	core.Recorder
	DocumentLoaded(err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) NodeRendered(core.Mode, string)      {}
func (nopRecorder) RendererMissing(core.Mode, string)   {}
func (nopRecorder) ContractViolation(core.Mode, string) {}
func (nopRecorder) DocumentLoaded(error, time.Duration) {}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) {
		e.client = client
	}
}

func WithActionHandler(handler ActionHandler) Option {
	return func(e *Engine) {
		e.actions = handler
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) {
		if recorder != nil {
			e.recorder = recorder
		}
	}
}

func WithBuildOptions(opts BuildOptions) Option {
	return func(e *Engine) {
		e.buildOpts = opts
	}
}

// WithDefaults registers the built-in renderers and components.
func WithDefaults() Option {
	return func(e *Engine) {
		e.withDefaults = true
	}
}

func logActions(logger *slog.Logger) ActionHandler {
	return ActionHandlerFunc(func(ctx context.Context, action Action) error {
		logger.InfoContext(ctx, "action received",
			"type", string(action.Type),
			"destination", action.Destination,
		)
		return nil
	})
}
