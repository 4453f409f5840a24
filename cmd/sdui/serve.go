package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/sdui"
	"github.com/3-lines-studio/sdui/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/sdui/internal/adapters/http"
	"github.com/3-lines-studio/sdui/internal/config"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a screen document over http",
		Long: `Serve renders the configured source on GET /, exposes the virtual tree on
GET /vdom and the node tree on GET /tree, accepts actions on POST /actions and
refetches the source on POST /reload. Prometheus metrics are served on /metrics
and the --assets directory, when given, under /assets.

Without a source the bundled demo document is served.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("source", "", "screen document url or file")
	flags.Bool("dev", false, "show error details")
	flags.String("script-src", "", "client script injected into the page")
	flags.String("css-href", "", "stylesheet linked from the page")
	flags.String("assets", "", "directory served under /assets")
	_ = a.v.BindPFlag("addr", flags.Lookup("addr"))
	_ = a.v.BindPFlag("source", flags.Lookup("source"))
	_ = a.v.BindPFlag("dev", flags.Lookup("dev"))
	_ = a.v.BindPFlag("script_src", flags.Lookup("script-src"))
	_ = a.v.BindPFlag("css_href", flags.Lookup("css-href"))
	_ = a.v.BindPFlag("assets_dir", flags.Lookup("assets"))
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	c := a.config()
	logger := a.logger(c)

	metrics := sdui.NewMetrics()
	engine := a.engine(c, logger, sdui.WithRecorder(metrics))
	source := newSource(engine, c)

	if err := source.load(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           newRouter(engine, metrics, source, c, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving screen", "addr", c.Addr, "source", source.name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newRouter(engine *sdui.Engine, metrics *sdui.Metrics, source *screenSource, c config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	if c.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets", httpadapter.NewAssetHandler(fs.NewOSFileSystem(), c.AssetsDir)))
	}
	r.Mount("/", engine.Handler(sdui.HandlerConfig{
		IsDev:     c.Dev,
		ScriptSrc: c.ScriptSrc,
		CSSHref:   c.CSSHref,
		Reload:    source.load,
		Logger:    logger,
	}))
	return r
}

// screenSource loads the configured document from a url, a file or the
// bundled demo.
type screenSource struct {
	engine  *sdui.Engine
	files   fs.FileSystem
	path    string
	url     string
	timeout time.Duration
}

func newSource(engine *sdui.Engine, c config.Config) *screenSource {
	s := &screenSource{engine: engine, timeout: c.LoadTimeout}
	switch {
	case strings.HasPrefix(c.Source, "http://"), strings.HasPrefix(c.Source, "https://"):
		s.url = c.Source
	case c.Source != "":
		s.files = fs.NewOSFileSystem()
		s.path = c.Source
	default:
		s.files = fs.NewReadOnlyFileSystem(demoFS)
		s.path = demoPath
	}
	return s
}

func (s *screenSource) name() string {
	if s.url != "" {
		return s.url
	}
	return s.path
}

func (s *screenSource) load(ctx context.Context) error {
	if s.url != "" {
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		return s.engine.LoadFromURL(ctx, s.url)
	}

	data, err := s.files.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return s.engine.LoadJSON(data)
}
