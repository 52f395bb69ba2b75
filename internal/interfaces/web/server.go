// Package web is a minimal page host: every request runs its own asset cycle
// and injects the rendered slots into an HTML page.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kilometers.ai/assets/internal/application/services"
	"kilometers.ai/assets/internal/infrastructure/metrics"
)

//go:embed page.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

// pageData is what the page template sees. Slots are trusted markup: css/js
// sources are already escaped and inline bodies are trusted by contract.
type pageData struct {
	Title        string
	CycleID      string
	AssetCount   int
	Contributors int
	CSSHead      template.HTML
	JSHead       template.HTML
	JSFooter     template.HTML
}

// ServerOption configures the page host
type ServerOption func(*serverConfig)

type serverConfig struct {
	title       string
	metrics     *metrics.Metrics
	middlewares []func(http.Handler) http.Handler
}

// WithTitle sets the demo page title
func WithTitle(title string) ServerOption {
	return func(cfg *serverConfig) {
		cfg.title = title
	}
}

// WithMetrics records page cycles and mounts /metrics
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(cfg *serverConfig) {
		cfg.metrics = m
	}
}

// WithMiddlewares adds middleware to the router
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

type handler struct {
	pages  *services.PageService
	logger *log.Logger
	cfg    *serverConfig
}

// NewRouter creates the HTTP router for the page host
func NewRouter(pages *services.PageService, logger *log.Logger, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{title: "Assets"}
	for _, opt := range opts {
		opt(cfg)
	}

	h := &handler{pages: pages, logger: logger, cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	r.Get("/", h.servePage)
	r.Get("/assets.json", h.serveSlots)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.metrics != nil {
		r.Handle("/metrics", cfg.metrics.Handler())
	}

	return r
}

func (h *handler) runCycle(r *http.Request) (services.Slots, *services.PageCycle, error) {
	start := time.Now()
	slots, cycle, err := h.pages.RenderPage(r.Context())

	result := "ok"
	if err != nil {
		result = "error"
	}
	if h.cfg.metrics != nil {
		h.cfg.metrics.ObservePage(result, time.Since(start))
	}

	h.logger.Debug("page cycle finished",
		"cycle", cycle.ID(),
		"request_id", middleware.GetReqID(r.Context()),
		"state", cycle.State(),
		"assets", cycle.Store().Len(),
		"elapsed", time.Since(start))
	return slots, cycle, err
}

func (h *handler) servePage(w http.ResponseWriter, r *http.Request) {
	slots, cycle, err := h.runCycle(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	data := pageData{
		Title:        h.cfg.title,
		CycleID:      cycle.ID(),
		AssetCount:   cycle.Store().Len(),
		Contributors: cycle.Report().Contributors,
		CSSHead:      template.HTML(slots.StyleBlock),
		JSHead:       template.HTML(slots.HeadScripts),
		JSFooter:     template.HTML(slots.FooterScripts),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("failed to execute page template", "error", err)
	}
}

func (h *handler) serveSlots(w http.ResponseWriter, r *http.Request) {
	slots, cycle, err := h.runCycle(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	body := struct {
		Cycle string `json:"cycle"`
		services.Slots
	}{Cycle: cycle.ID(), Slots: slots}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode slots", "error", err)
	}
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	h.logger.Warn("page cycle failed", "error", err)
	status := http.StatusInternalServerError
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	http.Error(w, http.StatusText(status), status)
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("page host listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("page host failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down page host")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down page host: %w", err)
		}
		return nil
	}
}
