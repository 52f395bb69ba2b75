package cli

import (
	"github.com/spf13/cobra"

	"kilometers.ai/assets/internal/interfaces/web"
)

// ServeFlags holds command-line flags for the serve command
type ServeFlags struct {
	Addr  string
	Title string
}

// NewServeCommand creates the serve command
func NewServeCommand(container *CLIContainer) *cobra.Command {
	flags := &ServeFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo page rendered with a fresh asset cycle per request",
		Long: `Start an HTTP host. Every request runs its own collection and render
cycle, so assets never leak between concurrent requests.

Routes:
  GET /             demo page with the slots injected
  GET /assets.json  the three slots as JSON
  GET /healthz      liveness probe
  GET /metrics      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := container.App

			addr := app.Config.ListenAddr
			if flags.Addr != "" {
				addr = flags.Addr
			}
			title := app.Config.SiteTitle
			if flags.Title != "" {
				title = flags.Title
			}

			router := web.NewRouter(app.Pages, app.Logger,
				web.WithTitle(title),
				web.WithMetrics(app.Metrics),
				web.WithMiddlewares(web.LoggingMiddleware(app.Logger)),
			)
			return web.Serve(cmd.Context(), addr, router, app.Logger)
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "Listen address (overrides listen_addr)")
	cmd.Flags().StringVar(&flags.Title, "title", "", "Demo page title (overrides site_title)")

	return cmd
}
