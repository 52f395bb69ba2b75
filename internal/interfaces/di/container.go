package di

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"kilometers.ai/assets/internal/application/services"
	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/core/contributor"
	"kilometers.ai/assets/internal/core/ports"
	"kilometers.ai/assets/internal/infrastructure/config"
	"kilometers.ai/assets/internal/infrastructure/logging"
	"kilometers.ai/assets/internal/infrastructure/manifest"
	"kilometers.ai/assets/internal/infrastructure/metrics"
)

// Container holds all application dependencies
type Container struct {
	// Configuration
	Config *config.Config

	// Core
	Registry  *contributor.Registry
	Host      ports.HostEnvironment
	Manifests []*manifest.Contributor

	// Application services
	Collection *services.CollectionService
	Renderer   *services.RenderService
	Pages      *services.PageService

	// Infrastructure
	Metrics *metrics.Metrics
	Logger  *log.Logger
}

// Options controls container construction
type Options struct {
	Load config.LoadOptions
	// LogOutput defaults to stderr
	LogOutput io.Writer
}

// NewContainer loads configuration and wires every component
func NewContainer(opts Options) (*Container, error) {
	cfg, err := config.Load(opts.Load)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewContainerFromConfig(cfg, opts.LogOutput)
}

// NewContainerFromConfig wires every component from an already loaded config
func NewContainerFromConfig(cfg *config.Config, logOutput io.Writer) (*Container, error) {
	logger, err := logging.NewConsoleLogger(logging.Options{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Output: logOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: contributor.NewRegistry(),
		Host:     ports.StaticHost(cfg.BaseURL),
		Metrics:  metrics.New(),
	}

	if err := c.initializeComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}
	return c, nil
}

// initializeComponents discovers manifest contributors and builds the services
func (c *Container) initializeComponents() error {
	manifests, err := manifest.Discover(c.Config.ManifestsDir)
	if err != nil {
		return fmt.Errorf("failed to discover manifests: %w", err)
	}
	for _, m := range manifests {
		if err := c.Registry.Register(m); err != nil {
			return fmt.Errorf("failed to register manifest %s: %w", m.Path(), err)
		}
	}
	c.Manifests = manifests

	c.Collection = services.NewCollectionService(c.Registry, c.Host, c.Config.Policy(), c.Logger).
		WithObserver(c.Metrics)
	c.Renderer = services.NewRenderService(c.Logger)
	c.Pages = services.NewPageService(c.Collection, c.Renderer)

	c.Logger.Debug("container initialized",
		"manifests_dir", c.Config.ManifestsDir,
		"contributors", c.Registry.Len(),
		"policy", c.Config.Policy(),
		"base_url", c.Config.BaseURL)
	return nil
}

// RegisterContributor adds a programmatic contributor after the manifests
func (c *Container) RegisterContributor(name string, fn func(ctx context.Context, col *asset.Collector) error) error {
	return c.Registry.RegisterFunc(name, fn)
}
