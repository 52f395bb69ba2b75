package ports

import (
	"context"

	"kilometers.ai/assets/internal/core/asset"
)

// Contributor submits page assets during the collection phase
type Contributor interface {
	// Name identifies the contributor in logs and reports
	Name() string

	// ContributeAssets adds records to the collector. Returning an error
	// discards everything this contributor added in the current cycle.
	ContributeAssets(ctx context.Context, c *asset.Collector) error
}

// ContributorFunc adapts a plain function to the Contributor interface
type ContributorFunc struct {
	ID string
	Fn func(ctx context.Context, c *asset.Collector) error
}

// Name returns the contributor name
func (f ContributorFunc) Name() string {
	return f.ID
}

// ContributeAssets calls the wrapped function
func (f ContributorFunc) ContributeAssets(ctx context.Context, c *asset.Collector) error {
	return f.Fn(ctx, c)
}

// HostEnvironment is what the core needs from the page-generation host
type HostEnvironment interface {
	// BaseURL is the prefix relative sources are resolved against; it is
	// used verbatim and is expected to end with a slash
	BaseURL() string
}

// StaticHost is a HostEnvironment with a fixed base URL
type StaticHost string

// BaseURL returns the configured base URL
func (h StaticHost) BaseURL() string {
	return string(h)
}

// Logger is the structured logger used by application services
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// CollectionObserver receives counters from the collection phase
type CollectionObserver interface {
	ObserveCollected(contributor string, accepted, rejected int)
	ObserveContributorFailure(contributor string)
}
