package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"kilometers.ai/assets/internal/core/asset"
)

// ErrAlreadyCollected is returned when a cycle is asked to collect twice
var ErrAlreadyCollected = errors.New("assets already collected for this cycle")

// CycleState is the position of a page cycle in its lifecycle
type CycleState int

const (
	CycleEmpty CycleState = iota
	CycleCollecting
	CycleCollected
	CycleRendered
)

// String returns the string representation of CycleState
func (s CycleState) String() string {
	switch s {
	case CycleEmpty:
		return "empty"
	case CycleCollecting:
		return "collecting"
	case CycleCollected:
		return "collected"
	case CycleRendered:
		return "rendered"
	default:
		return fmt.Sprintf("CycleState(%d)", int(s))
	}
}

// PageCycle owns the asset store of one page render. It moves
// Empty -> Collecting -> Collected -> Rendered and never back; a new page
// needs a new cycle. A cycle is used by one goroutine at a time.
type PageCycle struct {
	id         string
	store      *asset.Store
	collection *CollectionService
	renderer   *RenderService
	state      CycleState
	report     CollectReport
}

// NewPageCycle creates a cycle with a fresh store
func NewPageCycle(collection *CollectionService, renderer *RenderService) *PageCycle {
	return &PageCycle{
		id:         uuid.NewString(),
		store:      asset.NewStore(),
		collection: collection,
		renderer:   renderer,
		state:      CycleEmpty,
	}
}

// ID returns the cycle identifier used in logs
func (c *PageCycle) ID() string {
	return c.id
}

// State returns the current lifecycle state
func (c *PageCycle) State() CycleState {
	return c.state
}

// Store returns the cycle's store
func (c *PageCycle) Store() *asset.Store {
	return c.store
}

// Report returns the result of the collection phase
func (c *PageCycle) Report() CollectReport {
	return c.report
}

// Collect runs the collection phase once. The cycle ends up Collected even
// when collection is interrupted, so it cannot be retried.
func (c *PageCycle) Collect(ctx context.Context) (CollectReport, error) {
	if c.state != CycleEmpty {
		return CollectReport{}, fmt.Errorf("cycle %s is %s: %w", c.id, c.state, ErrAlreadyCollected)
	}

	c.state = CycleCollecting
	report, err := c.collection.Collect(ctx, c.store)
	c.report = report
	c.state = CycleCollected
	if err != nil {
		return report, fmt.Errorf("cycle %s: %w", c.id, err)
	}
	return report, nil
}

// Render produces the output slots. Rendering before Collect is allowed and
// yields empty slots.
func (c *PageCycle) Render() Slots {
	slots := c.renderer.Render(c.store)
	if c.state == CycleCollected {
		c.state = CycleRendered
	}
	return slots
}

// PageService builds page cycles from shared, read-only services
type PageService struct {
	collection *CollectionService
	renderer   *RenderService
}

// NewPageService creates a new page service
func NewPageService(collection *CollectionService, renderer *RenderService) *PageService {
	return &PageService{
		collection: collection,
		renderer:   renderer,
	}
}

// NewCycle starts a new, independent page cycle
func (s *PageService) NewCycle() *PageCycle {
	return NewPageCycle(s.collection, s.renderer)
}

// RenderPage runs a full cycle and returns its slots together with the cycle
func (s *PageService) RenderPage(ctx context.Context) (Slots, *PageCycle, error) {
	cycle := s.NewCycle()
	if _, err := cycle.Collect(ctx); err != nil {
		return Slots{}, cycle, err
	}
	return cycle.Render(), cycle, nil
}
