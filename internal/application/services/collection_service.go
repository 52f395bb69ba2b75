package services

import (
	"context"
	"fmt"

	"kilometers.ai/assets/internal/core/asset"
	"kilometers.ai/assets/internal/core/contributor"
	"kilometers.ai/assets/internal/core/ports"
)

// EventAssetsLoading names the collection broadcast in logs and metrics
const EventAssetsLoading = "onAssetsLoading"

// Rejection is a record dropped by normalization under the strict policy
type Rejection struct {
	Contributor string
	Index       int
	Err         error
}

// ContributorFailure is a contributor whose submissions were discarded
type ContributorFailure struct {
	Contributor string
	Err         error
}

// CollectReport summarizes one collection phase
type CollectReport struct {
	Contributors int
	Accepted     int
	Rejected     []Rejection
	Failed       []ContributorFailure
}

// OK reports whether every record was accepted and no contributor failed
func (r CollectReport) OK() bool {
	return len(r.Rejected) == 0 && len(r.Failed) == 0
}

// CollectionService runs the collection phase: it invites every registered
// contributor, in registration order, then normalizes and stores the records
type CollectionService struct {
	registry *contributor.Registry
	host     ports.HostEnvironment
	policy   asset.Policy
	logger   ports.Logger
	observer ports.CollectionObserver
}

// NewCollectionService creates a new collection service
func NewCollectionService(
	registry *contributor.Registry,
	host ports.HostEnvironment,
	policy asset.Policy,
	logger ports.Logger,
) *CollectionService {
	return &CollectionService{
		registry: registry,
		host:     host,
		policy:   policy,
		logger:   logger,
	}
}

// WithObserver attaches an observer for collection counters
func (s *CollectionService) WithObserver(o ports.CollectionObserver) *CollectionService {
	s.observer = o
	return s
}

// Policy returns the normalization policy in use
func (s *CollectionService) Policy() asset.Policy {
	return s.policy
}

type batch struct {
	contributor string
	records     []asset.Record
}

// Collect invokes each contributor synchronously and adds the normalized
// records to store. A failing or panicking contributor loses its own
// submissions only. A cancelled context stops the phase before anything is
// stored.
func (s *CollectionService) Collect(ctx context.Context, store *asset.Store) (CollectReport, error) {
	contributors := s.registry.Contributors()
	report := CollectReport{Contributors: len(contributors)}
	batches := make([]batch, 0, len(contributors))

	for _, c := range contributors {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%s interrupted before %s: %w", EventAssetsLoading, c.Name(), err)
		}

		collector := asset.NewCollector()
		if err := invoke(ctx, c, collector); err != nil {
			s.logger.Warn("contributor failed, discarding its assets",
				"event", EventAssetsLoading, "contributor", c.Name(), "error", err)
			report.Failed = append(report.Failed, ContributorFailure{Contributor: c.Name(), Err: err})
			if s.observer != nil {
				s.observer.ObserveContributorFailure(c.Name())
			}
			continue
		}
		batches = append(batches, batch{contributor: c.Name(), records: collector.Records()})
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("%s interrupted: %w", EventAssetsLoading, err)
	}

	baseURL := s.host.BaseURL()
	for _, b := range batches {
		accepted, rejected := 0, 0
		for i, rec := range b.records {
			d, err := asset.Normalize(rec, baseURL, s.policy)
			if err != nil {
				s.logger.Warn("rejected asset",
					"contributor", b.contributor, "index", i, "error", err)
				report.Rejected = append(report.Rejected, Rejection{Contributor: b.contributor, Index: i, Err: err})
				rejected++
				continue
			}
			store.Add(d)
			accepted++
		}
		report.Accepted += accepted

		s.logger.Debug("collected assets",
			"event", EventAssetsLoading, "contributor", b.contributor,
			"accepted", accepted, "rejected", rejected)
		if s.observer != nil {
			s.observer.ObserveCollected(b.contributor, accepted, rejected)
		}
	}

	return report, nil
}

func invoke(ctx context.Context, c ports.Contributor, collector *asset.Collector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contributor panicked: %v", r)
		}
	}()
	return c.ContributeAssets(ctx, collector)
}
