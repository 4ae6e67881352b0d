package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanlang/stock-api/internal/listing"
	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

// ListingRefreshJob reloads the exchange listing snapshot
// ⭐ SSOT: listing snapshot는 이 Job에서만 갱신
type ListingRefreshJob struct {
	store    *listing.Store
	registry *provider.Registry
	schedule string
	logger   *logger.Logger
}

// NewListingRefreshJob creates a new listing refresh job
func NewListingRefreshJob(store *listing.Store, registry *provider.Registry, schedule string, log *logger.Logger) *ListingRefreshJob {
	return &ListingRefreshJob{
		store:    store,
		registry: registry,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ListingRefreshJob) Name() string {
	return "listing_refresh"
}

// Schedule returns the configured cron expression
func (j *ListingRefreshJob) Schedule() string {
	return j.schedule
}

// Run tries the default source first, then every other listing-capable one
func (j *ListingRefreshJob) Run(ctx context.Context) error {
	var errs []error
	tried := 0
	for _, name := range j.candidates() {
		p, err := j.registry.Get(name)
		if err != nil || !p.Capabilities().Has(provider.CapListing) {
			continue
		}
		tried++
		if err := j.store.Refresh(ctx, p); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}

	if tried == 0 {
		j.logger.Debug("No listing-capable source registered; keeping catalog listing")
		return nil
	}
	return fmt.Errorf("listing refresh: %w", errors.Join(errs...))
}

func (j *ListingRefreshJob) candidates() []string {
	out := []string{j.registry.Default()}
	for _, name := range j.registry.Names() {
		if name != out[0] {
			out = append(out, name)
		}
	}
	return out
}
