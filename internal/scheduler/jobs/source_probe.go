package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/vanlang/stock-api/internal/provider"
	"github.com/vanlang/stock-api/pkg/logger"
)

// ErrNoSourceReachable is returned when a probe finds every source down
var ErrNoSourceReachable = errors.New("no data source reachable")

// SourceProbeJob re-probes every registered source so the default source
// follows vendor outages
type SourceProbeJob struct {
	registry *provider.Registry
	schedule string
	timeout  time.Duration
	logger   *logger.Logger
}

// NewSourceProbeJob creates a new probe job
func NewSourceProbeJob(registry *provider.Registry, schedule string, timeout time.Duration, log *logger.Logger) *SourceProbeJob {
	return &SourceProbeJob{
		registry: registry,
		schedule: schedule,
		timeout:  timeout,
		logger:   log,
	}
}

// Name returns the job name
func (j *SourceProbeJob) Name() string {
	return "source_probe"
}

// Schedule returns the configured cron expression
func (j *SourceProbeJob) Schedule() string {
	return j.schedule
}

// Run probes all sources
func (j *SourceProbeJob) Run(ctx context.Context) error {
	for _, res := range j.registry.Probe(ctx, j.timeout) {
		if res.Reachable {
			return nil
		}
	}
	if j.registry.Len() == 0 {
		return nil
	}
	return ErrNoSourceReachable
}
