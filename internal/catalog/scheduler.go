package catalog

import (
	"context"
	"fmt"
	"log/slog"

	robfigcron "github.com/robfig/cron/v3"
)

// Scheduler refreshes a Catalog on a cron schedule.
// Specs use the standard five-field form or descriptors such as "@every 30m".
type Scheduler struct {
	catalog  *Catalog
	spec     string
	schedule robfigcron.Schedule
}

// NewScheduler parses spec. An empty spec yields a disabled scheduler whose
// Start simply waits for cancellation.
func NewScheduler(c *Catalog, spec string) (*Scheduler, error) {
	s := &Scheduler{catalog: c, spec: spec}
	if spec == "" {
		return s, nil
	}
	sched, err := robfigcron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse catalog refresh schedule %q: %w", spec, err)
	}
	s.schedule = sched
	return s, nil
}

func (s *Scheduler) Enabled() bool { return s.schedule != nil }

// Start runs scheduled refreshes until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.Enabled() {
		<-ctx.Done()
		return ctx.Err()
	}

	runner := robfigcron.New()
	runner.Schedule(s.schedule, robfigcron.FuncJob(func() { s.catalog.Refresh(ctx) }))
	runner.Start()
	slog.Info("catalog: scheduler started", "schedule", s.spec)

	<-ctx.Done()

	<-runner.Stop().Done()
	slog.Info("catalog: scheduler stopped")
	return ctx.Err()
}
