// Package scheduler runs the daily reconciliation sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/objectifs/objectifs/internal/service"
)

// Sweeper gap-fills every active boolean objective.
type Sweeper interface {
	Sweep() (service.ReconcileResult, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
}

// New parses schedule as a standard five field cron expression evaluated in
// loc. Nothing runs until Start.
func New(schedule string, loc *time.Location, sweeper Sweeper) (*Scheduler, error) {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug))
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		sweeper: sweeper,
	}

	_, err := s.cron.AddFunc(schedule, s.RunNow)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		slog.Info("sweep scheduled", "next", e.Next)
	}
}

// Stop prevents new runs and waits for a running sweep, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("sweep still running at shutdown")
	}
}

// RunNow sweeps synchronously. Failures are logged only.
func (s *Scheduler) RunNow() {
	start := time.Now()
	_, err := s.sweeper.Sweep()
	if err != nil {
		slog.Error("reconciliation sweep failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
	}
}
