package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/grocery-price-tracker/internal/metrics"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// QueryLoader supplies the queries for a scheduled run.
type QueryLoader interface {
	LoadQueries(ctx context.Context) ([]domain.Query, error)
}

// ResultSink persists the results of one run.
type ResultSink interface {
	SaveResults(ctx context.Context, runID uuid.UUID, results []*domain.MatchResult) error
}

// Scheduler periodically re-matches a product list so stored prices stay
// current.
type Scheduler struct {
	cron    *cron.Cron
	matcher *Matcher
	loader  QueryLoader
	sink    ResultSink
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that refreshes every interval.
func NewScheduler(
	m *Matcher,
	loader QueryLoader,
	sink ResultSink,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	c := cron.New()

	s := &Scheduler{
		cron:    c,
		matcher: m,
		loader:  loader,
		sink:    sink,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runRefresh); err != nil {
		return nil, fmt.Errorf("registering refresh job: %w", err)
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunNow performs one refresh: load queries, match them bypassing cached
// results, and save everything under a new run id.
func (s *Scheduler) RunNow(ctx context.Context) (uuid.UUID, error) {
	runID := uuid.New()
	log := s.log.With("run_id", runID)

	queries, err := s.loader.LoadQueries(ctx)
	if err != nil {
		return runID, fmt.Errorf("loading queries: %w", err)
	}
	log.Info("refresh starting", "queries", len(queries))

	results, err := s.matcher.MatchBatch(WithFreshResults(ctx), queries)
	if err != nil {
		return runID, fmt.Errorf("matching queries: %w", err)
	}

	if err := s.sink.SaveResults(ctx, runID, results); err != nil {
		return runID, fmt.Errorf("saving results: %w", err)
	}

	var found int
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	log.Info("refresh complete", "queries", len(results), "found", found)
	return runID, nil
}

func (s *Scheduler) runRefresh() {
	metrics.ScheduledRunsTotal.Inc()
	s.log.Info("scheduled refresh starting")
	if _, err := s.RunNow(context.Background()); err != nil {
		metrics.ScheduledRunFailuresTotal.Inc()
		s.log.Error("scheduled refresh failed", "error", err)
		return
	}
	metrics.LastScheduledRunTimestamp.SetToCurrentTime()
}
