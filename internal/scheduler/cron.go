// Package scheduler runs the hourly stats report. Each tick aggregates
// the metadata collection by leak status, samples the cursor cache
// occupancy, logs the snapshot and (when a broker is wired) publishes it
// to NATS so dashboards can graph the backlog without querying Mongo.
package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/cache"
	"github.com/kristi-balla/leakchef/internal/natsclient"
	"github.com/kristi-balla/leakchef/internal/repository"
)

const subjectStatsHourly = "leaks.stats.hourly"

// statsPayload is the JSON envelope published for each tick.
type statsPayload struct {
	LeaksByStatus map[repository.LeakStatus]int64 `json:"leaks_by_status"`
	OpenCursors   int                             `json:"open_cursors"`
	Timestamp     string                          `json:"timestamp"`
}

// StatsReporter wraps robfig/cron and reports delivery stats every hour.
type StatsReporter struct {
	cron    *cron.Cron
	store   repository.Store
	cursors *cache.CursorCache
	nats    *natsclient.Client
	logger  *zap.Logger
}

// NewStatsReporter creates and configures the reporter. nc may be nil,
// in which case the snapshot is only logged.
func NewStatsReporter(store repository.Store, cursors *cache.CursorCache, nc *natsclient.Client, logger *zap.Logger) *StatsReporter {
	return &StatsReporter{
		cron:    cron.New(cron.WithSeconds()),
		store:   store,
		cursors: cursors,
		nats:    nc,
		logger:  logger,
	}
}

// Start registers the cron jobs and starts the scheduler.
// Call Stop() to gracefully shut down.
func (s *StatsReporter) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.reportStats); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("stats reporter started", zap.String("subject", subjectStatsHourly))
	return nil
}

// Stop gracefully stops the cron scheduler.
func (s *StatsReporter) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("stats reporter stopped")
}

func (s *StatsReporter) reportStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := s.store.CountMetadataByStatus(ctx)
	if err != nil {
		s.logger.Error("failed to aggregate leak stats", zap.Error(err))
		return
	}

	payload := statsPayload{
		LeaksByStatus: counts,
		OpenCursors:   s.cursors.Len(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	s.logger.Info("hourly leak stats",
		zap.Any("leaks_by_status", payload.LeaksByStatus),
		zap.Int("open_cursors", payload.OpenCursors),
	)

	if s.nats == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal stats payload", zap.Error(err))
		return
	}

	// Plain NATS, not JetStream: a missed snapshot is replaced by the
	// next tick anyway.
	if err := s.nats.Conn.Publish(subjectStatsHourly, data); err != nil {
		s.logger.Error("failed to publish stats snapshot",
			zap.String("subject", subjectStatsHourly),
			zap.Error(err),
		)
	}
}
