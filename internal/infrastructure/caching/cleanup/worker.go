package cleanup

import (
	"context"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/manager"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
)

// Worker evicts expired query entries and idle sessions on a fixed interval.
type Worker struct {
	cache  *manager.Manager
	config Config
	logger *logging.ChanneledLogger

	// OnSessionEvicted releases state owned by other components for a
	// session that timed out (session settings, popup coordinators).
	OnSessionEvicted func(sessionID string)
}

// NewWorker creates a cleanup worker over the cache manager.
func NewWorker(cache *manager.Manager, cfg Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

// Start runs the cleanup loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.Cache().Info("Cache cleanup worker started",
		"interval", w.config.Interval.String(),
		"queryGC", w.config.QueryGC.String(),
		"sessionTTL", w.config.SessionTTL.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Cache().Info("Cache cleanup worker stopped")
			return
		case <-ticker.C:
			w.runCycle()
		}
	}
}

func (w *Worker) runCycle() {
	start := time.Now()

	queriesEvicted := w.cache.Query.EvictExpired(w.config.QueryGC)
	sessionsEvicted := w.cache.Sessions.EvictExpired(w.config.SessionTTL)

	if w.OnSessionEvicted != nil {
		for _, sessionID := range sessionsEvicted {
			w.OnSessionEvicted(sessionID)
		}
	}

	if queriesEvicted > 0 || len(sessionsEvicted) > 0 {
		w.logger.Cache().Debug("Cleanup cycle completed",
			"queriesEvicted", queriesEvicted,
			"sessionsEvicted", len(sessionsEvicted),
			"duration", time.Since(start).String())
	}
}
