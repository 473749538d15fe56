// Package analytics provides the SQL repository for behavioral events.
package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/events"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// EventRepository is the SQL-based store for analytics events.
type EventRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewEventRepository creates a new instance of the repository.
func NewEventRepository(db *sql.DB, logger *logging.ChanneledLogger) *EventRepository {
	return &EventRepository{db: db, logger: logger}
}

// Store inserts one event row.
func (r *EventRepository) Store(event *events.Event) error {
	query := `INSERT INTO analytics_events (id, session_id, action, category, label, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err := r.db.Exec(query, event.ID, event.SessionID, event.Action,
		event.Category, event.Label, event.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Event insert failed", "error", err.Error(), "action", event.Action)
		return fmt.Errorf("failed to insert event: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

// CountByAction aggregates event counts since a cutoff for the admin dashboard.
func (r *EventRepository) CountByAction(since time.Time) (map[string]int, error) {
	query := `SELECT action, COUNT(*) FROM analytics_events
		WHERE created_at >= ? GROUP BY action`

	rows, err := r.db.Query(query, since)
	if err != nil {
		r.logger.Database().Error("Failed to aggregate events", "error", err.Error())
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}
	return counts, rows.Err()
}
