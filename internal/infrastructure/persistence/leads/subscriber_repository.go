package leads

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// SubscriberRepository is the SQL-based store for newsletter signups.
type SubscriberRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewSubscriberRepository creates a new instance of the repository.
func NewSubscriberRepository(db *sql.DB, logger *logging.ChanneledLogger) *SubscriberRepository {
	return &SubscriberRepository{db: db, logger: logger}
}

// Store inserts a subscriber. A duplicate email is not an error; the
// existing signup stands.
func (r *SubscriberRepository) Store(subscriber *leads.Subscriber) error {
	query := `INSERT INTO subscribers (id, email, first_name, source, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING`

	start := time.Now()
	_, err := r.db.Exec(query, subscriber.ID, subscriber.Email,
		subscriber.FirstName, subscriber.Source, subscriber.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Subscriber insert failed", "error", err.Error(), "id", subscriber.ID)
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.logger.Database().Info("Subscriber inserted", "id", subscriber.ID, "duration", duration)
	return nil
}

// FindByEmail retrieves a subscriber by email. Returns nil when absent.
func (r *SubscriberRepository) FindByEmail(email string) (*leads.Subscriber, error) {
	query := `SELECT id, email, first_name, source, created_at
		FROM subscribers WHERE email = ?`

	var subscriber leads.Subscriber
	err := r.db.QueryRow(query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&subscriber.ID, &subscriber.Email, &subscriber.FirstName,
		&subscriber.Source, &subscriber.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load subscriber", "error", err.Error())
		return nil, err
	}
	return &subscriber, nil
}
