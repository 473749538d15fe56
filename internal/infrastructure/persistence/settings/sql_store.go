package settings

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// SQLStore persists profile-scoped settings in the visitor_settings table.
type SQLStore struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewSQLStore creates a SQL-backed settings store.
func NewSQLStore(db *sql.DB, logger *logging.ChanneledLogger) *SQLStore {
	return &SQLStore{db: db, logger: logger}
}

func (s *SQLStore) Get(scopeID, key string) (string, bool, error) {
	query := `SELECT value FROM visitor_settings WHERE visitor_id = ? AND key = ?`

	start := time.Now()
	var value string
	err := s.db.QueryRow(query, scopeID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.logger.Database().Error("Visitor setting read failed", "error", err.Error(), "key", key)
		return "", false, fmt.Errorf("failed to read visitor setting: %w", err)
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		s.logger.LogSlowQuery(query, duration)
	}
	return value, true, nil
}

func (s *SQLStore) Set(scopeID, key, value string) error {
	query := `INSERT INTO visitor_settings (visitor_id, key, value, updated_at) VALUES (?, ?, ?, ?)
	          ON CONFLICT(visitor_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	start := time.Now()
	_, err := s.db.Exec(query, scopeID, key, value, time.Now().UTC())
	if err != nil {
		s.logger.Database().Error("Visitor setting write failed", "error", err.Error(), "key", key)
		return fmt.Errorf("failed to write visitor setting: %w", err)
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		s.logger.LogSlowQuery(query, duration)
	}
	return nil
}

func (s *SQLStore) Delete(scopeID, key string) error {
	query := `DELETE FROM visitor_settings WHERE visitor_id = ? AND key = ?`

	_, err := s.db.Exec(query, scopeID, key)
	if err != nil {
		s.logger.Database().Error("Visitor setting delete failed", "error", err.Error(), "key", key)
		return fmt.Errorf("failed to delete visitor setting: %w", err)
	}
	return nil
}
