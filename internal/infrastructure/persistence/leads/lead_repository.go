// Package leads provides the SQL repositories for lead capture.
package leads

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// LeadRepository is the SQL-based store for captured leads.
type LeadRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewLeadRepository creates a new instance of the repository.
func NewLeadRepository(db *sql.DB, logger *logging.ChanneledLogger) *LeadRepository {
	return &LeadRepository{db: db, logger: logger}
}

// Store inserts a captured lead. The database row is the authoritative copy.
func (r *LeadRepository) Store(lead *leads.LeadRecord) error {
	query := `INSERT INTO leads (id, name, email, phone, message, inquiry_type,
		property_id, source, priority, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	r.logger.Database().Debug("Inserting lead", "id", lead.ID, "inquiryType", string(lead.InquiryType))

	priority := 0
	if lead.Priority {
		priority = 1
	}

	_, err := r.db.Exec(query, lead.ID, lead.Name, lead.Email, lead.Phone,
		lead.Message, string(lead.InquiryType), lead.PropertyID, lead.Source,
		priority, lead.CreatedAt)
	if err != nil {
		r.logger.Database().Error("Lead insert failed", "error", err.Error(), "id", lead.ID)
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.logger.Database().Info("Lead inserted", "id", lead.ID, "duration", duration)
	return nil
}

// FindRecent retrieves the most recent leads for the admin dashboard.
func (r *LeadRepository) FindRecent(limit int) ([]*leads.LeadRecord, error) {
	query := `SELECT id, name, email, phone, message, inquiry_type,
		property_id, source, priority, created_at
		FROM leads ORDER BY created_at DESC LIMIT ?`

	start := time.Now()
	rows, err := r.db.Query(query, limit)
	if err != nil {
		r.logger.Database().Error("Failed to load recent leads", "error", err.Error())
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	records := []*leads.LeadRecord{}
	for rows.Next() {
		var record leads.LeadRecord
		var inquiryType string
		var priority int
		err := rows.Scan(&record.ID, &record.Name, &record.Email, &record.Phone,
			&record.Message, &inquiryType, &record.PropertyID, &record.Source,
			&priority, &record.CreatedAt)
		if err != nil {
			return nil, err
		}
		record.InquiryType = leads.InquiryType(inquiryType)
		record.Priority = priority != 0
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return records, nil
}
