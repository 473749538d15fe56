package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/catalog"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// TestimonialRepository is the SQL-based store for client testimonials.
type TestimonialRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewTestimonialRepository creates a new instance of the repository.
func NewTestimonialRepository(db *sql.DB, logger *logging.ChanneledLogger) *TestimonialRepository {
	return &TestimonialRepository{db: db, logger: logger}
}

// FindAll retrieves testimonials, newest first.
func (r *TestimonialRepository) FindAll() ([]*catalog.Testimonial, error) {
	query := `SELECT id, author, quote, rating, created_at
		FROM testimonials ORDER BY created_at DESC`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load testimonials", "error", err.Error())
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []*catalog.Testimonial{}
	for rows.Next() {
		var t catalog.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Quote, &t.Rating, &t.CreatedAt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return testimonials, nil
}
