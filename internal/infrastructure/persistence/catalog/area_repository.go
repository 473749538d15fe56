package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/catalog"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// AreaRepository is the SQL-based store for area guides.
type AreaRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewAreaRepository creates a new instance of the repository.
func NewAreaRepository(db *sql.DB, logger *logging.ChanneledLogger) *AreaRepository {
	return &AreaRepository{db: db, logger: logger}
}

// FindEnabled retrieves enabled areas ordered by display rank.
func (r *AreaRepository) FindEnabled() ([]*catalog.Area, error) {
	query := `SELECT id, slug, name, summary, hero_image, enabled, display_rank, updated_at
		FROM areas WHERE enabled = 1 ORDER BY display_rank ASC, name ASC`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load areas", "error", err.Error())
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	areas := []*catalog.Area{}
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return areas, nil
}

// FindBySlug retrieves one enabled area by slug. Returns nil when absent.
func (r *AreaRepository) FindBySlug(slug string) (*catalog.Area, error) {
	query := `SELECT id, slug, name, summary, hero_image, enabled, display_rank, updated_at
		FROM areas WHERE slug = ? AND enabled = 1`

	start := time.Now()
	area, err := scanArea(r.db.QueryRow(query, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Database().Error("Failed to load area", "error", err.Error(), "slug", slug)
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return area, nil
}

func scanArea(row rowScanner) (*catalog.Area, error) {
	var area catalog.Area
	var enabled int
	err := row.Scan(&area.ID, &area.Slug, &area.Name, &area.Summary,
		&area.HeroImage, &enabled, &area.DisplayRank, &area.UpdatedAt)
	if err != nil {
		return nil, err
	}
	area.Enabled = enabled != 0
	return &area, nil
}
