// Package catalog provides the SQL repositories behind the site's
// read-only content surfaces (properties, areas, blog posts, testimonials).
package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/catalog"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

const propertyColumns = `id, slug, title, description, price, property_type, status,
	bedrooms, bathrooms, address, area_slug, featured, images, floor_plan_url,
	created_at, updated_at`

// PropertyRepository is the SQL-based store for property listings.
type PropertyRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewPropertyRepository creates a new instance of the repository.
func NewPropertyRepository(db *sql.DB, logger *logging.ChanneledLogger) *PropertyRepository {
	return &PropertyRepository{db: db, logger: logger}
}

// FindPublished retrieves all published listings, newest first.
func (r *PropertyRepository) FindPublished() ([]*catalog.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE status = 'published' ORDER BY created_at DESC`

	start := time.Now()
	r.logger.Database().Debug("Loading published properties")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load published properties", "error", err.Error())
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties, err := r.scanProperties(rows)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	r.logger.Database().Debug("Published properties loaded", "count", len(properties), "duration", duration)
	return properties, nil
}

// FindBySlug retrieves one published listing by slug. Returns nil when absent.
func (r *PropertyRepository) FindBySlug(slug string) (*catalog.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE slug = ? AND status = 'published'`

	start := time.Now()
	r.logger.Database().Debug("Loading property by slug", "slug", slug)

	row := r.db.QueryRow(query, slug)
	property, err := r.scanProperty(row)
	if err != nil {
		if err == sql.ErrNoRows {
			r.logger.Database().Debug("Property not found", "slug", slug)
			return nil, nil
		}
		r.logger.Database().Error("Failed to load property", "error", err.Error(), "slug", slug)
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return property, nil
}

// FindFeatured retrieves published listings flagged for the landing page.
func (r *PropertyRepository) FindFeatured() ([]*catalog.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE status = 'published' AND featured = 1 ORDER BY created_at DESC`

	start := time.Now()
	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to load featured properties", "error", err.Error())
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	defer rows.Close()

	properties, err := r.scanProperties(rows)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return properties, nil
}

// FindByArea retrieves published listings in one area, newest first.
func (r *PropertyRepository) FindByArea(areaSlug string) ([]*catalog.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE status = 'published' AND area_slug = ? ORDER BY created_at DESC`

	start := time.Now()
	rows, err := r.db.Query(query, areaSlug)
	if err != nil {
		r.logger.Database().Error("Failed to load properties by area", "error", err.Error(), "area", areaSlug)
		return nil, fmt.Errorf("failed to query properties by area: %w", err)
	}
	defer rows.Close()

	properties, err := r.scanProperties(rows)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return properties, nil
}

// Store inserts or replaces a listing.
func (r *PropertyRepository) Store(property *catalog.Property) error {
	imagesJSON, _ := json.Marshal(property.Images)

	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, title = excluded.title,
			description = excluded.description, price = excluded.price,
			property_type = excluded.property_type, status = excluded.status,
			bedrooms = excluded.bedrooms, bathrooms = excluded.bathrooms,
			address = excluded.address, area_slug = excluded.area_slug,
			featured = excluded.featured, images = excluded.images,
			floor_plan_url = excluded.floor_plan_url, updated_at = excluded.updated_at`

	start := time.Now()
	_, err := r.db.Exec(query,
		property.ID, property.Slug, property.Title, property.Description,
		property.Price, property.PropertyType, property.Status,
		property.Bedrooms, property.Bathrooms, property.Address, property.AreaSlug,
		boolToInt(property.Featured), string(imagesJSON), property.FloorPlanURL,
		property.CreatedAt, property.UpdatedAt)
	if err != nil {
		r.logger.Database().Error("Property upsert failed", "error", err.Error(), "id", property.ID)
		return fmt.Errorf("failed to store property: %w", err)
	}

	r.logger.Database().Info("Property stored", "id", property.ID, "duration", time.Since(start))
	return nil
}

func (r *PropertyRepository) scanProperties(rows *sql.Rows) ([]*catalog.Property, error) {
	properties := []*catalog.Property{}
	for rows.Next() {
		property, err := r.scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PropertyRepository) scanProperty(row rowScanner) (*catalog.Property, error) {
	var property catalog.Property
	var featured int
	var imagesJSON string

	err := row.Scan(&property.ID, &property.Slug, &property.Title, &property.Description,
		&property.Price, &property.PropertyType, &property.Status,
		&property.Bedrooms, &property.Bathrooms, &property.Address, &property.AreaSlug,
		&featured, &imagesJSON, &property.FloorPlanURL,
		&property.CreatedAt, &property.UpdatedAt)
	if err != nil {
		return nil, err
	}

	property.Featured = featured != 0
	if imagesJSON != "" {
		if err := json.Unmarshal([]byte(imagesJSON), &property.Images); err != nil {
			property.Images = []string{}
		}
	}
	return &property, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
