package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/manager"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/catalog"
)

func newCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()

	logger := newTestLogger(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := NewCatalogService(
		manager.NewManager(logger),
		persistence.NewPropertyRepository(db, logger),
		persistence.NewAreaRepository(db, logger),
		persistence.NewBlogPostRepository(db, logger),
		persistence.NewTestimonialRepository(db, logger),
		logger,
		performance.NewTracker(nil),
	)
	return service, mock
}

func propertyRow(slug string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "description", "price", "property_type", "status",
		"bedrooms", "bathrooms", "address", "area_slug", "featured", "images",
		"floor_plan_url", "created_at", "updated_at",
	}).AddRow("p1", slug, "Riverside Penthouse", "Stunning views",
		1250000, "apartment", "published", 3, 2, "12 River Reach", "richmond",
		1, `["hero.webp","terrace.webp"]`, "", now, now)
}

func TestGetPublishedPropertiesServedFromCache(t *testing.T) {
	service, mock := newCatalogService(t)

	// One backend read; the second call must hit the cache.
	mock.ExpectQuery("FROM properties").WillReturnRows(propertyRow("riverside-penthouse"))

	first := service.GetPublishedProperties()
	require.Len(t, first, 1)
	assert.Equal(t, "riverside-penthouse", first[0].Slug)
	assert.True(t, first[0].Featured)
	assert.Equal(t, []string{"hero.webp", "terrace.webp"}, first[0].Images)

	second := service.GetPublishedProperties()
	require.Len(t, second, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedPropertiesEmptyFallbackOnBackendFailure(t *testing.T) {
	service, mock := newCatalogService(t)

	// Initial attempt plus configured retries all fail.
	for i := 0; i < 3; i++ {
		mock.ExpectQuery("FROM properties").WillReturnError(assert.AnError)
	}

	properties := service.GetPublishedProperties()

	assert.NotNil(t, properties, "rendering surfaces receive an empty list, never nil or an error")
	assert.Empty(t, properties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropertyBySlugMissSignalsRedirect(t *testing.T) {
	service, mock := newCatalogService(t)

	mock.ExpectQuery("FROM properties").
		WithArgs("does-not-exist").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	property, found := service.GetPropertyBySlug("does-not-exist")

	assert.Nil(t, property)
	assert.False(t, found)
}

func TestGetPropertyBySlugHit(t *testing.T) {
	service, mock := newCatalogService(t)

	mock.ExpectQuery("FROM properties").
		WithArgs("riverside-penthouse").
		WillReturnRows(propertyRow("riverside-penthouse"))

	property, found := service.GetPropertyBySlug("riverside-penthouse")

	require.True(t, found)
	assert.Equal(t, "Riverside Penthouse", property.Title)
}

func TestInvalidatePropertiesForcesRefetch(t *testing.T) {
	service, mock := newCatalogService(t)

	mock.ExpectQuery("FROM properties").WillReturnRows(propertyRow("riverside-penthouse"))
	require.Len(t, service.GetPublishedProperties(), 1)

	service.InvalidateProperties()

	mock.ExpectQuery("FROM properties").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	assert.Empty(t, service.GetPublishedProperties())
	assert.NoError(t, mock.ExpectationsWereMet())
}
