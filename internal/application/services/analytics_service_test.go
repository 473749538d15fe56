package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/consent"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/events"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/analytics"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
)

func newAnalyticsFixture(t *testing.T) (*AnalyticsService, *settings.Service, sqlmock.Sqlmock) {
	t.Helper()

	logger := newTestLogger(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	settingsSvc := settings.NewService(settings.NewMemoryStore(), settings.NewMemoryStore())
	service := NewAnalyticsService(persistence.NewEventRepository(db, logger), settingsSvc, logger)
	return service, settingsSvc, mock
}

func TestTrackEventStoredWithConsent(t *testing.T) {
	service, settingsSvc, mock := newAnalyticsFixture(t)
	require.NoError(t, settingsSvc.SetConsentPreferences("vis-1", consent.Record{Analytics: true}))

	mock.ExpectExec("INSERT INTO analytics_events").
		WithArgs(sqlmock.AnyArg(), "sess-1", events.ActionPageView, "navigation", "/properties", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	service.TrackPageView("sess-1", "vis-1", "/properties")

	// Persistence is off the request path.
	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestTrackEventDroppedWithoutConsent(t *testing.T) {
	service, _, mock := newAnalyticsFixture(t)

	service.TrackPageView("sess-1", "vis-1", "/properties")
	service.TrackCTAClick("sess-1", "vis-1", "book-valuation")

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, mock.ExpectationsWereMet(), "no event row without analytics consent")
}

func TestTrackEventDroppedWhenConsentDeclined(t *testing.T) {
	service, settingsSvc, mock := newAnalyticsFixture(t)
	require.NoError(t, settingsSvc.SetConsentPreferences("vis-1", consent.Record{Analytics: false}))

	service.TrackFormSubmit("sess-1", "vis-1", "contact_form")

	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackEventSwallowsStoreFailure(t *testing.T) {
	service, settingsSvc, mock := newAnalyticsFixture(t)
	require.NoError(t, settingsSvc.SetConsentPreferences("vis-1", consent.Record{Analytics: true}))

	mock.ExpectExec("INSERT INTO analytics_events").
		WillReturnError(assert.AnError)

	// Must not panic or surface anything to the caller.
	service.TrackPopupView("sess-1", "vis-1", "exit_intent")

	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, time.Second, 5*time.Millisecond)
}
