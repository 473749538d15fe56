package services

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToConsole: false,
		OutputToFile:    false,
		DefaultLevel:    slog.LevelError + 1,
	})
	require.NoError(t, err)
	return logger
}

// testEnv wires the service graph over in-memory stores and a mocked
// database, mirroring the production container.
type testEnv struct {
	db        *sql.DB
	mock      sqlmock.Sqlmock
	sessions  *stores.SessionStore
	profile   *settings.MemoryStore
	sessionKV *settings.MemoryStore
	settings  *settings.Service
	analytics *AnalyticsService
	leads     *LeadService
	popup     *PopupService
	consent   *ConsentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := newTestLogger(t)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	profile := settings.NewMemoryStore()
	sessionKV := settings.NewMemoryStore()
	settingsSvc := settings.NewService(profile, sessionKV)
	sessionStore := stores.NewSessionStore(100)
	perfTracker := performance.NewTracker(nil)

	// The mocked database never sees analytics traffic: no test visitor
	// grants analytics consent, so dispatch stops at the consent gate.
	analytics := NewAnalyticsService(nil, settingsSvc, logger)

	leadRepo := persistence.NewLeadRepository(db, logger)
	subscriberRepo := persistence.NewSubscriberRepository(db, logger)
	leadSvc := NewLeadService(leadRepo, subscriberRepo, sessionStore, analytics, nil, nil, logger, perfTracker)

	popup := NewPopupService(sessionStore, settingsSvc, analytics, leadSvc, nil, logger)
	t.Cleanup(popup.DisarmAll)

	consentSvc := NewConsentService(settingsSvc, sessionStore, analytics, logger)

	return &testEnv{
		db:        db,
		mock:      mock,
		sessions:  sessionStore,
		profile:   profile,
		sessionKV: sessionKV,
		settings:  settingsSvc,
		analytics: analytics,
		leads:     leadSvc,
		popup:     popup,
		consent:   consentSvc,
	}
}
