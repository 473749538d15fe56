package settings

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
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

func TestSQLStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, newTestLogger(t))

	mock.ExpectQuery("SELECT value FROM visitor_settings").
		WithArgs("vis-1", KeyConsentGiven).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("true"))

	value, ok, err := store.Get("vis-1", KeyConsentGiven)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreGetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, newTestLogger(t))

	mock.ExpectQuery("SELECT value FROM visitor_settings").
		WithArgs("vis-1", KeyPopupDismissed).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, ok, err := store.Get("vis-1", KeyPopupDismissed)
	require.NoError(t, err, "a missing key is not an error")
	assert.False(t, ok)
	assert.Empty(t, value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, newTestLogger(t))

	mock.ExpectExec("INSERT INTO visitor_settings").
		WithArgs("vis-1", KeyPopupDismissed, "true", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set("vis-1", KeyPopupDismissed, "true"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStoreSetSurfacesWriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, newTestLogger(t))

	mock.ExpectExec("INSERT INTO visitor_settings").
		WillReturnError(fmt.Errorf("disk I/O error"))

	err = store.Set("vis-1", KeyConsentGiven, "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write visitor setting")
}

func TestSQLStoreDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, newTestLogger(t))

	mock.ExpectExec("DELETE FROM visitor_settings").
		WithArgs("vis-1", KeyConsentPreferences).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete("vis-1", KeyConsentPreferences))
	assert.NoError(t, mock.ExpectationsWereMet())
}
