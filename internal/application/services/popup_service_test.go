package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

func qualifyingExitIntent() engagement.ExitIntentSignal {
	return engagement.ExitIntentSignal{PointerY: 2, Moving: true, Desktop: true}
}

func qualifyingScrollDepth() engagement.ScrollDepthSignal {
	return engagement.ScrollDepthSignal{ScrollY: 1200, ViewportHeight: 800, DocumentHeight: 2000}
}

// openPopup arms a session and drives it to the open dialog via exit intent.
func openPopup(t *testing.T, env *testEnv, sessionID, visitorID string) {
	t.Helper()

	env.sessions.Register(sessionID, visitorID)
	env.popup.ArmSession(sessionID, visitorID)
	require.True(t, env.popup.Armed(sessionID))

	env.popup.ReportExitIntent(sessionID, qualifyingExitIntent())

	require.Eventually(t, func() bool {
		return env.popup.DialogStep(sessionID) == engagement.DialogStepOne &&
			env.sessions.OverlayOpen(sessionID)
	}, time.Second, 5*time.Millisecond)
}

func TestArmSkipsDismissedVisitor(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.SetPopupDismissed("vis-1"))

	env.popup.ArmSession("sess-1", "vis-1")

	assert.False(t, env.popup.Armed("sess-1"), "a dismissed popup never re-offers")
}

func TestArmSkipsWhenPopupAlreadyShownThisSession(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.MarkPopupShown("sess-1"))

	env.popup.ArmSession("sess-1", "vis-1")

	assert.False(t, env.popup.Armed("sess-1"))
}

func TestArmIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	env.popup.ArmSession("sess-1", "vis-1")
	env.popup.ArmSession("sess-1", "vis-1")

	assert.True(t, env.popup.Armed("sess-1"))
}

func TestPopupOpensOnExitIntent(t *testing.T) {
	env := newTestEnv(t)

	openPopup(t, env, "sess-1", "vis-1")

	assert.False(t, env.popup.Armed("sess-1"), "coordinator stops once the popup opens")
	assert.True(t, env.settings.PopupShown("sess-1"))
	assert.True(t, env.settings.PopupDismissed("vis-1"), "dismissal flag is recorded at open time")

	// Both flags now block re-arming, even for a fresh session.
	env.popup.ArmSession("sess-2", "vis-1")
	assert.False(t, env.popup.Armed("sess-2"))
}

func TestPopupOpensAtMostOnceUnderRacingSignals(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")
	env.popup.ArmSession("sess-1", "vis-1")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.popup.ReportExitIntent("sess-1", qualifyingExitIntent())
			env.popup.ReportScrollDepth("sess-1", qualifyingScrollDepth())
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return env.popup.DialogStep("sess-1") == engagement.DialogStepOne
	}, time.Second, 5*time.Millisecond)

	// Late signals find no coordinator and are dropped.
	env.popup.ReportScrollDepth("sess-1", qualifyingScrollDepth())
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, engagement.DialogStepOne, env.popup.DialogStep("sess-1"))
	assert.False(t, env.popup.Armed("sess-1"))
}

func TestUnqualifiedSignalsNeverTrigger(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")
	env.popup.ArmSession("sess-1", "vis-1")

	env.popup.ReportScrollDepth("sess-1", engagement.ScrollDepthSignal{
		ScrollY: 380, ViewportHeight: 800, DocumentHeight: 2000, // 0.59
	})
	env.popup.ReportExitIntent("sess-1", engagement.ExitIntentSignal{PointerY: 2, Moving: true, Desktop: false})
	env.popup.ReportExitIntent("sess-1", engagement.ExitIntentSignal{PointerY: 50, Moving: true, Desktop: true})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
	assert.True(t, env.popup.Armed("sess-1"))
}

func TestOpenOverlaySuppressesTriggerButKeepsCoordinator(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")
	env.sessions.OverlayPush("sess-1", "consent-settings")
	env.popup.ArmSession("sess-1", "vis-1")

	env.popup.ReportExitIntent("sess-1", qualifyingExitIntent())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
	assert.True(t, env.popup.Armed("sess-1"), "a suppressed candidate leaves the coordinator armed")

	env.sessions.OverlayPop("sess-1", "consent-settings")
	env.popup.ReportExitIntent("sess-1", qualifyingExitIntent())

	require.Eventually(t, func() bool {
		return env.popup.DialogStep("sess-1") == engagement.DialogStepOne
	}, time.Second, 5*time.Millisecond)
}

func TestDwellTimerOpensPopup(t *testing.T) {
	env := newTestEnv(t)
	restore := config.PopupDwellDelay
	config.PopupDwellDelay = 30 * time.Millisecond
	defer func() { config.PopupDwellDelay = restore }()

	env.sessions.Register("sess-1", "vis-1")
	env.popup.ArmSession("sess-1", "vis-1")

	require.Eventually(t, func() bool {
		return env.popup.DialogStep("sess-1") == engagement.DialogStepOne
	}, time.Second, 5*time.Millisecond)
	assert.True(t, env.settings.PopupShown("sess-1"))
}

func TestSuppressedDwellDoesNotRetry(t *testing.T) {
	env := newTestEnv(t)
	restore := config.PopupDwellDelay
	config.PopupDwellDelay = 30 * time.Millisecond
	defer func() { config.PopupDwellDelay = restore }()

	env.sessions.Register("sess-1", "vis-1")
	env.sessions.OverlayPush("sess-1", "consent-settings")
	env.popup.ArmSession("sess-1", "vis-1")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
	assert.True(t, env.popup.Armed("sess-1"))

	// The dwell timer is one-shot: clearing the overlay does not replay it.
	env.sessions.OverlayPop("sess-1", "consent-settings")
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))

	// Listener-driven triggers still work.
	env.popup.ReportScrollDepth("sess-1", qualifyingScrollDepth())
	require.Eventually(t, func() bool {
		return env.popup.DialogStep("sess-1") == engagement.DialogStepOne
	}, time.Second, 5*time.Millisecond)
}

func TestTwoStepDialogFlow(t *testing.T) {
	env := newTestEnv(t)
	openPopup(t, env, "sess-1", "vis-1")

	env.mock.ExpectExec("INSERT INTO leads").
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "", "",
			"newsletter", "", "popup_step_one", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	env.mock.ExpectExec("INSERT INTO subscribers").
		WithArgs(sqlmock.AnyArg(), "jane@example.com", "Jane", "popup", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := env.popup.SubmitStepOne("sess-1", "vis-1", "Jane", "jane@example.com")
	require.True(t, result.Success)
	assert.Empty(t, result.Toast)
	assert.Equal(t, engagement.DialogStepTwo, env.popup.DialogStep("sess-1"))
	assert.True(t, env.sessions.OverlayOpen("sess-1"), "dialog stays open between steps")

	env.mock.ExpectExec("INSERT INTO leads").
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "020 1234 5678",
			"Current address: 12 River Reach\nPrice range: £800k-£1m\nMinimum bedrooms: 3",
			"newsletter", "", "popup_step_two", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	result = env.popup.SubmitStepTwo("sess-1", "vis-1",
		"Jane", "jane@example.com", "020 1234 5678", "12 River Reach", "£800k-£1m", 3)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Toast)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
	assert.False(t, env.sessions.OverlayOpen("sess-1"))

	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestStepOneAdvancesEvenWhenLeadWriteFails(t *testing.T) {
	env := newTestEnv(t)
	openPopup(t, env, "sess-1", "vis-1")

	env.mock.ExpectExec("INSERT INTO leads").
		WillReturnError(fmt.Errorf("database is locked"))

	result := env.popup.SubmitStepOne("sess-1", "vis-1", "Jane", "jane@example.com")

	assert.True(t, result.Success, "the dialog flow does not hinge on the write")
	assert.NotEmpty(t, result.Toast)
	assert.Equal(t, engagement.DialogStepTwo, env.popup.DialogStep("sess-1"))
}

func TestSubmitStepOneRequiresOpenDialog(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	result := env.popup.SubmitStepOne("sess-1", "vis-1", "Jane", "jane@example.com")

	assert.False(t, result.Success)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
}

func TestSubmitStepOneValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	openPopup(t, env, "sess-1", "vis-1")

	result := env.popup.SubmitStepOne("sess-1", "vis-1", "", "")

	assert.False(t, result.Success)
	assert.Equal(t, engagement.DialogStepOne, env.popup.DialogStep("sess-1"), "validation failure keeps the step")
}

func TestCloseDialogDismisses(t *testing.T) {
	env := newTestEnv(t)
	openPopup(t, env, "sess-1", "vis-1")

	env.popup.CloseDialog("sess-1", "vis-1")

	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
	assert.False(t, env.sessions.OverlayOpen("sess-1"))

	// Closing an already-closed dialog is a no-op.
	env.popup.CloseDialog("sess-1", "vis-1")
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
}

func TestDisarmStopsCoordinator(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")
	env.popup.ArmSession("sess-1", "vis-1")

	env.popup.Disarm("sess-1")
	require.False(t, env.popup.Armed("sess-1"))

	env.popup.ReportExitIntent("sess-1", qualifyingExitIntent())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, engagement.DialogClosed, env.popup.DialogStep("sess-1"))
}
