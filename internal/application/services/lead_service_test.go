package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
)

func TestSubmitContactClearsDraftOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	draft := leads.FormDraft{
		Name:    "Jane Doe",
		Email:   "Jane@Example.com",
		Phone:   " 020 1234 5678 ",
		Message: "Thinking of selling in Richmond",
	}
	env.leads.SaveDraft("sess-1", draft)

	env.mock.ExpectExec("INSERT INTO leads").
		WithArgs(sqlmock.AnyArg(), "Jane Doe", "jane@example.com", "020 1234 5678",
			"Thinking of selling in Richmond", "general", "", "contact_form", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := env.leads.SubmitContact("sess-1", "vis-1", draft)

	require.True(t, result.Success)
	assert.NotEmpty(t, result.Toast)
	assert.True(t, env.leads.Draft("sess-1").Empty(), "successful submission clears the form")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSubmitContactRestoresDraftOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	draft := leads.FormDraft{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Thinking of selling",
	}
	env.leads.SaveDraft("sess-1", draft)

	env.mock.ExpectExec("INSERT INTO leads").
		WillReturnError(fmt.Errorf("database is locked"))

	result := env.leads.SubmitContact("sess-1", "vis-1", draft)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Toast)
	assert.Equal(t, draft, env.leads.Draft("sess-1"), "every entered value comes back after a failed write")
}

func TestSubmitContactRequiresNameAndEmail(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	draft := leads.FormDraft{Message: "no contact details"}
	env.leads.SaveDraft("sess-1", draft)

	result := env.leads.SubmitContact("sess-1", "vis-1", draft)

	assert.False(t, result.Success)
	assert.Equal(t, draft, env.leads.Draft("sess-1"), "validation failure never touches the draft")
}

func TestSubmitContactDefaultsInquiryType(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	env.mock.ExpectExec("INSERT INTO leads").
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "", "",
			"property", "riverside-penthouse", "contact_form", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := env.leads.SubmitContact("sess-1", "vis-1", leads.FormDraft{
		Name:        "Jane",
		Email:       "jane@example.com",
		InquiryType: leads.InquiryProperty,
		PropertyID:  "riverside-penthouse",
	})

	require.True(t, result.Success)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSubmitValuationTagsInquiryType(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	env.mock.ExpectExec("INSERT INTO leads").
		WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "", "Valuation for 12 River Reach",
			"valuation", "", "contact_form", 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := env.leads.SubmitValuation("sess-1", "vis-1", leads.FormDraft{
		Name:    "Jane",
		Email:   "jane@example.com",
		Message: "Valuation for 12 River Reach",
	})

	require.True(t, result.Success)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSubscribeNewsletter(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	env.mock.ExpectExec("INSERT INTO subscribers").
		WithArgs(sqlmock.AnyArg(), "jane@example.com", "Jane", "footer", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := env.leads.SubscribeNewsletter("sess-1", "vis-1", " Jane@Example.com ", "Jane", "footer")

	require.True(t, result.Success)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSubscribeNewsletterRequiresEmail(t *testing.T) {
	env := newTestEnv(t)

	result := env.leads.SubscribeNewsletter("sess-1", "vis-1", "", "Jane", "footer")

	assert.False(t, result.Success)
}

func TestSaveDraftRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.Register("sess-1", "vis-1")

	draft := leads.FormDraft{Name: "Jane", Email: "jane@example.com"}
	env.leads.SaveDraft("sess-1", draft)

	assert.Equal(t, draft, env.leads.Draft("sess-1"))
}
