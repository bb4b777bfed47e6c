package intake

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stacknova/site/internal/db"
)

func TestSubmitContactPersistsRecord(t *testing.T) {
	t.Parallel()

	svc := setupService(t)

	record, err := svc.SubmitContact(context.Background(), ContactInput{
		Name:    "Jane",
		Email:   "jane@x.com",
		Message: "Hello there, need a quote",
	})
	require.NoError(t, err)
	require.NotZero(t, record.ID)

	count, err := svc.CountContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubmitContactRejectsMalformedEmail(t *testing.T) {
	t.Parallel()

	svc := setupService(t)

	_, err := svc.SubmitContact(context.Background(), ContactInput{
		Name:    "Jane",
		Email:   "not-an-email",
		Message: "Hello there, need a quote",
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "email")

	// Rejected submissions must never be persisted.
	count, err := svc.CountContacts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitContactRequiresAllFields(t *testing.T) {
	t.Parallel()

	svc := setupService(t)

	_, err := svc.SubmitContact(context.Background(), ContactInput{})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}

func TestSubmitQuoteValidatesServicesAndDetails(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, QuoteInput{
		Name:     "Jane",
		Email:    "jane@x.com",
		Services: []string{},
		Details:  "too short",
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "services")
	assert.Contains(t, fields, "details")

	record, err := svc.SubmitQuote(ctx, QuoteInput{
		Name:     "Jane",
		Email:    "jane@x.com",
		Company:  "Acme",
		Services: []string{"Web Development", "Cloud"},
		Details:  "We need a full marketing site rebuilt from scratch.",
		Budget:   "10k-25k",
	})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Equal(t, []string{"Web Development", "Cloud"}, record.Services)
}

func TestSubmitApplicationValidatesURLsAndGender(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.SubmitApplication(ctx, ApplicationInput{
		Name:         "Jane",
		Email:        "jane@x.com",
		Phone:        "1234567890",
		Gender:       "unspecified",
		Position:     "Backend Engineer",
		Resume:       "not a url",
		ExpectedCTC:  "12",
		NoticePeriod: "30 days",
		Skills:       []string{"go"},
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "gender")
	assert.Contains(t, fields, "resume")

	record, err := svc.SubmitApplication(ctx, ApplicationInput{
		Name:         "Jane",
		Email:        "jane@x.com",
		Phone:        "1234567890",
		Gender:       "female",
		Position:     "Backend Engineer",
		Resume:       "https://example.com/resume.pdf",
		ExpectedCTC:  "12",
		NoticePeriod: "30 days",
		Skills:       []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
}

func TestFieldErrorsMessageIsStable(t *testing.T) {
	t.Parallel()

	err := FieldErrors{"email": "A valid email is required.", "name": "name is required."}
	assert.Equal(t, "validation failed: email: A valid email is required.; name: name is required.", err.Error())
}

func setupService(t *testing.T) *Service {
	t.Helper()

	path := filepath.Join(t.TempDir(), "intake.db")
	gormDB, err := db.Open(db.Options{Path: path})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, db.Close(gormDB))
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	require.NoError(t, Migrate(context.Background(), gormDB, logger))

	svc, err := NewService(gormDB, logger)
	require.NoError(t, err)

	return svc
}
