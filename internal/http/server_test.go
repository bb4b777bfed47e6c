package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"stacknova/site/internal/assets"
	"stacknova/site/internal/auth"
	"stacknova/site/internal/content"
	"stacknova/site/internal/db"
	"stacknova/site/internal/docstore"
	"stacknova/site/internal/intake"
)

const testAdminPassword = "correct-horse-battery"

type testEnv struct {
	server *Server
	intake *intake.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gdb, err := db.Open(db.Options{Path: filepath.Join(t.TempDir(), "app.db")})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	ctx := context.Background()
	if err := intake.Migrate(ctx, gdb, logger); err != nil {
		t.Fatalf("migrating intake tables: %v", err)
	}

	store, err := docstore.OpenBadger(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("opening document store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	intakeSvc, err := intake.NewService(gdb, logger)
	if err != nil {
		t.Fatalf("constructing intake service: %v", err)
	}

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}

	authn, err := auth.New(auth.Options{
		PasswordHash: hash,
		Secret:       "test-secret",
		TokenTTL:     time.Hour,
	})
	if err != nil {
		t.Fatalf("constructing authenticator: %v", err)
	}

	srv, err := NewServer(Options{
		Content:  content.NewService(store, logger),
		Intake:   intakeSvc,
		Auth:     authn,
		Assets:   assets.NewResolver("https://cdn.example.com/assets", "https://cdn.example.com/uploads"),
		Docstore: store,
		Database: gdb,
		Logger:   logger,
		RateLimiter: RateLimiterSettings{
			RequestsPerSecond: 100,
			Burst:             200,
			ClientTTL:         time.Minute,
		},
	})
	if err != nil {
		t.Fatalf("constructing server: %v", err)
	}

	return &testEnv{server: srv, intake: intakeSvc}
}

func (e *testEnv) do(t *testing.T, method, target, token string, payload string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != "" {
		body = strings.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return decoded
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rec := e.do(t, "POST", "/admin/api/login", "", `{"password":"`+testAdminPassword+`"}`)
	if rec.Code != 200 {
		t.Fatalf("expected login to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatal("expected login response to carry a token")
	}
	return token
}

func TestHomeRouteRendersPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "GET", "/", "", "")

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != htmlContentType {
		t.Fatalf("expected content type %q, got %q", htmlContentType, ct)
	}

	if !strings.Contains(rec.Body.String(), "StackNova") {
		t.Fatalf("expected body to contain site name, got %q", rec.Body.String())
	}
}

func TestUnknownServiceReturns404(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "GET", "/services/no-such-id", "", "")

	if rec.Code != 404 {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != htmlContentType {
		t.Fatalf("expected content type %q, got %q", htmlContentType, ct)
	}
}

func TestContactEndpointPersistsMessage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/contact", "", `{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"message": "We need a new marketing site for our analytics startup."
	}`)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if id, _ := body["id"].(string); id == "" {
		t.Fatalf("expected response to carry an id, got %v", body)
	}

	count, err := env.intake.CountContacts(context.Background())
	if err != nil {
		t.Fatalf("counting contacts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one stored contact, got %d", count)
	}
}

func TestContactEndpointRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/contact", "", `{
		"name": "Ada Lovelace",
		"email": "not-an-email",
		"message": "We need a new marketing site for our analytics startup."
	}`)

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if message, _ := body["message"].(string); !strings.Contains(message, "email") {
		t.Fatalf("expected message to mention the email field, got %v", body)
	}

	count, err := env.intake.CountContacts(context.Background())
	if err != nil {
		t.Fatalf("counting contacts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no stored contacts, got %d", count)
	}
}

func TestQuoteEndpointReturnsCreated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/get-started", "", `{
		"name": "Grace Hopper",
		"email": "grace@example.com",
		"services": ["Web Development"],
		"details": "We want to rebuild our compiler documentation portal from scratch.",
		"budget": "$10,000 - $25,000"
	}`)

	if rec.Code != 201 {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success to be true, got %v", body)
	}
	if body["data"] == nil {
		t.Fatalf("expected response to include the stored quote, got %v", body)
	}
}

func TestJobApplicationValidatesGender(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/job/apply", "", `{
		"name": "Alan Kay",
		"email": "alan@example.com",
		"phone": "01234567890",
		"gender": "unspecified",
		"position": "Frontend Developer",
		"expectedCTC": "90000",
		"noticePeriod": "2 weeks",
		"skills": ["Go", "TypeScript"]
	}`)

	if rec.Code != 400 {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success to be false, got %v", body)
	}
}

func TestJobApplicationAccepted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/api/job/apply", "", `{
		"name": "Alan Kay",
		"email": "alan@example.com",
		"phone": "01234567890",
		"gender": "male",
		"position": "Frontend Developer",
		"github": "https://github.com/alan",
		"expectedCTC": "90000",
		"noticePeriod": "2 weeks",
		"skills": ["Go", "TypeScript"]
	}`)

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success to be true, got %v", body)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, "GET", "/admin/api/posts", "", "")
	if rec.Code != 401 {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	rec = env.do(t, "GET", "/admin/api/posts", "garbage-token", "")
	if rec.Code != 401 {
		t.Fatalf("expected status 401 with bad token, got %d", rec.Code)
	}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "POST", "/admin/api/login", "", `{"password":"wrong"}`)

	if rec.Code != 401 {
		t.Fatalf("expected status 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminPostLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, "POST", "/admin/api/posts", token, `{
		"title": "Shipping Faster With Go",
		"author": "StackNova Team",
		"content": "<p>How we cut deploy times in half.</p>",
		"tags": ["engineering"]
	}`)
	if rec.Code != 201 {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	item, _ := decodeBody(t, rec)["item"].(map[string]any)
	slug, _ := item["slug"].(string)
	if slug != "shipping-faster-with-go" {
		t.Fatalf("expected derived slug, got %q", slug)
	}

	// Duplicate titles map to the same slug and must be rejected.
	rec = env.do(t, "POST", "/admin/api/posts", token, `{
		"title": "Shipping Faster With Go",
		"author": "StackNova Team",
		"content": "<p>Different body, same title.</p>"
	}`)
	if rec.Code != 409 {
		t.Fatalf("expected status 409 for duplicate slug, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/blog/"+slug, "", "")
	if rec.Code != 200 {
		t.Fatalf("expected public article to render, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Shipping Faster With Go") {
		t.Fatalf("expected article title in body, got %q", rec.Body.String())
	}

	rec = env.do(t, "PATCH", "/admin/api/posts/"+slug, token, `{"author":"Platform Team"}`)
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/admin/api/posts/"+slug, token, "")
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for fetch, got %d", rec.Code)
	}
	item, _ = decodeBody(t, rec)["item"].(map[string]any)
	if author, _ := item["author"].(string); author != "Platform Team" {
		t.Fatalf("expected updated author, got %q", author)
	}
	if title, _ := item["title"].(string); title != "Shipping Faster With Go" {
		t.Fatalf("expected title to survive partial update, got %q", title)
	}

	rec = env.do(t, "DELETE", "/admin/api/posts/"+slug, token, "")
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for delete, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/admin/api/posts/"+slug, token, "")
	if rec.Code != 404 {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestAdminServiceLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, "POST", "/admin/api/services", token, `{
		"title": "Cloud Migrations",
		"description": "Lift-and-shift or full refactors onto managed platforms.",
		"details": ["Audit", "Plan", "Migrate"]
	}`)
	if rec.Code != 201 {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	id, _ := decodeBody(t, rec)["id"].(string)
	if id == "" {
		t.Fatal("expected created service to carry an id")
	}

	rec = env.do(t, "GET", "/services/"+id, "", "")
	if rec.Code != 200 {
		t.Fatalf("expected public service page to render, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cloud Migrations") {
		t.Fatalf("expected service title in body, got %q", rec.Body.String())
	}

	rec = env.do(t, "PATCH", "/admin/api/services/"+id, token, `{"description":"Updated description for the catalog."}`)
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, "GET", "/admin/api/services/"+id, token, "")
	item, _ := decodeBody(t, rec)["item"].(map[string]any)
	if desc, _ := item["description"].(string); desc != "Updated description for the catalog." {
		t.Fatalf("expected updated description, got %q", desc)
	}

	rec = env.do(t, "DELETE", "/admin/api/services/"+id, token, "")
	if rec.Code != 200 {
		t.Fatalf("expected status 200 for delete, got %d", rec.Code)
	}

	rec = env.do(t, "GET", "/admin/api/services/"+id, token, "")
	if rec.Code != 404 {
		t.Fatalf("expected status 404 after delete, got %d", rec.Code)
	}
}

func TestAdminUnknownCollectionReturns404(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, "GET", "/admin/api/unknown", token, "")
	if rec.Code != 404 {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthRouteReportsOK(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "GET", "/healthz", "", "")

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if status, _ := body["status"].(string); status != "ok" {
		t.Fatalf("expected ok status, got %v", body)
	}
	if docstoreStatus, _ := body["docstore"].(string); docstoreStatus != "ok" {
		t.Fatalf("expected docstore ok, got %v", body)
	}
}

func TestFaviconServed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, "GET", "/favicon.ico", "", "")

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/x-icon" {
		t.Fatalf("expected icon content type, got %q", ct)
	}
}
