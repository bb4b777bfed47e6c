package docstore

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"stacknova/site/internal/db"
)

func TestStoreBackends(t *testing.T) {
	t.Parallel()

	backends := map[string]func(t *testing.T) Store{
		"badger": setupBadgerStore,
		"gorm":   setupGormStore,
	}

	for name, setup := range backends {
		setup := setup
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Run("ListEmptyCollection", func(t *testing.T) {
				store := setup(t)

				docs, err := store.List(context.Background(), "services")
				if err != nil {
					t.Fatalf("List returned error: %v", err)
				}
				if len(docs) != 0 {
					t.Fatalf("expected empty collection, got %d documents", len(docs))
				}
			})

			t.Run("GetMissingReturnsNil", func(t *testing.T) {
				store := setup(t)

				doc, err := store.Get(context.Background(), "services", "missing")
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}
				if doc != nil {
					t.Fatalf("expected nil document, got %#v", doc)
				}
			})

			t.Run("CreateAssignsID", func(t *testing.T) {
				store := setup(t)
				ctx := context.Background()

				id, err := store.Create(ctx, "services", json.RawMessage(`{"title":"Cloud"}`))
				if err != nil {
					t.Fatalf("Create returned error: %v", err)
				}
				if id == "" {
					t.Fatal("expected generated id")
				}

				doc, err := store.Get(ctx, "services", id)
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}
				if doc == nil {
					t.Fatal("expected created document to be present")
				}
			})

			t.Run("UpdateMergesPartialFields", func(t *testing.T) {
				store := setup(t)
				ctx := context.Background()

				payload := json.RawMessage(`{"title":"Cloud","description":"Original"}`)
				if err := store.Put(ctx, "services", "svc-1", payload); err != nil {
					t.Fatalf("Put returned error: %v", err)
				}

				if err := store.Update(ctx, "services", "svc-1", map[string]any{"description": "Changed"}); err != nil {
					t.Fatalf("Update returned error: %v", err)
				}

				doc, err := store.Get(ctx, "services", "svc-1")
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}

				var fields map[string]string
				if err := json.Unmarshal(doc.Data, &fields); err != nil {
					t.Fatalf("decoding document: %v", err)
				}

				if fields["title"] != "Cloud" {
					t.Errorf("expected title unchanged, got %q", fields["title"])
				}
				if fields["description"] != "Changed" {
					t.Errorf("expected description updated, got %q", fields["description"])
				}
			})

			t.Run("UpdateMissingReturnsNotFound", func(t *testing.T) {
				store := setup(t)

				err := store.Update(context.Background(), "services", "ghost", map[string]any{"title": "x"})
				if err == nil {
					t.Fatal("expected error updating missing document")
				}
				if !isNotFound(err) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			})

			t.Run("DeleteThenGetYieldsNil", func(t *testing.T) {
				store := setup(t)
				ctx := context.Background()

				if err := store.Put(ctx, "team", "tm-1", json.RawMessage(`{"name":"Jane"}`)); err != nil {
					t.Fatalf("Put returned error: %v", err)
				}

				if err := store.Delete(ctx, "team", "tm-1"); err != nil {
					t.Fatalf("Delete returned error: %v", err)
				}

				doc, err := store.Get(ctx, "team", "tm-1")
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}
				if doc != nil {
					t.Fatalf("expected document gone after delete, got %#v", doc)
				}
			})

			t.Run("DeleteMissingIsIdempotent", func(t *testing.T) {
				store := setup(t)

				if err := store.Delete(context.Background(), "team", "never-existed"); err != nil {
					t.Fatalf("expected idempotent delete, got error: %v", err)
				}
			})

			t.Run("ListReturnsAllDocumentsWithIDs", func(t *testing.T) {
				store := setup(t)
				ctx := context.Background()

				for _, id := range []string{"a", "b", "c"} {
					if err := store.Put(ctx, "testimonials", id, json.RawMessage(`{"quote":"great"}`)); err != nil {
						t.Fatalf("Put returned error: %v", err)
					}
				}

				docs, err := store.List(ctx, "testimonials")
				if err != nil {
					t.Fatalf("List returned error: %v", err)
				}
				if len(docs) != 3 {
					t.Fatalf("expected 3 documents, got %d", len(docs))
				}
				for _, doc := range docs {
					if doc.ID == "" {
						t.Fatal("expected id attached to each document")
					}
				}
			})

			t.Run("CollectionsAreIsolated", func(t *testing.T) {
				store := setup(t)
				ctx := context.Background()

				if err := store.Put(ctx, "services", "shared-id", json.RawMessage(`{"title":"svc"}`)); err != nil {
					t.Fatalf("Put returned error: %v", err)
				}

				doc, err := store.Get(ctx, "team", "shared-id")
				if err != nil {
					t.Fatalf("Get returned error: %v", err)
				}
				if doc != nil {
					t.Fatal("expected no cross-collection leakage")
				}
			})
		})
	}
}

func isNotFound(err error) bool {
	return eris.Is(err, ErrNotFound)
}

func setupBadgerStore(t *testing.T) Store {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := OpenBadger(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("OpenBadger returned error: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := store.Close(); closeErr != nil {
			t.Errorf("closing badger store failed: %v", closeErr)
		}
	})

	return store
}

func setupGormStore(t *testing.T) Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docs.db")
	gormDB, err := db.Open(db.Options{Path: path})
	if err != nil {
		t.Fatalf("db.Open returned error: %v", err)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(gormDB); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if err := Migrate(context.Background(), gormDB, logger); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	store, err := NewGormStore(gormDB, logger)
	if err != nil {
		t.Fatalf("NewGormStore returned error: %v", err)
	}

	return store
}
