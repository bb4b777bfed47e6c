package docstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// BadgerStore persists documents in an embedded Badger key-value store.
// Keys are laid out as "<collection>/<id>" with JSON values.
type BadgerStore struct {
	db     *badger.DB
	logger *logrus.Logger
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens (or creates) a Badger-backed document store at the given directory.
func OpenBadger(path string, logger *logrus.Logger) (*BadgerStore, error) {
	if path == "" {
		return nil, eris.New("badger path is required")
	}

	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, eris.Wrapf(err, "opening badger store at %s", path)
	}

	return &BadgerStore{db: db, logger: logger}, nil
}

// Close releases the underlying Badger resources.
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return eris.Wrap(err, "closing badger store")
	}
	return nil
}

func documentKey(collection, id string) []byte {
	return []byte(collection + "/" + id)
}

// List returns every document in the collection ordered by id. An empty
// collection yields an empty slice.
func (s *BadgerStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := []Document{}
	prefix := []byte(collection + "/")

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id := strings.TrimPrefix(string(item.Key()), collection+"/")

			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			docs = append(docs, Document{ID: id, Data: value})
		}
		return nil
	})
	if err != nil {
		s.logError(logrus.Fields{"collection": collection}, err, "listing documents")
		return nil, eris.Wrapf(err, "listing collection %s", collection)
	}

	return docs, nil
}

// Get returns the document or (nil, nil) when the id is absent.
func (s *BadgerStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *Document
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey(collection, id))
		if err != nil {
			return err
		}

		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		doc = &Document{ID: id, Data: value}
		return nil
	})
	if err != nil {
		if eris.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "fetching document")
		return nil, eris.Wrapf(err, "fetching document %s/%s", collection, id)
	}

	return doc, nil
}

// Create inserts the payload under a freshly generated identifier.
func (s *BadgerStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	id := uuid.NewString()
	if err := s.Put(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Put inserts or replaces the document at the caller-chosen id.
func (s *BadgerStore) Put(ctx context.Context, collection, id string, data json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(id) == "" {
		return eris.New("document id is required")
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(documentKey(collection, id), data)
	})
	if err != nil {
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "writing document")
		return eris.Wrapf(err, "writing document %s/%s", collection, id)
	}

	return nil
}

// Update merges the partial field set into the stored document.
func (s *BadgerStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := documentKey(collection, id)

		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		existing, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		merged, err := mergeDocument(existing, partial)
		if err != nil {
			return err
		}

		return txn.Set(key, merged)
	})
	if err != nil {
		if eris.Is(err, badger.ErrKeyNotFound) {
			return eris.Wrapf(ErrNotFound, "updating document %s/%s", collection, id)
		}
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "updating document")
		return eris.Wrapf(err, "updating document %s/%s", collection, id)
	}

	return nil
}

// Delete removes the document. Missing ids are ignored.
func (s *BadgerStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(documentKey(collection, id))
	})
	if err != nil {
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "deleting document")
		return eris.Wrapf(err, "deleting document %s/%s", collection, id)
	}

	return nil
}

func (s *BadgerStore) logError(fields logrus.Fields, err error, message string) {
	if s.logger == nil {
		return
	}

	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
