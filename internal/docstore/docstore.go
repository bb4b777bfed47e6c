// Package docstore provides schema-flexible document persistence addressed by
// collection name and id, with interchangeable storage backends selected at startup.
package docstore

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ErrNotFound indicates the requested document does not exist in its collection.
var ErrNotFound = eris.New("document not found")

// Document is a stored JSON payload together with its collection-scoped identifier.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Store defines CRUD primitives over named collections of JSON documents.
//
// Get returns (nil, nil) for a missing id. Delete is idempotent: deleting an id
// that does not exist is a no-op, not an error.
type Store interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Create(ctx context.Context, collection string, data json.RawMessage) (string, error)
	Put(ctx context.Context, collection, id string, data json.RawMessage) error
	Update(ctx context.Context, collection, id string, partial map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}

// mergeDocument applies the partial field set on top of the existing JSON payload.
// Fields absent from partial are left untouched.
func mergeDocument(existing json.RawMessage, partial map[string]any) (json.RawMessage, error) {
	merged := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return nil, eris.Wrap(err, "decoding stored document")
		}
	}

	for key, value := range partial {
		merged[key] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, eris.Wrap(err, "encoding merged document")
	}

	return data, nil
}
