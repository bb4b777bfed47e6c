package docstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// documentRow is the relational shape of a stored document.
type documentRow struct {
	Collection string `gorm:"primaryKey;size:64;not null"`
	ID         string `gorm:"primaryKey;size:255;not null"`
	Data       []byte `gorm:"type:text;not null"`
}

func (documentRow) TableName() string {
	return "documents"
}

// GormStore persists documents in a single relational table via Gorm.
type GormStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

var _ Store = (*GormStore)(nil)

// NewGormStore constructs a Gorm-backed document store. The connection is owned
// by the caller and is not closed by the store.
func NewGormStore(db *gorm.DB, logger *logrus.Logger) (*GormStore, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormStore{db: db, logger: logger}, nil
}

// Migrate applies the documents schema using Gorm's AutoMigrate.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "docstore.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying documents schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(&documentRow{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("documents schema migration failed")
		}
		return eris.Wrap(err, "auto migrating documents schema")
	}

	return nil
}

// List returns every document in the collection ordered by id.
func (s *GormStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		s.logError(logrus.Fields{"collection": collection}, err, "listing documents")
		return nil, eris.Wrapf(err, "listing collection %s", collection)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.ID, Data: row.Data})
	}

	return docs, nil
}

// Get returns the document or (nil, nil) when the id is absent.
func (s *GormStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		First(&row, "collection = ? AND id = ?", collection, id).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "fetching document")
		return nil, eris.Wrapf(err, "fetching document %s/%s", collection, id)
	}

	return &Document{ID: row.ID, Data: row.Data}, nil
}

// Create inserts the payload under a freshly generated identifier.
func (s *GormStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	id := uuid.NewString()
	if err := s.Put(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// Put inserts or replaces the document at the caller-chosen id.
func (s *GormStore) Put(ctx context.Context, collection, id string, data json.RawMessage) error {
	if strings.TrimSpace(id) == "" {
		return eris.New("document id is required")
	}

	row := documentRow{Collection: collection, ID: id, Data: data}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "writing document")
		return eris.Wrapf(err, "writing document %s/%s", collection, id)
	}

	return nil
}

// Update merges the partial field set into the stored document.
func (s *GormStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return eris.Wrapf(ErrNotFound, "updating document %s/%s", collection, id)
	}

	merged, err := mergeDocument(doc.Data, partial)
	if err != nil {
		return err
	}

	return s.Put(ctx, collection, id, merged)
}

// Delete removes the document. Missing ids are ignored.
func (s *GormStore) Delete(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentRow{}).Error
	if err != nil {
		s.logError(logrus.Fields{"collection": collection, "id": id}, err, "deleting document")
		return eris.Wrapf(err, "deleting document %s/%s", collection, id)
	}

	return nil
}

func (s *GormStore) logError(fields logrus.Fields, err error, message string) {
	if s.logger == nil {
		return
	}

	entry := s.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
