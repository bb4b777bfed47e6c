package intake

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the intake schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "intake.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying intake schema")
	}

	err := db.WithContext(ctx).AutoMigrate(
		&ContactMessage{},
		&QuoteRequest{},
		&JobApplication{},
	)
	if err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("intake schema migration failed")
		}
		return eris.Wrap(err, "auto migrating intake schema")
	}

	return nil
}
