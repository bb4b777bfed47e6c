package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stacknova/site/internal/assets"
	"stacknova/site/internal/auth"
	"stacknova/site/internal/config"
	"stacknova/site/internal/content"
	appdb "stacknova/site/internal/db"
	"stacknova/site/internal/docstore"
	apphttp "stacknova/site/internal/http"
	"stacknova/site/internal/intake"
	applog "stacknova/site/internal/log"
)

const adminTokenTTL = 12 * time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	dbConn, err := appdb.Open(appdb.Options{Path: cfg.DBPath})
	if err != nil {
		return eris.Wrap(err, "opening database")
	}
	defer func() {
		if closeErr := appdb.Close(dbConn); closeErr != nil {
			logger.WithError(closeErr).Error("closing database")
		}
	}()

	if err := intake.Migrate(ctx, dbConn, logger); err != nil {
		return eris.Wrap(err, "running intake migrations")
	}

	store, closeStore, err := openDocstore(ctx, cfg, dbConn, logger)
	if err != nil {
		return eris.Wrap(err, "opening document store")
	}
	if closeStore != nil {
		defer closeStore()
	}

	contentSvc := content.NewService(store, logger)

	intakeSvc, err := intake.NewService(dbConn, logger)
	if err != nil {
		return eris.Wrap(err, "creating intake service")
	}

	authn, err := auth.New(auth.Options{
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       cfg.JWTSecret,
		TokenTTL:     adminTokenTTL,
	})
	if err != nil {
		return eris.Wrap(err, "creating authenticator")
	}
	if !authn.Enabled() {
		logger.Warn("ADMIN_PASSWORD_HASH is not set, admin API is disabled")
	}

	transport, err := apphttp.NewServer(apphttp.Options{
		Content:   contentSvc,
		Intake:    intakeSvc,
		Auth:      authn,
		Assets:    assets.NewResolver(cfg.AssetBaseURL, cfg.UploadBaseURL),
		Docstore:  store,
		Database:  dbConn,
		Logger:    logger,
		SentryHub: sentryHub,
		RateLimiter: apphttp.RateLimiterSettings{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			ClientTTL:         cfg.RateLimit.ClientTTL,
		},
	})
	if err != nil {
		return eris.Wrap(err, "initialising http transport")
	}

	httpServer := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.ServerPort),
		Handler: transport.Handler(),
	}

	logger.WithFields(logrus.Fields{
		"addr":     httpServer.Addr,
		"docstore": cfg.DocstoreBackend,
	}).Info("starting http server")

	serverErrCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			return eris.Wrap(err, "http server error")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	logger.Info("http server shut down cleanly")
	return nil
}

// openDocstore selects the document store backend. A badger backend without a
// configured path leaves the site in read-only fallback mode instead of
// failing the boot.
func openDocstore(ctx context.Context, cfg *config.Config, dbConn *gorm.DB, logger *logrus.Logger) (docstore.Store, func(), error) {
	switch cfg.DocstoreBackend {
	case config.BackendBadger:
		if cfg.DocstorePath == "" {
			logger.Warn("DOCSTORE_PATH is not set, serving fallback content only")
			return nil, nil, nil
		}

		store, err := docstore.OpenBadger(cfg.DocstorePath, logger)
		if err != nil {
			return nil, nil, eris.Wrap(err, "opening badger store")
		}

		closeStore := func() {
			if closeErr := store.Close(); closeErr != nil {
				logger.WithError(closeErr).Error("closing badger store")
			}
		}
		return store, closeStore, nil

	case config.BackendSQLite:
		if err := docstore.Migrate(ctx, dbConn, logger); err != nil {
			return nil, nil, eris.Wrap(err, "running docstore migrations")
		}

		store, err := docstore.NewGormStore(dbConn, logger)
		if err != nil {
			return nil, nil, eris.Wrap(err, "creating gorm store")
		}
		return store, nil, nil

	default:
		return nil, nil, eris.Errorf("unknown docstore backend: %s", cfg.DocstoreBackend)
	}
}
