package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/api"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/auth"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/config"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/events"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/cold-storage-ledger/internal/interfaces"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/ledger"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/logging"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/cold-storage-ledger/internal/storage/postgres"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Server, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		ledgerStore interfaces.LedgerStore
		adminStore  interfaces.AdminStore
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.RunMigrations(ctx, db); err != nil {
			return err
		}
		logger.Info("database connected")

		if email, password := seedCredentials(); email != "" {
			seeded, err := postgres.Seed(ctx, db, email, password)
			if err != nil {
				return err
			}
			if seeded {
				logger.Info("seeded empty database", zap.String("admin_email", email))
			}
		}

		ledgerStore = postgres.NewPostgresLedgerStore(db)
		adminStore = postgres.NewPostgresAdminStore(db)
	} else {
		ledgers := memory.NewMemoryLedgerStore()
		admins := memory.NewMemoryAdminStore()

		if email, password := seedCredentials(); email != "" {
			if _, err := memory.Seed(ctx, admins, ledgers, email, password); err != nil {
				return err
			}
			logger.Info("seeded in-memory store", zap.String("admin_email", email))
		}
		logger.Warn("DATABASE_URL not set, using in-memory stores")

		ledgerStore = ledgers
		adminStore = admins
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close()
		publisher = p
		logger.Info("publishing vouchers to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	} else {
		publisher = events.NewLogPublisher(logger)
	}

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Deps{
		Ledger:         ledger.NewService(ledgerStore, publisher, logger),
		Admins:         adminStore,
		Issuer:         auth.NewIssuer(cfg.JWTSecret),
		Log:            logger,
		AllowedOrigins: []string{cfg.FrontendURL},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// seedCredentials returns SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD, or two
// empty strings unless both are set.
func seedCredentials() (string, string) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return "", ""
	}
	return email, password
}
