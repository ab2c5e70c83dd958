package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adeilh/docserve/cache/redis"
	"github.com/adeilh/docserve/db/pgxstore"
	"github.com/adeilh/docserve/db/sql/postgres"
	"github.com/adeilh/docserve/internal/config"
	"github.com/adeilh/docserve/internal/document"
	"github.com/adeilh/docserve/internal/logging"
	"github.com/adeilh/docserve/internal/server"
	"github.com/adeilh/docserve/internal/tracking"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document HTTP service",
	Long: `Start the HTTP service. Configuration comes from the environment, with an
optional .env file in the working directory. DATABASE_URL is required.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

const (
	startupTimeout = 15 * time.Second
	flushTimeout   = 2 * time.Second
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	log.Debugf("configuration:%s", cfg)

	reporter, err := tracking.NewSentry(tracking.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
		Release:     "docserve@" + version,
	})
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	defer reporter.Flush(flushTimeout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gw, closeDB, err := openGateway(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.RedisAddr != "" {
		store := redis.NewStore(redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer store.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			log.WithError(err).WithField("addr", store.Addr()).Warn("redis unreachable, lookups will fall through to postgres")
		}
		cancel()

		gw = document.NewCachedGateway(gw, store, 0, log)
		log.WithField("addr", store.Addr()).Info("redis read-through cache enabled")
	}

	srv := server.New(server.Options{
		Addr:     cfg.Addr(),
		Gateway:  gw,
		Logger:   log,
		Reporter: reporter,
	})

	log.WithFields(logrus.Fields{
		"addr":    srv.Address(),
		"driver":  cfg.DBDriver,
		"env":     cfg.AppEnv,
		"version": version,
	}).Info("listening")

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	log.Info("shut down")
	return nil
}

// openGateway connects the configured pool and returns the gateway over it
// together with the function that closes the pool.
func openGateway(ctx context.Context, cfg *config.Config, log *logrus.Logger) (document.Gateway, func(), error) {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverPGX:
		pool, err := pgxstore.Open(startCtx,
			pgxstore.WithDSN(cfg.DatabaseURL),
			pgxstore.WithMaxConns(cfg.DBMaxOpenConns),
			pgxstore.WithMinConns(cfg.DBMinIdleConns),
			pgxstore.WithConnMaxLifetime(cfg.DBConnMaxLifetime),
		)
		if err != nil {
			return nil, nil, err
		}
		gw := pgxstore.NewDocumentGateway(pool,
			pgxstore.WithQueryTimeout(cfg.DBQueryTimeout),
			pgxstore.WithLogger(log),
		)
		return gw, pool.Close, nil
	default:
		db, err := postgres.Open(startCtx,
			postgres.WithDSN(cfg.DatabaseURL),
			postgres.WithMaxOpenConns(cfg.DBMaxOpenConns),
			postgres.WithMinIdleConns(cfg.DBMinIdleConns),
			postgres.WithConnMaxLifetime(cfg.DBConnMaxLifetime),
		)
		if err != nil {
			return nil, nil, err
		}
		gw := postgres.NewDocumentGateway(db,
			postgres.WithQueryTimeout(cfg.DBQueryTimeout),
			postgres.WithLogger(log),
		)
		return gw, func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("close postgres pool")
			}
		}, nil
	}
}
