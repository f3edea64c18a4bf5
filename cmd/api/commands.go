package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"smsguide/internal/config"
	"smsguide/internal/db"
	"smsguide/internal/db/migrations"
	"smsguide/internal/interfaces"
	"smsguide/internal/logging"
	"smsguide/internal/repository"
	"smsguide/internal/routes"
	"smsguide/internal/services"
)

const shutdownTimeout = 5 * time.Second

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (trace, debug, info, warn, error)",
			Aliases: []string{"l"},
			EnvVars: []string{"LOG_LEVEL"},
			Value:   "info",
		},
		&cli.BoolFlag{
			Name:  "log-caller",
			Usage: "log the caller (file and line number)",
		},
	}
}

func before(c *cli.Context) error {
	logging.Setup(c.String("log-level"), c.Bool("log-caller"))
	return nil
}

// openDatabase creates the database when missing, connects and applies
// pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config) (*db.Database, error) {
	if err := db.CreateDatabaseIfNotExists(ctx, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("ensure database exists: %w", err)
	}
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := migrations.RunMigrations(database.DB); err != nil {
		database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "HTTP listen port, overrides PORT",
				EnvVars: []string{"SMSGUIDE_PORT"},
			},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logrus.WithField("command", "serve")
	log.WithField("version", version).Info("starting")

	cfg := config.Load()
	if port := c.String("port"); port != "" {
		cfg.Port = port
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	s3Config, err := config.NewS3Config(ctx)
	if err != nil {
		log.WithError(err).Warn("s3 unavailable, image uploads disabled")
		s3Config = &config.S3Config{}
	}

	opts := []routes.Option{routes.WithWarmSlots(ctx)}
	store, closeStore, err := ipLogStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if store != nil {
		opts = append(opts, routes.WithIPLogStore(store))
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(database.DB, cfg, s3Config, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// ipLogStore returns the Redis rate-limit store when RATE_LIMIT_STORE=redis.
// A nil store keeps the Postgres ip_logs table.
func ipLogStore(ctx context.Context, cfg *config.Config) (interfaces.IPLogRepository, func(), error) {
	if cfg.RateLimitStore != "redis" {
		return nil, func() {}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	logrus.WithField("addr", opt.Addr).Info("rate limiter using redis")

	return repository.NewRedisIPLogRepository(client, cfg.RateLimitWindow), func() { client.Close() }, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending migrations, or roll back the latest one",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "down",
				Usage: "roll back the most recently applied migration",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			if err := db.CreateDatabaseIfNotExists(c.Context, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("ensure database exists: %w", err)
			}
			database, err := db.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if !c.Bool("down") {
				return migrations.RunMigrations(database.DB)
			}
			reverted, err := migrations.RollbackLast(database.DB)
			if err != nil {
				return err
			}
			if reverted == 0 {
				logrus.Info("no migrations to roll back")
				return nil
			}
			logrus.WithField("version", reverted).Info("migration rolled back")
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "upsert countries, projects and failure reasons from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the seed YAML file",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			data, err := services.LoadSeedFile(c.String("file"))
			if err != nil {
				return err
			}

			cfg := config.Load()
			database, err := openDatabase(c.Context, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			seeder := services.NewSeeder(
				repository.NewCountryRepository(database.DB),
				repository.NewProjectRepository(database.DB),
				repository.NewFailureReasonRepository(database.DB),
			)
			report, err := seeder.Apply(c.Context, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "seeded %d countries, %d projects, %d failure reasons\n",
				report.Countries, report.Projects, report.FailureReasons)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the build version",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(os.Stdout, version)
			return nil
		},
	}
}
