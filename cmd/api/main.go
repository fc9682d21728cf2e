// Command api serves the product catalog web app.
//
// @title        Product Catalog API
// @version      1.0
// @description  Read-only catalog exports and health probes of the product catalog web app.
// @BasePath     /
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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kki/product-catalog/internal/api"
	"github.com/kki/product-catalog/internal/api/handler"
	"github.com/kki/product-catalog/internal/core/ports"
	"github.com/kki/product-catalog/internal/core/service"
	mongostore "github.com/kki/product-catalog/internal/infrastructure/db/mongo"
	pgstore "github.com/kki/product-catalog/internal/infrastructure/db/postgres"
	redisstore "github.com/kki/product-catalog/internal/infrastructure/db/redis"
	"github.com/kki/product-catalog/internal/pkg/config"
	"github.com/kki/product-catalog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage bundles the repositories of the selected driver.
type storage struct {
	products ports.ProductRepository
	users    ports.AuthRepository
	ping     handler.PingFunc
	close    func(context.Context) error
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "product-catalog",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	productService := service.NewProductService(store.products, logger.Named(log, "products"))
	authService := service.NewAuthService(
		store.users,
		redisstore.NewRevokedSessions(rdb),
		cfg.Session.Secret,
		cfg.Session.TTL,
		logger.Named(log, "auth"),
	)

	router := api.NewRouter(api.Dependencies{
		Products: productService,
		Auth:     authService,
		Checks: map[string]handler.PingFunc{
			cfg.StorageDriver: store.ping,
			"redis":           redisstore.Pinger(rdb),
		},
		Site: handler.SiteInfo{
			AppName:       cfg.Site.AppName,
			DeveloperName: cfg.Site.DeveloperName,
			ClassName:     cfg.Site.ClassName,
		},
		Cookies: handler.CookieOptions{Secure: cfg.Session.CookieSecure},
		Logger:  logger.Named(log, "http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.StorageDriver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storage{
			products: pgstore.NewProductRepository(db),
			users:    pgstore.NewUserRepository(db),
			ping:     pgstore.Pinger(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storage{
			products: mongostore.NewProductRepository(db),
			users:    mongostore.NewUserRepository(db),
			ping:     mongostore.Pinger(db),
			close:    client.Disconnect,
		}, nil
	}
}
