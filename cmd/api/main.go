// @title        Client Asset API
// @version      1.0
// @description  CRUD over clients and the assets they own.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clientasset/clientasset-api/internal/api"
	"github.com/clientasset/clientasset-api/internal/core/ports"
	"github.com/clientasset/clientasset-api/internal/core/service"
	"github.com/clientasset/clientasset-api/internal/infrastructure/config"
	dbmongo "github.com/clientasset/clientasset-api/internal/infrastructure/db/mongo"
	dbredis "github.com/clientasset/clientasset-api/internal/infrastructure/db/redis"
	"github.com/clientasset/clientasset-api/internal/infrastructure/db/sqlstore"
	"github.com/clientasset/clientasset-api/internal/infrastructure/http/handlers"
	"github.com/clientasset/clientasset-api/internal/infrastructure/queue"
	"github.com/clientasset/clientasset-api/pkg/logger"
)

const serviceName = "clientasset-api"

func main() {
	if err := run(); err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("service stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: serviceName})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	// --- Relational store (schema created on startup) ---
	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.URL,
		Timeout: cfg.Database.Timeout,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	log.Info().Str("driver", store.Driver()).Msg("database ready")

	readiness := map[string]handlers.Pinger{"database": store}

	// --- Audit trail (optional) ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var audit ports.AuditRecorder
	var dispatcher *queue.AuditDispatcher

	mongoCfg := dbmongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}
	if mongoCfg.Enabled() {
		mongoClient, mongoDB, err := dbmongo.Connect(ctx, mongoCfg)
		if err != nil {
			return err
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()

		auditRepo := dbmongo.NewAuditRepository(mongoDB)
		if err := auditRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("audit indexes not created")
		}

		dispatcher = queue.NewAuditDispatcher(cfg.Audit.Workers, auditRepo, logger.Component("audit"))
		dispatcher.Start(workerCtx)
		audit = dispatcher
		readiness["mongodb"] = handlers.PingerFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		})
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	// --- Idempotency (optional) ---
	deps := api.Deps{
		Logger:    logger.Component("http"),
		Clients:   service.NewClientService(store, audit, logger.Component("clients")),
		Assets:    service.NewAssetService(store, audit, logger.Component("assets")),
		Readiness: readiness,
	}

	redisCfg := dbredis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err := dbredis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.Idempotency = dbredis.NewIdempotencyStore(rdb, cfg.Idempotency.TTL)
		readiness["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Dur("ttl", cfg.Idempotency.TTL).Msg("idempotency replays enabled")
	}

	e := api.NewRouter(deps)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	return shutdown(e, cfg, dispatcher, cancelWorkers, log)
}

// shutdown stops accepting requests, then lets the audit workers drain.
func shutdown(e *echo.Echo, cfg *config.Config, dispatcher *queue.AuditDispatcher, cancelWorkers context.CancelFunc, log zerolog.Logger) error {
	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err := e.Shutdown(ctx)

	cancelWorkers()
	if dispatcher != nil {
		dispatcher.Wait()
	}

	if err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}
