package main

import (
	"context"
	"database/sql"
	"delivery-route-service/internal/adapters/cache"
	"delivery-route-service/internal/adapters/memory"
	"delivery-route-service/internal/adapters/repositories"
	"delivery-route-service/internal/adapters/telemetry"
	"delivery-route-service/internal/api"
	"delivery-route-service/internal/config"
	"delivery-route-service/internal/platform/db"
	"delivery-route-service/internal/platform/logging"
	"delivery-route-service/internal/ports"
	"delivery-route-service/internal/seed"
	"delivery-route-service/internal/services"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type orderStore interface {
	ports.OrderRepository
	ports.PaymentRepository
}

// main is the application composition root.
// It wires concrete adapters behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var conn *sql.DB
	if cfg.Store == "postgres" || cfg.LocationStore == "postgres" {
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			log.Fatal(err)
		}
	}

	orders, err := openOrderStore(cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	locations, closeLocations, err := openLocationStore(ctx, cfg, conn)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLocations()

	locationSvc := &services.LocationService{Store: locations, DefaultHub: cfg.Hub}

	svc := api.Services{
		Routes: &services.RouteService{
			Assembler:       &services.DatasetAssembler{Orders: orders, Locations: locations, DefaultHub: cfg.Hub},
			AverageSpeedKmh: cfg.AverageSpeedKmh,
		},
		Locations:  locationSvc,
		Status:     &services.StatusService{Orders: orders, Payments: orders},
		Settlement: &services.SettlementService{Orders: orders},
	}

	if cfg.MQTTBroker != "" {
		sub := &telemetry.MQTTLocationSubscriber{Broker: cfg.MQTTBroker, Topic: cfg.MQTTTopic, Pinger: locationSvc}
		if err := sub.Start(ctx); err != nil {
			log.WithError(err).Warn("mqtt location feed disabled")
		} else {
			defer sub.Stop()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithFields(log.Fields{"addr": srv.Addr, "store": cfg.Store, "location_store": cfg.LocationStore}).Info("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("server stopped")
}

func openOrderStore(cfg config.Config, conn *sql.DB) (orderStore, error) {
	if cfg.Store == "postgres" {
		return repositories.NewPostgresOrderRepository(conn), nil
	}

	// Memory mode serves the seed file so the demo has something to route.
	store := memory.NewOrderStore()
	seeds, err := seed.ReadFile(cfg.SeedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", cfg.SeedPath).Warn("seed file not found, starting with no orders")
			return store, nil
		}
		return nil, fmt.Errorf("open memory store: %w", err)
	}
	for _, o := range seed.ToDomain(seeds) {
		store.Put(o)
	}
	log.WithField("orders", len(seeds)).Info("memory store seeded")
	return store, nil
}

func openLocationStore(ctx context.Context, cfg config.Config, conn *sql.DB) (ports.LocationStore, func(), error) {
	switch cfg.LocationStore {
	case "postgres":
		return repositories.NewPostgresLocationStore(conn), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open location store: redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisLocationStore(client, cfg.RedisKey), func() { _ = client.Close() }, nil
	default:
		return memory.NewLocationStore(), func() {}, nil
	}
}
