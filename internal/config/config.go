package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"delivery-route-service/internal/domain"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Edinburgh warehouse, used until the driver sends a first location ping.
var DefaultHub = domain.Coordinate{Latitude: 55.9533, Longitude: -3.1883}

type Config struct {
	Port        string
	DatabaseURL string
	// Store selects the order/payment backend: "postgres" or "memory".
	Store string
	// LocationStore selects the driver-position slot: "postgres", "redis" or "memory".
	LocationStore   string
	RedisAddr       string
	RedisKey        string
	Hub             domain.Coordinate
	AverageSpeedKmh float64
	SeedPath        string
	LogLevel        string
	LogFormat       string
	MQTTBroker      string
	MQTTTopic       string
	SimTick         time.Duration
}

// Load reads the service configuration from the environment.
// Callers are expected to have loaded any .env file beforehand.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		Store:         strings.ToLower(Get("STORE", "postgres")),
		LocationStore: strings.ToLower(Get("LOCATION_STORE", "")),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisKey:      Get("REDIS_LOCATION_KEY", "delivery:driver:location"),
		SeedPath:      Get("SEED_PATH", "data/seeds/orders.json"),
		LogLevel:      Get("LOG_LEVEL", "info"),
		LogFormat:     Get("LOG_FORMAT", "text"),
		MQTTBroker:    Get("MQTT_BROKER", ""),
		MQTTTopic:     Get("MQTT_TOPIC", "delivery/driver/location"),
	}

	if cfg.LocationStore == "" {
		cfg.LocationStore = cfg.Store
	}

	lat, err := getFloat("HUB_LAT", DefaultHub.Latitude)
	if err != nil {
		return Config{}, err
	}
	lon, err := getFloat("HUB_LON", DefaultHub.Longitude)
	if err != nil {
		return Config{}, err
	}
	cfg.Hub = domain.Coordinate{Latitude: lat, Longitude: lon}
	if err := cfg.Hub.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: hub: %w", err)
	}

	cfg.AverageSpeedKmh, err = getFloat("AVERAGE_SPEED_KMH", 40)
	if err != nil {
		return Config{}, err
	}
	if cfg.AverageSpeedKmh <= 0 {
		return Config{}, fmt.Errorf("load config: AVERAGE_SPEED_KMH must be positive, got %v", cfg.AverageSpeedKmh)
	}

	cfg.SimTick, err = time.ParseDuration(Get("SIM_TICK", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: SIM_TICK: %w", err)
	}

	switch cfg.Store {
	case "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("load config: unknown STORE %q", cfg.Store)
	}
	switch cfg.LocationStore {
	case "postgres", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("load config: unknown LOCATION_STORE %q", cfg.LocationStore)
	}

	if cfg.DatabaseURL == "" && (cfg.Store == "postgres" || cfg.LocationStore == "postgres") {
		return Config{}, fmt.Errorf("load config: DATABASE_URL is required for the postgres store")
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: %s: %w", key, err)
	}
	return v, nil
}
