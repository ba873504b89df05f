package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime knob for the promo agent.
type Config struct {
	HTTPAddr string

	// Catalog facade the agent polls for current prices.
	CatalogReaderURL string
	CatalogTimeout   time.Duration

	// Webhook for price-drop alerts. Empty disables delivery.
	NotifyWebhookURL string

	PollInterval  time.Duration
	WatchlistSeed []string

	// Watchlist backend: "memory" (default), "redis" or "postgres".
	StoreBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}

// Load reads configuration from the environment. The catalog facade URL is
// the only hard requirement; without it the process must not start.
func Load() (Config, error) {
	catalogURL := os.Getenv("CATALOG_READER_URL")
	if catalogURL == "" {
		return Config{}, errors.New("CATALOG_READER_URL environment variable not set")
	}

	backend := strings.ToLower(getenv("STORE_BACKEND", "memory"))
	switch backend {
	case "memory", "redis", "postgres":
	default:
		return Config{}, errors.New("STORE_BACKEND must be one of memory, redis, postgres")
	}

	cfg := Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8000"),
		CatalogReaderURL: strings.TrimRight(catalogURL, "/"),
		CatalogTimeout:   durenvms("CATALOG_TIMEOUT_MS", 5000),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		PollInterval:     durenvms("POLL_INTERVAL_MS", 60000),
		WatchlistSeed:    splitSeed(os.Getenv("WATCHLIST_SEED")),
		StoreBackend:     backend,
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          atoienv("REDIS_DB", 0),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
	}

	if cfg.StoreBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL must be set when STORE_BACKEND=postgres")
	}

	return cfg, nil
}

// splitSeed parses a comma-separated product id list, dropping empty parts.
func splitSeed(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
