package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/neko-jpg/boutique-agent-extension/internal/catalog"
	"github.com/neko-jpg/boutique-agent-extension/internal/config"
	"github.com/neko-jpg/boutique-agent-extension/internal/db"
	"github.com/neko-jpg/boutique-agent-extension/internal/notify"
	"github.com/neko-jpg/boutique-agent-extension/internal/poller"
	"github.com/neko-jpg/boutique-agent-extension/internal/router"
	"github.com/neko-jpg/boutique-agent-extension/internal/watchlist"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	// ───────────────────────── STORE ─────────────────────────
	repo := buildRepository(cfg)

	watchlistService := watchlist.NewService(repo)
	if err := watchlistService.Seed(context.Background(), cfg.WatchlistSeed); err != nil {
		log.Fatalf("❌ Failed to seed watchlist: %v", err)
	}

	// ───────────────────────── UPSTREAMS ─────────────────────────
	catalogClient := catalog.NewHTTPClient(cfg.CatalogReaderURL, cfg.CatalogTimeout)
	notifier := notify.New(cfg.NotifyWebhookURL)
	if cfg.NotifyWebhookURL == "" {
		log.Println("NOTIFY_DISABLED no webhook configured, alerts will be logged only")
	}

	// ───────────────────────── POLLER ─────────────────────────
	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()

	watcher := poller.New(repo, catalogClient, notifier, cfg.PollInterval)
	go watcher.Run(pollCtx)

	// ───────────────────────── HTTP ─────────────────────────
	watchlistHandler := watchlist.NewHandler(watchlistService)
	engine := router.New(watchlistHandler)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	go func() {
		log.Printf("🚀 Promo agent running at %s (poll interval %s)", cfg.HTTPAddr, cfg.PollInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	// ───────────────────────── SHUTDOWN ─────────────────────────
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	log.Println("SHUTDOWN_SIGNAL received, stopping")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("SHUTDOWN_ERROR %v", err)
	}
	log.Println("SHUTDOWN_COMPLETE")
}

// buildRepository selects the watchlist backend from configuration.
func buildRepository(cfg config.Config) watchlist.Repository {
	switch cfg.StoreBackend {
	case "redis":
		repo := watchlist.NewRedisRepository(watchlist.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := repo.Ping(context.Background()); err != nil {
			log.Fatalf("❌ Redis connection failed: %v", err)
		}
		log.Println("✅ Connected to Redis")
		return repo
	case "postgres":
		pool := db.ConnectPostgres(cfg.DatabaseURL)
		return watchlist.NewPostgresRepository(pool)
	default:
		return watchlist.NewInMemoryRepository()
	}
}
