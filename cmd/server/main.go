package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tallyup/tallyup/internal/api/handlers"
	"github.com/tallyup/tallyup/internal/auth"
	"github.com/tallyup/tallyup/internal/cache"
	"github.com/tallyup/tallyup/internal/config"
	"github.com/tallyup/tallyup/internal/middleware"
	"github.com/tallyup/tallyup/internal/scanning"
	"github.com/tallyup/tallyup/internal/service"
	"github.com/tallyup/tallyup/internal/storage"
	"github.com/tallyup/tallyup/internal/storage/bolt"
	"github.com/tallyup/tallyup/internal/storage/sqlite"
	"github.com/tallyup/tallyup/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "./config.yaml"))
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	var scanner scanning.Scanner
	if cfg.Gemini.APIKey != "" {
		scanner, err = scanning.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			slog.Error("Failed to initialize scanner", "error", err)
			os.Exit(1)
		}
		defer scanner.Close()
		slog.Info("Receipt scanner initialized", "model", cfg.Gemini.Model)
	} else {
		slog.Warn("No Gemini API key configured, receipt scanning disabled")
	}

	var c cache.Cache
	if cfg.Redis.Host != "" {
		c, err = cache.NewRedisCache(
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		slog.Info("Redis cache connected", "host", cfg.Redis.Host)
	} else {
		c = cache.NewMemoryCache()
		slog.Info("Using in-memory cache")
	}
	defer c.Close()

	shareTTL := time.Duration(cfg.Share.TTLHours) * time.Hour
	var shareManager *auth.ShareTokenManager
	if cfg.Share.Secret != "" {
		shareManager = auth.NewShareTokenManager(cfg.Share.Secret, shareTTL)
	} else {
		slog.Warn("No share secret configured, report sharing disabled")
	}

	receipts := handlers.NewReceiptsHandler(service.NewReceiptService(store, scanner, c))
	reports := handlers.NewReportsHandler(service.NewReportService(store, shareManager, c), shareTTL)

	mux := handlers.NewMux(receipts, reports)
	handler := middleware.Logging("/healthz")(middleware.Metrics(middleware.Recovery(mux)))

	// h2c allows HTTP/2 without TLS so a fronting proxy can terminate it.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case "bolt":
		return bolt.New(cfg.Path)
	case "", "sqlite":
		return sqlite.New(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
