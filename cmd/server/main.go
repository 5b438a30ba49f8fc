package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/config"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/notify"
	"github.com/mmynk/stockkeeper/internal/service"
	"github.com/mmynk/stockkeeper/internal/storage/sqlite"
	"github.com/mmynk/stockkeeper/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(config.LoadOptions{ConfigPath: *configPath})
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logCloser, err := logging.SetupWithOptions(logging.Options{
		Level:     logging.ParseLevel(cfg.Logging.Level),
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if cfg.Auth.JWTSecret == "" {
		slog.Error("STOCKKEEPER_JWT_SECRET must be set")
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.Path, "schema_version", sqlite.SchemaVersion)

	// Low-stock alerts run as a post-update hook
	trigger := notify.NewTrigger(store, newSender(cfg.SMS), slog.Default())
	store.Subscribe(trigger.OnItemUpdated)
	slog.Info("Low-stock alerts enabled", "mode", cfg.SMS.Mode, "threshold", notify.LowStockThreshold)

	controller := inventory.NewController(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	mux := http.NewServeMux()
	mux.Handle(service.NewAuthService(controller, jwtManager, slog.Default()).Handler())
	mux.Handle(service.NewInventoryService(controller, jwtManager, slog.Default()).Handler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// newSender picks the SMS delivery channel from config.
func newSender(cfg config.SMSConfig) notify.Sender {
	if cfg.Mode == config.SMSModeWebhook {
		return notify.NewWebhookSender(cfg.WebhookURL, cfg.Timeout)
	}
	return notify.NewLogSender(slog.Default())
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
