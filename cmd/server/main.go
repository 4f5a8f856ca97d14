package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/receiptsplitter/internal/config"
	"github.com/mmynk/receiptsplitter/internal/metrics"
	"github.com/mmynk/receiptsplitter/internal/middleware"
	"github.com/mmynk/receiptsplitter/internal/service"
	"github.com/mmynk/receiptsplitter/internal/storage"
	"github.com/mmynk/receiptsplitter/internal/storage/memory"
	"github.com/mmynk/receiptsplitter/internal/storage/sqlite"
	"github.com/mmynk/receiptsplitter/pkg/api/apiconnect"
	"github.com/mmynk/receiptsplitter/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "backend", cfg.StorageBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(logger, store, metrics.New()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.Config) (storage.Store, error) {
	if cfg.StorageBackend == config.BackendSQLite {
		slog.Info("Opening SQLite database", "database", cfg.DBPath)
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return memory.New(), nil
}

// newHandler mounts the Connect service, metrics and health endpoints.
func newHandler(logger *slog.Logger, store storage.Store, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Register Connect services
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		m.Interceptor(),
	)
	path, handler := apiconnect.NewReceiptServiceHandler(service.NewReceiptService(store), interceptors)
	mux.Handle(path, handler)

	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	logged := middleware.Logging(logger, middleware.CORS(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(logged, &http2.Server{})
}
