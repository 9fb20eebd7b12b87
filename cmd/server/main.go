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

	"github.com/Lixing-Zhang/icecream-api/internal/config"
	"github.com/Lixing-Zhang/icecream-api/internal/handlers"
	"github.com/Lixing-Zhang/icecream-api/internal/repository"
	"github.com/Lixing-Zhang/icecream-api/internal/server"
	"github.com/Lixing-Zhang/icecream-api/internal/service"
	"github.com/Lixing-Zhang/icecream-api/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting icecream product api",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.LogLevel,
	)

	store := newProductStore(cfg.Storage, log)
	processor := service.NewProductProcessor(cfg.Processor.Delay(), log)
	productService := service.NewProductService(store, processor)

	productHandler := handlers.NewProductHandler(productService, log)
	healthHandler := handlers.NewHealthHandler(version, cfg.Storage.Driver, log)

	router := server.NewRouter(cfg.CORS, log, productHandler, healthHandler)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func newProductStore(cfg config.StorageConfig, log *slog.Logger) repository.ProductStore {
	if cfg.Driver == config.StorageMemory {
		log.Info("using in-memory product store")
		return repository.NewInMemoryProductRepository()
	}

	log.Info("using json file product store", "path", cfg.FilePath)
	return repository.NewJSONFileProductRepository(cfg.FilePath, log)
}
