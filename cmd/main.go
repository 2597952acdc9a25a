package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"statelab/internal/config"
	"statelab/internal/controller"
	"statelab/internal/queue"
	"statelab/internal/routes"
	"statelab/internal/state"
	"statelab/internal/storage"
	"statelab/internal/todo"
	"statelab/internal/worker"
	"statelab/pkg/logger"
)

func main() {
	loadEnvFile(".env")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := config.Get()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error(ctx, "Storage backend unavailable", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}
	defer func() { _ = backend.Close() }()
	logger.Info(ctx, "Storage backend ready", "backend", cfg.StorageBackend)

	var opts []todo.Option
	var publisher *queue.Kafka
	if len(cfg.KafkaBrokers) > 0 {
		queue.EnsureTopic(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = queue.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = publisher.Close() }()
		opts = append(opts, todo.WithPublisher(publisher))
		logger.Info(ctx, "Change-event stream enabled", "topic", cfg.KafkaTopic)
	}

	store := todo.New(ctx, backend, opts...)

	uptime := state.NewCounter(time.Duration(cfg.TickMillis)*time.Millisecond, 0)
	uptime.Start()
	defer uptime.Close()

	// Optional in-process mirror: replays the event stream onto a second,
	// memory-backed store to exercise the consumer path.
	if len(cfg.KafkaBrokers) > 0 {
		mirror := todo.New(ctx, storage.NewMemory())
		go worker.Run(ctx, mirror, cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(controller.New(store, uptime)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
