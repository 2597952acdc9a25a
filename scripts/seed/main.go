// Seed adds sample todos through the store into the configured backend.
// Run from project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"statelab/internal/config"
	"statelab/internal/storage"
	"statelab/internal/todo"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg := config.Get()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Storage backend unavailable:", err)
		os.Exit(1)
	}
	defer func() { _ = backend.Close() }()

	total := 100
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			total = n
		}
	}

	store := todo.New(ctx, backend)
	start := time.Now()
	for i := 1; i <= total; i++ {
		if _, ok := store.Add(ctx, fmt.Sprintf("Todo %d", i)); !ok {
			fmt.Fprintf(os.Stderr, "Add rejected at %d\n", i)
			os.Exit(1)
		}
	}
	stats := store.Stats()
	fmt.Printf("Seeded %d todos into %q backend in %s (total now %d)\n",
		total, cfg.StorageBackend, time.Since(start).Round(time.Millisecond), stats.Total)
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
		val := strings.Trim(strings.TrimSpace(line[idx+1:]), `"'`)
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
