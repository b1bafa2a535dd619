// Package main is the entry point for the GraphQL API server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vilkasts/graphql-basics/graph"
	"github.com/vilkasts/graphql-basics/internal/config"
	"github.com/vilkasts/graphql-basics/internal/storage"
	"github.com/vilkasts/graphql-basics/internal/storage/memory"
	"github.com/vilkasts/graphql-basics/internal/storage/postgres"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg := config.Load()

	// Initialize the store
	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer cleanup()

	// Build the GraphQL gateway
	gateway, err := graph.NewGateway(cfg.QueryDepthLimit)
	if err != nil {
		log.Fatalf("failed to build schema: %v", err)
	}

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.Handle("/graphql", graph.NewHandler(gateway, store))
	mux.HandleFunc("/health", healthHandler)

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			log.Printf("error shutting down server: %v", err)
		}
	}()

	log.Printf("GraphQL API listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// newStore picks the store driver from configuration. The postgres driver
// also applies migrations on startup.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	default:
		client, err := postgres.NewClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := client.Migrate(cfg.MigrationsPath); err != nil {
			client.Close()
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"0.1.0"}`))
}
