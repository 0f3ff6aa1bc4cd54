package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/rohittcodes/data-alchemist/internal/config"
	"github.com/rohittcodes/data-alchemist/internal/export"
	"github.com/rohittcodes/data-alchemist/internal/ingestion"
	"github.com/rohittcodes/data-alchemist/internal/middleware"
	"github.com/rohittcodes/data-alchemist/internal/rules"
	"github.com/rohittcodes/data-alchemist/internal/session"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := session.NewStore(cfg.SessionDir)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	ingestService := ingestion.NewService(store)
	exportService := export.NewService()
	// Natural-language rule creation needs an external translator; the rules
	// endpoints work without one, minus the translate route.
	rulesService := rules.NewService(store, nil)

	mux := http.NewServeMux()
	mux.Handle("/api/upload", ingestion.NewHTTPHandler(ingestService, cfg.MaxUploadSize))
	mux.Handle("/api/export", export.NewHTTPHandler(exportService, store))
	session.NewHTTPHandler(store).Routes(mux)
	rules.NewHTTPHandler(rulesService).Routes(mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      corsHandler.Handler(middleware.Logging(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Expired sessions are swept in the background until shutdown.
	pruneCtx, pruneCancel := context.WithCancel(context.Background())
	defer pruneCancel()
	go pruneLoop(pruneCtx, store, cfg.SessionTTL)

	go func() {
		log.Printf("Starting server on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func pruneLoop(ctx context.Context, store *session.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := store.Prune(ttl); err != nil {
				log.Printf("[SESSION] prune failed: %v", err)
			}
		}
	}
}
