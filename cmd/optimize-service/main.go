package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliaswendt/timetable-optimizer/internal/config"
	"github.com/eliaswendt/timetable-optimizer/internal/service"
)

func main() {
	log.Println("Starting timetable-optimizer service...")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.ServiceAPIKey == "" {
		log.Println("warning: OPTIMIZE_SERVICE_API_KEY not set, running without authentication")
	}

	app := service.New(cfg)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("shutting down gracefully...")
		if err := app.ShutdownWithContext(context.Background()); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	}()

	addr := cfg.ServiceAddr
	if addr == "" {
		addr = ":8090"
	}
	log.Printf("listening on %s", addr)
	log.Printf("health check: http://localhost%s/health", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	fmt.Println("server stopped")
}
