// Command server runs the ResQBite HTTP API.
//
// Configuration comes from environment variables and an optional YAML file
// (CONFIG_PATH, fallback ./config.yaml). DATABASE_DSN, AUTH_JWT_SECRET, and
// ASSESSOR_BASE_URL are required.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/resqbite/resqbite-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
