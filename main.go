package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tablens/adapters/api"
	"tablens/internal/config"
	"tablens/internal/container"
)

func main() {
	configPath := flag.String("config", os.Getenv("TABLENS_CONFIG"), "path to a config file (yaml, json or toml)")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create container: %v", err)
	}
	defer c.Close()

	if appConfig.Database.URL != "" {
		if err := c.InitWithDatabase(ctx); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	} else {
		c.Logger.Warn("DATABASE_URL not set, reports are kept in memory")
	}

	server := api.NewServer(c.Analysis, c.Reports, c.Logger)
	if err := server.Run(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	c.Logger.Info("server stopped")
}
