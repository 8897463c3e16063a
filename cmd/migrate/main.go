package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tablens/internal/config"
	"tablens/internal/migration"
)

func main() {
	configPath := flag.String("config", os.Getenv("TABLENS_CONFIG"), "path to a config file")
	dryRun := flag.Bool("dry-run", false, "print the schema statements without applying them")
	flag.Parse()

	runner := migration.NewRunner()
	if *dryRun {
		for _, stmt := range runner.Statements() {
			os.Stdout.WriteString(strings.TrimSpace(stmt) + ";\n\n")
		}
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	databaseURL := cfg.Database.URL
	if flag.NArg() > 0 {
		databaseURL = flag.Arg(0)
	}
	if databaseURL == "" {
		log.Fatal("Usage: migrate [database_url] (or set DATABASE_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema version %s applied", runner.Version())
}
