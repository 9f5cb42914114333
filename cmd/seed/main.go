package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	dbpostgres "skillswap/internal/database/postgres"
	"skillswap/internal/database/seeder"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory with versioned SQL migrations")
	skipSeed := flag.Bool("skip-seed", false, "apply migrations only")
	flag.Parse()

	logger := log.New(os.Stdout, "[skillswap-seed] ", log.LstdFlags|log.Lmsgprefix)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Dir: *migrationsDir}).Run(ctx, db); err != nil {
		logger.Fatalf("migrations failed: %v", err)
	}
	logger.Printf("migrations applied")

	if *skipSeed {
		return
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	logger.Printf("catalog seeded")
}
