package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
)

func main() {
	jobs := flag.Int("jobs", 50, "number of jobs to create")
	users := flag.Int("users", 5, "number of users with profiles to create")
	seed := flag.Int64("seed", 0, "random seed, 0 for a random one")
	flag.Parse()

	if err := run(seeder.Options{Jobs: *jobs, Users: *users, Seed: *seed}); err != nil {
		log.Fatalf("[Seeder] %v", err)
	}
}

func run(opts seeder.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return seedDatabase(ctx, cfg.Database, opts, log.Default())
}

// seedDatabase migrates and seeds; the connection is closed on every path.
func seedDatabase(ctx context.Context, dbCfg config.DatabaseConfig, opts seeder.Options, logger *log.Logger) error {
	db, err := dbpostgres.Connect(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := (migration.Runner{Logger: logger}).Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	r := seeder.Runner{Seeders: seeder.Defaults(opts), Logger: logger}
	sum, err := r.Run(ctx, db)
	if err != nil {
		return err
	}
	logger.Printf("[Seeder] done jobs=%d users=%d password=%q", sum["jobs"], sum["users"], seeder.DemoPassword)
	return nil
}
