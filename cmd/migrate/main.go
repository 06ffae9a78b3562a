package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
)

func main() {
	var (
		status = flag.Bool("status", false, "Show migration status")
		dryRun = flag.Bool("dry-run", false, "Show pending migrations without applying them")
	)
	flag.Parse()

	cfg, err := config.Load("catalog-migrate")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, cleanup, err := gormrepo.Open(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer cleanup()

	ctx := context.Background()
	migrator := gormrepo.NewMigrator(db, logger)

	switch {
	case *status:
		showMigrationStatus(ctx, migrator)
	case *dryRun:
		showPendingMigrations(ctx, migrator)
	default:
		fmt.Println("Running database migrations...")
		if err := migrator.Migrate(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations completed successfully!")
	}
}

func showMigrationStatus(ctx context.Context, migrator *gormrepo.Migrator) {
	applied, err := migrator.Applied(ctx)
	if err != nil {
		log.Fatalf("Failed to get migrations: %v", err)
	}

	if len(applied) == 0 {
		fmt.Println("No migrations have been applied yet.")
	} else {
		fmt.Println("Applied migrations:")
		fmt.Println("==================")
		for _, m := range applied {
			fmt.Printf("%s | %s | Applied at: %s\n", m.Version, m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
		}
	}

	pending, err := migrator.Pending(ctx)
	if err != nil {
		log.Fatalf("Failed to get pending migrations: %v", err)
	}
	if len(pending) == 0 {
		fmt.Println("\nAll migrations are up to date!")
		return
	}
	fmt.Println("\nPending migrations:")
	fmt.Println("==================")
	for _, m := range pending {
		fmt.Printf("%s | %s\n", m.Version, m.Name)
	}
}

func showPendingMigrations(ctx context.Context, migrator *gormrepo.Migrator) {
	pending, err := migrator.Pending(ctx)
	if err != nil {
		log.Fatalf("Failed to get pending migrations: %v", err)
	}

	if len(pending) == 0 {
		fmt.Println("No pending migrations.")
		return
	}

	fmt.Println("Pending migrations that would be applied:")
	fmt.Println("========================================")
	for _, m := range pending {
		fmt.Printf("%s | %s\n", m.Version, m.Name)
	}
}
