package main

import (
	"context"
	"fmt"
	"strings"

	"pawn-backend/internal/cache"
	"pawn-backend/internal/config"
	"pawn-backend/internal/db"
	"pawn-backend/internal/logger"
	"pawn-backend/internal/models"
)

// Tables cleared by the reset, children first
var resetTables = []string{
	"stock_summaries",
	"day_books",
	"vouchers",
	"customers",
	"employees",
	"jewels",
	"backup_logs",
	"system_settings",
}

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL DATA in:")
	fmt.Printf("  %s\n", strings.Join(resetTables, ", "))
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	cfg := config.Load()
	log := logger.Component("reset_db")
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", strings.Join(resetTables, ", "))); err != nil {
		log.Fatalf("Failed to truncate tables: %v", err)
	}
	fmt.Println("  Cleared tables and reset ID sequences")

	_, err = tx.Exec(ctx, `
		INSERT INTO system_settings (setting_key, setting_value, description, updated_at)
		VALUES ($1, '', $2, NOW())`,
		models.DateOverrideKey, "Simulated business date (YYYY-MM-DD), empty for the real date",
	)
	if err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	fmt.Println("  Seeded default settings")

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	// Cached dashboards and the date override would otherwise outlive the data
	if err := cache.Init(cfg); err == nil {
		cache.InvalidateSettingCaches(ctx)
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
}
