package main

import (
	"minhasfinancas/internal/config" // Custom import path (Config)
	"minhasfinancas/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run the schema migration
}
