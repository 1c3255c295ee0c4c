package main

import (
	"log"
	"os"

	"firecheck-be/internal/model"
	"firecheck-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN CREATE TYPE user_role AS ENUM ('firefighter', 'officer', 'quartermaster'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'session_status') THEN CREATE TYPE session_status AS ENUM ('active', 'completed', 'abandoned'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'issue_status') THEN CREATE TYPE issue_status AS ENUM ('open', 'acknowledged', 'resolved'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.Unit{},
		&model.SubLocation{},
		&model.EquipmentItem{},
		&model.ConsumableStock{},
		&model.InspectionSession{},
		&model.OutcomeRecord{},
		&model.IssueTicket{},
		&model.Notification{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Indexes the lifecycle queries lean on
	log.Println("Step 3: Creating Indexes...")

	postMigrationSQL := []string{
		// One active session per unit and kind. Enforced here because
		// AutoMigrate cannot express a partial unique index.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_session_per_unit_kind
		 ON inspection_sessions (unit_id, kind) WHERE status = 'active';`,

		// One outcome per target per session.
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_outcome_per_target
		 ON outcome_records (session_id, target_key);`,

		// Sweeper pre-selection on idle sessions.
		`CREATE INDEX IF NOT EXISTS idx_sessions_status_activity
		 ON inspection_sessions (status, last_activity_at);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
