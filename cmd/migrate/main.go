package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"dbtrain-backend/internal/config"
	"dbtrain-backend/migrations"
)

func main() {
	direction := flag.String("direction", migrations.Up, "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply (0 = all for up, 1 for down)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[ENV] No .env file found, using system environment variables")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("[MIGRATE] Failed to load database config: %v", err)
	}

	db, err := sql.Open("postgres", dbConfig.ConnectionString())
	if err != nil {
		log.Fatalf("[MIGRATE] Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("[MIGRATE] Database unreachable: %v", err)
	}

	applied, err := run(ctx, db, *direction, *steps)
	if err != nil {
		log.Fatalf("[MIGRATE] %v", err)
	}

	if len(applied) == 0 {
		log.Println("[MIGRATE] Nothing to do")
		return
	}
	for _, name := range applied {
		log.Printf("[MIGRATE] Applied %s", name)
	}
}
