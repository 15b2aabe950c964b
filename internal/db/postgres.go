package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return pool, nil
}

// initSchema creates the tables if they do not exist yet
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'student',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// MESSES (plans + menu timeline as JSONB)
	// -------------------------------
	messTableSQL := `
		CREATE TABLE IF NOT EXISTS messes (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'both',
			cuisine JSONB NOT NULL DEFAULT '[]',
			location TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			contact_number VARCHAR(50) NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			plans JSONB NOT NULL DEFAULT '[]',
			menu JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.Exec(ctx, messTableSQL); err != nil {
		return err
	}

	messIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_messes_created_at ON messes (created_at DESC)
	`
	if _, err := db.Exec(ctx, messIndexSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
