package db

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestConnectPostgres(t *testing.T) {
	t.Run("missing DATABASE_URL", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), ""); err == nil {
			t.Fatal("expected error for empty dsn")
		}
	})

	t.Run("malformed DATABASE_URL", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), "postgres://%zz"); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		pool, err := ConnectPostgres(ctx, dsn)
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		defer pool.Close()

		// schema init is idempotent
		if err := initSchema(ctx, pool); err != nil {
			t.Fatalf("second initSchema: %v", err)
		}
	})
}

func TestConnectMongo(t *testing.T) {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, database, err := ConnectMongo(ctx, uri, "meals_spotter_test")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	}()

	if database.Name() != "meals_spotter_test" {
		t.Errorf("unexpected database: %s", database.Name())
	}
}
