package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/MaheshKadam182/meals-spotter-new/internal/auth"
	"github.com/MaheshKadam182/meals-spotter-new/internal/clock"
	"github.com/MaheshKadam182/meals-spotter-new/internal/db"
	"github.com/MaheshKadam182/meals-spotter-new/internal/menu"
	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/router"
	"github.com/MaheshKadam182/meals-spotter-new/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	driver := strings.ToLower(getenv("STORE_DRIVER", "postgres"))

	required := []string{"JWT_SECRET"}
	switch driver {
	case "postgres":
		required = append(required, "DATABASE_URL")
	case "mongo":
	default:
		log.Fatalf("❌ Unknown STORE_DRIVER: %s (use postgres or mongo)", driver)
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	ctx := context.Background()

	// ───────────────────────── DB ─────────────────────────
	var (
		userRepo auth.UserRepository
		messRepo mess.Repository
	)

	switch driver {
	case "postgres":
		pgDB, err := db.ConnectPostgres(ctx, os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal("❌ ", err)
		}
		defer pgDB.Close()

		userRepo = auth.NewPostgresUserRepository(pgDB)
		messRepo = mess.NewPostgresRepository(pgDB)

	case "mongo":
		client, database, err := db.ConnectMongo(ctx, os.Getenv("MONGO_URL"), os.Getenv("MONGO_DB"))
		if err != nil {
			log.Fatal("❌ ", err)
		}
		defer client.Disconnect(context.Background())

		userRepo = auth.NewMongoUserRepository(database)
		messRepo = mess.NewMongoRepository(database)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var images mess.ImageStore
	if cfg, ok := storage.R2ConfigFromEnv(); ok {
		r2Client, err := storage.NewR2Client(ctx, cfg)
		if err != nil {
			log.Fatal("❌ R2 init failed: ", err)
		}
		images = r2Client
		log.Println("✅ R2 image hosting enabled")
	} else {
		log.Println("R2 not configured, image uploads disabled")
	}

	// ───────────────────────── SERVICES ─────────────────────────
	messService := mess.NewService(messRepo, images, clock.NewSystem(), loadLocation())
	authService := auth.NewService(userRepo, messService)
	menuService := menu.NewService(messRepo)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Deps{
		Auth:        auth.NewHandler(authService),
		Mess:        mess.NewHandler(messService),
		Menu:        menu.NewHandler(menuService),
		CORSOrigins: splitCSV(os.Getenv("CORS_ORIGINS")),
	})

	// ───────────────────────── START ─────────────────────────
	port := getenv("PORT", "8000")
	log.Printf("🚀 API running at http://localhost:%s (store: %s)", port, driver)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// --------------------------------------------------

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadLocation picks the zone used to decide "today's menu".
func loadLocation() *time.Location {
	name := getenv("APP_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown APP_TIMEZONE %q, falling back to UTC", name)
		return time.UTC
	}
	return loc
}
