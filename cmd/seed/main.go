package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/MaheshKadam182/meals-spotter-new/internal/auth"
	"github.com/MaheshKadam182/meals-spotter-new/internal/clock"
	"github.com/MaheshKadam182/meals-spotter-new/internal/db"
	"github.com/MaheshKadam182/meals-spotter-new/internal/mess"
	"github.com/MaheshKadam182/meals-spotter-new/internal/seed"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Resets the store and loads demo accounts and messes",
	Long: `seed wipes every user and mess, then creates an admin, a mess owner and a
student (password "password123"), the Annapurna Mess with its plans and today's
menu, and optionally a batch of generated messes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seed.yaml)")

	rootCmd.Flags().String("store-driver", "postgres", "Store backend: postgres or mongo")
	rootCmd.Flags().String("database-url", "", "Postgres DSN (postgres driver)")
	rootCmd.Flags().String("mongo-url", db.DefaultMongoURL, "MongoDB URI (mongo driver)")
	rootCmd.Flags().String("mongo-db", db.DefaultMongoDB, "MongoDB database name")
	rootCmd.Flags().String("app-timezone", "Asia/Kolkata", "Time zone deciding today's menu date")
	rootCmd.Flags().Int("fake-messes", 0, "Number of generated messes to add")
	rootCmd.Flags().Int("menu-days", 3, "Days of menu history per generated mess")
	rootCmd.Flags().Int64("rand-seed", 42, "Random seed for generated data")

	_ = viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("seed")
	}

	// DATABASE_URL, STORE_DRIVER, MONGO_URL ... map onto the flag names
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		users  auth.UserRepository
		messes mess.Repository
	)

	switch driver := strings.ToLower(viper.GetString("store-driver")); driver {
	case "postgres":
		pool, err := db.ConnectPostgres(ctx, viper.GetString("database-url"))
		if err != nil {
			return err
		}
		defer pool.Close()
		users = auth.NewPostgresUserRepository(pool)
		messes = mess.NewPostgresRepository(pool)

	case "mongo":
		client, database, err := db.ConnectMongo(ctx, viper.GetString("mongo-url"), viper.GetString("mongo-db"))
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		users = auth.NewMongoUserRepository(database)
		messes = mess.NewMongoRepository(database)

	default:
		return fmt.Errorf("unknown store driver %q (use postgres or mongo)", driver)
	}

	loc, err := time.LoadLocation(viper.GetString("app-timezone"))
	if err != nil {
		return fmt.Errorf("app timezone: %w", err)
	}

	seeder := seed.New(users, messes, clock.NewSystem(), loc)
	res, err := seeder.Run(ctx, seed.Options{
		FakeMesses: viper.GetInt("fake-messes"),
		MenuDays:   viper.GetInt("menu-days"),
		RandSeed:   viper.GetInt64("rand-seed"),
	})
	if err != nil {
		return err
	}

	out, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(out))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
