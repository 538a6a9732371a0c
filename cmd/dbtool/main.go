package main

import (
	"context"
	"database/sql"
	"delivery-route-service/internal/adapters/repositories"
	"delivery-route-service/internal/config"
	"delivery-route-service/internal/platform/db"
	"delivery-route-service/internal/platform/logging"
	"delivery-route-service/internal/seed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	seedFile     string
	generateN    int
	generateSeed int64
	city         string
)

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Prepares the delivery route database",
	Long:  `dbtool creates the PostgreSQL schema and loads demo orders, either from a JSON seed file or generated around the configured hub.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "text"))
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create tables and indexes if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		log.Info("Initializing database schema...")
		if err := repositories.InitSchema(cmd.Context(), conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		log.Info("Schema ready.")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and insert demo orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}

		var ids []int
		if generateN > 0 {
			hub := config.DefaultHub
			if cfg, err := config.Load(); err == nil {
				hub = cfg.Hub
			}
			seeds := seed.Generate(generateN, hub, city, rand.New(rand.NewSource(generateSeed)))

			log.WithField("orders", len(seeds)).Info("Seeding database with generated orders...")
			ids, err = repositories.SeedOrders(ctx, conn, seeds)
		} else {
			if seedFile == "" {
				seedFile = config.Get("SEED_PATH", "data/seeds/orders.json")
			}

			log.WithField("file", seedFile).Info("Seeding database...")
			ids, err = repositories.SeedFromJSON(ctx, conn, seedFile)
		}
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.WithField("order_ids", ids).Info("Seeding complete.")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON seed file (default $SEED_PATH or data/seeds/orders.json)")
	seedCmd.Flags().IntVar(&generateN, "generate", 0, "Generate this many fake orders instead of reading --file")
	seedCmd.Flags().Int64Var(&generateSeed, "random-seed", time.Now().UnixNano(), "Random seed for --generate")
	seedCmd.Flags().StringVar(&city, "city", "Edinburgh", "City name for generated addresses")

	rootCmd.AddCommand(schemaCmd, seedCmd)
}

func connect(ctx context.Context) (*sql.DB, error) {
	url := config.Get("DATABASE_URL", "")
	if url == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return db.Open(ctx, url)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
