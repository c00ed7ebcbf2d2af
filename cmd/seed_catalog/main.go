package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cookmate/cookmate/backend/config"
	"github.com/cookmate/cookmate/backend/internal/database"
	"github.com/cookmate/cookmate/backend/internal/logging"
	"github.com/cookmate/cookmate/backend/internal/seed"
	"github.com/cookmate/cookmate/backend/internal/service"
)

var seedFile string

var rootCmd = &cobra.Command{
	Use:           "seed_catalog",
	Short:         "Prepare and seed the CookMate catalog store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// migrateCmd creates the catalog tables for the configured SQL driver
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the catalog schema",
	Long: `Open the catalog store selected by STORE_DRIVER and apply migrations.

Only the sqlite and postgres drivers have a schema; for memory and mongo this
only checks that the store can be reached.`,
	RunE: runMigrate,
}

// seedCmd writes reference ingredients and recipes from a YAML file
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, ingredients and recipes from a YAML catalog file",
	Long: `Load demo accounts, the reference ingredient list and recipes from a YAML
catalog file.

Accounts whose email is taken, ingredients that already exist and recipes the
seed author already has are skipped, so the command can be run repeatedly.`,
	RunE: runSeed,
}

// validateCmd checks a catalog file without touching any store
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a YAML catalog file against the submission rules",
	RunE:  runValidate,
}

func init() {
	for _, cmd := range []*cobra.Command{seedCmd, validateCmd} {
		cmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/catalog.yaml", "catalog file to load")
	}
	rootCmd.AddCommand(migrateCmd, seedCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.Environment.Local())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	_, closeStore, err := database.OpenCatalogStore(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	fmt.Fprintf(cmd.OutOrStdout(), "catalog store %q is ready\n", cfg.StoreDriver)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	if err := seed.Validate(f); err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	catalogStore, closeStore, err := database.OpenCatalogStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	recipes := service.NewRecipeService(catalogStore, nil, log)
	identity := service.NewAuthService(catalogStore, cfg.JWTSecret, cfg.TokenTTL, nil, log)
	res, err := seed.NewSeeder(catalogStore, identity, recipes, log).Apply(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d skipped\ningredients: %d created, %d skipped\nrecipes: %d created, %d skipped\n",
		res.UsersCreated, res.UsersSkipped, res.IngredientsCreated, res.IngredientsSkipped, res.RecipesCreated, res.RecipesSkipped)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := seed.Load(seedFile)
	if err != nil {
		return err
	}
	if err := seed.Validate(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ingredients, %d recipes OK\n", seedFile, len(f.Ingredients), len(f.Recipes))
	return nil
}
