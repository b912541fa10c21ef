package main

import (
	"fmt"
	"os"

	"order-tracker/config"
	"order-tracker/database"
	"order-tracker/middlewares"
	"order-tracker/models"
	"order-tracker/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootCmd serves the web app when run without a subcommand
var rootCmd = &cobra.Command{
	Use:           "order-tracker",
	Short:         "Order and shipment tracking web app",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

// migrateCmd creates the tables and seeds the two accounts
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and seed the fixed accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap()
		if err != nil {
			return err
		}
		zap.L().Info("migration complete", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, exportCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func accounts(cfg config.Config) []database.Account {
	return []database.Account{
		{Username: "admin", Password: cfg.AdminPassword, Role: models.RoleAdmin},
		{Username: "user", Password: cfg.UserPassword, Role: models.RoleUser},
	}
}

// bootstrap loads config, installs the logger, connects, migrates and seeds.
func bootstrap() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return config.Config{}, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	if err := database.Connect(cfg.Database); err != nil {
		return config.Config{}, err
	}
	if err := database.Migrate(database.DB); err != nil {
		return config.Config{}, err
	}
	if err := database.SeedUsers(database.DB, accounts(cfg)); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	if err := middlewares.ConfigureAuth(cfg.JWTSecret, cfg.TokenTTL); err != nil {
		return err
	}
	middlewares.ConfigureSessions(cfg.SessionTTL, cfg.DefaultLang, cfg.IsProduction())

	app := routes.NewApp(cfg)

	zap.L().Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	return app.Listen(":" + cfg.Port)
}
