// Command api runs the publications backend.
//
//	api serve     # HTTP server (default)
//	api migrate   # apply the schema and exit
//	api version
//
// Configuration comes from the environment; a .env file in the working
// directory is loaded first when present.
//
// @title       Publications API
// @version     1.0
// @description Schedules reusable posts onto social-media accounts and reports what is published or still scheduled.
// @BasePath    /
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-publications-backend/internal/config"
	"github.com/tbourn/go-publications-backend/internal/repo"
	"github.com/tbourn/go-publications-backend/internal/sysutil"
)

const appName = "go-publications-backend"

// version is set at build time: -ldflags "-X main.version=v1.2.3".
var version string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	serve := serveCmd()
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Publications scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnv(envFile, cmd.Flags().Changed("env-file"))
		},
		RunE: serve.RunE,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(serve, migrateCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, sysutil.Version(version))
		},
	})
	return cmd
}

// loadEnv loads path into the process environment without overriding
// variables that are already set. A missing default file is fine; a missing
// file the user asked for is not.
func loadEnv(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// bootstrap loads config, configures logging and opens the store with the
// schema migrated.
func bootstrap() (config.Config, *repoHandle, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	sysutil.SetupLogger(cfg.OTEL.ServiceName, cfg.LogLevel, cfg.LogPretty, nil)

	db, err := repo.Open(repo.Options{
		Driver:  cfg.DBDriver,
		Path:    cfg.DBPath,
		DSN:     cfg.DatabaseURL,
		Tracing: cfg.OTEL.Enabled,
		Debug:   cfg.DBDebug,
	})
	if err != nil {
		return cfg, nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	h := &repoHandle{DB: db}
	if err := repo.AutoMigrate(db); err != nil {
		h.Close()
		return cfg, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("store ready")
	return cfg, h, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, h, err := bootstrap()
			if err != nil {
				return err
			}
			defer h.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}
