package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Samayeeta/indicure-ey/pkg/server"
	"github.com/Samayeeta/indicure-ey/pkg/services/config"
	"github.com/Samayeeta/indicure-ey/pkg/services/export"
	"github.com/Samayeeta/indicure-ey/pkg/store/blob"
)

var (
	destinationsPath string
	auditDBPath      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the IndiCure web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&destinationsPath, "config", "c", "",
		"Path to the export destinations INI file (overrides DESTINATIONS_PATH)")
	rootCmd.Flags().StringVar(&auditDBPath, "audit-db", "indicure.db",
		"Export audit database used when AUDIT_DB_PATH is not set")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if destinationsPath != "" {
		cfg.DestinationsPath = destinationsPath
	}
	if cfg.AuditDBPath == "" || cmd.Flags().Changed("audit-db") {
		cfg.AuditDBPath = auditDBPath
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	svc, err := export.NewService(ctx, cfg, blob.DefaultRegistry())
	if err != nil {
		return fmt.Errorf("failed to initialize export service: %w", err)
	}
	defer svc.Close()

	if cfg.AuditDBPath != "" {
		logger.Info().Msgf("Export audit log at `%s`.", cfg.AuditDBPath)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownTimeout,
		CORSOrigins:     cfg.CORSOrigins,
		Dependencies: server.Dependencies{
			Analyzer: svc.Analyzer,
			Exports:  svc.Controller,
		},
	})
	logger.Info().Msgf("starting server on %s", cfg.Addr())
	return api.Start()
}
