package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deikotec/socialflow/internal/app"
	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/infrastructure/logger"
)

var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "socialflow",
	Short: "SocialFlow operator CLI",
	Long: `socialflow runs maintenance tasks against the SocialFlow backends using the
same environment configuration as the API server.

Examples:
  socialflow migrate
  socialflow publish cmp_123 cnt_456
  socialflow folders cmp_123 --date 2024-05-03`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(foldersCmd)

	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading configuration")
}

// loadConfig applies the env file flag and parses configuration.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Overload(envFile); err != nil {
				return nil, zerolog.Nop(), fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg), nil
}

// withComponents builds the service graph, runs fn and releases backends.
func withComponents(cmd *cobra.Command, fn func(ctx context.Context, components *app.Components) error) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	components, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := components.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("close backends")
		}
	}()
	return fn(ctx, components)
}
