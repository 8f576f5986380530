package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sobachat/sobachat-server/internal/app"
	"github.com/sobachat/sobachat-server/internal/config"
	"github.com/sobachat/sobachat-server/internal/log"
)

func main() {
	// Local .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "sobachat-server",
		Short:         "Room-scoped chat server with live presence",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	if err := root.Execute(); err != nil {
		log.New("error").Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(configPath string) error {
	bootLog := log.New("info")

	cfg, resolvedPath, err := config.Load(bootLog, configPath)
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", resolvedPath).Strs("rooms", cfg.Rooms).Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().Str("addr", cfg.Addr).Msg("starting sobachat server")
	if err := application.Run(ctx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
