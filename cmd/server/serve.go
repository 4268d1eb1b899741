package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/retrodesk/internal/infrastructure/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	Long:  "Start the desktop server. Flags override the matching environment variables.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "Server port (overrides PORT)")
	cmd.Flags().String("host", "", "Listen address (overrides HOST)")
	cmd.Flags().String("icons", "", "Icon directory (overrides ICONS_DIR)")
	cmd.Flags().StringSlice("startup", nil, "Programs opened on every new desktop (overrides STARTUP_PROGRAMS)")
	cmd.Flags().Bool("dev", false, "Development mode (debug level, console logs)")
	cmd.Flags().String("log-output", "", "Log destination: stdout, stderr or a file (overrides LOG_OUTPUT)")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Desktop.CatalogDir = v
	}
	if cmd.Flags().Lookup("port") == nil {
		return cfg, nil
	}

	if v, _ := cmd.Flags().GetString("port"); v != "" {
		cfg.Server.Port = v
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Server.Host = v
	}
	if v, _ := cmd.Flags().GetString("icons"); v != "" {
		cfg.Desktop.IconsDir = v
	}
	if cmd.Flags().Changed("startup") {
		cfg.Desktop.StartupPrograms, _ = cmd.Flags().GetStringSlice("startup")
	}
	if v, _ := cmd.Flags().GetString("log-output"); v != "" {
		cfg.Logging.Output = v
	}
	if dev, _ := cmd.Flags().GetBool("dev"); dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.FromConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))
		if err := srv.Close(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
			return err
		}
		return nil
	case err := <-errChan:
		if err != nil {
			logger.Error("Server error", zap.Error(err))
			_ = srv.Close()
			return err
		}
		return errors.New("server stopped unexpectedly")
	}
}
