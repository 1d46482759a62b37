package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tvnav/internal/config"
	"tvnav/internal/logging"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	logFile    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tvnav",
		Short: "Remote-control focus navigation for TV web pages",
		Long: `tvnav drives DPAD style focus navigation over static HTML pages.

Focusable elements are marked with data-focusable="true" and described with
data-group, data-row/data-col, data-rect, data-action and data-primary.
Pages can be navigated interactively in the terminal, inspected, or driven
headlessly with a scripted key sequence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Log file (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newReplayCmd(a))
	rootCmd.AddCommand(newKeysCmd(a))
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	var svc config.ConfigService
	if a.configPath != "" {
		svc = config.NewConfigServiceAt(a.configPath)
	} else {
		svc = config.NewConfigService()
	}
	cfg, err := svc.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logFile := cfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile = a.logFile
	}
	logger, err := logging.New(logFile, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("config loaded", zap.String("path", svc.Path()))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
