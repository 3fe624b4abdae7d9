package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/PizzaHomicide/nplay/internal/catalog"
	"github.com/PizzaHomicide/nplay/internal/config"
	"github.com/PizzaHomicide/nplay/internal/log"
	"github.com/PizzaHomicide/nplay/internal/ui/tui"
	"github.com/PizzaHomicide/nplay/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	// cobra prints to stderr unless told otherwise
	rootCmd.SetOut(os.Stdout)
}

var rootCmd = &cobra.Command{
	Use:   "nplay",
	Short: "Terminal front end for the native playback engine",
	Long: "nplay browses a clip catalog and drives the native playback engine over its IPC socket.\n\n" +
		"Environment variables:\n  " + strings.Join(config.EnvVarHelp(), "\n  "),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tui.Options{})
	},
}

// Execute runs the command line
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runTUI loads config, logging and the catalog, then hands over to the TUI until it exits
func runTUI(opts tui.Options) error {
	cfg, err := config.Load()
	if err != nil {
		// It is unrecoverable if we cannot produce an application config
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.New(log.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer logger.Close()
	log.SetDefaultLogger(logger)

	log.Info("Starting up nplay", "version", version.GetVersion(), "build_time", version.GetBuildTime())

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Error("Failed to load clip catalog", "path", cfg.Catalog.Path, "error", err)
		return err
	}

	if err := tui.Run(cfg, cat, opts); err != nil {
		log.Error("Unhandled error while running TUI", "error", err)
		return err
	}

	log.Info("nplay shutting down.  Goodbye!")
	return nil
}
