package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/menuscan/backend/config"
	"github.com/menuscan/backend/internal/infrastructure/gemini"
	"github.com/menuscan/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cliRuntime is built once per invocation, before any subcommand runs
type cliRuntime struct {
	cfg    *config.Config
	logger zerolog.Logger
	client *gemini.Client
}

func (rt *cliRuntime) init(stderr io.Writer, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// the CLI stays quiet unless asked; results go to stdout, logs to stderr
	level := "warn"
	if verbose {
		level = "debug"
	}

	rt.cfg = cfg
	rt.logger = logging.New(logging.Config{
		Level:  level,
		Format: "console",
		Output: stderr,
	})
	rt.client = gemini.NewClient(gemini.ClientConfig{
		APIKey:            cfg.Gemini.APIKey,
		BaseURL:           cfg.Gemini.BaseURL,
		Model:             cfg.Gemini.Model,
		Timeout:           cfg.Gemini.Timeout,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	}, rt.logger)
	rt.client.SetDebug(verbose)

	if !rt.client.Configured() {
		rt.logger.Warn().Msg("Gemini API key not configured (set MENUSCAN_GEMINI_API_KEY)")
	}
	return nil
}

func newRootCmd() *cobra.Command {
	rt := &cliRuntime{}
	var verbose bool
	var noColor bool

	root := &cobra.Command{
		Use:   "menuscan",
		Short: "Turn photos of restaurant menus into structured product data",
		Long: `menuscan sends a menu photo to a multimodal model, recovers the products
from whatever the model answers, groups them by category and prints the
import-ready JSON document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			return rt.init(cmd.ErrOrStderr(), verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(extractCmd(rt))
	root.AddCommand(presentCmd(rt))

	return root
}
