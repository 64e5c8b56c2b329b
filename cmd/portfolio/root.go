package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site with an Automation Lab",
	Long: `Serves the portfolio site and its Automation Lab, and manages the
command line client's own session and theme preference.

Configuration comes from the YAML file named by --config, overridden by
PORTFOLIO_ environment variables (PORTFOLIO_STORAGE__DRIVER=sqlite).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg)
		return nil
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yaml", "config file path")
	rootCmd.AddCommand(serveCmd, sessionCmd, themeCmd)
}

// setupLogging uses a coloured console writer in DEV and JSON otherwise.
func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == config.DevEnv {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
