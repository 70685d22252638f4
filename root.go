package main

import (
	"github.com/fatih/color"
	"github.com/presencedash/config"
	"github.com/spf13/cobra"
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	configPath string
	noColor    bool
	apiURL     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "presence-dashboard",
		Short: "Serve charts of employee presence from the analysis API",
		Long: `presence-dashboard serves the presence analyzer pages. Each page
fetches aggregates from the analysis API for the selected employee or month
and draws them as a chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultFile, "path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "analysis API base URL")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(versionCmd)
	return cmd
}

// loadConfig layers command-line flags over the file and environment config
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = flags.apiURL
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
