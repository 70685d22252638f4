package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cli/browser"
	"github.com/presencedash/server"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		addr string
		open bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("open") {
				cfg.OpenBrowser = open
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, logFile, err := server.SetupLogging(cfg.LogFile, cfg.Level())
			if err != nil {
				return err
			}
			defer logFile.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ready := func(url string) {
				logger.Info("dashboard available", "url", url)
				if !cfg.OpenBrowser {
					return
				}
				if err := browser.OpenURL(url); err != nil {
					logger.Warn("failed to open browser", "url", url, "error", err)
				}
			}
			return server.New(cfg, logger).ListenAndServe(ctx, ready)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, host:port")
	cmd.Flags().BoolVar(&open, "open", false, "open the dashboard in a browser once listening")
	return cmd
}
