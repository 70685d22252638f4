package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/presencedash/models"
	"github.com/presencedash/server"
	"github.com/presencedash/view"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	view   string
	user   string
	period string
	gender string
	out    string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one view to a standalone HTML file",
		Long: `Render fetches one view for the given selection and writes the chart
as a standalone HTML page. Use --out - to write to stdout.

Examples:
  presence-dashboard render --view mean_time_weekday --user 10
  presence-dashboard render --view location_gender --period 2013-09 --gender female --out female.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, flags)
		},
	}
	cmd.Flags().StringVar(&flags.view, "view", server.DefaultView, fmt.Sprintf("view to render, one of %v", view.Names()))
	cmd.Flags().StringVar(&flags.user, "user", "", "user id for the weekday views")
	cmd.Flags().StringVar(&flags.period, "period", "", "month key for the location views, e.g. 2013-09")
	cmd.Flags().StringVar(&flags.gender, "gender", "", "male or female, location_gender only")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "chart.html", "output file")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootFlags, flags *renderFlags) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()})))

	gender, err := models.ParseGender(flags.gender)
	if err != nil {
		return err
	}
	sel := models.Selection{SubjectID: flags.user, PeriodKey: flags.period, Gender: gender}
	if _, err := view.Lookup(flags.view); err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if flags.out != "-" {
		f, err := os.Create(flags.out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", flags.out, err)
		}
		defer f.Close()
		w = f
	}

	state, err := server.RenderView(cmd.Context(), cfg, flags.view, sel, w)
	if err != nil {
		return err
	}

	report := cmd.ErrOrStderr()
	switch state.State {
	case view.StateRendered:
		fmt.Fprintf(report, "%s %s (%s) -> %s\n", color.GreenString("rendered"), flags.view, state.Adapter, flags.out)
	case view.StateEmpty:
		fmt.Fprintf(report, "%s %s: %s\n", color.YellowString("empty"), flags.view, state.ErrorText)
	case view.StateIdle:
		fmt.Fprintf(report, "%s %s: selection misses a required %s\n", color.YellowString("idle"), flags.view, requiredField(flags.view))
	default:
		fmt.Fprintf(report, "%s %s: %s\n", color.RedString("error"), flags.view, state.ErrorText)
	}
	return nil
}

func requiredField(name string) string {
	cfg, err := view.Lookup(name)
	if err != nil {
		return "field"
	}
	return string(cfg.Requires)
}
