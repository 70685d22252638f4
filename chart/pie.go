package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/presencedash/models"
)

// PieAdapter draws (label, value) rows as a pie
type PieAdapter struct {
	Options Options
	// DefaultHeader is used when the response carries no header row
	DefaultHeader []string
}

func (p *PieAdapter) Name() string { return "pie" }

func (p *PieAdapter) Build(table models.Table) (*Dataset, error) {
	if len(table.Header) == 0 {
		table.Header = p.DefaultHeader
	}
	ds, err := ArrayToDataset(table)
	if err != nil {
		return nil, fmt.Errorf("failed to build pie dataset: %w", err)
	}
	return ds, nil
}

func (p *PieAdapter) Draw(container string, ds *Dataset) (Snippet, error) {
	pie, err := p.pie(container, ds)
	if err != nil {
		return Snippet{}, err
	}
	return snippetOf(pie, container), nil
}

func (p *PieAdapter) pie(container string, ds *Dataset) (*charts.Pie, error) {
	if err := checkContainer(container); err != nil {
		return nil, err
	}
	if len(ds.Columns) < 2 {
		return nil, fmt.Errorf("pie needs two columns, got %d", len(ds.Columns))
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(container, p.Options)),
		charts.WithTitleOpts(opts.Title{Title: p.Options.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
	)

	items := make([]opts.PieData, 0, len(ds.Rows))
	for i := range ds.Rows {
		items = append(items, opts.PieData{Name: ds.Text(i, 0), Value: ds.Float(i, 1)})
	}
	pie.AddSeries(ds.Columns[1].Label, items,
		charts.WithPieChartOpts(opts.PieChart{Radius: "60%"}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}"}),
	)
	return pie, nil
}
