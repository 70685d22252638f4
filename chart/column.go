package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/presencedash/models"
)

// ColumnAdapter draws (weekday, time of day) rows as vertical bars on a clock axis
type ColumnAdapter struct {
	Options Options
}

func (c *ColumnAdapter) Name() string { return "column" }

// Build expects column 1 of every row to be normalized into a time of day
func (c *ColumnAdapter) Build(table models.Table) (*Dataset, error) {
	ds := NewDataset(
		Column{Type: TypeString, Label: "Weekday"},
		Column{Type: TypeDatetime, Label: "Mean time (h:m:s)"},
	)
	for _, row := range table.Rows {
		t, ok := row.Time(1)
		if !ok {
			return nil, fmt.Errorf("row %s: column 1 is not a time of day", row.Label)
		}
		if err := ds.AddRow(row.Label, t); err != nil {
			return nil, err
		}
	}
	if err := ds.FormatDateColumn(1, "HH:mm:ss"); err != nil {
		return nil, err
	}
	return ds, nil
}

func (c *ColumnAdapter) Draw(container string, ds *Dataset) (Snippet, error) {
	bar, err := c.bar(container, ds)
	if err != nil {
		return Snippet{}, err
	}
	return snippetOf(bar, container), nil
}

func (c *ColumnAdapter) bar(container string, ds *Dataset) (*charts.Bar, error) {
	if err := checkContainer(container); err != nil {
		return nil, err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(container, c.Options)),
		charts.WithTitleOpts(opts.Title{Title: c.Options.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category",
			Name: c.Options.HAxisTitle,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "value",
			Name:      c.Options.VAxisTitle,
			Min:       0,
			AxisLabel: &opts.AxisLabel{Formatter: clockFormatter},
		}),
	)

	bar.SetXAxis(ds.Labels())

	items := make([]opts.BarData, 0, len(ds.Rows))
	for i := range ds.Rows {
		items = append(items, opts.BarData{
			Name:    ds.Text(i, 1),
			Value:   ds.Float(i, 1),
			Tooltip: tooltipText(ds.Text(i, 0) + ": " + ds.Text(i, 1)),
		})
	}
	bar.AddSeries(ds.Columns[1].Label, items)
	return bar, nil
}
