package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/presencedash/models"
)

const timelineStack = "timeline"

// TimelineAdapter draws (weekday, start, end) rows as horizontal floating bars:
// a transparent offset up to the start and a visible bar for the duration.
type TimelineAdapter struct {
	Options Options
}

func (t *TimelineAdapter) Name() string { return "timeline" }

// Build expects columns 1 and 2 of every row to be normalized into times of day
func (t *TimelineAdapter) Build(table models.Table) (*Dataset, error) {
	ds := NewDataset(
		Column{Type: TypeString, Label: "Weekday"},
		Column{Type: TypeDatetime, Label: "Start"},
		Column{Type: TypeDatetime, Label: "End"},
	)
	for _, row := range table.Rows {
		start, ok := row.Time(1)
		if !ok {
			return nil, fmt.Errorf("row %s: column 1 is not a time of day", row.Label)
		}
		end, ok := row.Time(2)
		if !ok {
			return nil, fmt.Errorf("row %s: column 2 is not a time of day", row.Label)
		}
		if err := ds.AddRow(row.Label, start, end); err != nil {
			return nil, err
		}
	}
	for _, col := range []int{1, 2} {
		if err := ds.FormatDateColumn(col, "HH:mm:ss"); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (t *TimelineAdapter) Draw(container string, ds *Dataset) (Snippet, error) {
	bar, err := t.bar(container, ds)
	if err != nil {
		return Snippet{}, err
	}
	return snippetOf(bar, container), nil
}

func (t *TimelineAdapter) bar(container string, ds *Dataset) (*charts.Bar, error) {
	if err := checkContainer(container); err != nil {
		return nil, err
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(container, t.Options)),
		charts.WithTitleOpts(opts.Title{Title: t.Options.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "value",
			Name:      t.Options.VAxisTitle,
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Formatter: clockFormatter},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:    "category",
			Name:    t.Options.HAxisTitle,
			Inverse: opts.Bool(true),
		}),
	)
	bar.SetXAxis(ds.Labels()).XYReversal()

	offsets := make([]opts.BarData, 0, len(ds.Rows))
	durations := make([]opts.BarData, 0, len(ds.Rows))
	for i := range ds.Rows {
		start, end := ds.Float(i, 1), ds.Float(i, 2)
		offsets = append(offsets, opts.BarData{
			Value:   start,
			Tooltip: &opts.Tooltip{Show: opts.Bool(false)},
		})
		durations = append(durations, opts.BarData{
			Name:    ds.Text(i, 0),
			Value:   end - start,
			Tooltip: tooltipText(fmt.Sprintf("%s: %s - %s", ds.Text(i, 0), ds.Text(i, 1), ds.Text(i, 2))),
		})
	}

	bar.AddSeries("offset", offsets,
		charts.WithBarChartOpts(opts.BarChart{Stack: timelineStack}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "transparent"}),
	)
	bar.AddSeries("presence", durations,
		charts.WithBarChartOpts(opts.BarChart{Stack: timelineStack}),
	)
	return bar, nil
}
