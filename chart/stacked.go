package chart

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/presencedash/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const totalStack = "total"

// StackedBarAdapter draws (location, male, female) or (location, value) rows as
// horizontal bars. Raw seconds are divided by Divisor before drawing.
type StackedBarAdapter struct {
	Options Options
	// Series names the value columns; one entry switches to single-series mode
	Series  []string
	Divisor float64
}

func (s *StackedBarAdapter) Name() string {
	if len(s.Series) == 1 {
		return "bar"
	}
	return "stacked_bar"
}

func (s *StackedBarAdapter) Build(table models.Table) (*Dataset, error) {
	if len(s.Series) == 0 {
		return nil, fmt.Errorf("stacked bar has no series")
	}
	if s.Divisor == 0 {
		return nil, fmt.Errorf("stacked bar divisor is zero")
	}

	columns := []Column{{Type: TypeString, Label: "Location"}}
	if len(table.Header) > 0 {
		columns[0].Label = table.Header[0]
	}
	for _, name := range s.Series {
		columns = append(columns, Column{Type: TypeNumber, Label: seriesTitle(name)})
	}

	ds := NewDataset(columns...)
	for _, row := range table.Rows {
		values := []any{row.Label}
		for col := 1; col <= len(s.Series); col++ {
			values = append(values, row.Value(col)/s.Divisor)
		}
		if err := ds.AddRow(values...); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (s *StackedBarAdapter) Draw(container string, ds *Dataset) (Snippet, error) {
	bar, err := s.bar(container, ds)
	if err != nil {
		return Snippet{}, err
	}
	return snippetOf(bar, container), nil
}

func (s *StackedBarAdapter) bar(container string, ds *Dataset) (*charts.Bar, error) {
	if err := checkContainer(container); err != nil {
		return nil, err
	}

	xAxis := opts.XAxis{Type: "value", Name: s.Options.HAxisTitle}
	if s.Options.AxisMin {
		xAxis.Min = 0
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(container, s.Options)),
		charts.WithTitleOpts(opts.Title{Title: s.Options.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(ds.Columns) > 2)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: s.Options.VAxisTitle}),
	)
	bar.SetXAxis(ds.Labels()).XYReversal()

	var seriesOpts []charts.SeriesOpts
	if s.Options.Stacked {
		seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: totalStack}))
	}
	for col := 1; col < len(ds.Columns); col++ {
		items := make([]opts.BarData, 0, len(ds.Rows))
		for i := range ds.Rows {
			items = append(items, opts.BarData{Value: ds.Float(i, col)})
		}
		bar.AddSeries(ds.Columns[col].Label, items, seriesOpts...)
	}
	return bar, nil
}

// seriesTitle turns an API key such as "female" into a legend label
func seriesTitle(name string) string {
	return cases.Title(language.English).String(name)
}
