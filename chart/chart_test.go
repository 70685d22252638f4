package chart

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/presencedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayTable(values ...float64) models.Table {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	table := models.Table{}
	for i, v := range values {
		table.Rows = append(table.Rows, models.NewRow(days[i], v))
	}
	return table
}

func TestDatasetRejectsWrongTypes(t *testing.T) {
	ds := NewDataset(Column{Type: TypeString, Label: "Weekday"}, Column{Type: TypeDatetime, Label: "Start"})

	assert.Error(t, ds.AddRow("Mon", 3600.0))
	assert.Error(t, ds.AddRow("Mon"))
	assert.NoError(t, ds.AddRow("Mon", models.ToTimeOfDay(3600)))
	assert.Error(t, ds.FormatDateColumn(0, "HH:mm:ss"))
	assert.Error(t, ds.FormatDateColumn(5, "HH:mm:ss"))
}

func TestArrayToDatasetKeepsHeader(t *testing.T) {
	table := weekdayTable(100, 200)
	table.Header = []string{"Weekday", "Presence (s)"}

	ds, err := ArrayToDataset(table)
	require.NoError(t, err)

	assert.Equal(t, "Presence (s)", ds.Columns[1].Label)
	assert.Equal(t, []string{"Mon", "Tue"}, ds.Labels())
	assert.Equal(t, 200.0, ds.Float(1, 1))

	_, err = ArrayToDataset(weekdayTable(1))
	assert.Error(t, err)
}

func TestColumnAdapterFormatsClock(t *testing.T) {
	table := weekdayTable(3600, 0, 45296)
	models.NormalizeTimes(table.Rows, 1)
	adapter := &ColumnAdapter{Options: Options{Title: "Mean time", HAxisTitle: "Weekday"}}

	ds, err := adapter.Build(table)
	require.NoError(t, err)
	assert.Equal(t, "01:00:00", ds.Text(0, 1))
	assert.Equal(t, "00:00:00", ds.Text(1, 1))
	assert.Equal(t, "12:34:56", ds.Text(2, 1))

	bar, err := adapter.bar("mean_time_weekday", ds)
	require.NoError(t, err)
	require.Len(t, bar.MultiSeries, 1)
	items := bar.MultiSeries[0].Data.([]opts.BarData)
	assert.Equal(t, 3600.0, items[0].Value)
	assert.Equal(t, "01:00:00", items[0].Name)
}

func TestColumnAdapterNeedsNormalizedRows(t *testing.T) {
	_, err := (&ColumnAdapter{}).Build(weekdayTable(3600))
	assert.Error(t, err)
}

func TestTimelineAdapterFloatsBars(t *testing.T) {
	table := models.Table{Rows: []models.Row{models.NewRow("Mon", 32400, 61200)}}
	models.NormalizeTimes(table.Rows, 1, 2)
	adapter := &TimelineAdapter{}

	ds, err := adapter.Build(table)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", ds.Text(0, 1))
	assert.Equal(t, "17:00:00", ds.Text(0, 2))

	bar, err := adapter.bar("presence_start_end", ds)
	require.NoError(t, err)
	require.Len(t, bar.MultiSeries, 2)

	offset := bar.MultiSeries[0].Data.([]opts.BarData)
	duration := bar.MultiSeries[1].Data.([]opts.BarData)
	assert.Equal(t, 32400.0, offset[0].Value)
	assert.Equal(t, 28800.0, duration[0].Value)
	assert.Equal(t, "Mon: 09:00:00 - 17:00:00", string(duration[0].Tooltip.Formatter))
}

func TestStackedBarAdapterModes(t *testing.T) {
	table := models.Table{
		Header: []string{"Location", "Male", "Female"},
		Rows:   []models.Row{models.NewRow("Gdansk", 3600, 7200)},
	}

	stacked := &StackedBarAdapter{Series: []string{"male", "female"}, Divisor: 360, Options: Options{Stacked: true, AxisMin: true}}
	ds, err := stacked.Build(table)
	require.NoError(t, err)
	assert.Equal(t, "Male", ds.Columns[1].Label)
	assert.Equal(t, 10.0, ds.Float(0, 1))
	assert.Equal(t, 20.0, ds.Float(0, 2))

	bar, err := stacked.bar("location_gender", ds)
	require.NoError(t, err)
	assert.Len(t, bar.MultiSeries, 2)
	assert.Equal(t, "stacked_bar", stacked.Name())

	single := &StackedBarAdapter{Series: []string{"female"}, Divisor: 3600}
	ds, err = single.Build(models.Table{Rows: []models.Row{models.NewRow("Lodz", 7200)}})
	require.NoError(t, err)
	assert.Equal(t, "Female", ds.Columns[1].Label)
	assert.Equal(t, 2.0, ds.Float(0, 1))

	bar, err = single.bar("location_gender", ds)
	require.NoError(t, err)
	assert.Len(t, bar.MultiSeries, 1)
	assert.Equal(t, "bar", single.Name())
}

func TestPieAdapterDraw(t *testing.T) {
	adapter := &PieAdapter{DefaultHeader: []string{"Weekday", "Presence (s)"}}

	ds, err := adapter.Build(weekdayTable(100, 300))
	require.NoError(t, err)

	snippet, err := adapter.Draw("presence_weekday", ds)
	require.NoError(t, err)
	assert.Equal(t, "presence_weekday", snippet.ChartID)
	assert.Contains(t, string(snippet.Element), `id="presence_weekday"`)
	assert.Contains(t, string(snippet.Script), "goecharts_presence_weekday")
	assert.Contains(t, string(snippet.Script), "Mon")
}

func TestDrawRejectsUnsafeContainer(t *testing.T) {
	ds := NewDataset(Column{Type: TypeString}, Column{Type: TypeNumber})
	_, err := (&PieAdapter{}).Draw("chart-div", ds)
	assert.Error(t, err)
}

func TestLibraryLoadsOnce(t *testing.T) {
	var hooks int32
	lib := NewLibrary("https://assets.example/")
	lib.OnLoad = func() { atomic.AddInt32(&hooks, 1) }
	assert.False(t, lib.Loaded())
	assert.Nil(t, lib.Assets())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lib.Load()
		}()
	}
	wg.Wait()

	assert.True(t, lib.Loaded())
	assert.Equal(t, 1, lib.Loads())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hooks))
	assets := lib.Assets()
	require.NotEmpty(t, assets)
	assert.True(t, strings.HasPrefix(assets[0], "https://assets.example/"))
	assert.True(t, strings.HasSuffix(assets[0], "echarts.min.js"))
}
