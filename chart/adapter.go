// Package chart turns decoded API tables into chart datasets and renders them
// as go-echarts snippets.
package chart

import (
	"fmt"
	"html/template"
	"regexp"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/presencedash/models"
)

// Adapter builds a typed dataset from a table and draws it into a container.
// Each adapter carries a fixed option set.
type Adapter interface {
	Name() string
	Build(table models.Table) (*Dataset, error)
	Draw(container string, ds *Dataset) (Snippet, error)
}

// Options is the option set an adapter draws with
type Options struct {
	Title      string
	HAxisTitle string
	VAxisTitle string
	Width      string
	Height     string
	Stacked    bool
	AxisMin    bool
}

// Snippet is a rendered chart: the container element and the script that fills it
type Snippet struct {
	ChartID string
	Element template.HTML
	Script  template.HTML
}

// HTML returns element and script together, ready for a page body
func (s Snippet) HTML() template.HTML {
	return s.Element + "\n" + s.Script
}

func (s Snippet) IsZero() bool {
	return s.ChartID == ""
}

// the chart id becomes part of a JS variable name in the rendered script
var containerID = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkContainer(container string) error {
	if !containerID.MatchString(container) {
		return fmt.Errorf("invalid chart container %q", container)
	}
	return nil
}

func initOpts(container string, o Options) opts.Initialization {
	return opts.Initialization{
		ChartID:   container,
		PageTitle: o.Title,
		Width:     o.Width,
		Height:    o.Height,
	}
}

func snippetOf(r render.Renderer, container string) Snippet {
	s := r.RenderSnippet()
	return Snippet{
		ChartID: container,
		Element: template.HTML(s.Element),
		Script:  template.HTML(s.Script),
	}
}

// clockFormatter renders seconds past midnight as HH:mm:ss on an axis
var clockFormatter = opts.FuncOpts(`function (value) {
	var s = Math.floor(value);
	var pad = function (n) { return (n < 10 ? '0' : '') + n; };
	return pad(Math.floor(s / 3600) % 24) + ':' + pad(Math.floor(s / 60) % 60) + ':' + pad(s % 60);
}`)

// tooltipText is a fixed per-item tooltip
func tooltipText(text string) *opts.Tooltip {
	return &opts.Tooltip{Formatter: types.FuncStr(text)}
}
