package server

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/presencedash/chart"
	"github.com/presencedash/config"
	"github.com/presencedash/downloader"
	"github.com/presencedash/models"
	"github.com/presencedash/view"
)

var chartPageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  {{range .State.Assets}}<script type="text/javascript" src="{{.}}"></script>
  {{end}}
</head>
<body>
  <h2>{{.Title}}</h2>
  <div id="data-error">{{.State.ErrorText}}</div>
  <div id="chart-div">{{if .State.ChartVisible}}{{.State.Chart.HTML}}{{end}}</div>
</body>
</html>
`))

type chartPage struct {
	Title string
	State view.ViewState
}

// RenderView draws one view for sel outside any browser session and writes it
// to w as a standalone page. The returned state tells what was drawn.
func RenderView(ctx context.Context, cfg *config.Config, name string, sel models.Selection, w io.Writer) (view.ViewState, error) {
	vc, err := view.Lookup(name)
	if err != nil {
		return view.ViewState{}, err
	}

	client := downloader.NewClient(cfg.APIURL, cfg.FetchTimeout, 0)
	ctrl := view.NewController(vc, client, chart.NewLibrary(cfg.AssetsHost))
	state := ctrl.Select(ctx, sel)

	page := templ.FromGoHTML(chartPageTemplate, chartPage{Title: vc.Title, State: state})
	if err := page.Render(ctx, w); err != nil {
		return state, err
	}
	return state, nil
}
