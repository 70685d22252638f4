package server

import (
	"html/template"

	"github.com/a-h/templ"
	"github.com/presencedash/models"
	"github.com/presencedash/view"
)

type navItem struct {
	Name   string
	Title  string
	Active bool
}

// pageData feeds the dashboard page. The element ids are what the page
// scripts and stylesheet bind to.
type pageData struct {
	Title     string
	View      string
	Nav       []navItem
	Users     []models.User
	Periods   []models.Period
	Genders   []models.Gender
	Selection models.Selection
	User      models.UserDetails

	NeedsSubject bool
	NeedsPeriod  bool
	ShowGender   bool

	DropdownError string
	State         view.ViewState
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"selected": func(a, b string) bool { return a == b },
	"label":    userLabel,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Presence analyzer | {{.Title}}</title>
  <link rel="stylesheet" href="/static/css/main.css">
  {{range .State.Assets}}<script type="text/javascript" src="{{.}}"></script>
  {{end}}
</head>
<body>
  <div id="main">
    <div id="header">
      <h1>Presence analyzer</h1>
      <ul>
        {{range .Nav}}<li{{if .Active}} id="selected"{{end}}><a href="/{{.Name}}">{{.Title}}</a></li>
        {{end}}
      </ul>
    </div>
    <div id="content">
      <h2>{{.Title}}</h2>
      <form method="get" action="/{{.View}}">
        {{if .NeedsSubject}}
        <p>
          <select id="user-id" name="user_id" onchange="this.form.submit()">
            <option value="">--</option>
            {{range .Users}}<option value="{{.UserID}}"{{if selected (printf "%d" .UserID) $.Selection.SubjectID}} selected{{end}}>{{label .}}</option>
            {{end}}
          </select>
          {{if .User.Avatar}}<img id="avatar" src="{{.User.Avatar}}" alt="avatar">{{end}}
          <span id="user-name">{{.User.Name}}</span>
        </p>
        {{end}}
        {{if .NeedsPeriod}}
        <p>
          <select id="user-id" name="period" onchange="this.form.submit()">
            <option value="">--</option>
            {{range .Periods}}<option value="{{.Key}}"{{if selected .Key $.Selection.PeriodKey}} selected{{end}}>{{.Val}}</option>
            {{end}}
          </select>
          {{if .ShowGender}}
          <select id="gender" name="gender" onchange="this.form.submit()">
            <option value="">--</option>
            {{range .Genders}}<option value="{{.}}"{{if selected (printf "%s" .) (printf "%s" $.Selection.Gender)}} selected{{end}}>{{.}}</option>
            {{end}}
          </select>
          {{end}}
        </p>
        {{end}}
      </form>
      {{if .DropdownError}}<p class="warning">{{.DropdownError}}</p>{{end}}
      <div id="loading"{{if not .State.LoadingVisible}} style="display: none"{{end}}><span class="spinner"></span></div>
      <div id="data-error">{{.State.ErrorText}}</div>
      <div id="chart-div"{{if not .State.ChartVisible}} style="display: none"{{end}}>
        {{if .State.ChartVisible}}{{.State.Chart.HTML}}{{end}}
      </div>
    </div>
  </div>
</body>
</html>
`))

func dashboardPage(data pageData) templ.Component {
	return templ.FromGoHTML(pageTemplate, data)
}
