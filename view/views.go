package view

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/presencedash/chart"
	"github.com/presencedash/data"
	"github.com/presencedash/models"
)

const (
	// NoDataText is shown for 404s, other failed responses and undecodable bodies
	NoDataText = "There is no data available."
	// UserNoDataText is shown when a response carries no signal
	UserNoDataText = "User has no data."
)

// Divisors turning aggregate seconds into chart units. The gender views keep
// the 360 the dashboard has always used; the location view uses real hours.
const (
	genderDivisor   = 360
	locationDivisor = 3600
)

// Branch is one request path of a view, picked by the current selection
type Branch struct {
	Match    func(models.Selection) bool
	Endpoint string
	Decode   data.Decoder
	Adapter  chart.Adapter
}

// Path expands {user_id}, {period} and {gender} in the endpoint template
func (b Branch) Path(sel models.Selection) string {
	return strings.NewReplacer(
		"{user_id}", url.PathEscape(sel.SubjectID),
		"{period}", url.PathEscape(sel.PeriodKey),
		"{gender}", url.PathEscape(string(sel.Gender)),
	).Replace(b.Endpoint)
}

// Config describes one dashboard view. GuardColumn 0 disables the
// availability check.
type Config struct {
	Name        string
	Title       string
	Requires    models.Field
	Branches    []Branch
	GuardColumn int
	TimeColumns []int
	EmptyText   string
}

// Branch returns the first branch matching sel
func (c Config) Branch(sel models.Selection) (Branch, bool) {
	for _, b := range c.Branches {
		if b.Match == nil || b.Match(sel) {
			return b, true
		}
	}
	return Branch{}, false
}

func always(models.Selection) bool { return true }

func withoutGender(sel models.Selection) bool { return !sel.Has(models.FieldGender) }

func withGender(sel models.Selection) bool { return sel.Has(models.FieldGender) }

var weekdayOptions = chart.Options{HAxisTitle: "Weekday"}

func locationOptions(stacked bool) chart.Options {
	return chart.Options{
		Width:      "750px",
		Height:     "750px",
		HAxisTitle: "Hours",
		AxisMin:    true,
		Stacked:    stacked,
	}
}

// Configs returns the view configurations keyed by view name
func Configs() map[string]Config {
	mean := Config{
		Name:     "mean_time_weekday",
		Title:    "Presence mean time by weekday",
		Requires: models.FieldSubject,
		Branches: []Branch{{
			Match:    always,
			Endpoint: "/api/v1/mean_time_weekday/{user_id}",
			Decode:   data.Rows,
			Adapter:  &chart.ColumnAdapter{Options: weekdayOptions},
		}},
		TimeColumns: []int{1},
		EmptyText:   UserNoDataText,
	}

	presence := Config{
		Name:     "presence_weekday",
		Title:    "Presence by weekday",
		Requires: models.FieldSubject,
		Branches: []Branch{{
			Match:    always,
			Endpoint: "/api/v1/presence_weekday/{user_id}",
			Decode:   data.Rows,
			Adapter:  &chart.PieAdapter{DefaultHeader: []string{"Weekday", "Presence (s)"}},
		}},
		GuardColumn: 1,
		EmptyText:   UserNoDataText,
	}

	startEnd := Config{
		Name:     "presence_start_end",
		Title:    "Presence start-end",
		Requires: models.FieldSubject,
		Branches: []Branch{{
			Match:    always,
			Endpoint: "/api/v1/presence_start_end/{user_id}",
			Decode:   data.Rows,
			Adapter:  &chart.TimelineAdapter{Options: weekdayOptions},
		}},
		GuardColumn: 2,
		TimeColumns: []int{1, 2},
		EmptyText:   UserNoDataText,
	}

	branches := []Branch{{
		Match:    withoutGender,
		Endpoint: "/api/v1/location_gender_view/{period}",
		Decode:   data.GenderSplit,
		Adapter: &chart.StackedBarAdapter{
			Options: locationOptions(true),
			Series:  []string{string(models.GenderMale), string(models.GenderFemale)},
			Divisor: genderDivisor,
		},
	}}
	for _, g := range models.Genders {
		g := g
		branches = append(branches, Branch{
			Match:    func(sel models.Selection) bool { return withGender(sel) && sel.Gender == g },
			Endpoint: "/api/v1/location_gender_view/{period}/{gender}",
			Decode:   data.SingleGender(g),
			Adapter: &chart.StackedBarAdapter{
				Options: locationOptions(false),
				Series:  []string{string(g)},
				Divisor: genderDivisor,
			},
		})
	}
	gender := Config{
		Name:      "location_gender",
		Title:     "Presence by location and gender",
		Requires:  models.FieldPeriod,
		Branches:  branches,
		EmptyText: UserNoDataText,
	}

	location := Config{
		Name:     "presence_location",
		Title:    "Presence by location",
		Requires: models.FieldPeriod,
		Branches: []Branch{{
			Match:    always,
			Endpoint: "/api/v1/presence_location_view/{period}",
			Decode:   data.Locations,
			Adapter: &chart.StackedBarAdapter{
				Options: locationOptions(false),
				Series:  []string{"hours"},
				Divisor: locationDivisor,
			},
		}},
		EmptyText: UserNoDataText,
	}

	configs := make(map[string]Config)
	for _, c := range []Config{mean, presence, startEnd, gender, location} {
		configs[c.Name] = c
	}
	return configs
}

// Lookup returns the configuration of one view
func Lookup(name string) (Config, error) {
	c, ok := Configs()[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", models.ErrUnknownView, name)
	}
	return c, nil
}

// Names lists the views in a stable order
func Names() []string {
	configs := Configs()
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
