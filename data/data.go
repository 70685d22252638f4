// Package data decodes analysis API response bodies into models.Table values.
package data

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/presencedash/models"
)

// Decoder turns a successful response body into a table
type Decoder func(body []byte) (models.Table, error)

// cell is a single element of a positional row: either a label or a number
type cell struct {
	text   string
	number float64
	isText bool
}

func (c *cell) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &c.number); err == nil {
		return nil
	}
	if err := json.Unmarshal(b, &c.text); err != nil {
		return fmt.Errorf("cell %s is neither number nor string", string(b))
	}
	c.isText = true
	return nil
}

// Rows decodes `[[label, n1, n2, ...], ...]`. A leading row whose value
// columns are strings is kept as the table header.
func Rows(body []byte) (models.Table, error) {
	var raw [][]cell
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}

	table := models.Table{Rows: make([]models.Row, 0, len(raw))}
	for i, r := range raw {
		if len(r) == 0 {
			return models.Table{}, fmt.Errorf("%w: row %d is empty", models.ErrDecode, i)
		}
		if i == 0 && isHeader(r) {
			table.Header = make([]string, len(r))
			for j, c := range r {
				table.Header[j] = c.text
			}
			continue
		}

		row := models.Row{Label: r[0].text, Values: make([]float64, 0, len(r)-1)}
		if !r[0].isText {
			row.Label = fmt.Sprint(r[0].number)
		}
		for j, c := range r[1:] {
			if c.isText {
				return models.Table{}, fmt.Errorf("%w: row %d column %d is not numeric", models.ErrDecode, i, j+1)
			}
			row.Values = append(row.Values, c.number)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func isHeader(r []cell) bool {
	if len(r) < 2 {
		return false
	}
	for _, c := range r {
		if !c.isText {
			return false
		}
	}
	return true
}

// GenderSplit decodes `{location: {male: seconds, female: seconds}}`
func GenderSplit(body []byte) (models.Table, error) {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}

	table := models.Table{Header: []string{"Location", "Male", "Female"}}
	for _, location := range sortedKeys(raw) {
		genders := raw[location]
		table.Rows = append(table.Rows, models.NewRow(location,
			genders[string(models.GenderMale)],
			genders[string(models.GenderFemale)],
		))
	}
	return table, nil
}

// SingleGender decodes `{location: seconds}` for one gender
func SingleGender(gender models.Gender) Decoder {
	return func(body []byte) (models.Table, error) {
		var raw map[string]float64
		if err := json.Unmarshal(body, &raw); err != nil {
			return models.Table{}, fmt.Errorf("%w: %v", models.ErrDecode, err)
		}
		return flatTable(raw, "Location", string(gender)), nil
	}
}

// Locations decodes `{"locations": {name: seconds}}`
func Locations(body []byte) (models.Table, error) {
	var raw struct {
		Locations map[string]float64 `json:"locations"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Table{}, fmt.Errorf("%w: %v", models.ErrDecode, err)
	}
	return flatTable(raw.Locations, "Location", "Hours"), nil
}

func flatTable(raw map[string]float64, header ...string) models.Table {
	table := models.Table{Header: header}
	for _, k := range sortedKeys(raw) {
		table.Rows = append(table.Rows, models.NewRow(k, raw[k]))
	}
	return table
}

// sortedKeys gives map-shaped responses a stable category order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
