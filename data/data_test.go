package data

import (
	"testing"

	"github.com/presencedash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsWithHeader(t *testing.T) {
	body := []byte(`[["Weekday", "Presence (s)"], ["Mon", 24123], ["Tue", 0]]`)

	table, err := Rows(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"Weekday", "Presence (s)"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Mon", table.Rows[0].Label)
	assert.Equal(t, 24123.0, table.Rows[0].Value(1))
}

func TestRowsWithoutHeader(t *testing.T) {
	body := []byte(`[["Mon", 32400.5, 61200], ["Tue", 0, 0]]`)

	table, err := Rows(body)
	require.NoError(t, err)

	assert.Nil(t, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 32400.5, table.Rows[0].Value(1))
	assert.Equal(t, 61200.0, table.Rows[0].Value(2))
}

func TestRowsRejectsBadShapes(t *testing.T) {
	for _, body := range []string{`{"a": 1}`, `[[]]`, `[["Mon", "x"], ["Tue", "y"], ["Wed", 1, "z"]]`, `not json`} {
		_, err := Rows([]byte(body))
		assert.ErrorIs(t, err, models.ErrDecode, body)
	}
}

func TestGenderSplitSortsLocations(t *testing.T) {
	body := []byte(`{"Wroclaw": {"male": 3600, "female": 7200}, "Gdansk": {"male": 360}}`)

	table, err := GenderSplit(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"Location", "Male", "Female"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, models.NewRow("Gdansk", 360, 0), table.Rows[0])
	assert.Equal(t, models.NewRow("Wroclaw", 3600, 7200), table.Rows[1])
}

func TestSingleGender(t *testing.T) {
	table, err := SingleGender(models.GenderFemale)([]byte(`{"Poznan": 1800, "Lodz": 900}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Location", "female"}, table.Header)
	assert.Equal(t, "Lodz", table.Rows[0].Label)
	assert.Equal(t, 1800.0, table.Rows[1].Value(1))
}

func TestLocations(t *testing.T) {
	table, err := Locations([]byte(`{"locations": {"Office": 36000}}`))
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, models.NewRow("Office", 36000), table.Rows[0])
}
