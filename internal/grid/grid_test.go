package grid

import (
	"bytes"
	"testing"
	"time"

	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_PinningAndVisibility(t *testing.T) {
	state := table.State{
		ColumnVisibility: map[string]bool{"label": false},
		ColumnPinning:    map[string]table.Pin{"priority": table.PinLeft, "code": table.PinRight},
	}
	cols := Layout([]string{"code", "title", "status", "label", "priority", "createdAt"}, state, "createdAt")

	keys := make([]string, 0, len(cols))
	for _, c := range cols {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"priority", "title", "status", "code"}, keys)
	assert.Equal(t, table.PinLeft, cols[0].Pin)
	assert.Equal(t, table.PinNone, cols[1].Pin)
	assert.Equal(t, table.PinRight, cols[3].Pin)
}

type record struct {
	Name    string    `json:"name"`
	Tags    []string  `json:"tags"`
	Rating  float64   `json:"rating"`
	Active  bool      `json:"active"`
	Created time.Time `json:"createdAt"`
	Profile struct {
		Education []struct {
			Degree string `json:"degree"`
		} `json:"education"`
	} `json:"profile"`
}

func sample() record {
	r := record{
		Name:    "Ayu, S.",
		Tags:    []string{"a", "b"},
		Rating:  4.5,
		Active:  true,
		Created: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	r.Profile.Education = append(r.Profile.Education,
		struct {
			Degree string `json:"degree"`
		}{Degree: "PhD"},
		struct {
			Degree string `json:"degree"`
		}{Degree: "Master"},
	)
	return r
}

func TestRowsAndCells(t *testing.T) {
	rows, err := Rows([]record{sample()})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "a, b", Cell(Lookup(row, "tags")))
	assert.Equal(t, "4.5", Cell(Lookup(row, "rating")))
	assert.Equal(t, "true", Cell(Lookup(row, "active")))
	assert.Equal(t, "2024-03-01T08:00:00Z", Cell(Lookup(row, "createdAt")))
	assert.Equal(t, "PhD, Master", Cell(Lookup(row, "profile.education.degree")))
	assert.Equal(t, "", Cell(Lookup(row, "missing.path")))
}

func TestWriteCSV(t *testing.T) {
	rows, err := Rows([]record{sample()})
	require.NoError(t, err)

	var buf bytes.Buffer
	cols := []Column{{Key: "name", Header: "name"}, {Key: "tags", Header: "tags"}}
	require.NoError(t, WriteCSV(&buf, cols, rows))
	assert.Equal(t, "name,tags\n\"Ayu, S.\",\"a, b\"\n", buf.String())
}

func TestRender(t *testing.T) {
	rows, err := Rows([]record{sample()})
	require.NoError(t, err)

	out := Render([]Column{{Key: "name", Header: "name", Pin: table.PinLeft}, {Key: "rating", Header: "rating"}}, rows)
	assert.Contains(t, out, "name")
	assert.Contains(t, out, "Ayu, S.")
	assert.Contains(t, out, "4.5")
}
