package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Get(t *testing.T) {
	r, err := NewRegistry(testSchema(), &Schema{Entity: "clients"})
	require.NoError(t, err)

	s, ok := r.Get("tasks")
	require.True(t, ok)
	assert.Equal(t, "tasks", s.Entity)
	assert.Equal(t, []string{"clients", "tasks"}, r.Entities())

	_, ok = r.Get("nope")
	assert.False(t, ok)
}

func TestRegistry_RejectsInvalidSchemas(t *testing.T) {
	cases := map[string]*Schema{
		"duplicate field": {Entity: "a", Fields: []FilterField{
			{Value: "name"}, {Value: "name"},
		}},
		"enum without options": {Entity: "a", Fields: []FilterField{
			{Value: "status", Kind: KindEnum},
		}},
		"option with separator": {Entity: "a", Fields: []FilterField{
			{Value: "status", Kind: KindEnum, Options: Options("v1.0")},
		}},
		"reserved name": {Entity: "a", Fields: []FilterField{
			{Value: "page"},
		}},
		"default sort not sortable": {Entity: "a", DefaultSort: []SortItem{{Column: "x", Direction: Asc}}},
		"two date fields": {Entity: "a", Fields: []FilterField{
			{Value: "createdAt", Kind: KindDate}, {Value: "updatedAt", Kind: KindDate},
		}},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry(s)
			assert.Error(t, err)
		})
	}

	_, err := NewRegistry(testSchema(), testSchema())
	assert.Error(t, err)
}

func TestFilterField_Path(t *testing.T) {
	assert.Equal(t, "name", FilterField{Value: "name"}.Path())
	assert.Equal(t, "profile.location", FilterField{Value: "profile", SubField: "location"}.Path())
	assert.Equal(t, []string{"profile.location"}, FilterField{Value: "profile", SubField: "location"}.Targets())
}

func TestSchema_PageLimits(t *testing.T) {
	def, max := (&Schema{}).PageLimits()
	assert.Equal(t, DefaultPerPage, def)
	assert.Equal(t, MaxPerPage, max)

	def, max = (&Schema{DefaultPerPage: 50, MaxPerPage: 20}).PageLimits()
	assert.Equal(t, 20, def)
	assert.Equal(t, 20, max)
}
