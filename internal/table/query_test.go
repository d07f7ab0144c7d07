package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStateQuery_Conditions(t *testing.T) {
	schema := testSchema()
	s := Decode(ParseQuery("title=Fix&status=todo.done&availability=false&from=2024-01-01&to=2024-01-31&operator=or&page=3&per_page=20"), schema)

	q := s.Query(schema)
	assert.Equal(t, Or, q.Join)
	assert.Equal(t, 40, q.Offset)
	assert.Equal(t, 20, q.Limit)
	require.Len(t, q.Conditions, 4)

	assert.Equal(t, Condition{Fields: []string{"title"}, Op: OpContains, Text: "Fix"}, q.Conditions[0])
	assert.Equal(t, []string{"todo", "done"}, q.Conditions[1].Values)
	assert.Equal(t, OpIn, q.Conditions[1].Op)
	assert.Equal(t, OpEq, q.Conditions[2].Op)
	assert.False(t, q.Conditions[2].Bool)

	rng := q.Conditions[3]
	assert.Equal(t, OpRange, rng.Op)
	require.NotNil(t, rng.From)
	require.NotNil(t, rng.To)
	assert.Equal(t, 1, rng.From.Day())
	assert.Equal(t, 31, rng.To.Day())
	assert.Equal(t, 23, rng.To.Hour())
}

func TestStateQuery_CustomTargets(t *testing.T) {
	schema := &Schema{
		Entity: "staff",
		Fields: []FilterField{
			{Label: "Search", Value: "search", Kind: KindText, Columns: []string{"name", "email"}},
		},
	}
	q := Decode(ParseQuery("search=ann"), schema).Query(schema)
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, []string{"name", "email"}, q.Conditions[0].Fields)
	assert.Equal(t, And, q.Join)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 3, PageCount(25, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 0, PageCount(5, 0))

	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(0, 10_000).Draw(t, "total")
		perPage := rapid.IntRange(1, MaxPerPage).Draw(t, "perPage")
		pages := PageCount(total, perPage)
		if int64(pages)*int64(perPage) < total {
			t.Fatalf("pages %d too small for total %d", pages, total)
		}
		if pages > 0 && int64(pages-1)*int64(perPage) >= total {
			t.Fatalf("pages %d too large for total %d", pages, total)
		}
	})
}
