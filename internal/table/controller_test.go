package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type navRecorder struct {
	queries []string
}

func (r *navRecorder) navigate(q string) {
	r.queries = append(r.queries, q)
}

func TestController_SetFilterThenClear(t *testing.T) {
	rec := &navRecorder{}
	c := NewController(testSchema(), "page=3", rec.navigate)

	require.True(t, c.SetFilter("title", "report"))
	assert.Equal(t, "page=1&title=report", c.Query())
	v, ok := c.State().Filter("title")
	require.True(t, ok)
	assert.Equal(t, "report", v.Text)

	require.True(t, c.SetFilter("title", ""))
	assert.NotContains(t, ParseQuery(c.Query()), "title")
	_, ok = c.State().Filter("title")
	assert.False(t, ok)
	assert.Len(t, rec.queries, 2)
}

func TestController_UnknownEnumValuesDropped(t *testing.T) {
	c := NewController(testSchema(), "", nil)

	c.SetFilter("status", "todo", "archived")
	assert.Equal(t, "todo", ParseQuery(c.Query()).Get("status"))

	c.SetFilter("status", "archived")
	assert.NotContains(t, ParseQuery(c.Query()), "status")
}

func TestController_UnknownFieldIsNoop(t *testing.T) {
	rec := &navRecorder{}
	c := NewController(testSchema(), "page=2", rec.navigate)

	assert.False(t, c.SetFilter("password", "x"))
	assert.Equal(t, "page=2", c.Query())
	assert.Empty(t, rec.queries)
}

func TestController_SetSort(t *testing.T) {
	rec := &navRecorder{}
	c := NewController(testSchema(), "page=4", rec.navigate)

	assert.False(t, c.SetSort("secret", Asc))
	assert.Equal(t, []SortItem{{Column: "createdAt", Direction: Desc}}, c.State().Sort)
	assert.Empty(t, rec.queries)

	assert.True(t, c.SetSort("title", Asc))
	assert.Equal(t, []SortItem{{Column: "title", Direction: Asc}}, c.State().Sort)
	assert.Equal(t, 1, c.State().Page)

	c.ClearSort()
	assert.Equal(t, []SortItem{{Column: "createdAt", Direction: Desc}}, c.State().Sort)
}

func TestController_PerPageResetsPage(t *testing.T) {
	c := NewController(testSchema(), "page=5&per_page=10", nil)

	c.SetPerPage(20)
	s := c.State()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 20, s.PerPage)

	c.SetPerPage(5000)
	assert.Equal(t, MaxPerPage, c.State().PerPage)

	c.SetPage(0)
	assert.Equal(t, 1, c.State().Page)
}

func TestController_OperatorAndDateRange(t *testing.T) {
	c := NewController(testSchema(), "", nil)

	c.SetOperator(Or)
	assert.Equal(t, Or, c.State().Operator)
	c.SetOperator(And)
	assert.NotContains(t, ParseQuery(c.Query()), "operator")

	c.SetFilter("createdAt", "2024-03-01", "2024-03-31")
	q := ParseQuery(c.Query())
	assert.Equal(t, "2024-03-01", q.Get("from"))
	assert.Equal(t, "2024-03-31", q.Get("to"))
}

func TestController_ColumnStateStaysLocal(t *testing.T) {
	rec := &navRecorder{}
	c := NewController(testSchema(), "", rec.navigate)

	c.SetColumnVisibility("title", false)
	c.SetColumnPinning("code", PinLeft)
	c.SetColumnPinning("priority", PinRight)
	c.SetColumnPinning("priority", PinNone)

	s := c.State()
	assert.False(t, s.Visible("title"))
	assert.True(t, s.Visible("status"))
	assert.Equal(t, map[string]Pin{"code": PinLeft}, s.ColumnPinning)
	assert.Empty(t, rec.queries)
	assert.Equal(t, "", c.Query())
}

func TestController_ApplyView(t *testing.T) {
	c := NewController(testSchema(), "title=old&priority=low&page=3", nil)

	c.ApplyView(ViewConfig{
		ID:            "v1",
		Columns:       []string{"code", "title"},
		ColumnPinning: map[string]Pin{"code": PinLeft, "title": "middle"},
		Operator:      Or,
		Sort:          "status.asc",
		Filters: []ViewFilter{
			{Field: "status", Values: []string{"todo", "nope"}},
			{Field: "unknown", Values: []string{"x"}},
		},
	})

	s := c.State()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "v1", s.ViewID)
	assert.Equal(t, Or, s.Operator)
	assert.Equal(t, []SortItem{{Column: "status", Direction: Asc}}, s.Sort)
	assert.Equal(t, []string{"todo"}, s.Filters["status"].Values)
	_, hasTitle := s.Filter("title")
	assert.False(t, hasTitle)
	_, hasPriority := s.Filter("priority")
	assert.False(t, hasPriority)
	assert.True(t, s.Visible("title"))
	assert.False(t, s.Visible("status"))
	assert.Equal(t, map[string]Pin{"code": PinLeft}, s.ColumnPinning)
}

func TestController_EditingViewDropsViewID(t *testing.T) {
	view := ViewConfig{
		ID:       "v1",
		Operator: Or,
		Sort:     "status.asc",
		Filters:  []ViewFilter{{Field: "status", Values: []string{"todo"}}},
	}
	edits := map[string]func(c *Controller){
		"clear filter":  func(c *Controller) { c.SetFilter("status") },
		"clear filters": func(c *Controller) { c.ClearFilters() },
		"set sort":      func(c *Controller) { c.SetSort("title", Desc) },
		"clear sort":    func(c *Controller) { c.ClearSort() },
		"operator":      func(c *Controller) { c.SetOperator(And) },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			c := NewController(testSchema(), "", nil)
			c.ApplyView(view)
			require.Equal(t, "v1", c.State().ViewID)

			edit(c)
			assert.Empty(t, c.State().ViewID)
			assert.NotContains(t, c.Query(), ParamViewID)
		})
	}

	c := NewController(testSchema(), "", nil)
	c.ApplyView(view)
	c.SetPage(2)
	c.SetPerPage(20)
	assert.Equal(t, "v1", c.State().ViewID)
}

func TestController_Projection(t *testing.T) {
	c := NewController(testSchema(), "page=2", nil)

	p := c.Projection(3)
	assert.Equal(t, 3, p.PageCount)
	assert.True(t, p.CanPreviousPage)
	assert.True(t, p.CanNextPage)

	c.SetPage(3)
	assert.False(t, c.Projection(3).CanNextPage)
}

func TestWithView_QueryParamsWin(t *testing.T) {
	view := ViewConfig{
		ID:       "v1",
		Operator: Or,
		Sort:     "title.asc",
		Filters: []ViewFilter{
			{Field: "status", Values: []string{"todo", "bogus"}},
			{Field: "priority", Values: []string{"high"}},
		},
	}
	values := WithView(ParseQuery("viewId=v1&priority=low&page=2"), testSchema(), view)

	assert.Equal(t, "todo", values.Get("status"))
	assert.Equal(t, "low", values.Get("priority"))
	assert.Equal(t, "title.asc", values.Get("sort"))
	assert.Equal(t, "or", values.Get("operator"))
	assert.Equal(t, "2", values.Get("page"))
}
