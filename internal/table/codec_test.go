package table

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var taskStatuses = []string{"todo", "in-progress", "done", "canceled"}

func testSchema() *Schema {
	return &Schema{
		Entity: "tasks",
		Fields: []FilterField{
			{Label: "Title", Value: "title", Kind: KindText},
			{Label: "Status", Value: "status", Kind: KindEnum, Options: CountedOptions(taskStatuses...)},
			{Label: "Priority", Value: "priority", Kind: KindEnum, Options: Options("low", "medium", "high")},
			{Label: "Location", Value: "profile", SubField: "location", Kind: KindText},
			{Label: "Available", Value: "availability", Kind: KindBool},
			{Label: "Created", Value: "createdAt", Kind: KindDate},
		},
		Sortable:    []string{"title", "status", "priority", "createdAt", "profile.location"},
		DefaultSort: []SortItem{{Column: "createdAt", Direction: Desc}},
		Columns:     []string{"code", "title", "status", "priority", "createdAt"},
	}
}

func TestApplyQuery_PreservesUntouchedParams(t *testing.T) {
	got := ApplyQuery("b=2&a=1&page=3", Patch{"page": "1"})
	assert.Equal(t, "a=1&b=2&page=1", got)
}

func TestApplyQuery_RemovesEmptyValues(t *testing.T) {
	got := ApplyQuery("?status=todo&page=2", Patch{"status": ""})
	assert.Equal(t, "page=2", got)
}

func TestApplyQuery_MalformedInputIsTolerated(t *testing.T) {
	got := ApplyQuery("%zz&title=abc", Patch{"page": "2"})
	assert.Equal(t, "page=2&title=abc", got)

	assert.Equal(t, "page=1", ApplyQuery("%%%", Patch{"page": "1"}))
}

func TestApplyQuery_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "page", "sort", "status", "profile.location"}), 0, 6).Draw(t, "keys")
		raw := url.Values{}
		for i, k := range keys {
			raw.Add(k, rapid.StringMatching(`[a-z0-9 .]{0,6}`).Draw(t, "v"+strconv.Itoa(i)))
		}
		patch := rapid.MapOf(
			rapid.SampledFrom([]string{"a", "page", "status", "new"}),
			rapid.StringMatching(`[a-z0-9]{0,4}`),
		).Draw(t, "patch")

		once := ApplyQuery(raw.Encode(), Patch(patch))
		twice := ApplyQuery(once, Patch(patch))
		if once != twice {
			t.Fatalf("not idempotent: %q != %q", once, twice)
		}
		for k, v := range patch {
			got := ParseQuery(once).Get(k)
			if got != v {
				t.Fatalf("key %q = %q, want %q", k, got, v)
			}
		}
	})
}

func TestDecode_Defaults(t *testing.T) {
	s := Decode(url.Values{}, testSchema())

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPerPage, s.PerPage)
	assert.Equal(t, And, s.Operator)
	assert.Equal(t, []SortItem{{Column: "createdAt", Direction: Desc}}, s.Sort)
	assert.Empty(t, s.Filters)
}

func TestDecode_ClampsPaging(t *testing.T) {
	schema := testSchema()

	s := Decode(ParseQuery("page=-4&per_page=1000"), schema)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, MaxPerPage, s.PerPage)

	s = Decode(ParseQuery("page=abc&per_page=0"), schema)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPerPage, s.PerPage)
}

func TestDecode_HugePageStaysPastTheEnd(t *testing.T) {
	schema := testSchema()

	s := Decode(ParseQuery("page=922337203685477582&per_page=10"), schema)
	assert.Equal(t, MaxPage(10), s.Page)
	assert.Positive(t, s.Offset())
	assert.Greater(t, s.Offset(), 1_000_000)

	rapid.Check(t, func(t *rapid.T) {
		page := rapid.IntRange(1, math.MaxInt).Draw(t, "page")
		perPage := rapid.IntRange(1, MaxPerPage).Draw(t, "perPage")
		q := url.Values{ParamPage: {strconv.Itoa(page)}, ParamPerPage: {strconv.Itoa(perPage)}}
		s := Decode(q, schema)
		if page > 1 && s.Offset() <= 0 {
			t.Fatalf("page %d per_page %d: offset %d", page, perPage, s.Offset())
		}
	})
}

func TestDecode_UnknownSortFallsBackToDefault(t *testing.T) {
	s := Decode(ParseQuery("sort=password.asc"), testSchema())
	assert.Equal(t, []SortItem{{Column: "createdAt", Direction: Desc}}, s.Sort)

	s = Decode(ParseQuery("sort=title.sideways"), testSchema())
	assert.Equal(t, []SortItem{{Column: "createdAt", Direction: Desc}}, s.Sort)
}

func TestDecode_DottedSortColumn(t *testing.T) {
	s := Decode(ParseQuery("sort=profile.location.asc"), testSchema())
	assert.Equal(t, []SortItem{{Column: "profile.location", Direction: Asc}}, s.Sort)
}

func TestDecode_EnumValuesRestrictedToOptions(t *testing.T) {
	s := Decode(ParseQuery("status=todo.bogus.done.todo"), testSchema())
	v, ok := s.Filter("status")
	require.True(t, ok)
	assert.Equal(t, []string{"todo", "done"}, v.Values)

	s = Decode(ParseQuery("status=bogus"), testSchema())
	_, ok = s.Filter("status")
	assert.False(t, ok)
}

func TestDecode_SubFieldAndBoolAndDate(t *testing.T) {
	s := Decode(ParseQuery("profile.location=Jakarta&availability=yes&from=2024-01-02&to=junk"), testSchema())

	loc, ok := s.Filter("profile.location")
	require.True(t, ok)
	assert.Equal(t, "Jakarta", loc.Text)

	_, ok = s.Filter("availability")
	assert.False(t, ok)

	created, ok := s.Filter("createdAt")
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", created.From)
	assert.Empty(t, created.To)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	schema := testSchema()
	rapid.Check(t, func(t *rapid.T) {
		q := url.Values{}
		q.Set(ParamPage, strconv.Itoa(rapid.IntRange(-5, 50).Draw(t, "page")))
		q.Set(ParamPerPage, strconv.Itoa(rapid.IntRange(-5, 500).Draw(t, "perPage")))
		q.Set(ParamSort, rapid.SampledFrom([]string{"", "title.asc", "status.desc", "nope.asc", "profile.location.desc"}).Draw(t, "sort"))
		q.Set(ParamOperator, rapid.SampledFrom([]string{"", "and", "or", "xor"}).Draw(t, "operator"))
		statuses := rapid.SliceOfN(rapid.SampledFrom(append([]string{"bogus"}, taskStatuses...)), 0, 5).Draw(t, "status")
		for i, v := range statuses {
			if i == 0 {
				q.Set("status", v)
			} else {
				q.Set("status", q.Get("status")+ValueSeparator+v)
			}
		}
		q.Set("title", rapid.StringMatching(`[a-zA-Z ]{0,8}`).Draw(t, "title"))

		first := Decode(q, schema)
		second := Decode(Encode(first, schema), schema)
		assert.Equal(t, first, second)
		assert.GreaterOrEqual(t, first.Page, 1)
		assert.GreaterOrEqual(t, first.PerPage, 1)
		assert.LessOrEqual(t, first.PerPage, MaxPerPage)
	})
}

func TestEncode_SkipsLocalColumnState(t *testing.T) {
	s := Decode(url.Values{}, testSchema())
	s.ColumnVisibility = map[string]bool{"title": false}
	s.ColumnPinning = map[string]Pin{"code": PinLeft}

	values := Encode(s, testSchema())
	assert.Equal(t, "page=1&per_page=10&sort=createdAt.desc", values.Encode())
}
