package table

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Ravenry/kacamerah/common/utils"
)

// 保留的查询参数
const (
	ParamPage     = "page"
	ParamPerPage  = "per_page"
	ParamSort     = "sort"
	ParamOperator = "operator"
	ParamViewID   = "viewId"
	ParamFrom     = "from"
	ParamTo       = "to"
)

// ValueSeparator 枚举多选值在参数中的分隔符
const ValueSeparator = "."

// sortSeparator 多列排序之间的分隔符
const sortSeparator = ","

func isReserved(key string) bool {
	switch key {
	case ParamPage, ParamPerPage, ParamSort, ParamOperator, ParamViewID, ParamFrom, ParamTo:
		return true
	}
	return false
}

// Patch 查询参数补丁，空字符串表示删除该参数
type Patch map[string]string

// ApplyQuery 在现有查询串上应用补丁，未涉及的参数原样保留。
// 结果按参数名排序，相同输入总是得到相同输出；无法解析的片段视为不存在。
func ApplyQuery(raw string, patch Patch) string {
	values := ParseQuery(raw)
	for key, value := range patch {
		if key == "" {
			continue
		}
		if value == "" {
			values.Del(key)
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}

// ParseQuery 宽松解析查询串，跳过无法解析的片段
func ParseQuery(raw string) url.Values {
	raw = strings.TrimPrefix(raw, "?")
	// ParseQuery 遇到错误时仍返回已解析的部分
	values, _ := url.ParseQuery(raw)
	if values == nil {
		values = url.Values{}
	}
	return values
}

// Decode 从查询参数得到规范化的表格状态
func Decode(values url.Values, schema *Schema) State {
	def, max := schema.PageLimits()
	state := State{
		Page:     1,
		PerPage:  def,
		Operator: And,
		Filters:  map[string]FilterValue{},
		ViewID:   strings.TrimSpace(values.Get(ParamViewID)),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && n > 0 {
		state.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPerPage))); err == nil && n > 0 {
		state.PerPage = min(n, max)
	}
	state.Page = min(state.Page, MaxPage(state.PerPage))
	if strings.EqualFold(strings.TrimSpace(values.Get(ParamOperator)), string(Or)) {
		state.Operator = Or
	}

	state.Sort = decodeSort(values.Get(ParamSort), schema)
	if len(state.Sort) == 0 && len(schema.DefaultSort) > 0 {
		state.Sort = append([]SortItem(nil), schema.DefaultSort...)
	}

	for _, f := range schema.Fields {
		if v, ok := decodeFilter(values, f); ok {
			state.Filters[f.Path()] = v
		}
	}
	return state
}

func decodeSort(raw string, schema *Schema) []SortItem {
	var items []SortItem
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, sortSeparator) {
		item, ok := ParseSortItem(strings.TrimSpace(part))
		if !ok || !schema.IsSortable(item.Column) {
			continue
		}
		if _, dup := seen[item.Column]; dup {
			continue
		}
		seen[item.Column] = struct{}{}
		items = append(items, item)
	}
	return items
}

func decodeFilter(values url.Values, f FilterField) (FilterValue, bool) {
	switch f.Kind {
	case KindEnum:
		raw := values.Get(f.Path())
		if raw == "" {
			return FilterValue{}, false
		}
		kept := f.keepOptions(strings.Split(raw, ValueSeparator))
		if len(kept) == 0 {
			return FilterValue{}, false
		}
		return FilterValue{Values: kept}, true
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(values.Get(f.Path())))
		if err != nil {
			return FilterValue{}, false
		}
		return FilterValue{Values: []string{strconv.FormatBool(b)}}, true
	case KindDate:
		v := FilterValue{
			From: normalizeDate(values.Get(ParamFrom)),
			To:   normalizeDate(values.Get(ParamTo)),
		}
		return v, !v.IsZero()
	default:
		text := strings.TrimSpace(values.Get(f.Path()))
		if text == "" {
			return FilterValue{}, false
		}
		return FilterValue{Text: text}, true
	}
}

func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return ""
	}
	return utils.FormatDate(t)
}

// Encode 把状态编码为查询参数，列可见性与固定不进入 URL
func Encode(state State, schema *Schema) url.Values {
	values := url.Values{}
	if state.Page > 0 {
		values.Set(ParamPage, strconv.Itoa(state.Page))
	}
	if state.PerPage > 0 {
		values.Set(ParamPerPage, strconv.Itoa(state.PerPage))
	}
	if s := encodeSort(state.Sort); s != "" {
		values.Set(ParamSort, s)
	}
	if state.Operator == Or {
		values.Set(ParamOperator, string(Or))
	}
	if state.ViewID != "" {
		values.Set(ParamViewID, state.ViewID)
	}
	for _, f := range schema.Fields {
		v, ok := state.Filter(f.Path())
		if !ok {
			continue
		}
		for key, value := range encodeFilter(f, v) {
			if value != "" {
				values.Set(key, value)
			}
		}
	}
	return values
}

func encodeSort(items []SortItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, sortSeparator)
}

// encodeFilter 单个字段过滤值对应的参数，值为空表示删除
func encodeFilter(f FilterField, v FilterValue) Patch {
	switch f.Kind {
	case KindEnum:
		return Patch{f.Path(): strings.Join(f.keepOptions(v.Values), ValueSeparator)}
	case KindBool:
		if len(v.Values) == 0 {
			return Patch{f.Path(): ""}
		}
		b, err := strconv.ParseBool(v.Values[0])
		if err != nil {
			return Patch{f.Path(): ""}
		}
		return Patch{f.Path(): strconv.FormatBool(b)}
	case KindDate:
		return Patch{ParamFrom: normalizeDate(v.From), ParamTo: normalizeDate(v.To)}
	default:
		text := strings.TrimSpace(v.Text)
		if text == "" && len(v.Values) > 0 {
			text = strings.TrimSpace(v.Values[0])
		}
		return Patch{f.Path(): text}
	}
}
