package table

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid 是否为合法方向
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// SortItem 单列排序
type SortItem struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// String 参数形式 column.direction
func (s SortItem) String() string {
	return s.Column + "." + string(s.Direction)
}

// ParseSortItem 解析 column.direction，列名本身可以带点
func ParseSortItem(raw string) (SortItem, bool) {
	idx := strings.LastIndex(raw, ".")
	if idx <= 0 || idx == len(raw)-1 {
		return SortItem{}, false
	}
	item := SortItem{Column: raw[:idx], Direction: Direction(strings.ToLower(raw[idx+1:]))}
	if !item.Direction.Valid() {
		return SortItem{}, false
	}
	return item, true
}

// Operator 多个过滤条件之间的逻辑关系
type Operator string

const (
	And Operator = "and"
	Or  Operator = "or"
)

// Pin 列固定方向
type Pin string

const (
	PinNone  Pin = ""
	PinLeft  Pin = "left"
	PinRight Pin = "right"
)

// FilterValue 单个字段的过滤值
type FilterValue struct {
	Text   string   `json:"text,omitempty"`
	Values []string `json:"values,omitempty"`
	From   string   `json:"from,omitempty"`
	To     string   `json:"to,omitempty"`
}

// IsZero 是否为空过滤
func (v FilterValue) IsZero() bool {
	return v.Text == "" && len(v.Values) == 0 && v.From == "" && v.To == ""
}

// State 表格状态
type State struct {
	Page             int                    `json:"page"`
	PerPage          int                    `json:"perPage"`
	Sort             []SortItem             `json:"sort"`
	Filters          map[string]FilterValue `json:"filters"`
	Operator         Operator               `json:"operator"`
	ViewID           string                 `json:"viewId,omitempty"`
	ColumnVisibility map[string]bool        `json:"columnVisibility,omitempty"`
	ColumnPinning    map[string]Pin         `json:"columnPinning,omitempty"`
}

// MaxPage 偏移量不溢出 int 的最大页码
func MaxPage(perPage int) int {
	if perPage < 1 {
		return math.MaxInt
	}
	return math.MaxInt/perPage + 1
}

// Offset 当前页的起始偏移，超出范围时饱和为 math.MaxInt
func (s State) Offset() int {
	if s.Page < 1 {
		return 0
	}
	if s.Page > MaxPage(s.PerPage) {
		return math.MaxInt
	}
	return (s.Page - 1) * s.PerPage
}

// Filter 获取字段过滤值
func (s State) Filter(path string) (FilterValue, bool) {
	v, ok := s.Filters[path]
	return v, ok && !v.IsZero()
}

// Clone 深拷贝
func (s State) Clone() State {
	out := s
	out.Sort = slices.Clone(s.Sort)
	if s.Filters != nil {
		out.Filters = make(map[string]FilterValue, len(s.Filters))
		for k, v := range s.Filters {
			v.Values = slices.Clone(v.Values)
			out.Filters[k] = v
		}
	}
	out.ColumnVisibility = maps.Clone(s.ColumnVisibility)
	out.ColumnPinning = maps.Clone(s.ColumnPinning)
	return out
}

// Visible 列是否可见，未声明时默认可见
func (s State) Visible(column string) bool {
	visible, ok := s.ColumnVisibility[column]
	return !ok || visible
}

// PageCount 总页数
func PageCount(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
