package table

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
)

// Navigator 接收新的查询串，通常触发一次新的数据拉取
type Navigator func(query string)

// ViewFilter 保存视图中的单个过滤条件
type ViewFilter struct {
	Field  string
	Values []string
}

// ViewConfig 应用到表格上的保存视图
type ViewConfig struct {
	ID            string
	Columns       []string
	ColumnPinning map[string]Pin
	Operator      Operator
	Sort          string
	Filters       []ViewFilter
}

// Projection 渲染所需的表格投影
type Projection struct {
	State           State `json:"state"`
	PageCount       int   `json:"pageCount"`
	CanPreviousPage bool  `json:"canPreviousPage"`
	CanNextPage     bool  `json:"canNextPage"`
}

// Controller 表格状态控制器。
// 状态始终从查询串重新推导，控制器自身不持有行数据。
type Controller struct {
	schema     *Schema
	query      string
	state      State
	navigate   Navigator
	visibility map[string]bool
	pinning    map[string]Pin
}

// NewController 创建控制器
func NewController(schema *Schema, query string, navigate Navigator) *Controller {
	c := &Controller{
		schema:     schema,
		navigate:   navigate,
		visibility: map[string]bool{},
		pinning:    map[string]Pin{},
	}
	c.sync(ApplyQuery(query, nil))
	return c
}

// Schema 实体声明
func (c *Controller) Schema() *Schema {
	return c.schema
}

// Query 当前查询串
func (c *Controller) Query() string {
	return c.query
}

// State 当前状态的副本，包含本地的列配置
func (c *Controller) State() State {
	s := c.state.Clone()
	s.ColumnVisibility = maps.Clone(c.visibility)
	s.ColumnPinning = maps.Clone(c.pinning)
	return s
}

// Sync 外部导航（如后退）后同步查询串，不触发导航
func (c *Controller) Sync(query string) {
	c.sync(ApplyQuery(query, nil))
}

func (c *Controller) sync(query string) {
	c.query = query
	c.state = Decode(ParseQuery(query), c.schema)
}

// apply 应用补丁、重新推导状态并通知导航
func (c *Controller) apply(patch Patch) {
	c.sync(ApplyQuery(c.query, patch))
	if c.navigate != nil {
		c.navigate(c.query)
	}
}

// modify 修改过滤、排序或逻辑关系，视图被改动后不再携带 viewId
func (c *Controller) modify(patch Patch) {
	patch[ParamViewID] = ""
	patch[ParamPage] = "1"
	c.apply(patch)
}

// SetPage 切换页码
func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.apply(Patch{ParamPage: strconv.Itoa(page)})
}

// SetPerPage 修改分页大小，同时回到第一页
func (c *Controller) SetPerPage(perPage int) {
	def, max := c.schema.PageLimits()
	if perPage < 1 {
		perPage = def
	}
	c.apply(Patch{
		ParamPerPage: strconv.Itoa(min(perPage, max)),
		ParamPage:    "1",
	})
}

// SetSort 设置唯一排序列，不可排序的列直接忽略
func (c *Controller) SetSort(column string, dir Direction) bool {
	if !c.schema.IsSortable(column) || !dir.Valid() {
		return false
	}
	c.modify(Patch{ParamSort: SortItem{Column: column, Direction: dir}.String()})
	return true
}

// ClearSort 恢复默认排序
func (c *Controller) ClearSort() {
	c.modify(Patch{ParamSort: ""})
}

// SetFilter 设置字段过滤值，空值清除该过滤。
// 枚举字段只保留合法选项；日期字段依次为 from、to。
func (c *Controller) SetFilter(path string, values ...string) bool {
	f, ok := c.schema.Field(path)
	if !ok {
		return false
	}
	c.modify(encodeFilter(f, filterValueOf(f, values)))
	return true
}

// ClearFilters 清除所有过滤条件
func (c *Controller) ClearFilters() {
	patch := Patch{}
	for _, f := range c.schema.Fields {
		for key := range encodeFilter(f, FilterValue{}) {
			patch[key] = ""
		}
	}
	c.modify(patch)
}

// SetOperator 设置过滤条件之间的逻辑关系
func (c *Controller) SetOperator(op Operator) {
	value := ""
	if op == Or {
		value = string(Or)
	}
	c.modify(Patch{ParamOperator: value})
}

// SetColumnVisibility 本地列显示配置，不写入 URL
func (c *Controller) SetColumnVisibility(column string, visible bool) {
	c.visibility[column] = visible
}

// SetColumnPinning 本地列固定配置，不写入 URL
func (c *Controller) SetColumnPinning(column string, pin Pin) {
	if pin == PinNone {
		delete(c.pinning, column)
		return
	}
	c.pinning[column] = pin
}

// ApplyView 用保存视图替换过滤、排序、逻辑关系与列配置
func (c *Controller) ApplyView(v ViewConfig) {
	patch := viewPatch(c.schema, v)
	patch[ParamPage] = "1"

	if len(v.Columns) > 0 {
		visibility := make(map[string]bool, len(c.schema.Columns))
		for _, col := range c.schema.Columns {
			visibility[col] = false
		}
		for _, col := range v.Columns {
			visibility[col] = true
		}
		c.visibility = visibility
	}
	c.pinning = map[string]Pin{}
	for col, pin := range v.ColumnPinning {
		if pin == PinLeft || pin == PinRight {
			c.pinning[col] = pin
		}
	}
	c.apply(patch)
}

// viewPatch 保存视图对应的参数补丁，清除视图未涉及的过滤条件
func viewPatch(schema *Schema, v ViewConfig) Patch {
	patch := Patch{
		ParamSort:     "",
		ParamOperator: "",
		ParamViewID:   v.ID,
	}
	for _, f := range schema.Fields {
		for key := range encodeFilter(f, FilterValue{}) {
			patch[key] = ""
		}
	}
	for _, vf := range v.Filters {
		f, ok := schema.Field(vf.Field)
		if !ok {
			continue
		}
		for key, value := range encodeFilter(f, filterValueOf(f, vf.Values)) {
			patch[key] = value
		}
	}
	if item, ok := ParseSortItem(v.Sort); ok && schema.IsSortable(item.Column) {
		patch[ParamSort] = item.String()
	}
	if v.Operator == Or {
		patch[ParamOperator] = string(Or)
	}
	return patch
}

// WithView 用保存视图补齐查询参数，查询中已出现的参数优先
func WithView(values url.Values, schema *Schema, v ViewConfig) url.Values {
	out := make(url.Values, len(values))
	for key, vs := range values {
		out[key] = slices.Clone(vs)
	}
	for key, value := range viewPatch(schema, v) {
		if value == "" || out.Has(key) {
			continue
		}
		out.Set(key, value)
	}
	return out
}

// Projection 结合服务端返回的总页数生成投影
func (c *Controller) Projection(pageCount int) Projection {
	s := c.State()
	return Projection{
		State:           s,
		PageCount:       pageCount,
		CanPreviousPage: s.Page > 1,
		CanNextPage:     s.Page < pageCount,
	}
}

func filterValueOf(f FilterField, values []string) FilterValue {
	switch f.Kind {
	case KindEnum, KindBool:
		return FilterValue{Values: values}
	case KindDate:
		var v FilterValue
		if len(values) > 0 {
			v.From = values[0]
		}
		if len(values) > 1 {
			v.To = values[1]
		}
		return v
	default:
		if len(values) == 0 {
			return FilterValue{}
		}
		return FilterValue{Text: values[0]}
	}
}
