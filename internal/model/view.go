package model

import (
	"gorm.io/datatypes"
)

// DefaultViewColumns 未指定列时保存视图使用的默认列
var DefaultViewColumns = []string{"code", "title", "status", "priority"}

// ViewFilter 视图中的过滤条件
type ViewFilter struct {
	ID       string   `json:"id"`
	Field    string   `json:"field"`
	Value    []string `json:"value"`
	Operator string   `json:"operator"`
}

// FilterParams 视图的过滤与排序参数
type FilterParams struct {
	Operator string       `json:"operator,omitempty"`
	Sort     string       `json:"sort,omitempty"`
	Filters  []ViewFilter `json:"filters,omitempty"`
}

// View 保存的表格视图
type View struct {
	BaseModel
	Name          string                                `gorm:"size:256;not null" json:"name"`
	Table         string                                `gorm:"column:table_key;size:50;index" json:"table,omitempty"`
	Columns       datatypes.JSONSlice[string]           `json:"columns"`
	ColumnPinning datatypes.JSONType[map[string]string] `json:"columnPinning"`
	FilterParams  datatypes.JSONType[FilterParams]      `json:"filterParams"`
}

// TableName 表名
func (View) TableName() string {
	return "views"
}
