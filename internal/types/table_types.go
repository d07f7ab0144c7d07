package types

import "github.com/Ravenry/kacamerah/internal/table"

// FacetCount 枚举选项的记录数
type FacetCount struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// SchemaInfo 实体的表格声明，供客户端构建过滤器
type SchemaInfo struct {
	Entity      string              `json:"entity"`
	Fields      []table.FilterField `json:"fields"`
	Sortable    []string            `json:"sortable"`
	DefaultSort []string            `json:"defaultSort"`
	Columns     []string            `json:"columns"`
	PerPage     int                 `json:"perPage"`
	MaxPerPage  int                 `json:"maxPerPage"`
}

// NextIDResponse 下一个项目编号
type NextIDResponse struct {
	ProjectID string `json:"project_id"`
}
