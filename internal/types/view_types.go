package types

// ViewFilterRequest 视图过滤条件
type ViewFilterRequest struct {
	ID       string   `json:"id" validate:"required"`
	Field    string   `json:"field" validate:"required"`
	Value    []string `json:"value"`
	Operator string   `json:"operator" validate:"required,enum=view_filter_operator"`
}

// FilterParamsRequest 视图过滤参数
type FilterParamsRequest struct {
	Operator string              `json:"operator,omitempty" validate:"omitempty,enum=view_operator"`
	Sort     string              `json:"sort,omitempty"`
	Filters  []ViewFilterRequest `json:"filters,omitempty" validate:"dive"`
}

// SaveViewRequest 新建或更新保存视图
type SaveViewRequest struct {
	Name          string               `json:"name" validate:"required,min=1,max=256"`
	Table         *string              `json:"table,omitempty"`
	Columns       []string             `json:"columns,omitempty"`
	ColumnPinning map[string]string    `json:"columnPinning,omitempty" validate:"omitempty,dive,enum=pin"`
	FilterParams  *FilterParamsRequest `json:"filterParams,omitempty"`
}

// ValidationMessages 字段校验提示
func (SaveViewRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required": "Name is required",
		"name.max":      "Name must be at most 256 characters",
	}
}
