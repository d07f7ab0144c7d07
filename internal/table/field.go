package table

import (
	"strings"
)

// Kind 过滤字段类型
type Kind int

const (
	KindText Kind = iota
	KindEnum
	KindDate
	KindBool
)

// String 返回字段类型名称
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEnum:
		return "enum"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// MarshalText 以名称形式序列化
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Option 枚举选项
type Option struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	WithCount bool   `json:"withCount,omitempty"`
}

// Options 由取值列表生成同名选项
func Options(values ...string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}

// CountedOptions 生成带计数的选项
func CountedOptions(values ...string) []Option {
	opts := Options(values...)
	for i := range opts {
		opts[i].WithCount = true
	}
	return opts
}

// FilterField 可过滤字段声明
type FilterField struct {
	Label       string   `json:"label"`
	Value       string   `json:"value"`
	SubField    string   `json:"subField,omitempty"`
	Kind        Kind     `json:"kind"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	// Columns 实际查询的存储路径，多个时任一匹配即可，为空时使用 Path()
	Columns []string `json:"-"`
}

// Path 查询参数名，带子字段时为 value.subField
func (f FilterField) Path() string {
	if f.SubField == "" {
		return f.Value
	}
	return f.Value + "." + f.SubField
}

// Targets 存储路径
func (f FilterField) Targets() []string {
	if len(f.Columns) > 0 {
		return f.Columns
	}
	return []string{f.Path()}
}

// HasOption 判断取值是否在选项集合中
func (f FilterField) HasOption(v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// OptionValues 选项取值列表
func (f FilterField) OptionValues() []string {
	values := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		values = append(values, o.Value)
	}
	return values
}

// Counted 是否有需要统计数量的选项
func (f FilterField) Counted() bool {
	for _, o := range f.Options {
		if o.WithCount {
			return true
		}
	}
	return false
}

// keepOptions 只保留合法选项，去重并保持顺序
func (f FilterField) keepOptions(values []string) []string {
	var kept []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || !f.HasOption(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		kept = append(kept, v)
	}
	return kept
}
