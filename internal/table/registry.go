package table

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Schema 单个实体的表格声明
type Schema struct {
	Entity         string
	Fields         []FilterField
	Sortable       []string
	DefaultSort    []SortItem
	DefaultPerPage int
	MaxPerPage     int
	// Columns 可展示的列，按默认顺序排列
	Columns []string
}

// Field 按参数名查找过滤字段
func (s *Schema) Field(path string) (FilterField, bool) {
	for _, f := range s.Fields {
		if f.Path() == path {
			return f, true
		}
	}
	return FilterField{}, false
}

// DateField 日期区间字段，每个实体最多一个
func (s *Schema) DateField() (FilterField, bool) {
	for _, f := range s.Fields {
		if f.Kind == KindDate {
			return f, true
		}
	}
	return FilterField{}, false
}

// IsSortable 判断列是否可排序
func (s *Schema) IsSortable(column string) bool {
	for _, c := range s.Sortable {
		if c == column {
			return true
		}
	}
	return false
}

// PageLimits 默认与最大分页大小
func (s *Schema) PageLimits() (def, max int) {
	def, max = s.DefaultPerPage, s.MaxPerPage
	if max <= 0 {
		max = MaxPerPage
	}
	if def <= 0 {
		def = DefaultPerPage
	}
	if def > max {
		def = max
	}
	return def, max
}

// Validate 检查声明是否自洽
func (s *Schema) Validate() error {
	if s.Entity == "" {
		return fmt.Errorf("schema entity is empty")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	dates := 0
	for _, f := range s.Fields {
		if f.Value == "" {
			return fmt.Errorf("%s: field without value", s.Entity)
		}
		path := f.Path()
		if isReserved(path) {
			return fmt.Errorf("%s: field %q collides with a reserved parameter", s.Entity, path)
		}
		if _, ok := seen[path]; ok {
			return fmt.Errorf("%s: duplicate field %q", s.Entity, path)
		}
		seen[path] = struct{}{}

		switch f.Kind {
		case KindEnum:
			if len(f.Options) == 0 {
				return fmt.Errorf("%s: enum field %q has no options", s.Entity, path)
			}
			for _, o := range f.Options {
				if o.Value == "" || strings.Contains(o.Value, ValueSeparator) {
					return fmt.Errorf("%s: field %q has invalid option %q", s.Entity, path, o.Value)
				}
			}
		case KindDate:
			dates++
		}
	}
	if dates > 1 {
		return fmt.Errorf("%s: more than one date range field", s.Entity)
	}
	for _, item := range s.DefaultSort {
		if !s.IsSortable(item.Column) {
			return fmt.Errorf("%s: default sort column %q is not sortable", s.Entity, item.Column)
		}
	}
	return nil
}

// Registry 实体表格声明注册表，构建后只读
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry 创建注册表
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.schemas[s.Entity]; ok {
			return nil, fmt.Errorf("duplicate schema %q", s.Entity)
		}
		r.schemas[s.Entity] = s
	}
	return r, nil
}

// MustRegistry 创建注册表，声明错误时 panic
func MustRegistry(schemas ...*Schema) *Registry {
	r, err := NewRegistry(schemas...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get 获取实体声明
func (r *Registry) Get(entity string) (*Schema, bool) {
	s, ok := r.schemas[entity]
	return s, ok
}

// Entities 已注册的实体名，按字母排序
func (r *Registry) Entities() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
