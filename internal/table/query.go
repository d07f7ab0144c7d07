package table

import (
	"strconv"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
)

// Op 条件类型
type Op string

const (
	OpContains Op = "contains" // 文本模糊匹配，大小写不敏感
	OpIn       Op = "in"       // 枚举集合
	OpEq       Op = "eq"       // 布尔等值
	OpRange    Op = "range"    // 日期区间，闭区间
)

// Condition 单个查询条件，Fields 多于一个时任一字段满足即可
type Condition struct {
	Fields []string
	Op     Op
	Text   string
	Values []string
	Bool   bool
	From   *time.Time
	To     *time.Time
}

// Query 存储层无关的查询描述
type Query struct {
	Conditions []Condition
	Join       Operator
	Sort       []SortItem
	Offset     int
	Limit      int
}

// Query 把状态转换为查询描述，条件按字段声明顺序排列
func (s State) Query(schema *Schema) Query {
	q := Query{
		Join:   s.Operator,
		Sort:   append([]SortItem(nil), s.Sort...),
		Offset: s.Offset(),
		Limit:  s.PerPage,
	}
	if q.Join != Or {
		q.Join = And
	}
	for _, f := range schema.Fields {
		v, ok := s.Filter(f.Path())
		if !ok {
			continue
		}
		if cond, ok := conditionOf(f, v); ok {
			q.Conditions = append(q.Conditions, cond)
		}
	}
	return q
}

func conditionOf(f FilterField, v FilterValue) (Condition, bool) {
	cond := Condition{Fields: f.Targets()}
	switch f.Kind {
	case KindEnum:
		cond.Op = OpIn
		cond.Values = f.keepOptions(v.Values)
		return cond, len(cond.Values) > 0
	case KindBool:
		if len(v.Values) == 0 {
			return cond, false
		}
		b, err := strconv.ParseBool(v.Values[0])
		if err != nil {
			return cond, false
		}
		cond.Op = OpEq
		cond.Bool = b
		return cond, true
	case KindDate:
		cond.Op = OpRange
		if t, err := utils.ParseDate(v.From); err == nil {
			from := utils.StartOfDay(t)
			cond.From = &from
		}
		if t, err := utils.ParseDate(v.To); err == nil {
			to := utils.EndOfDay(t)
			cond.To = &to
		}
		return cond, cond.From != nil || cond.To != nil
	default:
		cond.Op = OpContains
		cond.Text = v.Text
		return cond, v.Text != ""
	}
}

// Page 查询结果
type Page[T any] struct {
	Rows  []T
	Total int64
}
