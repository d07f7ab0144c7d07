package store

import (
	"regexp"

	"github.com/Ravenry/kacamerah/internal/table"

	"go.mongodb.org/mongo-driver/bson"
)

// FilterOf 把查询描述转换为 MongoDB 过滤文档
func FilterOf(q table.Query) bson.D {
	clauses := make(bson.A, 0, len(q.Conditions))
	for _, cond := range q.Conditions {
		if c := conditionFilter(cond); c != nil {
			clauses = append(clauses, c)
		}
	}
	switch len(clauses) {
	case 0:
		return bson.D{}
	case 1:
		return clauses[0].(bson.D)
	}
	op := "$and"
	if q.Join == table.Or {
		op = "$or"
	}
	return bson.D{{Key: op, Value: clauses}}
}

func conditionFilter(cond table.Condition) bson.D {
	var expr any
	switch cond.Op {
	case table.OpContains:
		expr = bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(cond.Text)},
			{Key: "$options", Value: "i"},
		}
	case table.OpIn:
		expr = bson.D{{Key: "$in", Value: cond.Values}}
	case table.OpEq:
		expr = cond.Bool
	case table.OpRange:
		rng := bson.D{}
		if cond.From != nil {
			rng = append(rng, bson.E{Key: "$gte", Value: *cond.From})
		}
		if cond.To != nil {
			rng = append(rng, bson.E{Key: "$lte", Value: *cond.To})
		}
		expr = rng
	default:
		return nil
	}

	if len(cond.Fields) == 1 {
		return bson.D{{Key: cond.Fields[0], Value: expr}}
	}
	alts := make(bson.A, 0, len(cond.Fields))
	for _, f := range cond.Fields {
		alts = append(alts, bson.D{{Key: f, Value: expr}})
	}
	return bson.D{{Key: "$or", Value: alts}}
}

// SortOf 排序文档，最后按 _id 保证翻页稳定
func SortOf(items []table.SortItem) bson.D {
	sort := make(bson.D, 0, len(items)+1)
	for _, item := range items {
		if item.Column == "_id" {
			continue
		}
		dir := 1
		if item.Direction == table.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: item.Column, Value: dir})
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}
