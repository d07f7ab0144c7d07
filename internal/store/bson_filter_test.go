package store

import (
	"testing"
	"time"

	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterOf(t *testing.T) {
	assert.Equal(t, bson.D{}, FilterOf(table.Query{}))

	single := FilterOf(table.Query{Conditions: []table.Condition{
		{Fields: []string{"name"}, Op: table.OpContains, Text: "a.b"},
	}})
	assert.Equal(t, bson.D{{Key: "name", Value: bson.D{
		{Key: "$regex", Value: `a\.b`},
		{Key: "$options", Value: "i"},
	}}}, single)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	joined := FilterOf(table.Query{
		Join: table.Or,
		Conditions: []table.Condition{
			{Fields: []string{"industry"}, Op: table.OpIn, Values: []string{"FinTech"}},
			{Fields: []string{"availability"}, Op: table.OpEq, Bool: true},
			{Fields: []string{"createdAt"}, Op: table.OpRange, From: &from},
		},
	})
	assert.Equal(t, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "industry", Value: bson.D{{Key: "$in", Value: []string{"FinTech"}}}}},
		bson.D{{Key: "availability", Value: true}},
		bson.D{{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: from}}}},
	}}}, joined)
}

func TestFilterOf_MultiFieldCondition(t *testing.T) {
	got := FilterOf(table.Query{Conditions: []table.Condition{
		{Fields: []string{"name", "email"}, Op: table.OpContains, Text: "x"},
		{Fields: []string{"role"}, Op: table.OpIn, Values: []string{"Admin"}},
	}})
	expr := bson.D{{Key: "$regex", Value: "x"}, {Key: "$options", Value: "i"}}
	assert.Equal(t, bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: expr}},
			bson.D{{Key: "email", Value: expr}},
		}}},
		bson.D{{Key: "role", Value: bson.D{{Key: "$in", Value: []string{"Admin"}}}}},
	}}}, got)
}

func TestSortOf(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, SortOf(nil))
	assert.Equal(t, bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "name", Value: 1},
		{Key: "_id", Value: 1},
	}, SortOf([]table.SortItem{
		{Column: "createdAt", Direction: table.Desc},
		{Column: "_id", Direction: table.Desc},
		{Column: "name", Direction: table.Asc},
	}))
}
