package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ravenry/kacamerah/internal/table"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDocuments 基于 MongoDB 集合的文档仓储
type MongoDocuments[T any] struct {
	coll *mongo.Collection
}

// NewMongoDocuments 创建文档仓储
func NewMongoDocuments[T any](db *mongo.Database, collection string) *MongoDocuments[T] {
	return &MongoDocuments[T]{coll: db.Collection(collection)}
}

// Find 分页查询
func (r *MongoDocuments[T]) Find(ctx context.Context, q table.Query) (table.Page[T], error) {
	var page table.Page[T]
	filter := FilterOf(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return page, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}

	opts := options.Find().SetSort(SortOf(q.Sort))
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return page, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	rows := make([]T, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return page, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	page.Rows = rows
	page.Total = total
	return page, nil
}

// Get 按 _id 查询
func (r *MongoDocuments[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetMany 按 _id 批量查询，不存在的 id 被忽略
func (r *MongoDocuments[T]) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	docs := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return docs, nil
	}
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Insert 写入文档
func (r *MongoDocuments[T]) Insert(ctx context.Context, doc *T) error {
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

// Replace 整体替换文档
func (r *MongoDocuments[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除文档
func (r *MongoDocuments[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists 判断字段取值是否已被占用
func (r *MongoDocuments[T]) Exists(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.D{{Key: field, Value: value}}
	if !exclude.IsZero() {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: exclude}}})
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountBy 分组统计
func (r *MongoDocuments[T]) CountBy(ctx context.Context, field string, values []string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.D{{Key: "v", Value: "$" + field}}}},
		{{Key: "$unwind", Value: "$v"}},
		{{Key: "$match", Value: bson.D{{Key: "v", Value: bson.D{{Key: "$in", Value: values}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$v"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var groups []struct {
		Value string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(values))
	for _, v := range values {
		counts[v] = 0
	}
	for _, g := range groups {
		counts[g.Value] = g.Count
	}
	return counts, nil
}

// EnsureIndexes 创建集合索引
func (r *MongoDocuments[T]) EnsureIndexes(ctx context.Context, models ...mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := r.coll.Indexes().CreateMany(ctx, models)
	return err
}

// MongoCounters 基于计数器集合的自增序列
type MongoCounters struct {
	coll *mongo.Collection
}

// NewMongoCounters 创建计数器
func NewMongoCounters(db *mongo.Database) *MongoCounters {
	return &MongoCounters{coll: db.Collection("counters")}
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next 原子自增
func (c *MongoCounters) Next(ctx context.Context, key string) (int64, error) {
	var doc counterDoc
	err := c.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: key}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// Current 当前值
func (c *MongoCounters) Current(ctx context.Context, key string) (int64, error) {
	var doc counterDoc
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}
