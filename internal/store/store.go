package store

import (
	"context"
	"errors"

	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/table"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("store: not found")

// Documents 文档集合仓储
type Documents[T any] interface {
	// Find 按查询描述分页查询，Limit 为 0 时返回全部
	Find(ctx context.Context, q table.Query) (table.Page[T], error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]T, error)
	// Insert 写入文档，文档必须已带 _id
	Insert(ctx context.Context, doc *T) error
	Replace(ctx context.Context, id primitive.ObjectID, doc *T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Exists 判断字段取值是否已被其他文档占用
	Exists(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error)
	// CountBy 统计字段各取值的文档数，数组字段按元素统计
	CountBy(ctx context.Context, field string, values []string) (map[string]int64, error)
}

// Records 关系表仓储
type Records[T any] interface {
	Find(ctx context.Context, q table.Query) (table.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	// Delete 删除并返回实际删除的条数
	Delete(ctx context.Context, ids ...string) (int64, error)
	Exists(ctx context.Context, field, value string, excludeID string) (bool, error)
	CountBy(ctx context.Context, field string, values []string) (map[string]int64, error)
}

// Counters 自增序列
type Counters interface {
	// Next 原子自增并返回新值
	Next(ctx context.Context, key string) (int64, error)
	// Current 当前值，不存在时为 0
	Current(ctx context.Context, key string) (int64, error)
}

// Views 保存视图仓储
type Views interface {
	// List 列出视图，table 为空时返回全部
	List(ctx context.Context, table string) ([]model.View, error)
	Get(ctx context.Context, id string) (*model.View, error)
	Create(ctx context.Context, v *model.View) error
	Update(ctx context.Context, v *model.View) error
	Delete(ctx context.Context, id string) error
}
