package logic

import (
	"context"
	"errors"
	"net/url"

	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/store"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/table"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ListResult 列表查询结果
type ListResult[T any] struct {
	Rows    []T
	Total   int64
	PerPage int
	State   table.State
}

// schemaOf 获取实体声明
func schemaOf(entity string) (*table.Schema, error) {
	schema, ok := svc.Ctx.Registry.Get(entity)
	if !ok {
		return nil, apperr.NotFound("Unknown table")
	}
	return schema, nil
}

// decodeState 解析列表参数，带 viewId 时用保存视图补齐缺省的过滤与排序
func decodeState(ctx context.Context, entity string, values url.Values) (*table.Schema, table.State, error) {
	schema, err := schemaOf(entity)
	if err != nil {
		return nil, table.State{}, err
	}
	if id := values.Get(table.ParamViewID); id != "" {
		v, err := svc.Ctx.Views.Get(ctx, id)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// 视图已被删除时按普通查询处理
		case err != nil:
			return nil, table.State{}, apperr.Internal("Failed to fetch view", err)
		case v.Table == "" || v.Table == entity:
			values = table.WithView(values, schema, ViewConfigOf(v))
		}
	}
	return schema, table.Decode(values, schema), nil
}

// findOID 解析文档 id，非法 id 视为不存在
func findOID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, notFound
	}
	return oid, nil
}

// storeErr 把仓储错误转换为应用错误
func storeErr(err error, notFound error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return apperr.Internal(msg, err)
}

// touch 实体数据变更后使统计缓存失效
func touch(ctx context.Context, entity string) {
	if err := svc.Ctx.Cache.Bump(ctx, entity); err != nil {
		logger.Warn("缓存版本更新失败", zap.String("entity", entity), zap.Error(err))
	}
}

// validate 校验请求或文档
func validate(v any) error {
	return svc.Ctx.Validator.Struct(v)
}

// refs 把文档 id 去重
func refs(ids ...[]primitive.ObjectID) []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	var out []primitive.ObjectID
	for _, group := range ids {
		for _, id := range group {
			if id.IsZero() {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// namesOf 按 id 建立名称索引
func namesOf[T any](docs []T, idOf func(T) primitive.ObjectID, nameOf func(T) string) map[primitive.ObjectID]string {
	names := make(map[primitive.ObjectID]string, len(docs))
	for _, d := range docs {
		names[idOf(d)] = nameOf(d)
	}
	return names
}

func personRef(names map[primitive.ObjectID]string, id primitive.ObjectID) (model.PersonRef, bool) {
	name, ok := names[id]
	if !ok {
		return model.PersonRef{}, false
	}
	return model.PersonRef{ID: id, Name: name}, true
}
