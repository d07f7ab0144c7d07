package logic

import (
	"context"

	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/cache"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FacetLogic 枚举字段计数与表格声明
type FacetLogic struct {
	ctx context.Context
}

// NewFacetLogic 创建计数逻辑
func NewFacetLogic(c *fiber.Ctx) *FacetLogic {
	return &FacetLogic{ctx: c.UserContext()}
}

// Counts 统计枚举字段每个选项的记录数，按选项声明顺序返回
func (l *FacetLogic) Counts(entity, path string) ([]types.FacetCount, error) {
	schema, err := schemaOf(entity)
	if err != nil {
		return nil, err
	}
	field, ok := schema.Field(path)
	if !ok || !field.Counted() {
		return nil, apperr.NotFound("Unknown facet")
	}

	counts, err := countBy(l.ctx, entity, field.Targets()[0], field.OptionValues())
	if err != nil {
		return nil, err
	}
	out := make([]types.FacetCount, 0, len(field.Options))
	for _, o := range field.Options {
		if !o.WithCount {
			continue
		}
		out = append(out, types.FacetCount{Label: o.Label, Value: o.Value, Count: counts[o.Value]})
	}
	return out, nil
}

// Schema 实体的表格声明
func (l *FacetLogic) Schema(entity string) (*types.SchemaInfo, error) {
	schema, err := schemaOf(entity)
	if err != nil {
		return nil, err
	}
	def, max := schema.PageLimits()
	info := &types.SchemaInfo{
		Entity:      schema.Entity,
		Fields:      schema.Fields,
		Sortable:    schema.Sortable,
		Columns:     schema.Columns,
		PerPage:     def,
		MaxPerPage:  max,
		DefaultSort: make([]string, 0, len(schema.DefaultSort)),
	}
	for _, item := range schema.DefaultSort {
		info.DefaultSort = append(info.DefaultSort, item.String())
	}
	return info, nil
}

// Tables 已注册的实体
func (l *FacetLogic) Tables() []string {
	return svc.Ctx.Registry.Entities()
}

// countBy 按实体分派到对应仓储并缓存统计结果
func countBy(ctx context.Context, entity, column string, values []string) (map[string]int64, error) {
	return cached(ctx, entity, []string{"count", column}, func() (map[string]int64, error) {
		var (
			counts map[string]int64
			err    error
		)
		switch entity {
		case EntityClients:
			counts, err = svc.Ctx.Clients.CountBy(ctx, column, values)
		case EntityFreelancers:
			counts, err = svc.Ctx.Freelancers.CountBy(ctx, column, values)
		case EntityProjects:
			counts, err = svc.Ctx.Projects.CountBy(ctx, column, values)
		case EntityStaff:
			counts, err = svc.Ctx.Staff.CountBy(ctx, column, values)
		case EntityUsers:
			counts, err = svc.Ctx.Users.CountBy(ctx, column, values)
		case EntityTasks:
			counts, err = svc.Ctx.Tasks.CountBy(ctx, column, values)
		default:
			return nil, apperr.NotFound("Unknown table")
		}
		if err != nil {
			return nil, apperr.Internal("Failed to count "+entity, err)
		}
		return counts, nil
	})
}

// cached 读取带版本的缓存，缓存不可用时直接加载
func cached[T any](ctx context.Context, entity string, parts []string, load func() (T, error)) (T, error) {
	version, err := svc.Ctx.Cache.Version(ctx, entity)
	if err != nil {
		logger.Warn("读取缓存版本失败", zap.String("entity", entity), zap.Error(err))
		return load()
	}
	key := cache.Key(entity, version, parts...)

	var v T
	hit, err := svc.Ctx.Cache.Get(ctx, key, &v)
	if err != nil {
		logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return v, nil
	}

	v, err = load()
	if err != nil {
		return v, err
	}
	if err := svc.Ctx.Cache.Set(ctx, key, v, cache.DefaultTTL); err != nil {
		logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
