package logic

import (
	"context"
	"fmt"
	"slices"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/table"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ViewLogic 保存视图逻辑
type ViewLogic struct {
	ctx context.Context
}

// NewViewLogic 创建保存视图逻辑
func NewViewLogic(c *fiber.Ctx) *ViewLogic {
	return &ViewLogic{ctx: c.UserContext()}
}

// List 列出视图，tableKey 不为空时只返回该表及通用视图
func (l *ViewLogic) List(tableKey string) ([]model.View, error) {
	views, err := svc.Ctx.Views.List(l.ctx, tableKey)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch views", err)
	}
	return views, nil
}

// Get 获取视图，非法 id 视为不存在
func (l *ViewLogic) Get(id string) (*model.View, error) {
	if !utils.IsUUID(id) {
		return nil, apperr.ErrViewNotFound
	}
	v, err := svc.Ctx.Views.Get(l.ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.ErrViewNotFound, "Failed to fetch view")
	}
	return v, nil
}

// Create 新建视图，未指定列时使用默认列
func (l *ViewLogic) Create(req *types.SaveViewRequest) (*model.View, error) {
	if err := l.check(req); err != nil {
		return nil, err
	}

	v := &model.View{
		Name:          req.Name,
		Columns:       datatypes.JSONSlice[string](slices.Clone(model.DefaultViewColumns)),
		ColumnPinning: datatypes.NewJSONType(map[string]string{}),
		FilterParams:  datatypes.NewJSONType(model.FilterParams{Operator: string(table.And)}),
	}
	l.apply(v, req)

	if err := svc.Ctx.Views.Create(l.ctx, v); err != nil {
		return nil, apperr.Internal("Failed to create view", err)
	}
	return v, nil
}

// Update 原地更新视图，请求中未提供的部分保持不变
func (l *ViewLogic) Update(id string, req *types.SaveViewRequest) (*model.View, error) {
	if err := l.check(req); err != nil {
		return nil, err
	}

	v, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	l.apply(v, req)

	if err := svc.Ctx.Views.Update(l.ctx, v); err != nil {
		return nil, storeErr(err, apperr.ErrViewNotFound, "Failed to update view")
	}
	return v, nil
}

// Delete 删除视图
func (l *ViewLogic) Delete(id string) error {
	if err := svc.Ctx.Views.Delete(l.ctx, id); err != nil {
		return storeErr(err, apperr.ErrViewNotFound, "Failed to delete view")
	}
	return nil
}

// check 校验请求，table 必须是已注册的实体
func (l *ViewLogic) check(req *types.SaveViewRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.Table != nil && *req.Table != "" {
		if _, ok := svc.Ctx.Registry.Get(*req.Table); !ok {
			msg := fmt.Sprintf("Unknown table %q", *req.Table)
			return apperr.Validation(msg, apperr.Issue{Path: "table", Message: msg})
		}
	}
	return nil
}

func (l *ViewLogic) apply(v *model.View, req *types.SaveViewRequest) {
	v.Name = req.Name
	if req.Table != nil {
		v.Table = *req.Table
	}
	if req.Columns != nil {
		v.Columns = datatypes.JSONSlice[string](req.Columns)
	}
	if req.ColumnPinning != nil {
		v.ColumnPinning = datatypes.NewJSONType(req.ColumnPinning)
	}
	if fp := req.FilterParams; fp != nil {
		params := v.FilterParams.Data()
		if fp.Operator != "" {
			params.Operator = fp.Operator
		}
		if fp.Sort != "" {
			params.Sort = fp.Sort
		}
		if fp.Filters != nil {
			params.Filters = make([]model.ViewFilter, 0, len(fp.Filters))
			for _, f := range fp.Filters {
				params.Filters = append(params.Filters, model.ViewFilter{
					ID:       f.ID,
					Field:    f.Field,
					Value:    f.Value,
					Operator: f.Operator,
				})
			}
		}
		v.FilterParams = datatypes.NewJSONType(params)
	}
}

// ViewConfigOf 把保存视图转换为表格控制器可应用的配置。
// 过滤条件的文本运算符不参与匹配，统一按字段类型处理。
func ViewConfigOf(v *model.View) table.ViewConfig {
	params := v.FilterParams.Data()
	cfg := table.ViewConfig{
		ID:            v.ID,
		Columns:       []string(v.Columns),
		ColumnPinning: map[string]table.Pin{},
		Operator:      table.Operator(params.Operator),
		Sort:          params.Sort,
	}
	for col, pin := range v.ColumnPinning.Data() {
		cfg.ColumnPinning[col] = table.Pin(pin)
	}
	for _, f := range params.Filters {
		cfg.Filters = append(cfg.Filters, table.ViewFilter{Field: f.Field, Values: f.Value})
	}
	return cfg
}
