package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"

	"github.com/gofiber/fiber/v2"
)

// TableList 已注册的表格
func TableList(c *fiber.Ctx) error {
	return response.Success(c, logic.NewFacetLogic(c).Tables())
}

// TableSchema 表格声明
func TableSchema(c *fiber.Ctx) error {
	result, err := logic.NewFacetLogic(c).Schema(c.Params("entity"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// FacetCounts 枚举字段计数
func FacetCounts(entity string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := logic.NewFacetLogic(c).Counts(entity, c.Params("field"))
		if err != nil {
			return fail(c, err)
		}
		return response.Success(c, result)
	}
}
