package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
)

// ViewList 保存视图列表，可按 table 过滤
func ViewList(c *fiber.Ctx) error {
	result, err := logic.NewViewLogic(c).List(c.Query("table"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ViewGet 获取保存视图
func ViewGet(c *fiber.Ctx) error {
	result, err := logic.NewViewLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ViewCreate 创建保存视图
func ViewCreate(c *fiber.Ctx) error {
	var req types.SaveViewRequest
	if err := parse(c, &req, "Invalid view data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewViewLogic(c).Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ViewUpdate 更新保存视图
func ViewUpdate(c *fiber.Ctx) error {
	var req types.SaveViewRequest
	if err := parse(c, &req, "Invalid view data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewViewLogic(c).Update(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ViewDelete 删除保存视图
func ViewDelete(c *fiber.Ctx) error {
	if err := logic.NewViewLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}
