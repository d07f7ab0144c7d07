package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"

	"github.com/gofiber/fiber/v2"
)

// ClientList 客户列表
func ClientList(c *fiber.Ctx) error {
	result, err := logic.NewClientLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// ClientGet 获取客户
func ClientGet(c *fiber.Ctx) error {
	result, err := logic.NewClientLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ClientCreate 创建客户
func ClientCreate(c *fiber.Ctx) error {
	result, err := logic.NewClientLogic(c).Create(c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ClientUpdate 更新客户
func ClientUpdate(c *fiber.Ctx) error {
	result, err := logic.NewClientLogic(c).Update(c.Params("id"), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ClientDelete 删除客户
func ClientDelete(c *fiber.Ctx) error {
	if err := logic.NewClientLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}
