package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
)

// UserList 用户列表
func UserList(c *fiber.Ctx) error {
	result, err := logic.NewUserLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// UserGet 获取用户
func UserGet(c *fiber.Ctx) error {
	result, err := logic.NewUserLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// UserCreate 创建用户
func UserCreate(c *fiber.Ctx) error {
	var req types.CreateUserRequest
	if err := parse(c, &req, "Invalid user data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewUserLogic(c).Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// UserUpdate 更新用户
func UserUpdate(c *fiber.Ctx) error {
	var req types.UpdateUserRequest
	if err := parse(c, &req, "Invalid user data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewUserLogic(c).Update(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// UserDelete 删除用户
func UserDelete(c *fiber.Ctx) error {
	if err := logic.NewUserLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}
