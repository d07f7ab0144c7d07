package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"

	"github.com/gofiber/fiber/v2"
)

// StaffList 员工列表
func StaffList(c *fiber.Ctx) error {
	result, err := logic.NewStaffLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// StaffGet 获取员工
func StaffGet(c *fiber.Ctx) error {
	result, err := logic.NewStaffLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// StaffCreate 创建员工
func StaffCreate(c *fiber.Ctx) error {
	result, err := logic.NewStaffLogic(c).Create(c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// StaffUpdate 更新员工
func StaffUpdate(c *fiber.Ctx) error {
	result, err := logic.NewStaffLogic(c).Update(c.Params("id"), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// StaffDelete 删除员工
func StaffDelete(c *fiber.Ctx) error {
	if err := logic.NewStaffLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}
