package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"

	"github.com/gofiber/fiber/v2"
)

// ProjectList 项目列表
func ProjectList(c *fiber.Ctx) error {
	result, err := logic.NewProjectLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// ProjectGet 获取项目
func ProjectGet(c *fiber.Ctx) error {
	result, err := logic.NewProjectLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ProjectCreate 创建项目
func ProjectCreate(c *fiber.Ctx) error {
	result, err := logic.NewProjectLogic(c).Create(c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ProjectUpdate 更新项目
func ProjectUpdate(c *fiber.Ctx) error {
	result, err := logic.NewProjectLogic(c).Update(c.Params("id"), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// ProjectDelete 删除项目
func ProjectDelete(c *fiber.Ctx) error {
	if err := logic.NewProjectLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}

// ProjectNextID 预览下一个项目编号
func ProjectNextID(c *fiber.Ctx) error {
	result, err := logic.NewProjectLogic(c).NextID()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}
