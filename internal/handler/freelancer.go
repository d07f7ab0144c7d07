package handler

import (
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"

	"github.com/gofiber/fiber/v2"
)

// FreelancerList 自由职业者列表
func FreelancerList(c *fiber.Ctx) error {
	result, err := logic.NewFreelancerLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// FreelancerGet 获取自由职业者
func FreelancerGet(c *fiber.Ctx) error {
	result, err := logic.NewFreelancerLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// FreelancerCreate 创建自由职业者
func FreelancerCreate(c *fiber.Ctx) error {
	result, err := logic.NewFreelancerLogic(c).Create(c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// FreelancerUpdate 更新自由职业者
func FreelancerUpdate(c *fiber.Ctx) error {
	result, err := logic.NewFreelancerLogic(c).Update(c.Params("id"), c.Body())
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// FreelancerDelete 删除自由职业者
func FreelancerDelete(c *fiber.Ctx) error {
	if err := logic.NewFreelancerLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}
