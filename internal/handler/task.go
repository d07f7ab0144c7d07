package handler

import (
	"bytes"

	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
)

// TaskList 任务列表
func TaskList(c *fiber.Ctx) error {
	result, err := logic.NewTaskLogic(c).List(queryValues(c))
	return page(c, result, err)
}

// TaskGet 获取任务
func TaskGet(c *fiber.Ctx) error {
	result, err := logic.NewTaskLogic(c).Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// TaskCreate 创建任务
func TaskCreate(c *fiber.Ctx) error {
	var req types.CreateTaskRequest
	if err := parse(c, &req, "Invalid task data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewTaskLogic(c).Create(&req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// TaskUpdate 更新任务
func TaskUpdate(c *fiber.Ctx) error {
	var req types.UpdateTaskRequest
	if err := parse(c, &req, "Invalid task data"); err != nil {
		return fail(c, err)
	}
	result, err := logic.NewTaskLogic(c).Update(c.Params("id"), &req)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// TaskDelete 删除任务
func TaskDelete(c *fiber.Ctx) error {
	if err := logic.NewTaskLogic(c).Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}

// TaskBatchDelete 批量删除任务
func TaskBatchDelete(c *fiber.Ctx) error {
	var req types.BatchDeleteRequest
	if err := parse(c, &req, "Invalid task ids"); err != nil {
		return fail(c, err)
	}
	if _, err := logic.NewTaskLogic(c).BatchDelete(&req); err != nil {
		return fail(c, err)
	}
	return response.NoContent(c)
}

// TaskExport 导出任务 CSV
func TaskExport(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := logic.NewTaskLogic(c).Export(queryValues(c), &buf); err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Attachment(logic.ExportFilename)
	return c.Send(buf.Bytes())
}

// TaskStatusCount 任务状态统计
func TaskStatusCount(c *fiber.Ctx) error {
	result, err := logic.NewTaskLogic(c).StatusCounts()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}

// TaskPriorityCount 任务优先级统计
func TaskPriorityCount(c *fiber.Ctx) error {
	result, err := logic.NewTaskLogic(c).PriorityCounts()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, result)
}
