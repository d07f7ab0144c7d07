package response

import (
	"github.com/gofiber/fiber/v2"
)

// Issue 字段级校验问题
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error  string  `json:"error"`
	Issues []Issue `json:"issues,omitempty"`
}

// PageData 分页数据结构
type PageData struct {
	Data      any   `json:"data"`
	PageCount int   `json:"pageCount"`
	Total     int64 `json:"total"`
}

// 响应消息定义
const (
	MsgNotFound    = "Not found"
	MsgServerError = "Internal Server Error"
)

// Success 成功响应，直接输出数据
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(data)
}

// NoContent 无内容响应
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// BadRequest 参数错误响应
func BadRequest(c *fiber.Ctx, message string, issues ...Issue) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{
		Error:  message,
		Issues: issues,
	})
}

// NotFound 未找到响应
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return c.Status(fiber.StatusNotFound).JSON(ErrorBody{Error: message})
}

// ServerError 服务器错误响应，只返回通用文案，不暴露内部细节
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = MsgServerError
	}
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: message})
}

// Status 指定状态码的错误响应
func Status(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorBody{Error: message})
}

// Page 分页响应，总页数由调用方计算
func Page(c *fiber.Ctx, list any, total int64, pageCount int) error {
	return c.JSON(PageData{
		Data:      list,
		PageCount: pageCount,
		Total:     total,
	})
}
