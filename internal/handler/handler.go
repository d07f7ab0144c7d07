package handler

import (
	"errors"
	"net/url"

	"github.com/Ravenry/kacamerah/common/logger"
	commonMiddleware "github.com/Ravenry/kacamerah/common/middleware"
	"github.com/Ravenry/kacamerah/common/response"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// fail 把错误转换为响应，内部错误只返回通用文案
func fail(c *fiber.Ctx, err error) error {
	appErr, ok := apperr.As(err)
	if !ok {
		appErr = apperr.Internal(response.MsgServerError, err)
	}

	switch appErr.Code {
	case apperr.ErrCodeValidation, apperr.ErrCodeConflict:
		return response.BadRequest(c, appErr.Message, issuesOf(appErr.Issues)...)
	case apperr.ErrCodeNotFound:
		return response.NotFound(c, appErr.Message)
	}

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	}
	if rid, ok := c.Locals(commonMiddleware.RequestIDKey).(string); ok && rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	logger.Error(appErr.Message, fields...)
	return response.ServerError(c, appErr.Message)
}

func issuesOf(issues []apperr.Issue) []response.Issue {
	out := make([]response.Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, response.Issue{Path: i.Path, Message: i.Message})
	}
	return out
}

// ErrorHandler 全局错误处理，覆盖未匹配路由与 panic
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return response.NotFound(c, response.MsgNotFound)
		}
		if fe.Code < fiber.StatusInternalServerError {
			return response.Status(c, fe.Code, fe.Message)
		}
	}
	return fail(c, err)
}

// NotFound 未匹配路由
func NotFound(c *fiber.Ctx) error {
	return response.NotFound(c, response.MsgNotFound)
}

// queryValues 宽松解析查询参数，非法参数视为缺省
func queryValues(c *fiber.Ctx) url.Values {
	return table.ParseQuery(string(c.Request().URI().QueryString()))
}

// page 输出分页结果
func page[T any](c *fiber.Ctx, result *logic.ListResult[T], err error) error {
	if err != nil {
		return fail(c, err)
	}
	return response.Page(c, result.Rows, result.Total, table.PageCount(result.Total, result.PerPage))
}

// parse 解析请求体
func parse(c *fiber.Ctx, dst any, message string) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation(message)
	}
	return nil
}
