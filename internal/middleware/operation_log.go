package middleware

import (
	"errors"
	"time"

	"github.com/Ravenry/kacamerah/common/logger"
	commonMiddleware "github.com/Ravenry/kacamerah/common/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OperationLog 操作日志中间件，只记录写操作
func OperationLog(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		start := time.Now()
		size := len(c.Body())

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("module", module),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Int("body_bytes", size),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if rid, ok := c.Locals(commonMiddleware.RequestIDKey).(string); ok && rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		if status >= fiber.StatusBadRequest {
			logger.Warn("操作失败", fields...)
		} else {
			logger.Info("操作完成", fields...)
		}
		return err
	}
}
