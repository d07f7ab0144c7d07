package middleware

import (
	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/common/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestIDKey 请求ID在 Locals 中的键
const RequestIDKey = "requestid"

// RequestID 请求ID中间件，沿用客户端传入的 X-Request-ID
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: RequestIDKey,
		Generator:  utils.GenerateUUID,
	})
}

// Logger 请求日志中间件
func Logger() fiber.Handler {
	return logger.Middleware()
}
