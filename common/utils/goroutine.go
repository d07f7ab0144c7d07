package utils

import (
	"fmt"

	"github.com/Ravenry/kacamerah/common/logger"

	"go.uber.org/zap"
)

// SafeGoWithName 安全地启动一个带名称的 goroutine，panic 时记录日志
func SafeGoWithName(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("goroutine panic recovered",
					zap.String("name", name),
					zap.String("panic", fmt.Sprint(r)),
					zap.Stack("stack"),
				)
			}
		}()
		fn()
	}()
}
