package utils

import (
	"strings"

	"github.com/duke-git/lancet/v2/strutil"
	"github.com/google/uuid"
)

// Trim 去除字符串两端空白
func Trim(s string) string {
	return strutil.Trim(s)
}

// NormalizeEmail 邮箱统一为去空白的小写形式
func NormalizeEmail(s string) string {
	return strings.ToLower(strutil.Trim(s))
}

// GenerateUUID 生成UUID
func GenerateUUID() string {
	return uuid.NewString()
}

// IsUUID 判断是否为合法UUID
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
