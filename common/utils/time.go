package utils

import (
	"time"

	"github.com/duke-git/lancet/v2/datetime"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// FormatDate 格式化日期
func FormatDate(t time.Time) string {
	return datetime.FormatTimeToStr(t, DateFormat)
}

// ParseDate 解析日期字符串，兼容 RFC3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(DateFormat, s)
}

// StartOfDay 获取一天的开始时间
func StartOfDay(t time.Time) time.Time {
	return datetime.BeginOfDay(t)
}

// EndOfDay 获取一天的结束时间
func EndOfDay(t time.Time) time.Time {
	return datetime.EndOfDay(t)
}
