package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// FormatTaskCode 生成 TASK-NNNN 形式的编号
func FormatTaskCode(seq int64) string {
	return fmt.Sprintf("TASK-%04d", seq)
}

// Task 任务
type Task struct {
	BaseModel
	Code           string                      `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Title          string                      `gorm:"size:256" json:"title"`
	Status         string                      `gorm:"size:20;not null;index" json:"status"`
	Label          string                      `gorm:"size:20;not null;index" json:"label"`
	Priority       string                      `gorm:"size:20;not null;index" json:"priority"`
	Assignee       string                      `gorm:"size:255" json:"assignee,omitempty"`
	DueDate        time.Time                   `json:"dueDate"`
	EstimatedHours string                      `gorm:"size:20" json:"estimatedHours"`
	Department     string                      `gorm:"size:100" json:"department,omitempty"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
}

// TableName 表名
func (Task) TableName() string {
	return "tasks"
}
