package types

import "time"

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required,min=1,max=256"`
	Status         string     `json:"status" validate:"required,enum=task_status"`
	Label          string     `json:"label" validate:"required,enum=task_label"`
	Priority       string     `json:"priority" validate:"required,enum=task_priority"`
	Assignee       string     `json:"assignee"`
	DueDate        *time.Time `json:"dueDate" copier:"-"`
	EstimatedHours string     `json:"estimatedHours"`
	Department     string     `json:"department"`
	Tags           []string   `json:"tags" copier:"-"`
}

// UpdateTaskRequest 更新任务请求，未提供的字段保持不变
type UpdateTaskRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=256"`
	Status         *string    `json:"status" validate:"omitempty,enum=task_status"`
	Label          *string    `json:"label" validate:"omitempty,enum=task_label"`
	Priority       *string    `json:"priority" validate:"omitempty,enum=task_priority"`
	Assignee       *string    `json:"assignee"`
	DueDate        *time.Time `json:"dueDate" copier:"-"`
	EstimatedHours *string    `json:"estimatedHours"`
	Department     *string    `json:"department"`
	Tags           []string   `json:"tags" copier:"-"`
}

// BatchDeleteRequest 批量删除请求
type BatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// StatusCount 任务状态统计
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// PriorityCount 任务优先级统计
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}
