package model

import (
	"time"
)

// User 系统用户
type User struct {
	BaseModel
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Role        string     `gorm:"size:20;not null;default:user;index" json:"role"`
	Status      string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	Department  string     `gorm:"size:100" json:"department,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}
