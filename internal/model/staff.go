package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff 内部员工
type Staff struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name" validate:"required"`
	Email     string               `bson:"email" json:"email" validate:"required,email"`
	Role      string               `bson:"role" json:"role" validate:"required,enum=staff_role"`
	IsActive  *bool                `bson:"is_active" json:"is_active"`
	Projects  []primitive.ObjectID `bson:"projects" json:"projects"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// StaffProject 员工关联的项目摘要
type StaffProject struct {
	ID        primitive.ObjectID `json:"_id"`
	ProjectID string             `json:"project_id"`
	Name      string             `json:"name"`
}

// StaffView 带项目名称的员工
type StaffView struct {
	Staff
	Projects []StaffProject `json:"projects"`
}

// Defaults 填充默认值
func (s *Staff) Defaults() {
	defaultTrue(&s.IsActive)
	if s.Projects == nil {
		s.Projects = []primitive.ObjectID{}
	}
}
