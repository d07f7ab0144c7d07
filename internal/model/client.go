package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client 客户
type Client struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name             string               `bson:"name" json:"name" validate:"required,min=2"`
	Email            string               `bson:"email" json:"email" validate:"required,email"`
	OrganizationType string               `bson:"organization_type" json:"organization_type" validate:"required,enum=organization_type"`
	CompanyName      string               `bson:"company_name,omitempty" json:"company_name,omitempty"`
	Industry         []string             `bson:"industry" json:"industry"`
	Team             string               `bson:"team,omitempty" json:"team,omitempty"`
	Location         string               `bson:"location" json:"location" validate:"required"`
	Projects         []primitive.ObjectID `bson:"projects" json:"projects"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ValidationMessages 字段校验提示
func (Client) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":              "Name is required",
		"name.min":                   "Name must be at least 2 characters long",
		"email.required":             "Email is required",
		"email.email":                "Please enter a valid email",
		"organization_type.required": "Organization type is required",
		"organization_type.enum":     "Invalid organization type",
		"location.required":          "Location is required",
	}
}
