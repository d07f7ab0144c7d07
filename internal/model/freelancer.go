package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Education 教育经历
type Education struct {
	Degree string `bson:"degree" json:"degree" validate:"required,enum=degree"`
	Field  string `bson:"field" json:"field" validate:"required"`
	Year   string `bson:"year" json:"year"`
}

// Role 工作经历
type Role struct {
	Title        string `bson:"title" json:"title" validate:"required"`
	Organization string `bson:"organization" json:"organization" validate:"required"`
	Current      bool   `bson:"current" json:"current"`
}

// IndustryExperience 行业经验
type IndustryExperience struct {
	Industry        string `bson:"industry" json:"industry" validate:"required"`
	YearsExperience string `bson:"years_experience" json:"years_experience" validate:"omitempty,enum=years_experience"`
	Note            string `bson:"note" json:"note"`
}

// RavenryRelationship 与公司的合作关系
type RavenryRelationship struct {
	WorkedWithUs bool   `bson:"worked_with_us" json:"worked_with_us"`
	Feedback     string `bson:"feedback,omitempty" json:"feedback,omitempty" validate:"omitempty,enum=feedback"`
	Source       string `bson:"source,omitempty" json:"source,omitempty" validate:"omitempty,enum=relationship_source"`
}

// FreelancerProfile 个人资料
type FreelancerProfile struct {
	Location  string      `bson:"location" json:"location" validate:"required"`
	AboutMe   string      `bson:"about_me,omitempty" json:"about_me,omitempty"`
	Languages []string    `bson:"languages" json:"languages"`
	Education []Education `bson:"education" json:"education" validate:"min=1,dive"`
}

// FreelancerExperience 经历汇总
type FreelancerExperience struct {
	Roles         []Role   `bson:"roles" json:"roles" validate:"dive"`
	Organizations []string `bson:"organizations" json:"organizations"`
}

// Audit 最近一次修改记录
type Audit struct {
	UpdatedOn time.Time `bson:"updated_on" json:"updated_on"`
	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// Freelancer 自由职业者
type Freelancer struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name                string               `bson:"name" json:"name" validate:"required"`
	Linkedin            string               `bson:"linkedin,omitempty" json:"linkedin,omitempty" validate:"omitempty,url"`
	Profile             FreelancerProfile    `bson:"profile" json:"profile"`
	Experience          FreelancerExperience `bson:"experience" json:"experience"`
	FreelanceServices   []string             `bson:"freelance_services" json:"freelance_services" validate:"min=1,dive,enum=freelance_service"`
	IndustryExperience  []IndustryExperience `bson:"industry_experience" json:"industry_experience" validate:"dive"`
	RavenryRelationship *RavenryRelationship `bson:"ravenry_relationship,omitempty" json:"ravenry_relationship,omitempty"`
	Availability        *bool                `bson:"availability" json:"availability"`
	Rating              *float64             `bson:"rating,omitempty" json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Audit               Audit                `bson:"audit" json:"audit"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ValidationMessages 字段校验提示
func (Freelancer) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":                          "Name is required",
		"profile.location.required":              "Location is required",
		"profile.education.min":                  "At least one education entry is required",
		"profile.education.degree.required":      "Degree is required",
		"profile.education.field.required":       "Field of study is required",
		"experience.roles.title.required":        "Role title is required",
		"experience.roles.organization.required": "Organization is required",
		"freelance_services.min":                 "At least one freelance service is required",
		"industry_experience.industry.required":  "Industry is required",
		"rating.gte":                             "Rating must be between 0 and 5",
		"rating.lte":                             "Rating must be between 0 and 5",
	}
}

// Defaults 填充默认值
func (f *Freelancer) Defaults() {
	defaultTrue(&f.Availability)
	for i := range f.Profile.Education {
		if f.Profile.Education[i].Year == "" {
			f.Profile.Education[i].Year = "Unknown"
		}
	}
	for i := range f.IndustryExperience {
		if f.IndustryExperience[i].YearsExperience == "" {
			f.IndustryExperience[i].YearsExperience = "Unknown"
		}
	}
	if f.Audit.UpdatedOn.IsZero() {
		f.Audit.UpdatedOn = time.Now()
	}
}
