package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectIDCounter 项目编号计数器的键
const ProjectIDCounter = "project_id"

// FormatProjectID 生成 PROJ-NNN 形式的编号
func FormatProjectID(seq int64) string {
	return fmt.Sprintf("PROJ-%03d", seq)
}

// ProjectValue 项目金额
type ProjectValue struct {
	Amount   float64 `bson:"amount" json:"amount" validate:"gte=0"`
	Currency string  `bson:"currency" json:"currency" validate:"omitempty,enum=currency"`
}

// Timeline 项目时间线
type Timeline struct {
	KickOffDate  time.Time  `bson:"kick_off_date" json:"kick_off_date" validate:"required"`
	Deadline     time.Time  `bson:"deadline" json:"deadline" validate:"required"`
	CompletedOn  *time.Time `bson:"completed_on,omitempty" json:"completed_on,omitempty"`
	LatestUpdate *time.Time `bson:"latest_update,omitempty" json:"latest_update,omitempty"`
}

// TeamMember 项目成员分组
type TeamMember struct {
	Role        string               `bson:"role" json:"role" validate:"omitempty,enum=team_role"`
	Freelancers []primitive.ObjectID `bson:"freelancers" json:"freelancers"`
}

// Team 项目团队
type Team struct {
	ProjectManagers []primitive.ObjectID `bson:"project_managers" json:"project_managers"`
	AccountManager  primitive.ObjectID   `bson:"account_manager" json:"account_manager" validate:"required"`
	Members         []TeamMember         `bson:"members" json:"members" validate:"dive"`
}

// Brief 项目需求
type Brief struct {
	Objectives     []string `bson:"objectives" json:"objectives" validate:"dive,enum=research_objective"`
	ObjectiveNotes string   `bson:"objective_notes,omitempty" json:"objective_notes,omitempty"`
	Topic          string   `bson:"topic" json:"topic" validate:"required"`
	Services       []string `bson:"services" json:"services" validate:"dive,enum=research_service"`
	Regions        []string `bson:"regions" json:"regions"`
	ExpectedOutput string   `bson:"expected_output" json:"expected_output" validate:"required,enum=output_type"`
	BusinessType   string   `bson:"business_type" json:"business_type" validate:"required,enum=business_type"`
	Industries     []string `bson:"industries" json:"industries" validate:"dive,enum=industry"`
}

// Financial 财务信息
type Financial struct {
	CostOfSales float64 `bson:"cost_of_sales" json:"cost_of_sales"`
	Budget      float64 `bson:"budget" json:"budget" validate:"gte=0"`
}

// Files 项目文件链接
type Files struct {
	FinalProposal  string `bson:"final_proposal,omitempty" json:"final_proposal,omitempty"`
	FinalReport    string `bson:"final_report,omitempty" json:"final_report,omitempty"`
	RelevantFolder string `bson:"relevant_folder,omitempty" json:"relevant_folder,omitempty"`
	BudgetingSheet string `bson:"budgeting_sheet,omitempty" json:"budgeting_sheet,omitempty"`
}

// Project 项目
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProjectID    string             `bson:"project_id,omitempty" json:"project_id,omitempty"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	ClientID     primitive.ObjectID `bson:"client_id" json:"client_id" validate:"required"`
	ProjectValue ProjectValue       `bson:"project_value" json:"project_value"`
	ServiceType  string             `bson:"service_type" json:"service_type" validate:"required,enum=service_type"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	Status       string             `bson:"status" json:"status" validate:"omitempty,enum=project_status"`
	Timeline     Timeline           `bson:"timeline" json:"timeline"`
	Team         Team               `bson:"team" json:"team"`
	Brief        Brief              `bson:"brief" json:"brief"`
	Financial    Financial          `bson:"financial" json:"financial"`
	Files        *Files             `bson:"files,omitempty" json:"files,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidationMessages 字段校验提示
func (Project) ValidationMessages() map[string]string {
	return map[string]string{
		"name.required":                   "Project name is required",
		"client_id.required":              "Client is required",
		"timeline.kick_off_date.required": "Kick-off date is required",
		"timeline.deadline.required":      "Deadline is required",
		"team.account_manager.required":   "Account manager is required",
	}
}

// Defaults 填充默认值
func (p *Project) Defaults() {
	if p.Status == "" {
		p.Status = "Active"
	}
	if p.ProjectValue.Currency == "" {
		p.ProjectValue.Currency = "USD"
	}
}

// PersonRef 被引用人员的摘要
type PersonRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// PopulatedMember 带人员名称的成员分组
type PopulatedMember struct {
	Role        string      `json:"role"`
	Freelancers []PersonRef `json:"freelancers"`
}

// PopulatedTeam 带人员名称的团队
type PopulatedTeam struct {
	ProjectManagers []PersonRef       `json:"project_managers"`
	AccountManager  *PersonRef        `json:"account_manager"`
	Members         []PopulatedMember `json:"members"`
}

// ProjectView 引用已展开的项目
type ProjectView struct {
	Project
	Client *PersonRef    `json:"client,omitempty"`
	Team   PopulatedTeam `json:"team"`
}
