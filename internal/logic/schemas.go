package logic

import (
	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/table"
)

// 实体名称，同时作为路由段与视图的 table 取值
const (
	EntityClients     = "clients"
	EntityFreelancers = "freelancers"
	EntityProjects    = "projects"
	EntityStaff       = "staff"
	EntityUsers       = "users"
	EntityTasks       = "tasks"
)

// 员工状态参数取值
const (
	StaffActive   = "active"
	StaffInactive = "inactive"
)

var createdDesc = []table.SortItem{{Column: "createdAt", Direction: table.Desc}}

func clientSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityClients,
		Fields: []table.FilterField{
			{Label: "Name", Value: "name", Kind: table.KindText, Placeholder: "Filter names..."},
			{Label: "Email", Value: "email", Kind: table.KindText, Placeholder: "Filter emails..."},
			{Label: "Organization type", Value: "organization_type", Kind: table.KindEnum, Options: table.CountedOptions(model.OrganizationTypes...)},
			{Label: "Industry", Value: "industry", Kind: table.KindEnum, Options: table.CountedOptions(model.Industries...)},
			{Label: "Location", Value: "location", Kind: table.KindText},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable:    []string{"name", "email", "organization_type", "company_name", "location", "createdAt"},
		DefaultSort: createdDesc,
		Columns:     []string{"name", "email", "organization_type", "company_name", "industry", "location", "createdAt"},
	}
}

func freelancerSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityFreelancers,
		Fields: []table.FilterField{
			{
				Label: "Search", Value: "search", Kind: table.KindText, Placeholder: "Search name, location or role...",
				Columns: []string{"name", "profile.location", "experience.roles.title"},
			},
			{Label: "Name", Value: "name", Kind: table.KindText},
			{Label: "Location", Value: "profile", SubField: "location", Kind: table.KindText},
			{Label: "Degree", Value: "profile", SubField: "education.degree", Kind: table.KindEnum, Options: table.Options(model.DegreeTypes...)},
			{Label: "Services", Value: "freelance_services", Kind: table.KindEnum, Options: table.CountedOptions(model.FreelanceServices...)},
			{Label: "Industry", Value: "industry_experience", SubField: "industry", Kind: table.KindEnum, Options: table.Options(model.Industries...)},
			{Label: "Available", Value: "available", Kind: table.KindBool, Columns: []string{"availability"}},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable:    []string{"name", "profile.location", "rating", "audit.updated_on", "createdAt"},
		DefaultSort: createdDesc,
		Columns:     []string{"name", "linkedin", "profile.location", "freelance_services", "availability", "rating", "createdAt"},
	}
}

func projectSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityProjects,
		Fields: []table.FilterField{
			{Label: "Name", Value: "name", Kind: table.KindText},
			{Label: "Project ID", Value: "project_id", Kind: table.KindText},
			{Label: "Status", Value: "status", Kind: table.KindEnum, Options: table.CountedOptions(model.ProjectStatuses...)},
			{Label: "Service type", Value: "service_type", Kind: table.KindEnum, Options: table.CountedOptions(model.ServiceTypes...)},
			{Label: "Business type", Value: "brief", SubField: "business_type", Kind: table.KindEnum, Options: table.Options(model.BusinessTypes...)},
			{Label: "Industries", Value: "brief", SubField: "industries", Kind: table.KindEnum, Options: table.Options(model.Industries...)},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable: []string{
			"project_id", "name", "status", "service_type", "project_value.amount",
			"timeline.kick_off_date", "timeline.deadline", "createdAt",
		},
		DefaultSort: createdDesc,
		Columns:     []string{"project_id", "name", "status", "service_type", "project_value.amount", "timeline.deadline", "createdAt"},
	}
}

func staffSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityStaff,
		Fields: []table.FilterField{
			{Label: "Search", Value: "search", Kind: table.KindText, Columns: []string{"name", "email"}},
			{Label: "Role", Value: "role", Kind: table.KindEnum, Options: table.CountedOptions(model.StaffRoles...)},
			// 状态参数映射为 is_active 布尔字段
			{Label: "Status", Value: "status", Kind: table.KindEnum, Options: table.Options(StaffActive, StaffInactive)},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable:    []string{"name", "email", "role", "is_active", "createdAt"},
		DefaultSort: createdDesc,
		Columns:     []string{"name", "email", "role", "is_active", "projects", "createdAt"},
	}
}

func userSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityUsers,
		Fields: []table.FilterField{
			{Label: "Name", Value: "name", Kind: table.KindText},
			{Label: "Email", Value: "email", Kind: table.KindText},
			{Label: "Role", Value: "role", Kind: table.KindEnum, Options: table.CountedOptions(model.UserRoles...)},
			{Label: "Status", Value: "status", Kind: table.KindEnum, Options: table.CountedOptions(model.UserStatuses...)},
			{Label: "Department", Value: "department", Kind: table.KindText},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable:    []string{"name", "email", "role", "status", "createdAt"},
		DefaultSort: createdDesc,
		Columns:     []string{"name", "email", "role", "status", "department", "lastLoginAt", "createdAt"},
	}
}

func taskSchema() *table.Schema {
	return &table.Schema{
		Entity: EntityTasks,
		Fields: []table.FilterField{
			{Label: "Title", Value: "title", Kind: table.KindText, Placeholder: "Filter titles..."},
			{Label: "Code", Value: "code", Kind: table.KindText},
			{Label: "Status", Value: "status", Kind: table.KindEnum, Options: table.CountedOptions(model.TaskStatuses...)},
			{Label: "Priority", Value: "priority", Kind: table.KindEnum, Options: table.CountedOptions(model.TaskPriorities...)},
			{Label: "Label", Value: "label", Kind: table.KindEnum, Options: table.Options(model.TaskLabels...)},
			{Label: "Created at", Value: "createdAt", Kind: table.KindDate},
		},
		Sortable:    []string{"code", "title", "status", "priority", "label", "estimatedHours", "dueDate", "createdAt"},
		DefaultSort: createdDesc,
		Columns:     []string{"code", "title", "status", "label", "priority", "estimatedHours", "dueDate", "createdAt"},
	}
}

// Schemas 全部实体的表格声明
func Schemas() []*table.Schema {
	return []*table.Schema{
		clientSchema(),
		freelancerSchema(),
		projectSchema(),
		staffSchema(),
		userSchema(),
		taskSchema(),
	}
}

// NewRegistry 按分页配置构建注册表
func NewRegistry(cfg config.TableConfig) *table.Registry {
	schemas := Schemas()
	for _, s := range schemas {
		s.DefaultPerPage = cfg.DefaultPerPage
		s.MaxPerPage = cfg.MaxPerPage
	}
	return table.MustRegistry(schemas...)
}
