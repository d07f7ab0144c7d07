package model

// 客户
var OrganizationTypes = []string{"Corporation", "SMEs", "Government", "NGO", "Startup", "Individual"}

// 自由职业者
var (
	DegreeTypes         = []string{"Bachelor", "Master", "PhD", "Diploma", "Certificate", "Unknown"}
	FreelanceServices   = []string{"Project Manager", "Researcher / Analyst", "Consultant", "Writer / Editor", "Designer", "Developer"}
	YearsExperience     = []string{"0-3 Years", "3-5 Years", "6-10 Years", "Unknown"}
	FeedbackStatuses    = []string{"Good", "Not Good", "Cannot Tell Yet", "Somewhat", "Unknown"}
	RelationshipSources = []string{"Ex Ravenry", "Ravenry Team Suggestion", "Ravenry App", "External Connection", "Unknown", "Freelancer Event"}
)

// 项目
var (
	ProjectStatuses    = []string{"Draft", "Active", "Completed", "Cancelled"}
	ServiceTypes       = []string{"SS", "MS"}
	Currencies         = []string{"USD", "SGD"}
	BusinessTypes      = []string{"B2B", "B2C"}
	TeamRoles          = []string{"Analyst", "FL Analyst", "Transcriber", "Oversee"}
	ResearchObjectives = []string{
		"Entering a New Market",
		"Creating Thought Leadership Publication",
		"Benchmarking with Competitors",
		"Forum Challenge Sign Up",
		"Gathering Marketing Effectiveness",
		"Understanding Customers to Improve Satisfaction",
		"New Product Development",
		"Creating Policy Brief",
	}
	ResearchServices = []string{"In-Depth-Interview", "Desk Research", "Survey", "Mystery Shopping", "Product Testing"}
	ResearchRegions  = []string{"Indonesia", "Singapore", "Malaysia", "Thailand", "India", "China"}
	OutputTypes      = []string{"Slides Report", "White Paper Report", "Thought Leadership Report", "Data Table Report"}
	Industries       = []string{
		"Semiconductor", "Public Policy", "Human Resources", "Finance", "F&B", "FinTech",
		"Sustainability", "ODS", "Government", "UI/UX", "Healthcare",
	}
)

// 员工
var StaffRoles = []string{"Account Manager", "Project Coordinator", "Admin"}

// 用户
var (
	UserRoles    = []string{"admin", "manager", "user"}
	UserStatuses = []string{"active", "inactive", "pending"}
)

// 任务
var (
	TaskStatuses   = []string{"todo", "in-progress", "done", "canceled"}
	TaskLabels     = []string{"bug", "feature", "enhancement", "documentation"}
	TaskPriorities = []string{"low", "medium", "high"}
)

// 视图
var (
	ViewOperators       = []string{"and", "or"}
	ViewFilterOperators = []string{"equals", "contains", "startsWith", "endsWith"}
	PinSides            = []string{"left", "right"}
)

// EnumSets 校验器使用的枚举集合，键为 enum=<name> 中的名称
var EnumSets = map[string][]string{
	"organization_type":    OrganizationTypes,
	"degree":               DegreeTypes,
	"freelance_service":    FreelanceServices,
	"years_experience":     YearsExperience,
	"feedback":             FeedbackStatuses,
	"relationship_source":  RelationshipSources,
	"project_status":       ProjectStatuses,
	"service_type":         ServiceTypes,
	"currency":             Currencies,
	"business_type":        BusinessTypes,
	"team_role":            TeamRoles,
	"research_objective":   ResearchObjectives,
	"research_service":     ResearchServices,
	"output_type":          OutputTypes,
	"industry":             Industries,
	"staff_role":           StaffRoles,
	"user_role":            UserRoles,
	"user_status":          UserStatuses,
	"task_status":          TaskStatuses,
	"task_label":           TaskLabels,
	"task_priority":        TaskPriorities,
	"view_operator":        ViewOperators,
	"view_filter_operator": ViewFilterOperators,
	"pin":                  PinSides,
}
