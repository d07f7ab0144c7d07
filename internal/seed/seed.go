package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	locations     = []string{"Singapore", "Indonesia", "Malaysia", "Thailand", "Vietnam"}
	languages     = []string{"English", "Mandarin", "Malay", "Thai", "Vietnamese"}
	studyFields   = []string{"Business", "Engineering", "Science", "Arts"}
	roleTitles    = []string{"Senior Consultant", "Project Manager", "Research Lead", "Analyst"}
	assignees     = []string{"John Doe", "Jane Smith", "Bob Johnson", "Alice Brown"}
	departments   = []string{"Engineering", "Design", "Marketing", "Sales"}
	taskTags      = []string{"urgent", "blocked", "review", "frontend", "backend"}
	taskTitleVerb = []string{"Fix", "Write", "Review", "Ship", "Refactor", "Document"}
	taskTitleNoun = []string{"login flow", "export job", "dashboard", "pricing page", "API client", "onboarding"}
)

// Counts 各实体的生成数量
type Counts struct {
	Users       int
	Clients     int
	Freelancers int
	Staff       int
	Projects    int
	Tasks       int
	Views       int
}

// DefaultCounts 默认生成数量
func DefaultCounts() Counts {
	return Counts{Users: 10, Clients: 10, Freelancers: 20, Staff: 10, Projects: 30, Tasks: 100, Views: 3}
}

// Seeder 演示数据生成器，相同种子生成相同内容
type Seeder struct {
	sc  *svc.ServiceContext
	rnd *rand.Rand
	now time.Time
}

// New 创建生成器
func New(sc *svc.ServiceContext, seed uint64) *Seeder {
	return &Seeder{sc: sc, rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now: time.Now()}
}

// Run 生成全部实体，返回实际写入的数量
func (s *Seeder) Run(ctx context.Context, n Counts) (Counts, error) {
	var done Counts
	var err error

	if done.Users, err = s.users(ctx, n.Users); err != nil {
		return done, fmt.Errorf("seed users: %w", err)
	}
	clients, err := s.clients(ctx, n.Clients)
	if err != nil {
		return done, fmt.Errorf("seed clients: %w", err)
	}
	done.Clients = len(clients)

	freelancers, err := s.freelancers(ctx, n.Freelancers)
	if err != nil {
		return done, fmt.Errorf("seed freelancers: %w", err)
	}
	done.Freelancers = len(freelancers)

	staff, err := s.staff(ctx, n.Staff)
	if err != nil {
		return done, fmt.Errorf("seed staff: %w", err)
	}
	done.Staff = len(staff)

	if done.Projects, err = s.projects(ctx, n.Projects, clients, freelancers, staff); err != nil {
		return done, fmt.Errorf("seed projects: %w", err)
	}
	if done.Tasks, err = s.tasks(ctx, n.Tasks); err != nil {
		return done, fmt.Errorf("seed tasks: %w", err)
	}
	if done.Views, err = s.views(ctx, n.Views); err != nil {
		return done, fmt.Errorf("seed views: %w", err)
	}

	for _, entity := range s.sc.Registry.Entities() {
		if err := s.sc.Cache.Bump(ctx, entity); err != nil {
			logger.Warn("缓存版本更新失败", zap.String("entity", entity), zap.Error(err))
		}
	}
	logger.Info("演示数据生成完成",
		zap.Int("users", done.Users),
		zap.Int("clients", done.Clients),
		zap.Int("freelancers", done.Freelancers),
		zap.Int("staff", done.Staff),
		zap.Int("projects", done.Projects),
		zap.Int("tasks", done.Tasks),
		zap.Int("views", done.Views),
	)
	return done, nil
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// pickN 随机选取 lo..hi 个不重复元素
func pickN[T any](r *rand.Rand, items []T, lo, hi int) []T {
	n := min(lo+r.IntN(hi-lo+1), len(items))
	out := make([]T, 0, n)
	for _, i := range r.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

// between 区间内的随机时间
func (s *Seeder) between(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(s.rnd.Int64N(int64(span))))
}

func (s *Seeder) past(days int) time.Time {
	return s.between(s.now.AddDate(0, 0, -days), s.now)
}

func (s *Seeder) users(ctx context.Context, n int) (int, error) {
	if s.sc.Users == nil || n <= 0 {
		return 0, nil
	}
	for i := 0; i < n; i++ {
		u := &model.User{
			Name:       fmt.Sprintf("User %d", i+1),
			Email:      fmt.Sprintf("user%d@example.com", i+1),
			Role:       pick(s.rnd, model.UserRoles),
			Status:     pick(s.rnd, model.UserStatuses),
			Department: pick(s.rnd, departments),
		}
		if i == 0 {
			u.Name, u.Email, u.Role, u.Status = "Admin User", "admin@example.com", "admin", "active"
		}
		if s.rnd.Float64() > 0.3 {
			at := s.past(365)
			u.LastLoginAt = &at
		}
		u.CreatedAt = s.past(120)
		if err := s.sc.Users.Create(ctx, u); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (s *Seeder) clients(ctx context.Context, n int) ([]model.Client, error) {
	out := make([]model.Client, 0, n)
	for i := 0; i < n; i++ {
		created := s.past(120)
		c := model.Client{
			ID:               primitive.NewObjectID(),
			Name:             fmt.Sprintf("Client %d", i+1),
			Email:            fmt.Sprintf("client%d@example.com", i+1),
			OrganizationType: pick(s.rnd, model.OrganizationTypes),
			CompanyName:      fmt.Sprintf("Company %d", i+1),
			Industry:         pickN(s.rnd, model.Industries, 1, 2),
			Team:             fmt.Sprintf("Team %d", i+1),
			Location:         pick(s.rnd, locations),
			Projects:         []primitive.ObjectID{},
			CreatedAt:        created,
			UpdatedAt:        created,
		}
		if err := s.sc.Clients.Insert(ctx, &c); err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Seeder) freelancers(ctx context.Context, n int) ([]model.Freelancer, error) {
	out := make([]model.Freelancer, 0, n)
	for i := 0; i < n; i++ {
		org := fmt.Sprintf("Previous Company %d", i+1)
		f := model.Freelancer{
			ID:   primitive.NewObjectID(),
			Name: fmt.Sprintf("Freelancer %d", i+1),
			Profile: model.FreelancerProfile{
				Location:  pick(s.rnd, locations),
				AboutMe:   fmt.Sprintf("Experienced professional with %d years of experience.", i+1),
				Languages: pickN(s.rnd, languages, 1, 3),
				Education: []model.Education{{
					Degree: pick(s.rnd, model.DegreeTypes),
					Field:  pick(s.rnd, studyFields),
					Year:   fmt.Sprint(2010 + s.rnd.IntN(13)),
				}},
			},
			Experience: model.FreelancerExperience{
				Roles:         []model.Role{{Title: pick(s.rnd, roleTitles), Organization: org, Current: true}},
				Organizations: []string{org},
			},
			FreelanceServices: pickN(s.rnd, model.FreelanceServices, 1, 3),
			Availability:      model.BoolPtr(s.rnd.Float64() > 0.3),
			Audit:             model.Audit{UpdatedOn: s.now, UpdatedBy: "System"},
			CreatedAt:         s.past(120),
		}
		f.UpdatedAt = f.CreatedAt
		if s.rnd.Float64() > 0.3 {
			f.Linkedin = fmt.Sprintf("https://linkedin.com/in/freelancer-%d", i+1)
		}
		for _, industry := range pickN(s.rnd, model.Industries, 1, 3) {
			f.IndustryExperience = append(f.IndustryExperience, model.IndustryExperience{
				Industry:        industry,
				YearsExperience: pick(s.rnd, model.YearsExperience),
			})
		}
		if s.rnd.Float64() > 0.2 {
			rating := float64(3+s.rnd.IntN(2)) + float64(s.rnd.IntN(10))/10
			f.Rating = &rating
		}
		if s.rnd.Float64() > 0.3 {
			f.RavenryRelationship = &model.RavenryRelationship{
				WorkedWithUs: s.rnd.Float64() > 0.5,
				Feedback:     pick(s.rnd, model.FeedbackStatuses),
				Source:       pick(s.rnd, model.RelationshipSources),
			}
		}
		if err := s.sc.Freelancers.Insert(ctx, &f); err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Seeder) staff(ctx context.Context, n int) ([]model.Staff, error) {
	out := make([]model.Staff, 0, n)
	for i := 0; i < n; i++ {
		created := s.past(120)
		st := model.Staff{
			ID:        primitive.NewObjectID(),
			Name:      fmt.Sprintf("Staff %d", i),
			Email:     fmt.Sprintf("staff%d@example.com", i),
			Role:      pick(s.rnd, model.StaffRoles),
			IsActive:  model.BoolPtr(s.rnd.Float64() > 0.2),
			Projects:  []primitive.ObjectID{},
			CreatedAt: created,
			UpdatedAt: created,
		}
		switch i {
		case 0:
			st.Name, st.Email, st.Role, st.IsActive = "Admin Staff", "admin@example.com", "Admin", model.BoolPtr(true)
		case 1:
			// 项目需要至少一个客户经理
			st.Role = "Account Manager"
		}
		if err := s.sc.Staff.Insert(ctx, &st); err != nil {
			return out, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *Seeder) projects(ctx context.Context, n int, clients []model.Client, freelancers []model.Freelancer, staff []model.Staff) (int, error) {
	var managers []model.Staff
	for _, st := range staff {
		if st.Role == "Account Manager" {
			managers = append(managers, st)
		}
	}
	if n <= 0 || len(clients) == 0 || len(freelancers) == 0 || len(managers) == 0 {
		return 0, nil
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	clientProjects := map[primitive.ObjectID][]primitive.ObjectID{}
	staffProjects := map[primitive.ObjectID][]primitive.ObjectID{}

	for i := 0; i < n; i++ {
		seq, err := s.sc.ProjectSeq.Next(ctx, model.ProjectIDCounter)
		if err != nil {
			return i, err
		}
		client := pick(s.rnd, clients)
		manager := pick(s.rnd, managers)
		kickOff := s.between(start, end)
		latest := s.now

		p := model.Project{
			ID:        primitive.NewObjectID(),
			ProjectID: model.FormatProjectID(seq),
			Name:      fmt.Sprintf("Project %d", i+1),
			ClientID:  client.ID,
			ProjectValue: model.ProjectValue{
				Amount:   float64(10000 + s.rnd.IntN(100000)),
				Currency: pick(s.rnd, model.Currencies),
			},
			ServiceType: pick(s.rnd, model.ServiceTypes),
			Note:        fmt.Sprintf("Project %d description", i+1),
			Status:      pick(s.rnd, model.ProjectStatuses),
			Timeline: model.Timeline{
				KickOffDate:  kickOff,
				Deadline:     kickOff.Add(time.Duration(s.rnd.IntN(90)+1) * 24 * time.Hour),
				LatestUpdate: &latest,
			},
			Team: model.Team{
				ProjectManagers: ids(pickN(s.rnd, freelancers, 1, 2)),
				AccountManager:  manager.ID,
			},
			Brief: model.Brief{
				Objectives:     pickN(s.rnd, model.ResearchObjectives, 1, 3),
				ObjectiveNotes: fmt.Sprintf("Objectives for Project %d", i+1),
				Topic:          fmt.Sprintf("Research Topic %d", i+1),
				Services:       pickN(s.rnd, model.ResearchServices, 1, 3),
				Regions:        pickN(s.rnd, model.ResearchRegions, 1, 3),
				ExpectedOutput: pick(s.rnd, model.OutputTypes),
				BusinessType:   pick(s.rnd, model.BusinessTypes),
				Industries:     pickN(s.rnd, model.Industries, 1, 3),
			},
			Financial: model.Financial{
				CostOfSales: float64(s.rnd.IntN(50000)),
				Budget:      float64(50000 + s.rnd.IntN(100000)),
			},
			CreatedAt: s.past(120),
		}
		p.UpdatedAt = p.CreatedAt
		for _, role := range model.TeamRoles {
			p.Team.Members = append(p.Team.Members, model.TeamMember{Role: role, Freelancers: ids(pickN(s.rnd, freelancers, 1, 3))})
		}
		if s.rnd.Float64() > 0.7 {
			done := s.between(p.Timeline.KickOffDate, p.Timeline.Deadline)
			p.Timeline.CompletedOn = &done
		}
		if s.rnd.Float64() > 0.5 {
			p.Files = &model.Files{
				FinalProposal:  fmt.Sprintf("https://example.com/files/proposal_%d.pdf", i+1),
				FinalReport:    fmt.Sprintf("https://example.com/files/report_%d.pdf", i+1),
				RelevantFolder: fmt.Sprintf("https://example.com/folders/%d", i+1),
				BudgetingSheet: fmt.Sprintf("https://example.com/files/budget_%d.xlsx", i+1),
			}
		}
		if err := s.sc.Projects.Insert(ctx, &p); err != nil {
			return i, err
		}
		clientProjects[client.ID] = append(clientProjects[client.ID], p.ID)
		staffProjects[manager.ID] = append(staffProjects[manager.ID], p.ID)
	}

	for _, c := range clients {
		if refs, ok := clientProjects[c.ID]; ok {
			c.Projects = append(c.Projects, refs...)
			if err := s.sc.Clients.Replace(ctx, c.ID, &c); err != nil {
				return n, err
			}
		}
	}
	for _, st := range staff {
		if refs, ok := staffProjects[st.ID]; ok {
			st.Projects = append(st.Projects, refs...)
			if err := s.sc.Staff.Replace(ctx, st.ID, &st); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

func ids(freelancers []model.Freelancer) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(freelancers))
	for _, f := range freelancers {
		out = append(out, f.ID)
	}
	return out
}

func (s *Seeder) tasks(ctx context.Context, n int) (int, error) {
	if s.sc.Tasks == nil || s.sc.TaskSeq == nil || n <= 0 {
		return 0, nil
	}
	for i := 0; i < n; i++ {
		seq, err := s.sc.TaskSeq.Next(ctx, logic.TaskCodeCounter)
		if err != nil {
			return i, err
		}
		t := &model.Task{
			Code:           model.FormatTaskCode(seq),
			Title:          fmt.Sprintf("%s %s", pick(s.rnd, taskTitleVerb), pick(s.rnd, taskTitleNoun)),
			Status:         pick(s.rnd, model.TaskStatuses),
			Label:          pick(s.rnd, model.TaskLabels),
			Priority:       pick(s.rnd, model.TaskPriorities),
			Assignee:       pick(s.rnd, assignees),
			DueDate:        s.between(s.now, s.now.AddDate(0, 0, 90)),
			EstimatedHours: fmt.Sprintf("%dh", 1+s.rnd.IntN(40)),
			Department:     pick(s.rnd, departments),
			Tags:           datatypes.JSONSlice[string](pickN(s.rnd, taskTags, 1, 3)),
		}
		t.CreatedAt = s.past(115)
		if err := s.sc.Tasks.Create(ctx, t); err != nil {
			return i, err
		}
	}
	return n, nil
}

func (s *Seeder) views(ctx context.Context, n int) (int, error) {
	presets := []model.View{
		{
			Name:    "All Tasks",
			Table:   logic.EntityTasks,
			Columns: []string{"code", "title", "status", "priority", "createdAt"},
			FilterParams: datatypes.NewJSONType(model.FilterParams{
				Operator: "and",
				Sort:     "createdAt.desc",
			}),
		},
		{
			Name:          "High Priority",
			Table:         logic.EntityTasks,
			Columns:       []string{"code", "title", "status", "label"},
			ColumnPinning: datatypes.NewJSONType(map[string]string{"code": "left"}),
			FilterParams: datatypes.NewJSONType(model.FilterParams{
				Operator: "and",
				Filters:  []model.ViewFilter{{ID: "priority", Field: "priority", Value: []string{"high"}, Operator: "equals"}},
			}),
		},
		{
			Name:    "FinTech Clients",
			Table:   logic.EntityClients,
			Columns: []string{"name", "email", "industry", "location"},
			FilterParams: datatypes.NewJSONType(model.FilterParams{
				Operator: "and",
				Sort:     "name.asc",
				Filters:  []model.ViewFilter{{ID: "industry", Field: "industry", Value: []string{"FinTech"}, Operator: "equals"}},
			}),
		},
	}
	n = min(n, len(presets))
	for i := 0; i < n; i++ {
		v := presets[i]
		if v.ColumnPinning.Data() == nil {
			v.ColumnPinning = datatypes.NewJSONType(map[string]string{})
		}
		if err := s.sc.Views.Create(ctx, &v); err != nil {
			return i, err
		}
	}
	return n, nil
}
