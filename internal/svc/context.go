package svc

import (
	"context"

	"github.com/Ravenry/kacamerah/internal/cache"
	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/store"
	"github.com/Ravenry/kacamerah/internal/table"
	"github.com/Ravenry/kacamerah/internal/validate"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// ServiceContext 全局服务上下文
type ServiceContext struct {
	Config    *config.Config
	Registry  *table.Registry
	Validator *validate.Validator
	Cache     cache.Cache

	Clients     store.Documents[model.Client]
	Freelancers store.Documents[model.Freelancer]
	Projects    store.Documents[model.Project]
	Staff       store.Documents[model.Staff]
	// ProjectSeq 项目编号序列
	ProjectSeq store.Counters

	Users   store.Records[model.User]
	Tasks   store.Records[model.Task]
	TaskSeq store.Counters

	Views store.Views
}

var Ctx *ServiceContext

// UserColumns 用户表可查询列
var UserColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"status":     "status",
	"department": "department",
	"createdAt":  "created_at",
}

// TaskColumns 任务表可查询列
var TaskColumns = map[string]string{
	"code":           "code",
	"title":          "title",
	"status":         "status",
	"label":          "label",
	"priority":       "priority",
	"assignee":       "assignee",
	"department":     "department",
	"estimatedHours": "estimated_hours",
	"dueDate":        "due_date",
	"createdAt":      "created_at",
}

// Stores 初始化所需的外部连接，为空的部分使用内存实现
type Stores struct {
	DB    *gorm.DB
	Mongo *mongo.Database
	Cache cache.Cache
}

// New 组装服务上下文
func New(cfg *config.Config, registry *table.Registry, st Stores) *ServiceContext {
	sc := &ServiceContext{
		Config:    cfg,
		Registry:  registry,
		Validator: validate.New(model.EnumSets),
		Cache:     st.Cache,
	}
	if sc.Cache == nil {
		sc.Cache = cache.NewMemory()
	}

	if st.Mongo != nil && cfg.Documents.Store == config.StoreDatabase {
		sc.Clients = store.NewMongoDocuments[model.Client](st.Mongo, "clients")
		sc.Freelancers = store.NewMongoDocuments[model.Freelancer](st.Mongo, "freelancers")
		sc.Projects = store.NewMongoDocuments[model.Project](st.Mongo, "projects")
		sc.Staff = store.NewMongoDocuments[model.Staff](st.Mongo, "staff")
		sc.ProjectSeq = store.NewMongoCounters(st.Mongo)
	} else {
		sc.Clients = store.NewMemoryDocuments[model.Client]()
		sc.Freelancers = store.NewMemoryDocuments[model.Freelancer]()
		sc.Projects = store.NewMemoryDocuments[model.Project]()
		sc.Staff = store.NewMemoryDocuments[model.Staff]()
		sc.ProjectSeq = store.NewMemoryCounters()
	}

	if st.DB != nil {
		sc.Users = store.NewSQLRecords[model.User](st.DB, UserColumns)
		sc.Tasks = store.NewSQLRecords[model.Task](st.DB, TaskColumns)
		sc.TaskSeq = store.NewSQLCounters(st.DB)
	}
	if st.DB != nil && cfg.Views.Store == config.StoreDatabase {
		sc.Views = store.NewSQLViews(st.DB)
	} else {
		sc.Views = store.NewMemoryViews()
	}
	return sc
}

// Init 初始化全局服务上下文
func Init(cfg *config.Config, registry *table.Registry, st Stores) {
	Ctx = New(cfg, registry, st)
}

// Migrate 创建关系表与文档索引
func Migrate(ctx context.Context, st Stores) error {
	if st.DB != nil {
		if err := st.DB.WithContext(ctx).AutoMigrate(
			&model.User{},
			&model.Task{},
			&model.View{},
			&store.Counter{},
		); err != nil {
			return err
		}
	}
	if st.Mongo == nil {
		return nil
	}
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		"clients": {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"freelancers": {{
			Keys:    bson.D{{Key: "linkedin", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		}},
		"projects": {{Keys: bson.D{{Key: "project_id", Value: 1}}, Options: unique}},
		"staff":    {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
	}
	for coll, models := range indexes {
		if err := store.NewMongoDocuments[bson.M](st.Mongo, coll).EnsureIndexes(ctx, models...); err != nil {
			return err
		}
	}
	return nil
}
