package seed

import (
	"context"
	"testing"

	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newContext(t *testing.T) *svc.ServiceContext {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	st := svc.Stores{DB: db}
	require.NoError(t, svc.Migrate(context.Background(), st))
	cfg := config.Default()
	return svc.New(cfg, logic.NewRegistry(cfg.Table), st)
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	sc := newContext(t)

	done, err := New(sc, 42).Run(ctx, DefaultCounts())
	require.NoError(t, err)
	assert.Equal(t, DefaultCounts(), done)

	projects, err := sc.Projects.Find(ctx, table.Query{Sort: []table.SortItem{{Column: "project_id", Direction: table.Asc}}})
	require.NoError(t, err)
	require.Len(t, projects.Rows, 30)
	assert.Equal(t, "PROJ-001", projects.Rows[0].ProjectID)
	assert.Equal(t, "PROJ-030", projects.Rows[29].ProjectID)

	// 每个项目都登记到了所属客户
	clients, err := sc.Clients.Find(ctx, table.Query{})
	require.NoError(t, err)
	linked := 0
	for _, c := range clients.Rows {
		linked += len(c.Projects)
	}
	assert.Equal(t, 30, linked)

	next, err := sc.ProjectSeq.Current(ctx, model.ProjectIDCounter)
	require.NoError(t, err)
	assert.Equal(t, int64(30), next)

	tasks, err := sc.Tasks.Find(ctx, table.Query{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(100), tasks.Total)

	admin, err := sc.Users.Exists(ctx, "email", "admin@example.com", "")
	require.NoError(t, err)
	assert.True(t, admin)

	views, err := sc.Views.List(ctx, logic.EntityTasks)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestSeeder_WithoutDatabase(t *testing.T) {
	cfg := config.Default()
	sc := svc.New(cfg, logic.NewRegistry(cfg.Table), svc.Stores{})

	done, err := New(sc, 1).Run(context.Background(), Counts{Clients: 2, Freelancers: 2, Staff: 3, Projects: 2, Tasks: 5, Users: 5})
	require.NoError(t, err)
	assert.Equal(t, Counts{Clients: 2, Freelancers: 2, Staff: 3, Projects: 2}, done)
}
