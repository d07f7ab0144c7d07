package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var taskColumns = map[string]string{
	"code":      "code",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"createdAt": "created_at",
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Task{}, &model.View{}, &Counter{}))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedTasks(t *testing.T, repo *SQLRecords[model.Task]) {
	t.Helper()
	statuses := []string{"todo", "in-progress", "done"}
	for i := 1; i <= 12; i++ {
		task := &model.Task{
			Code:     model.FormatTaskCode(int64(i)),
			Title:    fmt.Sprintf("Task %02d 100%% ready", i),
			Status:   statuses[i%3],
			Label:    "feature",
			Priority: "low",
			DueDate:  time.Now(),
			Tags:     datatypes.JSONSlice[string]{"a"},
		}
		task.CreatedAt = time.Date(2024, 3, i, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(context.Background(), task))
	}
}

func TestSQLRecords_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRecords[model.Task](openSQLite(t), taskColumns)
	seedTasks(t, repo)

	page, err := repo.Find(ctx, table.Query{
		Conditions: []table.Condition{{Fields: []string{"status"}, Op: table.OpIn, Values: []string{"todo", "done"}}},
		Sort:       []table.SortItem{{Column: "code", Direction: table.Desc}},
		Offset:     2,
		Limit:      3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), page.Total)
	require.Len(t, page.Rows, 3)
	assert.Equal(t, "TASK-0009", page.Rows[0].Code)

	page, err = repo.Find(ctx, table.Query{
		Conditions: []table.Condition{{Fields: []string{"title"}, Op: table.OpContains, Text: "0% READY"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)

	page, err = repo.Find(ctx, table.Query{
		Conditions: []table.Condition{{Fields: []string{"title"}, Op: table.OpContains, Text: "_"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	page, err = repo.Find(ctx, table.Query{
		Join: table.Or,
		Conditions: []table.Condition{
			{Fields: []string{"createdAt"}, Op: table.OpRange, From: &from},
			{Fields: []string{"code"}, Op: table.OpContains, Text: "0001"},
			{Fields: []string{"unknown"}, Op: table.OpContains, Text: "x"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
}

func TestSQLRecords_WriteOps(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRecords[model.Task](openSQLite(t), taskColumns)
	seedTasks(t, repo)

	all, err := repo.Find(ctx, table.Query{})
	require.NoError(t, err)
	first := all.Rows[0]

	exists, err := repo.Exists(ctx, "code", first.Code, "")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists(ctx, "code", first.Code, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = repo.Exists(ctx, "nope", "x", "")
	assert.Error(t, err)

	counts, err := repo.CountBy(ctx, "status", []string{"todo", "done", "canceled"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"todo": 4, "done": 4, "canceled": 0}, counts)

	first.Title = "renamed"
	require.NoError(t, repo.Update(ctx, &first))
	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, datatypes.JSONSlice[string]{"a"}, got.Tags)

	n, err := repo.Delete(ctx, first.ID, all.Rows[1].ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	_, err = repo.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err = repo.Delete(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLCounters(t *testing.T) {
	ctx := context.Background()
	c := NewSQLCounters(openSQLite(t))

	cur, err := c.Current(ctx, "task_code")
	require.NoError(t, err)
	assert.Zero(t, cur)

	for want := int64(1); want <= 3; want++ {
		got, err := c.Next(ctx, "task_code")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	cur, err = c.Current(ctx, "task_code")
	require.NoError(t, err)
	assert.Equal(t, int64(3), cur)
}
