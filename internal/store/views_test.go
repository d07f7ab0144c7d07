package store

import (
	"context"
	"testing"
	"time"

	"github.com/Ravenry/kacamerah/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newView(name, tbl string) *model.View {
	return &model.View{
		Name:          name,
		Table:         tbl,
		Columns:       datatypes.JSONSlice[string](model.DefaultViewColumns),
		ColumnPinning: datatypes.NewJSONType(map[string]string{"code": "left"}),
		FilterParams: datatypes.NewJSONType(model.FilterParams{
			Operator: "and",
			Sort:     "createdAt.desc",
			Filters:  []model.ViewFilter{{ID: "f1", Field: "status", Value: []string{"todo"}, Operator: "eq"}},
		}),
	}
}

func exerciseViews(t *testing.T, repo Views) {
	ctx := context.Background()

	a := newView("Open tasks", "tasks")
	require.NoError(t, repo.Create(ctx, a))
	require.NotEmpty(t, a.ID)
	time.Sleep(2 * time.Millisecond)
	b := newView("Everything", "")
	require.NoError(t, repo.Create(ctx, b))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, repo.Create(ctx, newView("Clients", "clients")))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Open tasks", all[0].Name)

	scoped, err := repo.List(ctx, "tasks")
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, []string{"Open tasks", "Everything"}, []string{scoped[0].Name, scoped[1].Name})

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "createdAt.desc", got.FilterParams.Data().Sort)
	assert.Equal(t, "left", got.ColumnPinning.Data()["code"])
	assert.Equal(t, []string(model.DefaultViewColumns), []string(got.Columns))

	got.Name = "Renamed"
	got.Columns = datatypes.JSONSlice[string]{"title"}
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.Equal(t, []string{"title"}, []string(again.Columns))
	assert.Equal(t, a.CreatedAt.Unix(), again.CreatedAt.Unix())

	missing := newView("ghost", "")
	missing.ID = "00000000-0000-0000-0000-000000000000"
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)
	_, err = repo.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryViews(t *testing.T) {
	exerciseViews(t, NewMemoryViews())
}

func TestSQLViews(t *testing.T) {
	exerciseViews(t, NewSQLViews(openSQLite(t)))
}
