package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/handler"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/router"
	"github.com/Ravenry/kacamerah/internal/seed"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"pgregory.net/rapid"
)

type pageBody struct {
	Data      []map[string]any `json:"data"`
	PageCount int              `json:"pageCount"`
	Total     int64            `json:"total"`
}

type errorBody struct {
	Error  string `json:"error"`
	Issues []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"issues"`
}

func newApp(st svc.Stores) *fiber.App {
	cfg := config.Default()
	cfg.Views.Store = config.StoreDatabase
	svc.Init(cfg, logic.NewRegistry(cfg.Table), st)

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: handler.ErrorHandler,
	})
	router.Setup(app, nil)
	return app
}

// setup 使用内存 sqlite 与内存文档仓储启动完整路由
func setup(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	st := svc.Stores{DB: db}
	require.NoError(t, svc.Migrate(context.Background(), st))
	return newApp(st)
}

func call(t *testing.T, app *fiber.App, method, target string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, sonic.Unmarshal(data, &v), string(data))
	return v
}

func client(i int, industry string) map[string]any {
	return map[string]any{
		"name":              fmt.Sprintf("%s Client %02d", industry, i),
		"email":             fmt.Sprintf("%s.%02d@example.com", strings.ToLower(industry), i),
		"organization_type": "Startup",
		"industry":          []string{industry},
		"location":          "Jakarta",
	}
}

func TestClientList_FilterAndPaging(t *testing.T) {
	app := setup(t)
	for i := 0; i < 25; i++ {
		status, body := call(t, app, http.MethodPost, "/api/clients", client(i, "FinTech"))
		require.Equal(t, http.StatusOK, status, string(body))
	}
	for i := 0; i < 3; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/clients", client(i, "Healthcare"))
		require.Equal(t, http.StatusOK, status)
	}

	status, data := call(t, app, http.MethodGet, "/api/clients?page=2&per_page=10&industry=FinTech", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[pageBody](t, data)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, int64(25), page.Total)

	// 非法参数按缺省处理
	status, data = call(t, app, http.MethodGet, "/api/clients?page=abc&per_page=-5&sort=bogus.up", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[pageBody](t, data)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, int64(28), page.Total)

	// 远超末页的页码返回空页
	status, data = call(t, app, http.MethodGet, "/api/clients?page=922337203685477582&per_page=10", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[pageBody](t, data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, int64(28), page.Total)

	status, data = call(t, app, http.MethodGet, "/api/clients/facets/industry", nil)
	require.Equal(t, http.StatusOK, status)
	counts := map[string]int64{}
	for _, c := range decode[[]map[string]any](t, data) {
		counts[c["value"].(string)] = int64(c["count"].(float64))
	}
	assert.Equal(t, int64(25), counts["FinTech"])
	assert.Equal(t, int64(3), counts["Healthcare"])
	assert.Equal(t, int64(0), counts["Finance"])

	status, _ = call(t, app, http.MethodGet, "/api/clients/facets/location", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestClient_DuplicateEmailAndNotFound(t *testing.T) {
	app := setup(t)
	status, _ := call(t, app, http.MethodPost, "/api/clients", client(1, "FinTech"))
	require.Equal(t, http.StatusOK, status)

	dup := client(2, "FinTech")
	dup["email"] = "  FINTECH.01@example.com "
	status, data := call(t, app, http.MethodPost, "/api/clients", dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodGet, "/api/clients/not-an-object-id", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Client not found", decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodDelete, "/api/clients/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Client not found", decode[errorBody](t, data).Error)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	app := setup(t)
	user := map[string]any{"name": "Ayu Lestari", "email": "ayu@example.com", "role": "admin"}
	status, data := call(t, app, http.MethodPost, "/api/users", user)
	require.Equal(t, http.StatusOK, status, string(data))
	created := decode[map[string]any](t, data)
	assert.Equal(t, "pending", created["status"])

	user["email"] = " AYU@Example.com"
	status, data = call(t, app, http.MethodPost, "/api/users", user)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already exists", decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[pageBody](t, data).Total)

	status, data = call(t, app, http.MethodPost, "/api/users", map[string]any{"name": "B", "email": "nope", "role": "owner"})
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode[errorBody](t, data)
	assert.Equal(t, "Name must be at least 2 characters.", body.Error)
	assert.Len(t, body.Issues, 3)

	id := created["id"].(string)
	status, data = call(t, app, http.MethodPut, "/api/users/"+id, map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, status, string(data))
	updated := decode[map[string]any](t, data)
	assert.Equal(t, "active", updated["status"])
	assert.Equal(t, "ayu@example.com", updated["email"])

	status, _ = call(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, data = call(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", decode[errorBody](t, data).Error)
}

func TestFreelancerCreate_RequiresEducation(t *testing.T) {
	app := setup(t)
	status, data := call(t, app, http.MethodPost, "/api/freelancers", map[string]any{
		"name":               "Budi",
		"profile":            map[string]any{"location": "Bandung", "education": []any{}},
		"freelance_services": []string{"Researcher / Analyst"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode[errorBody](t, data)
	assert.Equal(t, "At least one education entry is required", body.Error)
	require.NotEmpty(t, body.Issues)
	assert.Equal(t, "profile.education", body.Issues[0].Path)

	status, data = call(t, app, http.MethodGet, "/api/freelancers", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), decode[pageBody](t, data).Total)
}

func TestViews_CRUD(t *testing.T) {
	app := setup(t)

	status, data := call(t, app, http.MethodDelete, "/api/views/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "View not found", decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodPost, "/api/views", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodPost, "/api/views", map[string]any{"name": "x", "table": "nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "table", decode[errorBody](t, data).Issues[0].Path)

	status, data = call(t, app, http.MethodPost, "/api/views", map[string]any{
		"name":  "Open bugs",
		"table": logic.EntityTasks,
		"filterParams": map[string]any{
			"operator": "and",
			"filters":  []any{map[string]any{"id": "f1", "field": "status", "value": []string{"todo"}, "operator": "equals"}},
		},
	})
	require.Equal(t, http.StatusOK, status, string(data))
	view := decode[map[string]any](t, data)
	id := view["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, []any{"code", "title", "status", "priority"}, view["columns"])

	status, _ = call(t, app, http.MethodPost, "/api/views", map[string]any{"name": "Clients", "table": logic.EntityClients})
	require.Equal(t, http.StatusOK, status)

	status, data = call(t, app, http.MethodGet, "/api/views?table=tasks", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, data), 1)

	status, data = call(t, app, http.MethodPut, "/api/views/"+id, map[string]any{"name": "Todo"})
	require.Equal(t, http.StatusOK, status, string(data))
	updated := decode[map[string]any](t, data)
	assert.Equal(t, "Todo", updated["name"])
	assert.Equal(t, "tasks", updated["table"])

	status, data = call(t, app, http.MethodGet, "/api/views/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Todo", decode[map[string]any](t, data)["name"])

	status, _ = call(t, app, http.MethodDelete, "/api/views/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/views/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func createTask(t *testing.T, app *fiber.App, title, status, priority string) map[string]any {
	t.Helper()
	code, data := call(t, app, http.MethodPost, "/api/tasks", map[string]any{
		"title":    title,
		"status":   status,
		"label":    "bug",
		"priority": priority,
		"dueDate":  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		"tags":     []string{"api", " api ", "ui"},
	})
	require.Equal(t, http.StatusOK, code, string(data))
	return decode[map[string]any](t, data)
}

func TestTasks_CountsExportAndBatchDelete(t *testing.T) {
	app := setup(t)
	first := createTask(t, app, "Fix login", "todo", "high")
	second := createTask(t, app, "Ship export", "done", "low")
	createTask(t, app, "Review copy", "todo", "high")

	assert.Equal(t, "TASK-0001", first["code"])
	assert.Equal(t, []any{"api", "ui"}, first["tags"])

	status, data := call(t, app, http.MethodGet, "/api/tasks/status/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"status":"todo","count":2},{"status":"done","count":1}]`, string(data))

	status, data = call(t, app, http.MethodGet, "/api/tasks/priority/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"priority":"low","count":1},{"priority":"high","count":2}]`, string(data))

	req := httptest.NewRequest(http.MethodGet,
		"/api/tasks/export?status=todo&sort=title.asc&excludeColumns=id,assignee,dueDate,estimatedHours,department,tags,createdAt,updatedAt", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/csv"))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "tasks.csv")
	csv, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "code,title,status,label,priority\n"+
		"TASK-0001,Fix login,todo,bug,high\n"+
		"TASK-0003,Review copy,todo,bug,high\n", string(csv))

	status, _ = call(t, app, http.MethodDelete, "/api/tasks/batch", map[string]any{"ids": []string{first["id"].(string), second["id"].(string), "missing"}})
	assert.Equal(t, http.StatusNoContent, status)

	status, data = call(t, app, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[pageBody](t, data)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Review copy", page.Data[0]["title"])

	// 写入后统计缓存失效
	status, data = call(t, app, http.MethodGet, "/api/tasks/status/count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"status":"todo","count":1}]`, string(data))
}

func TestTasks_ViewParams(t *testing.T) {
	app := setup(t)
	createTask(t, app, "A", "todo", "low")
	createTask(t, app, "B", "done", "low")
	createTask(t, app, "C", "done", "medium")

	status, data := call(t, app, http.MethodPost, "/api/views", map[string]any{
		"name":  "Done",
		"table": logic.EntityTasks,
		"filterParams": map[string]any{
			"filters": []any{map[string]any{"id": "f1", "field": "status", "value": []string{"done"}, "operator": "equals"}},
		},
	})
	require.Equal(t, http.StatusOK, status, string(data))
	id := decode[map[string]any](t, data)["id"].(string)

	status, data = call(t, app, http.MethodGet, "/api/tasks?viewId="+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), decode[pageBody](t, data).Total)

	// 查询参数优先于视图
	status, data = call(t, app, http.MethodGet, "/api/tasks?viewId="+id+"&status=todo", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), decode[pageBody](t, data).Total)

	status, _ = call(t, app, http.MethodDelete, "/api/views/"+id, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, data = call(t, app, http.MethodGet, "/api/tasks?viewId="+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(3), decode[pageBody](t, data).Total)
}

func TestTasks_ClearingViewFilterReachesServer(t *testing.T) {
	app := setup(t)
	createTask(t, app, "A", "todo", "low")
	createTask(t, app, "B", "done", "low")
	createTask(t, app, "C", "done", "medium")

	status, data := call(t, app, http.MethodPost, "/api/views", map[string]any{
		"name":  "Done",
		"table": logic.EntityTasks,
		"filterParams": map[string]any{
			"filters": []any{map[string]any{"id": "f1", "field": "status", "value": []string{"done"}, "operator": "equals"}},
		},
	})
	require.Equal(t, http.StatusOK, status, string(data))
	id := decode[map[string]any](t, data)["id"].(string)

	v, err := svc.Ctx.Views.Get(context.Background(), id)
	require.NoError(t, err)
	schema, ok := svc.Ctx.Registry.Get(logic.EntityTasks)
	require.True(t, ok)

	ctrl := table.NewController(schema, "", nil)
	ctrl.ApplyView(logic.ViewConfigOf(v))
	status, data = call(t, app, http.MethodGet, "/api/tasks?"+ctrl.Query(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(2), decode[pageBody](t, data).Total)

	ctrl.SetFilter("status")
	_, filtered := ctrl.State().Filter("status")
	assert.False(t, filtered)
	status, data = call(t, app, http.MethodGet, "/api/tasks?"+ctrl.Query(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(3), decode[pageBody](t, data).Total)
}

func TestProjects_NextIDAndPopulate(t *testing.T) {
	app := setup(t)

	status, data := call(t, app, http.MethodGet, "/api/projects/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"project_id":"PROJ-001"}`, string(data))

	_, err := seed.New(svc.Ctx, 3).Run(context.Background(), seed.Counts{Clients: 2, Freelancers: 3, Staff: 3, Projects: 2})
	require.NoError(t, err)

	status, data = call(t, app, http.MethodGet, "/api/projects/next-id", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"project_id":"PROJ-003"}`, string(data))

	status, data = call(t, app, http.MethodGet, "/api/projects?sort=project_id.asc", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[pageBody](t, data)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "PROJ-001", page.Data[0]["project_id"])
	client, ok := page.Data[0]["client"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, client["name"])
	team := page.Data[0]["team"].(map[string]any)
	manager, ok := team["account_manager"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, manager["name"])

	status, data = call(t, app, http.MethodPost, "/api/projects", map[string]any{
		"name":         "Orphan",
		"client_id":    primitive.NewObjectID().Hex(),
		"service_type": "SS",
		"timeline":     map[string]any{"kick_off_date": time.Now(), "deadline": time.Now().Add(24 * time.Hour)},
		"team":         map[string]any{"account_manager": primitive.NewObjectID().Hex()},
		"brief":        map[string]any{"topic": "Market", "expected_output": "Slides Report", "business_type": "B2B"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode[errorBody](t, data)
	assert.Equal(t, "Client not found", body.Error)
	assert.Equal(t, "client_id", body.Issues[0].Path)
}

func TestTables_SchemaAndUnknownRoute(t *testing.T) {
	app := setup(t)

	status, data := call(t, app, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, decode[[]string](t, data), logic.EntityFreelancers)

	status, data = call(t, app, http.MethodGet, "/api/tables/tasks", nil)
	require.Equal(t, http.StatusOK, status)
	info := decode[map[string]any](t, data)
	assert.Equal(t, "tasks", info["entity"])
	assert.Equal(t, []any{"createdAt.desc"}, info["defaultSort"])

	status, data = call(t, app, http.MethodGet, "/api/tables/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, decode[errorBody](t, data).Error)

	status, data = call(t, app, http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", decode[errorBody](t, data).Error)
}

func TestClientList_PageCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		app := newApp(svc.Stores{})
		n := rapid.IntRange(0, 40).Draw(rt, "clients")
		perPage := rapid.IntRange(1, 100).Draw(rt, "perPage")

		for i := 0; i < n; i++ {
			err := svc.Ctx.Clients.Insert(context.Background(), &model.Client{
				ID:               primitive.NewObjectID(),
				Name:             fmt.Sprintf("Client %02d", i),
				Email:            fmt.Sprintf("c%02d@example.com", i),
				OrganizationType: "SMEs",
				Location:         "Jakarta",
			})
			if err != nil {
				rt.Fatalf("insert: %v", err)
			}
		}

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/clients?per_page=%d", perPage), nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			rt.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		var page pageBody
		if err := sonic.Unmarshal(data, &page); err != nil {
			rt.Fatalf("decode: %v", err)
		}

		want := (n + perPage - 1) / perPage
		if page.PageCount != want {
			rt.Fatalf("pageCount = %d, want ceil(%d/%d) = %d", page.PageCount, n, perPage, want)
		}
		if page.Total != int64(n) || len(page.Data) != min(n, perPage) {
			rt.Fatalf("total = %d rows = %d for n=%d perPage=%d", page.Total, len(page.Data), n, perPage)
		}
	})
}
