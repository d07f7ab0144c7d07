package router

import (
	commonMiddleware "github.com/Ravenry/kacamerah/common/middleware"
	"github.com/Ravenry/kacamerah/internal/handler"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Setup 设置路由
func Setup(app *fiber.App, origins []string) {
	// 全局中间件
	app.Use(commonMiddleware.CORS(origins), commonMiddleware.RequestID(), commonMiddleware.Logger(), commonMiddleware.Recover())

	api := app.Group("/api")

	// 表格声明
	api.Get("/tables", handler.TableList)
	api.Get("/tables/:entity", handler.TableSchema)

	// 客户
	cl := api.Group("/"+logic.EntityClients, middleware.OperationLog(logic.EntityClients))
	cl.Get("", handler.ClientList)
	cl.Post("", handler.ClientCreate)
	cl.Get("/facets/:field", handler.FacetCounts(logic.EntityClients))
	cl.Get("/:id", handler.ClientGet)
	cl.Put("/:id", handler.ClientUpdate)
	cl.Delete("/:id", handler.ClientDelete)

	// 自由职业者
	fl := api.Group("/"+logic.EntityFreelancers, middleware.OperationLog(logic.EntityFreelancers))
	fl.Get("", handler.FreelancerList)
	fl.Post("", handler.FreelancerCreate)
	fl.Get("/facets/:field", handler.FacetCounts(logic.EntityFreelancers))
	fl.Get("/:id", handler.FreelancerGet)
	fl.Put("/:id", handler.FreelancerUpdate)
	fl.Delete("/:id", handler.FreelancerDelete)

	// 项目
	pr := api.Group("/"+logic.EntityProjects, middleware.OperationLog(logic.EntityProjects))
	pr.Get("", handler.ProjectList)
	pr.Post("", handler.ProjectCreate)
	pr.Get("/next-id", handler.ProjectNextID)
	pr.Get("/facets/:field", handler.FacetCounts(logic.EntityProjects))
	pr.Get("/:id", handler.ProjectGet)
	pr.Put("/:id", handler.ProjectUpdate)
	pr.Delete("/:id", handler.ProjectDelete)

	// 员工
	st := api.Group("/"+logic.EntityStaff, middleware.OperationLog(logic.EntityStaff))
	st.Get("", handler.StaffList)
	st.Post("", handler.StaffCreate)
	st.Get("/facets/:field", handler.FacetCounts(logic.EntityStaff))
	st.Get("/:id", handler.StaffGet)
	st.Put("/:id", handler.StaffUpdate)
	st.Delete("/:id", handler.StaffDelete)

	// 用户
	u := api.Group("/"+logic.EntityUsers, middleware.OperationLog(logic.EntityUsers))
	u.Get("", handler.UserList)
	u.Post("", handler.UserCreate)
	u.Get("/facets/:field", handler.FacetCounts(logic.EntityUsers))
	u.Get("/:id", handler.UserGet)
	u.Put("/:id", handler.UserUpdate)
	u.Delete("/:id", handler.UserDelete)

	// 任务，固定路径需在 /:id 之前注册
	t := api.Group("/"+logic.EntityTasks, middleware.OperationLog(logic.EntityTasks))
	t.Get("", handler.TaskList)
	t.Post("", handler.TaskCreate)
	t.Delete("/batch", handler.TaskBatchDelete)
	t.Get("/export", handler.TaskExport)
	t.Get("/status/count", handler.TaskStatusCount)
	t.Get("/priority/count", handler.TaskPriorityCount)
	t.Get("/facets/:field", handler.FacetCounts(logic.EntityTasks))
	t.Get("/:id", handler.TaskGet)
	t.Put("/:id", handler.TaskUpdate)
	t.Delete("/:id", handler.TaskDelete)

	// 保存视图
	v := api.Group("/views", middleware.OperationLog("views"))
	v.Get("", handler.ViewList)
	v.Post("", handler.ViewCreate)
	v.Get("/:id", handler.ViewGet)
	v.Put("/:id", handler.ViewUpdate)
	v.Delete("/:id", handler.ViewDelete)

	app.Use(handler.NotFound)
}
