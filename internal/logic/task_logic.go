package logic

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/grid"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// TaskCodeCounter 任务编号计数器的键
const TaskCodeCounter = "task_code"

const (
	// ParamExcludeColumns 导出时排除的列
	ParamExcludeColumns = "excludeColumns"
	// ExportFilename 导出文件名
	ExportFilename = "tasks.csv"
)

// taskExportColumns 导出列顺序
var taskExportColumns = []string{
	"id", "code", "title", "status", "label", "priority", "assignee",
	"dueDate", "estimatedHours", "department", "tags", "createdAt", "updatedAt",
}

// TaskLogic 任务逻辑
type TaskLogic struct {
	ctx context.Context
}

// NewTaskLogic 创建任务逻辑
func NewTaskLogic(c *fiber.Ctx) *TaskLogic {
	return &TaskLogic{ctx: c.UserContext()}
}

// List 分页查询任务
func (l *TaskLogic) List(values url.Values) (*ListResult[model.Task], error) {
	schema, state, err := decodeState(l.ctx, EntityTasks, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Tasks.Find(l.ctx, state.Query(schema))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch tasks", err)
	}
	return &ListResult[model.Task]{Rows: page.Rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// Get 获取任务
func (l *TaskLogic) Get(id string) (*model.Task, error) {
	t, err := svc.Ctx.Tasks.Get(l.ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.ErrTaskNotFound, "Failed to fetch task")
	}
	return t, nil
}

// Create 创建任务，编号由计数器分配
func (l *TaskLogic) Create(req *types.CreateTaskRequest) (*model.Task, error) {
	req.Title = utils.Trim(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}

	var task model.Task
	if err := copier.Copy(&task, req); err != nil {
		return nil, apperr.Internal("Failed to create task", err)
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	task.Tags = tagsOf(req.Tags)

	seq, err := svc.Ctx.TaskSeq.Next(l.ctx, TaskCodeCounter)
	if err != nil {
		return nil, apperr.Internal("Failed to allocate task code", err)
	}
	task.Code = model.FormatTaskCode(seq)
	if err := svc.Ctx.Tasks.Create(l.ctx, &task); err != nil {
		return nil, apperr.Internal("Failed to create task", err)
	}
	touch(l.ctx, EntityTasks)
	return &task, nil
}

// Update 更新任务，只修改请求中出现的字段
func (l *TaskLogic) Update(id string, req *types.UpdateTaskRequest) (*model.Task, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	task, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(task, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperr.Internal("Failed to update task", err)
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Tags != nil {
		task.Tags = tagsOf(req.Tags)
	}
	if err := svc.Ctx.Tasks.Update(l.ctx, task); err != nil {
		return nil, apperr.Internal("Failed to update task", err)
	}
	touch(l.ctx, EntityTasks)
	return task, nil
}

// Delete 删除任务
func (l *TaskLogic) Delete(id string) error {
	n, err := svc.Ctx.Tasks.Delete(l.ctx, id)
	if err != nil {
		return apperr.Internal("Failed to delete task", err)
	}
	if n == 0 {
		return apperr.ErrTaskNotFound
	}
	touch(l.ctx, EntityTasks)
	return nil
}

// BatchDelete 批量删除任务，不存在的 id 被忽略
func (l *TaskLogic) BatchDelete(req *types.BatchDeleteRequest) (int64, error) {
	if err := validate(req); err != nil {
		return 0, err
	}
	n, err := svc.Ctx.Tasks.Delete(l.ctx, utils.SliceUnique(req.IDs)...)
	if err != nil {
		return 0, apperr.Internal("Failed to delete tasks", err)
	}
	if n > 0 {
		touch(l.ctx, EntityTasks)
	}
	return n, nil
}

// Export 按当前过滤与排序导出全部任务为 CSV
func (l *TaskLogic) Export(values url.Values, w io.Writer) error {
	schema, state, err := decodeState(l.ctx, EntityTasks, values)
	if err != nil {
		return err
	}
	q := state.Query(schema)
	q.Offset, q.Limit = 0, 0
	page, err := svc.Ctx.Tasks.Find(l.ctx, q)
	if err != nil {
		return apperr.Internal("Failed to export tasks", err)
	}

	rows, err := grid.Rows(page.Rows)
	if err != nil {
		return apperr.Internal("Failed to export tasks", err)
	}
	cols := grid.Layout(taskExportColumns, state, excludedColumns(values)...)
	if err := grid.WriteCSV(w, cols, rows); err != nil {
		return apperr.Internal("Failed to export tasks", err)
	}
	return nil
}

// StatusCounts 各状态的任务数，只返回非零项
func (l *TaskLogic) StatusCounts() ([]types.StatusCount, error) {
	counts, err := countBy(l.ctx, EntityTasks, "status", model.TaskStatuses)
	if err != nil {
		return nil, err
	}
	out := make([]types.StatusCount, 0, len(model.TaskStatuses))
	for _, s := range model.TaskStatuses {
		if n := counts[s]; n > 0 {
			out = append(out, types.StatusCount{Status: s, Count: n})
		}
	}
	return out, nil
}

// PriorityCounts 各优先级的任务数，只返回非零项
func (l *TaskLogic) PriorityCounts() ([]types.PriorityCount, error) {
	counts, err := countBy(l.ctx, EntityTasks, "priority", model.TaskPriorities)
	if err != nil {
		return nil, err
	}
	out := make([]types.PriorityCount, 0, len(model.TaskPriorities))
	for _, p := range model.TaskPriorities {
		if n := counts[p]; n > 0 {
			out = append(out, types.PriorityCount{Priority: p, Count: n})
		}
	}
	return out, nil
}

func excludedColumns(values url.Values) []string {
	var out []string
	for _, raw := range values[ParamExcludeColumns] {
		for _, col := range strings.Split(raw, ",") {
			if col = strings.TrimSpace(col); col != "" {
				out = append(out, col)
			}
		}
	}
	return out
}

func tagsOf(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = utils.Trim(t); t != "" {
			out = append(out, t)
		}
	}
	return utils.SliceUnique(out)
}
