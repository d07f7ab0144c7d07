package logic

import (
	"context"
	"net/url"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffLogic 员工逻辑
type StaffLogic struct {
	ctx context.Context
}

// NewStaffLogic 创建员工逻辑
func NewStaffLogic(c *fiber.Ctx) *StaffLogic {
	return &StaffLogic{ctx: c.UserContext()}
}

// List 分页查询员工，并展开所属项目名称
func (l *StaffLogic) List(values url.Values) (*ListResult[model.StaffView], error) {
	schema, state, err := decodeState(l.ctx, EntityStaff, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Staff.Find(l.ctx, staffQuery(state.Query(schema)))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch staff", err)
	}
	rows, err := l.populate(page.Rows)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.StaffView]{Rows: rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// staffQuery 把 status 参数转换为 is_active 条件，两个取值都选中时不做限制
func staffQuery(q table.Query) table.Query {
	conds := make([]table.Condition, 0, len(q.Conditions))
	for _, c := range q.Conditions {
		if len(c.Fields) != 1 || c.Fields[0] != "status" {
			conds = append(conds, c)
			continue
		}
		active := utils.SliceContains(c.Values, StaffActive)
		inactive := utils.SliceContains(c.Values, StaffInactive)
		switch {
		case active && inactive:
			if q.Join == table.Or {
				q.Conditions = nil
				return q
			}
		case active || inactive:
			conds = append(conds, table.Condition{Fields: []string{"is_active"}, Op: table.OpEq, Bool: active})
		}
	}
	q.Conditions = conds
	return q
}

// Get 获取员工
func (l *StaffLogic) Get(id string) (*model.StaffView, error) {
	s, err := l.get(id)
	if err != nil {
		return nil, err
	}
	rows, err := l.populate([]model.Staff{*s})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (l *StaffLogic) get(id string) (*model.Staff, error) {
	oid, err := findOID(id, apperr.ErrStaffNotFound)
	if err != nil {
		return nil, err
	}
	s, err := svc.Ctx.Staff.Get(l.ctx, oid)
	if err != nil {
		return nil, storeErr(err, apperr.ErrStaffNotFound, "Failed to fetch staff")
	}
	return s, nil
}

// Create 创建员工，邮箱唯一，默认在职
func (l *StaffLogic) Create(body []byte) (*model.Staff, error) {
	var s model.Staff
	if err := utils.Unmarshal(body, &s); err != nil {
		return nil, apperr.Validation("Invalid staff data")
	}
	s.Email = utils.NormalizeEmail(s.Email)
	if err := validate(&s); err != nil {
		return nil, err
	}
	if err := l.checkEmail(s.Email, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	s.ID = primitive.NewObjectID()
	s.CreatedAt, s.UpdatedAt = now, now
	s.Defaults()
	if err := svc.Ctx.Staff.Insert(l.ctx, &s); err != nil {
		return nil, apperr.Internal("Failed to create staff", err)
	}
	touch(l.ctx, EntityStaff)
	return &s, nil
}

// Update 更新员工
func (l *StaffLogic) Update(id string, body []byte) (*model.Staff, error) {
	s, err := l.get(id)
	if err != nil {
		return nil, err
	}
	oid, createdAt := s.ID, s.CreatedAt
	if err := utils.Unmarshal(body, s); err != nil {
		return nil, apperr.Validation("Invalid staff data")
	}
	s.ID, s.CreatedAt = oid, createdAt
	s.Email = utils.NormalizeEmail(s.Email)
	if err := validate(s); err != nil {
		return nil, err
	}
	if err := l.checkEmail(s.Email, oid); err != nil {
		return nil, err
	}

	s.UpdatedAt = time.Now()
	if err := svc.Ctx.Staff.Replace(l.ctx, oid, s); err != nil {
		return nil, storeErr(err, apperr.ErrStaffNotFound, "Failed to update staff")
	}
	touch(l.ctx, EntityStaff)
	return s, nil
}

// Delete 删除员工
func (l *StaffLogic) Delete(id string) error {
	oid, err := findOID(id, apperr.ErrStaffNotFound)
	if err != nil {
		return err
	}
	if err := svc.Ctx.Staff.Delete(l.ctx, oid); err != nil {
		return storeErr(err, apperr.ErrStaffNotFound, "Failed to delete staff")
	}
	touch(l.ctx, EntityStaff)
	return nil
}

// populate 展开员工关联的项目
func (l *StaffLogic) populate(staff []model.Staff) ([]model.StaffView, error) {
	var ids [][]primitive.ObjectID
	for _, s := range staff {
		ids = append(ids, s.Projects)
	}
	projects, err := svc.Ctx.Projects.GetMany(l.ctx, refs(ids...))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch staff projects", err)
	}
	byID := make(map[primitive.ObjectID]model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	out := make([]model.StaffView, 0, len(staff))
	for _, s := range staff {
		view := model.StaffView{Staff: s, Projects: []model.StaffProject{}}
		for _, id := range s.Projects {
			if p, ok := byID[id]; ok {
				view.Projects = append(view.Projects, model.StaffProject{ID: p.ID, ProjectID: p.ProjectID, Name: p.Name})
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (l *StaffLogic) checkEmail(email string, exclude primitive.ObjectID) error {
	exists, err := svc.Ctx.Staff.Exists(l.ctx, "email", email, exclude)
	if err != nil {
		return apperr.Internal("Failed to check email", err)
	}
	if exists {
		return apperr.ErrEmailExists
	}
	return nil
}
