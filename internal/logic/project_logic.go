package logic

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/store"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectLogic 项目逻辑
type ProjectLogic struct {
	ctx context.Context
}

// NewProjectLogic 创建项目逻辑
func NewProjectLogic(c *fiber.Ctx) *ProjectLogic {
	return &ProjectLogic{ctx: c.UserContext()}
}

// List 分页查询项目，并展开客户与团队成员名称
func (l *ProjectLogic) List(values url.Values) (*ListResult[model.ProjectView], error) {
	schema, state, err := decodeState(l.ctx, EntityProjects, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Projects.Find(l.ctx, state.Query(schema))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch projects", err)
	}
	rows, err := l.populate(page.Rows)
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ProjectView]{Rows: rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// Get 获取项目
func (l *ProjectLogic) Get(id string) (*model.ProjectView, error) {
	p, err := l.get(id)
	if err != nil {
		return nil, err
	}
	rows, err := l.populate([]model.Project{*p})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (l *ProjectLogic) get(id string) (*model.Project, error) {
	oid, err := findOID(id, apperr.ErrProjectNotFound)
	if err != nil {
		return nil, err
	}
	p, err := svc.Ctx.Projects.Get(l.ctx, oid)
	if err != nil {
		return nil, storeErr(err, apperr.ErrProjectNotFound, "Failed to fetch project")
	}
	return p, nil
}

// NextID 预览下一个项目编号，不占用序列
func (l *ProjectLogic) NextID() (*types.NextIDResponse, error) {
	cur, err := svc.Ctx.ProjectSeq.Current(l.ctx, model.ProjectIDCounter)
	if err != nil {
		return nil, apperr.Internal("Failed to read project counter", err)
	}
	return &types.NextIDResponse{ProjectID: model.FormatProjectID(cur + 1)}, nil
}

// Create 创建项目，编号由计数器分配，并登记到客户与客户经理
func (l *ProjectLogic) Create(body []byte) (*model.Project, error) {
	var p model.Project
	if err := utils.Unmarshal(body, &p); err != nil {
		return nil, apperr.Validation("Invalid project data")
	}
	p.Defaults()
	if err := validate(&p); err != nil {
		return nil, err
	}
	if err := l.checkRefs(&p); err != nil {
		return nil, err
	}

	seq, err := svc.Ctx.ProjectSeq.Next(l.ctx, model.ProjectIDCounter)
	if err != nil {
		return nil, apperr.Internal("Failed to allocate project id", err)
	}
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.ProjectID = model.FormatProjectID(seq)
	p.CreatedAt, p.UpdatedAt = now, now
	if err := svc.Ctx.Projects.Insert(l.ctx, &p); err != nil {
		return nil, apperr.Internal("Failed to create project", err)
	}

	// 反向登记
	if err := l.link(p.ID, p.ClientID, p.Team.AccountManager); err != nil {
		return nil, err
	}
	touch(l.ctx, EntityProjects)
	return &p, nil
}

// Update 更新项目，编号与创建时间不变
func (l *ProjectLogic) Update(id string, body []byte) (*model.Project, error) {
	p, err := l.get(id)
	if err != nil {
		return nil, err
	}
	oid, projectID, createdAt := p.ID, p.ProjectID, p.CreatedAt
	if err := utils.Unmarshal(body, p); err != nil {
		return nil, apperr.Validation("Invalid project data")
	}
	p.ID, p.ProjectID, p.CreatedAt = oid, projectID, createdAt
	p.Defaults()
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := l.checkRefs(p); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := svc.Ctx.Projects.Replace(l.ctx, oid, p); err != nil {
		return nil, storeErr(err, apperr.ErrProjectNotFound, "Failed to update project")
	}
	if err := l.link(p.ID, p.ClientID, p.Team.AccountManager); err != nil {
		return nil, err
	}
	touch(l.ctx, EntityProjects)
	return p, nil
}

// Delete 删除项目
func (l *ProjectLogic) Delete(id string) error {
	oid, err := findOID(id, apperr.ErrProjectNotFound)
	if err != nil {
		return err
	}
	if err := svc.Ctx.Projects.Delete(l.ctx, oid); err != nil {
		return storeErr(err, apperr.ErrProjectNotFound, "Failed to delete project")
	}
	touch(l.ctx, EntityProjects)
	return nil
}

// checkRefs 校验客户与客户经理存在
func (l *ProjectLogic) checkRefs(p *model.Project) error {
	if _, err := svc.Ctx.Clients.Get(l.ctx, p.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.Validation("Client not found", apperr.Issue{Path: "client_id", Message: "Client not found"})
		}
		return apperr.Internal("Failed to fetch client", err)
	}
	if _, err := svc.Ctx.Staff.Get(l.ctx, p.Team.AccountManager); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.Validation("Account manager not found", apperr.Issue{Path: "team.account_manager", Message: "Account manager not found"})
		}
		return apperr.Internal("Failed to fetch staff", err)
	}
	return nil
}

// link 把项目登记到客户与客户经理的项目列表
func (l *ProjectLogic) link(projectID, clientID, managerID primitive.ObjectID) error {
	client, err := svc.Ctx.Clients.Get(l.ctx, clientID)
	if err != nil {
		return storeErr(err, apperr.ErrClientNotFound, "Failed to fetch client")
	}
	if !utils.SliceContains(client.Projects, projectID) {
		client.Projects = append(client.Projects, projectID)
		if err := svc.Ctx.Clients.Replace(l.ctx, clientID, client); err != nil {
			return apperr.Internal("Failed to update client", err)
		}
	}

	staff, err := svc.Ctx.Staff.Get(l.ctx, managerID)
	if err != nil {
		return storeErr(err, apperr.ErrStaffNotFound, "Failed to fetch staff")
	}
	if !utils.SliceContains(staff.Projects, projectID) {
		staff.Projects = append(staff.Projects, projectID)
		if err := svc.Ctx.Staff.Replace(l.ctx, managerID, staff); err != nil {
			return apperr.Internal("Failed to update staff", err)
		}
	}
	return nil
}

// populate 展开客户、项目经理、客户经理与成员名称
func (l *ProjectLogic) populate(projects []model.Project) ([]model.ProjectView, error) {
	var clientIDs, freelancerIDs, staffIDs []primitive.ObjectID
	for _, p := range projects {
		clientIDs = append(clientIDs, p.ClientID)
		staffIDs = append(staffIDs, p.Team.AccountManager)
		freelancerIDs = append(freelancerIDs, p.Team.ProjectManagers...)
		for _, m := range p.Team.Members {
			freelancerIDs = append(freelancerIDs, m.Freelancers...)
		}
	}

	clients, err := svc.Ctx.Clients.GetMany(l.ctx, refs(clientIDs))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project clients", err)
	}
	freelancers, err := svc.Ctx.Freelancers.GetMany(l.ctx, refs(freelancerIDs))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project freelancers", err)
	}
	staff, err := svc.Ctx.Staff.GetMany(l.ctx, refs(staffIDs))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch project staff", err)
	}

	clientNames := namesOf(clients, func(c model.Client) primitive.ObjectID { return c.ID }, func(c model.Client) string { return c.Name })
	flNames := namesOf(freelancers, func(f model.Freelancer) primitive.ObjectID { return f.ID }, func(f model.Freelancer) string { return f.Name })
	staffNames := namesOf(staff, func(s model.Staff) primitive.ObjectID { return s.ID }, func(s model.Staff) string { return s.Name })

	out := make([]model.ProjectView, 0, len(projects))
	for _, p := range projects {
		view := model.ProjectView{
			Project: p,
			Team: model.PopulatedTeam{
				ProjectManagers: []model.PersonRef{},
				Members:         []model.PopulatedMember{},
			},
		}
		if ref, ok := personRef(clientNames, p.ClientID); ok {
			view.Client = &ref
		}
		if ref, ok := personRef(staffNames, p.Team.AccountManager); ok {
			view.Team.AccountManager = &ref
		}
		for _, id := range p.Team.ProjectManagers {
			if ref, ok := personRef(flNames, id); ok {
				view.Team.ProjectManagers = append(view.Team.ProjectManagers, ref)
			}
		}
		for _, m := range p.Team.Members {
			member := model.PopulatedMember{Role: m.Role, Freelancers: []model.PersonRef{}}
			for _, id := range m.Freelancers {
				if ref, ok := personRef(flNames, id); ok {
					member.Freelancers = append(member.Freelancers, ref)
				}
			}
			view.Team.Members = append(view.Team.Members, member)
		}
		out = append(out, view)
	}
	return out, nil
}
