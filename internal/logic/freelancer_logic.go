package logic

import (
	"context"
	"net/url"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FreelancerLogic 自由职业者逻辑
type FreelancerLogic struct {
	ctx context.Context
}

// NewFreelancerLogic 创建自由职业者逻辑
func NewFreelancerLogic(c *fiber.Ctx) *FreelancerLogic {
	return &FreelancerLogic{ctx: c.UserContext()}
}

// List 分页查询自由职业者
func (l *FreelancerLogic) List(values url.Values) (*ListResult[model.Freelancer], error) {
	schema, state, err := decodeState(l.ctx, EntityFreelancers, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Freelancers.Find(l.ctx, state.Query(schema))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch freelancers", err)
	}
	return &ListResult[model.Freelancer]{Rows: page.Rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// Get 获取自由职业者
func (l *FreelancerLogic) Get(id string) (*model.Freelancer, error) {
	oid, err := findOID(id, apperr.ErrFreelancerNotFound)
	if err != nil {
		return nil, err
	}
	f, err := svc.Ctx.Freelancers.Get(l.ctx, oid)
	if err != nil {
		return nil, storeErr(err, apperr.ErrFreelancerNotFound, "Failed to fetch freelancer")
	}
	return f, nil
}

// Create 创建自由职业者，LinkedIn 地址存在时必须唯一
func (l *FreelancerLogic) Create(body []byte) (*model.Freelancer, error) {
	var f model.Freelancer
	if err := utils.Unmarshal(body, &f); err != nil {
		return nil, apperr.Validation("Invalid freelancer data")
	}
	f.Linkedin = utils.Trim(f.Linkedin)
	if err := validate(&f); err != nil {
		return nil, err
	}
	if err := l.checkLinkedin(f.Linkedin, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	f.ID = primitive.NewObjectID()
	f.CreatedAt, f.UpdatedAt = now, now
	f.Audit.UpdatedOn = now
	f.Defaults()
	if err := svc.Ctx.Freelancers.Insert(l.ctx, &f); err != nil {
		return nil, apperr.Internal("Failed to create freelancer", err)
	}
	touch(l.ctx, EntityFreelancers)
	return &f, nil
}

// Update 更新自由职业者
func (l *FreelancerLogic) Update(id string, body []byte) (*model.Freelancer, error) {
	f, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	oid, createdAt := f.ID, f.CreatedAt
	if err := utils.Unmarshal(body, f); err != nil {
		return nil, apperr.Validation("Invalid freelancer data")
	}
	f.ID, f.CreatedAt = oid, createdAt
	f.Linkedin = utils.Trim(f.Linkedin)
	if err := validate(f); err != nil {
		return nil, err
	}
	if err := l.checkLinkedin(f.Linkedin, oid); err != nil {
		return nil, err
	}

	now := time.Now()
	f.UpdatedAt = now
	f.Audit.UpdatedOn = now
	f.Defaults()
	if err := svc.Ctx.Freelancers.Replace(l.ctx, oid, f); err != nil {
		return nil, storeErr(err, apperr.ErrFreelancerNotFound, "Failed to update freelancer")
	}
	touch(l.ctx, EntityFreelancers)
	return f, nil
}

// Delete 删除自由职业者
func (l *FreelancerLogic) Delete(id string) error {
	oid, err := findOID(id, apperr.ErrFreelancerNotFound)
	if err != nil {
		return err
	}
	if err := svc.Ctx.Freelancers.Delete(l.ctx, oid); err != nil {
		return storeErr(err, apperr.ErrFreelancerNotFound, "Failed to delete freelancer")
	}
	touch(l.ctx, EntityFreelancers)
	return nil
}

func (l *FreelancerLogic) checkLinkedin(linkedin string, exclude primitive.ObjectID) error {
	if linkedin == "" {
		return nil
	}
	exists, err := svc.Ctx.Freelancers.Exists(l.ctx, "linkedin", linkedin, exclude)
	if err != nil {
		return apperr.Internal("Failed to check linkedin", err)
	}
	if exists {
		return apperr.ErrLinkedinExists
	}
	return nil
}
