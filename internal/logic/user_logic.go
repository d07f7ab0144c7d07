package logic

import (
	"context"
	"net/url"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/apperr"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/svc"
	"github.com/Ravenry/kacamerah/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// UserLogic 用户逻辑
type UserLogic struct {
	ctx context.Context
}

// NewUserLogic 创建用户逻辑
func NewUserLogic(c *fiber.Ctx) *UserLogic {
	return &UserLogic{ctx: c.UserContext()}
}

// List 分页查询用户
func (l *UserLogic) List(values url.Values) (*ListResult[model.User], error) {
	schema, state, err := decodeState(l.ctx, EntityUsers, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Users.Find(l.ctx, state.Query(schema))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch users", err)
	}
	return &ListResult[model.User]{Rows: page.Rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// Get 获取用户
func (l *UserLogic) Get(id string) (*model.User, error) {
	u, err := svc.Ctx.Users.Get(l.ctx, id)
	if err != nil {
		return nil, storeErr(err, apperr.ErrUserNotFound, "Failed to fetch user")
	}
	return u, nil
}

// Create 创建用户
func (l *UserLogic) Create(req *types.CreateUserRequest) (*model.User, error) {
	req.Email = utils.NormalizeEmail(req.Email)
	req.Name = utils.Trim(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := l.checkEmail(req.Email, ""); err != nil {
		return nil, err
	}

	var user model.User
	if err := copier.Copy(&user, req); err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}
	if user.Status == "" {
		user.Status = "pending"
	}
	if err := svc.Ctx.Users.Create(l.ctx, &user); err != nil {
		return nil, apperr.Internal("Failed to create user", err)
	}
	touch(l.ctx, EntityUsers)
	return &user, nil
}

// Update 更新用户，只修改请求中出现的字段
func (l *UserLogic) Update(id string, req *types.UpdateUserRequest) (*model.User, error) {
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	user, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := l.checkEmail(*req.Email, user.ID); err != nil {
			return nil, err
		}
	}

	if err := copier.CopyWithOption(user, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, apperr.Internal("Failed to update user", err)
	}
	if err := svc.Ctx.Users.Update(l.ctx, user); err != nil {
		return nil, apperr.Internal("Failed to update user", err)
	}
	touch(l.ctx, EntityUsers)
	return user, nil
}

// Delete 删除用户
func (l *UserLogic) Delete(id string) error {
	n, err := svc.Ctx.Users.Delete(l.ctx, id)
	if err != nil {
		return apperr.Internal("Failed to delete user", err)
	}
	if n == 0 {
		return apperr.ErrUserNotFound
	}
	touch(l.ctx, EntityUsers)
	return nil
}

func (l *UserLogic) checkEmail(email, excludeID string) error {
	exists, err := svc.Ctx.Users.Exists(l.ctx, "email", email, excludeID)
	if err != nil {
		return apperr.Internal("Failed to check email", err)
	}
	if exists {
		return apperr.ErrEmailExists
	}
	return nil
}
