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

// ClientLogic 客户逻辑
type ClientLogic struct {
	ctx context.Context
}

// NewClientLogic 创建客户逻辑
func NewClientLogic(c *fiber.Ctx) *ClientLogic {
	return &ClientLogic{ctx: c.UserContext()}
}

// List 分页查询客户
func (l *ClientLogic) List(values url.Values) (*ListResult[model.Client], error) {
	schema, state, err := decodeState(l.ctx, EntityClients, values)
	if err != nil {
		return nil, err
	}
	page, err := svc.Ctx.Clients.Find(l.ctx, state.Query(schema))
	if err != nil {
		return nil, apperr.Internal("Failed to fetch clients", err)
	}
	return &ListResult[model.Client]{Rows: page.Rows, Total: page.Total, PerPage: state.PerPage, State: state}, nil
}

// Get 获取客户
func (l *ClientLogic) Get(id string) (*model.Client, error) {
	oid, err := findOID(id, apperr.ErrClientNotFound)
	if err != nil {
		return nil, err
	}
	c, err := svc.Ctx.Clients.Get(l.ctx, oid)
	if err != nil {
		return nil, storeErr(err, apperr.ErrClientNotFound, "Failed to fetch client")
	}
	return c, nil
}

// Create 创建客户，邮箱全局唯一
func (l *ClientLogic) Create(body []byte) (*model.Client, error) {
	var client model.Client
	if err := utils.Unmarshal(body, &client); err != nil {
		return nil, apperr.Validation("Invalid client data")
	}
	client.Email = utils.NormalizeEmail(client.Email)
	if err := validate(&client); err != nil {
		return nil, err
	}
	if err := l.checkEmail(client.Email, primitive.NilObjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	client.ID = primitive.NewObjectID()
	client.CreatedAt, client.UpdatedAt = now, now
	if client.Industry == nil {
		client.Industry = []string{}
	}
	if client.Projects == nil {
		client.Projects = []primitive.ObjectID{}
	}
	if err := svc.Ctx.Clients.Insert(l.ctx, &client); err != nil {
		return nil, apperr.Internal("Failed to create client", err)
	}
	touch(l.ctx, EntityClients)
	return &client, nil
}

// Update 更新客户，请求体只需包含要修改的字段
func (l *ClientLogic) Update(id string, body []byte) (*model.Client, error) {
	client, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	oid, createdAt := client.ID, client.CreatedAt
	if err := utils.Unmarshal(body, client); err != nil {
		return nil, apperr.Validation("Invalid client data")
	}
	client.ID, client.CreatedAt = oid, createdAt
	client.Email = utils.NormalizeEmail(client.Email)
	if err := validate(client); err != nil {
		return nil, err
	}
	if err := l.checkEmail(client.Email, oid); err != nil {
		return nil, err
	}

	client.UpdatedAt = time.Now()
	if err := svc.Ctx.Clients.Replace(l.ctx, oid, client); err != nil {
		return nil, storeErr(err, apperr.ErrClientNotFound, "Failed to update client")
	}
	touch(l.ctx, EntityClients)
	return client, nil
}

// Delete 删除客户
func (l *ClientLogic) Delete(id string) error {
	oid, err := findOID(id, apperr.ErrClientNotFound)
	if err != nil {
		return err
	}
	if err := svc.Ctx.Clients.Delete(l.ctx, oid); err != nil {
		return storeErr(err, apperr.ErrClientNotFound, "Failed to delete client")
	}
	touch(l.ctx, EntityClients)
	return nil
}

func (l *ClientLogic) checkEmail(email string, exclude primitive.ObjectID) error {
	exists, err := svc.Ctx.Clients.Exists(l.ctx, "email", email, exclude)
	if err != nil {
		return apperr.Internal("Failed to check email", err)
	}
	if exists {
		return apperr.ErrEmailExists
	}
	return nil
}
