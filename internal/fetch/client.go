package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/model"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// ErrSuperseded 响应返回前已发起了更新的请求，结果不应再被使用
var ErrSuperseded = errors.New("fetch: superseded by a newer request")

// DefaultTimeout 默认请求超时
const DefaultTimeout = 10 * time.Second

// Error 服务端返回的非 2xx 响应
type Error struct {
	Status  int
	Message string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return fmt.Sprintf("fetch: %d %s", e.Status, e.Message)
}

// Page 列表响应
type Page struct {
	PageCount int   `json:"pageCount"`
	Total     int64 `json:"total"`
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	PageCount int             `json:"pageCount"`
	Total     int64           `json:"total"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client 列表接口客户端，每次请求分配递增的令牌，只有最新请求的结果有效
type Client struct {
	http     *resty.Client
	registry *table.Registry
	token    atomic.Uint64
}

type options struct {
	timeout time.Duration
	client  *http.Client
}

// Option 客户端选项
type Option func(*options)

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient 使用自定义的 http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.client = h }
}

// New 创建客户端
func New(baseURL string, registry *table.Registry, opts ...Option) *Client {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	rc := resty.New()
	if o.client != nil {
		rc = resty.NewWithClient(o.client)
	}
	rc.SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(o.timeout).
		SetHeader("Accept", "application/json")
	rc.JSONMarshal = sonic.Marshal
	rc.JSONUnmarshal = sonic.Unmarshal
	return &Client{http: rc, registry: registry}
}

// Fetch 按表格状态请求列表，行数据解码到 rows。
// 非空参数全部转发；期间若有更新的请求发起则返回 ErrSuperseded。
func (c *Client) Fetch(ctx context.Context, entity string, state table.State, rows any) (*Page, error) {
	token := c.token.Add(1)

	schema, ok := c.registry.Get(entity)
	if !ok {
		return nil, fmt.Errorf("fetch: unknown table %q", entity)
	}
	params := table.Encode(state, schema)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/api/" + entity)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", entity, err)
	}
	if c.token.Load() != token {
		return nil, ErrSuperseded
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}

	var env envelope
	if err := utils.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("fetch %s: decode: %w", entity, err)
	}
	if rows != nil && len(env.Data) > 0 {
		if err := utils.Unmarshal(env.Data, rows); err != nil {
			return nil, fmt.Errorf("fetch %s: decode rows: %w", entity, err)
		}
	}
	return &Page{PageCount: env.PageCount, Total: env.Total}, nil
}

// Views 列出保存视图
func (c *Client) Views(ctx context.Context, entity string) ([]model.View, error) {
	req := c.http.R().SetContext(ctx)
	if entity != "" {
		req.SetQueryParam("table", entity)
	}
	resp, err := req.Get("/api/views")
	if err != nil {
		return nil, fmt.Errorf("fetch views: %w", err)
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}
	var views []model.View
	if err := utils.Unmarshal(resp.Body(), &views); err != nil {
		return nil, fmt.Errorf("fetch views: decode: %w", err)
	}
	return views, nil
}

// Latest 当前最新的请求令牌
func (c *Client) Latest() uint64 {
	return c.token.Load()
}

func statusError(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}
	msg := http.StatusText(resp.StatusCode())
	var body errorBody
	if err := utils.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &Error{Status: resp.StatusCode(), Message: msg}
}
