package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	commonRedis "github.com/Ravenry/kacamerah/common/redis"
	"github.com/Ravenry/kacamerah/common/utils"
)

// DefaultTTL 统计结果默认缓存时长
const DefaultTTL = 5 * time.Minute

// Cache 按实体版本隔离的结果缓存，实体有写入时调用 Bump 使旧结果失效
type Cache interface {
	// Get 读取缓存并解码到 dst，未命中返回 false
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Version 实体当前版本
	Version(ctx context.Context, entity string) (int64, error)
	// Bump 实体版本加一
	Bump(ctx context.Context, entity string) error
}

// Key 拼接带版本的缓存键
func Key(entity string, version int64, parts ...string) string {
	key := fmt.Sprintf("kacamerah:%s:v%d", entity, version)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func versionKey(entity string) string {
	return "kacamerah:version:" + entity
}

// Redis 使用 common/redis 全局客户端的缓存
type Redis struct{}

// NewRedis 创建 Redis 缓存，需先调用 redis.Init
func NewRedis() *Redis {
	return &Redis{}
}

// Get 读取缓存
func (Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := commonRedis.Get(ctx, key)
	if commonRedis.IsNil(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := utils.Unmarshal([]byte(raw), dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set 写入缓存
func (Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := utils.Marshal(v)
	if err != nil {
		return err
	}
	return commonRedis.Set(ctx, key, data, ttl)
}

// Version 读取实体版本
func (Redis) Version(ctx context.Context, entity string) (int64, error) {
	raw, err := commonRedis.Get(ctx, versionKey(entity))
	if commonRedis.IsNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var v int64
	_, err = fmt.Sscan(raw, &v)
	return v, err
}

// Bump 实体版本加一
func (Redis) Bump(ctx context.Context, entity string) error {
	_, err := commonRedis.Incr(ctx, versionKey(entity))
	return err
}

type item struct {
	data    []byte
	expires time.Time
}

// Memory 进程内缓存
type Memory struct {
	mu       sync.RWMutex
	items    map[string]item
	versions map[string]int64
	now      func() time.Time
}

// NewMemory 创建进程内缓存
func NewMemory() *Memory {
	return &Memory{
		items:    map[string]item{},
		versions: map[string]int64{},
		now:      time.Now,
	}
}

// Get 读取缓存，过期条目视为未命中
func (m *Memory) Get(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !it.expires.IsZero() && m.now().After(it.expires) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := utils.Unmarshal(it.data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set 写入缓存，ttl 为 0 表示不过期
func (m *Memory) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := utils.Marshal(v)
	if err != nil {
		return err
	}
	it := item{data: data}
	if ttl > 0 {
		it.expires = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	m.mu.Unlock()
	return nil
}

// Version 读取实体版本
func (m *Memory) Version(ctx context.Context, entity string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versions[entity], nil
}

// Bump 实体版本加一
func (m *Memory) Bump(ctx context.Context, entity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.versions[entity]++
	return nil
}
