package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/model"

	"gorm.io/gorm"
)

// MemoryViews 内存中的保存视图，进程内共享
type MemoryViews struct {
	mu    sync.RWMutex
	views map[string]model.View
}

// NewMemoryViews 创建内存视图仓储
func NewMemoryViews() *MemoryViews {
	return &MemoryViews{views: map[string]model.View{}}
}

// List 按创建时间列出视图
func (s *MemoryViews) List(ctx context.Context, table string) ([]model.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.View, 0, len(s.views))
	for _, v := range s.views {
		if table != "" && v.Table != "" && v.Table != table {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get 按 id 查询
func (s *MemoryViews) Get(ctx context.Context, id string) (*model.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

// Create 新增视图，生成 id 与时间戳
func (s *MemoryViews) Create(ctx context.Context, v *model.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = utils.GenerateUUID()
	}
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	s.views[v.ID] = *v
	return nil
}

// Update 原地更新视图，id 与创建时间不变
func (s *MemoryViews) Update(ctx context.Context, v *model.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.views[v.ID]
	if !ok {
		return ErrNotFound
	}
	v.CreatedAt = old.CreatedAt
	v.UpdatedAt = time.Now()
	s.views[v.ID] = *v
	return nil
}

// Delete 删除视图
func (s *MemoryViews) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[id]; !ok {
		return ErrNotFound
	}
	delete(s.views, id)
	return nil
}

// SQLViews 关系库中的保存视图
type SQLViews struct {
	db *gorm.DB
}

// NewSQLViews 创建视图仓储
func NewSQLViews(db *gorm.DB) *SQLViews {
	return &SQLViews{db: db}
}

// List 按创建时间列出视图
func (s *SQLViews) List(ctx context.Context, table string) ([]model.View, error) {
	tx := s.db.WithContext(ctx).Model(&model.View{})
	if table != "" {
		tx = tx.Where("table_key = ? OR table_key = ''", table)
	}
	views := make([]model.View, 0)
	err := tx.Order("created_at").Order("id").Find(&views).Error
	return views, err
}

// Get 按 id 查询
func (s *SQLViews) Get(ctx context.Context, id string) (*model.View, error) {
	var v model.View
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create 新增视图
func (s *SQLViews) Create(ctx context.Context, v *model.View) error {
	return s.db.WithContext(ctx).Create(v).Error
}

// Update 更新视图
func (s *SQLViews) Update(ctx context.Context, v *model.View) error {
	v.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(v).
		Select("name", "table_key", "columns", "column_pinning", "filter_params", "updated_at").
		Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除视图
func (s *SQLViews) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.View{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
