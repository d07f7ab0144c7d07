package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ravenry/kacamerah/internal/table"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper LIKE 模式转义，使用 ! 作为转义符以兼容各数据库
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SQLRecords 基于 GORM 的关系表仓储。
// columns 把查询路径映射到数据库列名，不在映射中的路径一律忽略。
type SQLRecords[T any] struct {
	db      *gorm.DB
	columns map[string]string
}

// NewSQLRecords 创建关系表仓储
func NewSQLRecords[T any](db *gorm.DB, columns map[string]string) *SQLRecords[T] {
	return &SQLRecords[T]{db: db, columns: columns}
}

func (r *SQLRecords[T]) model(ctx context.Context) *gorm.DB {
	var zero T
	return r.db.WithContext(ctx).Model(&zero)
}

// Where 把查询条件转换为 WHERE 片段与参数
func (r *SQLRecords[T]) Where(q table.Query) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	for _, cond := range q.Conditions {
		sql, condArgs := r.condition(cond)
		if sql == "" {
			continue
		}
		clauses = append(clauses, "("+sql+")")
		args = append(args, condArgs...)
	}
	join := " AND "
	if q.Join == table.Or {
		join = " OR "
	}
	return strings.Join(clauses, join), args
}

func (r *SQLRecords[T]) condition(cond table.Condition) (string, []any) {
	var (
		parts []string
		args  []any
	)
	for _, field := range cond.Fields {
		col, ok := r.columns[field]
		if !ok {
			continue
		}
		switch cond.Op {
		case table.OpContains:
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", col))
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(cond.Text))+"%")
		case table.OpIn:
			parts = append(parts, col+" IN ?")
			args = append(args, cond.Values)
		case table.OpEq:
			parts = append(parts, col+" = ?")
			args = append(args, cond.Bool)
		case table.OpRange:
			var rng []string
			if cond.From != nil {
				rng = append(rng, col+" >= ?")
				args = append(args, *cond.From)
			}
			if cond.To != nil {
				rng = append(rng, col+" <= ?")
				args = append(args, *cond.To)
			}
			if len(rng) > 0 {
				parts = append(parts, strings.Join(rng, " AND "))
			}
		}
	}
	return strings.Join(parts, " OR "), args
}

func (r *SQLRecords[T]) scoped(ctx context.Context, q table.Query) *gorm.DB {
	tx := r.model(ctx)
	if where, args := r.Where(q); where != "" {
		tx = tx.Where(where, args...)
	}
	return tx
}

// Find 分页查询
func (r *SQLRecords[T]) Find(ctx context.Context, q table.Query) (table.Page[T], error) {
	var page table.Page[T]
	if err := r.scoped(ctx, q).Count(&page.Total).Error; err != nil {
		return page, err
	}

	tx := r.scoped(ctx, q)
	for _, item := range q.Sort {
		col, ok := r.columns[item.Column]
		if !ok {
			continue
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: item.Direction == table.Desc})
	}
	tx = tx.Order("id")
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return page, err
	}
	page.Rows = rows
	return page, nil
}

// Get 按主键查询
func (r *SQLRecords[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create 新增
func (r *SQLRecords[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Update 保存全部字段
func (r *SQLRecords[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Delete 按主键删除
func (r *SQLRecords[T]) Delete(ctx context.Context, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var zero T
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&zero)
	return res.RowsAffected, res.Error
}

// Exists 判断字段取值是否已被占用
func (r *SQLRecords[T]) Exists(ctx context.Context, field, value string, excludeID string) (bool, error) {
	col, ok := r.columns[field]
	if !ok {
		return false, fmt.Errorf("store: unknown column %q", field)
	}
	tx := r.model(ctx).Where(col+" = ?", value)
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountBy 按列分组统计
func (r *SQLRecords[T]) CountBy(ctx context.Context, field string, values []string) (map[string]int64, error) {
	col, ok := r.columns[field]
	if !ok {
		return nil, fmt.Errorf("store: unknown column %q", field)
	}
	var groups []struct {
		Facet string
		Total int64
	}
	err := r.model(ctx).
		Select(col+" AS facet, COUNT(*) AS total").
		Where(col+" IN ?", values).
		Group(col).
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(values))
	for _, v := range values {
		counts[v] = 0
	}
	for _, g := range groups {
		counts[g.Facet] = g.Total
	}
	return counts, nil
}

// Counter 关系库中的自增序列
type Counter struct {
	Name string `gorm:"primaryKey;size:64"`
	Seq  int64  `gorm:"not null;default:0"`
}

// TableName 表名
func (Counter) TableName() string {
	return "counters"
}

// SQLCounters 基于 counters 表的自增序列
type SQLCounters struct {
	db *gorm.DB
}

// NewSQLCounters 创建计数器
func NewSQLCounters(db *gorm.DB) *SQLCounters {
	return &SQLCounters{db: db}
}

// Next 在事务中自增
func (c *SQLCounters) Next(ctx context.Context, key string) (int64, error) {
	var seq int64
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&Counter{Name: key}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Counter{}).Where("name = ?", key).
			UpdateColumn("seq", gorm.Expr("seq + ?", 1)).Error; err != nil {
			return err
		}
		var row Counter
		if err := tx.Where("name = ?", key).First(&row).Error; err != nil {
			return err
		}
		seq = row.Seq
		return nil
	})
	return seq, err
}

// Current 当前值
func (c *SQLCounters) Current(ctx context.Context, key string) (int64, error) {
	var row Counter
	err := c.db.WithContext(ctx).Where("name = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return row.Seq, err
}
