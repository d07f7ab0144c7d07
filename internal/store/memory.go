package store

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Ravenry/kacamerah/internal/table"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errMissingID = errors.New("store: document has no _id")

// MemoryDocuments 内存文档仓储，按 MongoDB 的点路径与数组语义匹配，用于测试与本地开发
type MemoryDocuments[T any] struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]bson.Raw
}

// NewMemoryDocuments 创建内存文档仓储
func NewMemoryDocuments[T any]() *MemoryDocuments[T] {
	return &MemoryDocuments[T]{docs: make(map[primitive.ObjectID]bson.Raw)}
}

// Find 分页查询
func (r *MemoryDocuments[T]) Find(ctx context.Context, q table.Query) (table.Page[T], error) {
	var page table.Page[T]

	r.mu.RLock()
	matched := make([]entry, 0, len(r.docs))
	for id, raw := range r.docs {
		if matchQuery(raw, q) {
			matched = append(matched, entry{id: id, raw: raw})
		}
	}
	r.mu.RUnlock()

	sortEntries(matched, q.Sort)
	page.Total = int64(len(matched))

	start := min(max(q.Offset, 0), len(matched))
	end := len(matched)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(matched))
	}

	page.Rows = make([]T, 0, end-start)
	for _, e := range matched[start:end] {
		var doc T
		if err := bson.Unmarshal(e.raw, &doc); err != nil {
			return page, err
		}
		page.Rows = append(page.Rows, doc)
	}
	return page, nil
}

// Get 按 _id 查询
func (r *MemoryDocuments[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	r.mu.RLock()
	raw, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetMany 按 _id 批量查询
func (r *MemoryDocuments[T]) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	docs := make([]T, 0, len(ids))
	for _, id := range ids {
		doc, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// Insert 写入文档
func (r *MemoryDocuments[T]) Insert(ctx context.Context, doc *T) error {
	raw, id, err := marshalDoc(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; ok {
		return errors.New("store: duplicate _id")
	}
	r.docs[id] = raw
	return nil
}

// Replace 整体替换文档
func (r *MemoryDocuments[T]) Replace(ctx context.Context, id primitive.ObjectID, doc *T) error {
	raw, _, err := marshalDoc(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	r.docs[id] = raw
	return nil
}

// Delete 删除文档
func (r *MemoryDocuments[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// Exists 判断字段取值是否已被占用
func (r *MemoryDocuments[T]) Exists(ctx context.Context, field, value string, exclude primitive.ObjectID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, raw := range r.docs {
		if id == exclude {
			continue
		}
		for _, v := range lookupPath(raw, strings.Split(field, ".")) {
			if s, ok := v.StringValueOK(); ok && s == value {
				return true, nil
			}
		}
	}
	return false, nil
}

// CountBy 分组统计
func (r *MemoryDocuments[T]) CountBy(ctx context.Context, field string, values []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(values))
	for _, v := range values {
		counts[v] = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, raw := range r.docs {
		for _, v := range lookupPath(raw, strings.Split(field, ".")) {
			s, ok := v.StringValueOK()
			if !ok {
				continue
			}
			if _, want := counts[s]; want {
				counts[s]++
			}
		}
	}
	return counts, nil
}

// Len 文档数量
func (r *MemoryDocuments[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

type entry struct {
	id  primitive.ObjectID
	raw bson.Raw
}

func marshalDoc(doc any) (bson.Raw, primitive.ObjectID, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	raw := bson.Raw(data)
	idVal, err := raw.LookupErr("_id")
	if err != nil {
		return nil, primitive.NilObjectID, errMissingID
	}
	id, ok := idVal.ObjectIDOK()
	if !ok || id.IsZero() {
		return nil, primitive.NilObjectID, errMissingID
	}
	return raw, id, nil
}

// lookupPath 取点路径上的所有值，路径经过数组时展开每个元素，末端数组同样展开
func lookupPath(doc bson.Raw, parts []string) []bson.RawValue {
	if len(parts) == 0 {
		return nil
	}
	v, err := doc.LookupErr(parts[0])
	if err != nil {
		return nil
	}
	return descend(v, parts[1:])
}

func descend(v bson.RawValue, rest []string) []bson.RawValue {
	if len(rest) == 0 {
		if v.Type == bsontype.Array {
			elems, err := v.Array().Values()
			if err != nil {
				return nil
			}
			return elems
		}
		return []bson.RawValue{v}
	}
	switch v.Type {
	case bsontype.EmbeddedDocument:
		return lookupPath(v.Document(), rest)
	case bsontype.Array:
		elems, err := v.Array().Values()
		if err != nil {
			return nil
		}
		var out []bson.RawValue
		for _, e := range elems {
			out = append(out, descend(e, rest)...)
		}
		return out
	}
	return nil
}

func matchQuery(raw bson.Raw, q table.Query) bool {
	if len(q.Conditions) == 0 {
		return true
	}
	for _, cond := range q.Conditions {
		ok := matchCondition(raw, cond)
		if q.Join == table.Or && ok {
			return true
		}
		if q.Join != table.Or && !ok {
			return false
		}
	}
	return q.Join != table.Or
}

func matchCondition(raw bson.Raw, cond table.Condition) bool {
	for _, field := range cond.Fields {
		for _, v := range lookupPath(raw, strings.Split(field, ".")) {
			if matchValue(v, cond) {
				return true
			}
		}
	}
	return false
}

func matchValue(v bson.RawValue, cond table.Condition) bool {
	switch cond.Op {
	case table.OpContains:
		s, ok := v.StringValueOK()
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(cond.Text))
	case table.OpIn:
		s, ok := v.StringValueOK()
		if !ok {
			return false
		}
		for _, want := range cond.Values {
			if s == want {
				return true
			}
		}
		return false
	case table.OpEq:
		b, ok := v.BooleanOK()
		return ok && b == cond.Bool
	case table.OpRange:
		dt, ok := v.DateTimeOK()
		if !ok {
			return false
		}
		t := time.UnixMilli(dt)
		if cond.From != nil && t.Before(*cond.From) {
			return false
		}
		if cond.To != nil && t.After(*cond.To) {
			return false
		}
		return true
	}
	return false
}

func sortEntries(entries []entry, items []table.SortItem) {
	sort.SliceStable(entries, func(i, j int) bool {
		for _, item := range items {
			c := compareValues(first(entries[i].raw, item.Column), first(entries[j].raw, item.Column))
			if c == 0 {
				continue
			}
			if item.Direction == table.Desc {
				return c > 0
			}
			return c < 0
		}
		return bytes.Compare(entries[i].id[:], entries[j].id[:]) < 0
	})
}

func first(raw bson.Raw, path string) *bson.RawValue {
	values := lookupPath(raw, strings.Split(path, "."))
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// compareValues 缺失值最小，其余同类型比较，不同类型按类型编号。
// 字符串按字节比较，与 MongoDB 默认排序一致。
func compareValues(a, b *bson.RawValue) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if an, ok := number(*a); ok {
		if bn, ok := number(*b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			}
			return 0
		}
	}
	if a.Type != b.Type {
		return int(a.Type) - int(b.Type)
	}
	switch a.Type {
	case bsontype.String:
		return strings.Compare(a.StringValue(), b.StringValue())
	case bsontype.DateTime:
		return cmpInt(a.DateTime(), b.DateTime())
	case bsontype.Boolean:
		ab, bb := a.Boolean(), b.Boolean()
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case bsontype.ObjectID:
		ao, bo := a.ObjectID(), b.ObjectID()
		return bytes.Compare(ao[:], bo[:])
	}
	return 0
}

func number(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Double:
		return v.Double(), true
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	}
	return 0, false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MemoryCounters 内存自增序列
type MemoryCounters struct {
	mu   sync.Mutex
	seqs map[string]int64
}

// NewMemoryCounters 创建内存计数器
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{seqs: map[string]int64{}}
}

// Next 自增
func (c *MemoryCounters) Next(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[key]++
	return c.seqs[key], nil
}

// Current 当前值
func (c *MemoryCounters) Current(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[key], nil
}
