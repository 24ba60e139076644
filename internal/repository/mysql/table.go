package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Community_Portal/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table 基于 gorm 的 repository.Store 实现
type Table[T any] struct {
	DB *gorm.DB
}

func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{DB: db}
}

func (r *Table[T]) Create(ctx context.Context, doc *T) error {
	return translate(r.DB.WithContext(ctx).Create(doc).Error)
}

func (r *Table[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *Table[T]) FindOne(ctx context.Context, equals map[string]any) (*T, error) {
	var doc T
	if err := r.where(r.DB.WithContext(ctx), repository.Query{Equals: equals}).First(&doc).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *Table[T]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	tx := r.where(r.DB.WithContext(ctx).Model(new(T)), q)
	for _, s := range q.Sort {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: r.column(s.Field)}, Desc: s.Desc})
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	list := make([]T, 0)
	if err := tx.Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *Table[T]) Count(ctx context.Context, q repository.Query) (int64, error) {
	var n int64
	err := r.where(r.DB.WithContext(ctx).Model(new(T)), q).Count(&n).Error
	return n, translate(err)
}

// Replace 整行覆盖，保留主键与创建时间
func (r *Table[T]) Replace(ctx context.Context, id string, doc *T) error {
	res := r.DB.WithContext(ctx).Model(doc).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(doc)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL 在值未变化时返回 0 行，需要再确认记录是否存在
	var n int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Table[T]) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// likeEscaper 让搜索词中的 % 与 _ 按字面匹配
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *Table[T]) where(tx *gorm.DB, q repository.Query) *gorm.DB {
	for field, value := range q.Equals {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: r.column(field)}, Value: value})
	}
	for _, rg := range q.Ranges {
		col := clause.Column{Name: r.column(rg.Field)}
		if rg.From != nil {
			tx = tx.Where(clause.Gte{Column: col, Value: *rg.From})
		}
		if rg.Before != nil {
			tx = tx.Where(clause.Lt{Column: col, Value: *rg.Before})
		}
	}
	if q.Search != "" && len(q.SearchFields) > 0 {
		pattern := "%" + likeEscaper.Replace(q.Search) + "%"
		conds := make([]string, 0, len(q.SearchFields))
		args := make([]any, 0, len(q.SearchFields))
		for _, field := range q.SearchFields {
			conds = append(conds, fmt.Sprintf("%s LIKE ? ESCAPE '!'", r.column(field)))
			args = append(args, pattern)
		}
		tx = tx.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return tx
}

// column 把 JSON 字段名（startTime）映射为列名（start_time）
func (r *Table[T]) column(field string) string {
	if field == "id" {
		return "id"
	}
	return r.DB.NamingStrategy.ColumnName("", field)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicateKey
	default:
		return err
	}
}
