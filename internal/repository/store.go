package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

// Range bounds a time column inclusively. A nil bound is open.
type Range struct {
	Column string
	From   *time.Time
	To     *time.Time
}

// Filter selects records by column equality and time ranges. All conditions are ANDed.
type Filter struct {
	Equal  map[string]any
	Ranges []Range
}

// Sort orders results by a single column.
type Sort struct {
	Column string
	Desc   bool
}

// Page limits a result set. A zero Limit returns everything from Offset.
type Page struct {
	Offset int
	Limit  int
}

// Store is a generic persistent collection keyed by string id.
type Store[T any] interface {
	Create(record *T) error
	FindByID(id string) (*T, error)
	Find(filter Filter, sort Sort, page Page) ([]T, error)
	Count(filter Filter) (int64, error)
	Update(record *T) error
	Delete(id string) error
	DeleteWhere(filter Filter) (int64, error)
}

// GormStore is a GORM implementation of Store
type GormStore[T any] struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore for T
func NewGormStore[T any](db *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db}
}

func (s *GormStore[T]) Create(record *T) error {
	return s.db.Create(record).Error
}

func (s *GormStore[T]) FindByID(id string) (*T, error) {
	var record T
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *GormStore[T]) Find(filter Filter, sort Sort, page Page) ([]T, error) {
	records := []T{}

	query := s.db.Model(new(T)).Scopes(applyFilter(filter))
	if sort.Column != "" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Column}, Desc: sort.Desc})
	}
	if err := query.Scopes(paginate(page)).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore[T]) Count(filter Filter) (int64, error) {
	var total int64
	if err := s.db.Model(new(T)).Scopes(applyFilter(filter)).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update writes every column of record.
func (s *GormStore[T]) Update(record *T) error {
	return s.db.Save(record).Error
}

func (s *GormStore[T]) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWhere removes every matching record and reports how many were removed.
// An empty filter is rejected by GORM rather than wiping the table.
func (s *GormStore[T]) DeleteWhere(filter Filter) (int64, error) {
	result := s.db.Scopes(applyFilter(filter)).Delete(new(T))
	return result.RowsAffected, result.Error
}

// paginate applies page to a query. A zero limit leaves the query unbounded.
func paginate(page Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}
		return db
	}
}

func applyFilter(filter Filter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var exprs []clause.Expression
		for column, value := range filter.Equal {
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: column}, Value: value})
		}
		for _, r := range filter.Ranges {
			if r.From != nil {
				exprs = append(exprs, clause.Gte{Column: clause.Column{Name: r.Column}, Value: *r.From})
			}
			if r.To != nil {
				exprs = append(exprs, clause.Lte{Column: clause.Column{Name: r.Column}, Value: *r.To})
			}
		}
		if len(exprs) == 0 {
			return db
		}
		return db.Where(clause.And(exprs...))
	}
}
