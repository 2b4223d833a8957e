// Package orm is a thin fluent wrapper over the shared gorm connection.
//
// Repositories build queries through it rather than touching gorm directly:
//
//	var products []models.Product
//	err := orm.DB().Model(&models.Product{}).
//	    Where("category = ?", cat).
//	    Order("position asc").
//	    Get(&products)
package orm

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/putrawardana/warungsaji/pkg/cache"
	"github.com/putrawardana/warungsaji/pkg/database"
)

type Query struct {
	db *gorm.DB
}

// Pagination is the metadata returned alongside paginated result sets.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func DB() *Query {
	return &Query{db: database.DB}
}

// WithDB wraps an explicit gorm handle (transactions, tests).
func WithDB(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(expr string) *Query {
	return &Query{db: q.db.Order(expr)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

// Upsert inserts rows, replacing every column on conflict with the given
// key column.
func (q *Query) Upsert(rows interface{}, conflictColumn string) error {
	return q.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: conflictColumn}},
		UpdateAll: true,
	}).Create(rows).Error
}

// UpsertAssign inserts rows, applying the given column assignments on
// conflict with the key column. Used for counter tables
// (count = count + 1) where UpdateAll would clobber the tally.
func (q *Query) UpsertAssign(rows interface{}, conflictColumn string, assignments map[string]interface{}) error {
	return q.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: conflictColumn}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(rows).Error
}

// Raw runs a raw SQL query and scans the result into dest.
func (q *Query) Raw(sql string, args ...interface{}) *Query {
	return &Query{db: q.db.Raw(sql, args...)}
}

func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

// Transaction runs fn inside a database transaction.
func Transaction(fn func(*Query) error) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}

// GetWithPagination fetches one page of results plus total-count metadata.
// Page numbering starts at 1; limit falls back to 20.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Limit(limit).Offset(offset).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// Cache reads dest from the cache under key, falling back to the query and
// storing the result for ttl on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
