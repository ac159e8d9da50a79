package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormTransactionStore is the GORM implementation of TransactionStore (PostgreSQL, SQLite)
type GormTransactionStore struct {
	db *gorm.DB
}

// NewGormTransactionStore creates a new GORM-based store
func NewGormTransactionStore(db *gorm.DB) *GormTransactionStore {
	return &GormTransactionStore{db: db}
}

var _ TransactionStore = (*GormTransactionStore)(nil)

func (s *GormTransactionStore) model(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&domain.ProductTransaction{})
}

// filtered builds a fresh query for the search text; callers must not share it
// between Count and Find.
func (s *GormTransactionStore) filtered(ctx context.Context, text string) *gorm.DB {
	db := s.model(ctx)
	if text == "" {
		return db
	}

	var conds string
	var pattern string
	if strings.EqualFold(s.db.Dialector.Name(), "postgres") {
		conds = `title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`
		pattern = "%" + escapeLike(text) + "%"
	} else {
		conds = `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`
		pattern = "%" + escapeLike(asciiLower(text)) + "%"
	}
	args := []interface{}{pattern, pattern}
	if price, ok := domain.SearchPrice(text); ok {
		conds += " OR price = ?"
		args = append(args, price)
	}
	return db.Where(conds, args...)
}

func (s *GormTransactionStore) Search(ctx context.Context, q domain.ListQuery) ([]domain.ProductTransaction, int64, error) {
	var total int64
	if err := s.filtered(ctx, q.SearchText).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count transactions")
	}

	query := s.filtered(ctx, q.SearchText).Order("id ASC")
	if q.PerPage > 0 {
		query = query.Offset(q.Offset()).Limit(q.PerPage)
	}

	rows := make([]domain.ProductTransaction, 0)
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "query transactions")
	}
	return rows, total, nil
}

func (s *GormTransactionStore) MonthlyStatistics(ctx context.Context, month time.Month) (domain.Statistics, error) {
	var st domain.Statistics
	err := s.model(ctx).
		Select("COALESCE(SUM(CASE WHEN date_of_sale IS NOT NULL THEN price ELSE 0 END), 0) AS total_sale_amount, " +
			"COUNT(date_of_sale) AS total_sold_items, " +
			"COALESCE(SUM(CASE WHEN date_of_sale IS NULL THEN 1 ELSE 0 END), 0) AS total_not_sold_items").
		Where("sale_month = ? OR date_of_sale IS NULL", int(month)).
		Scan(&st).Error
	if err != nil {
		return domain.Statistics{}, errors.Wrap(err, "aggregate statistics")
	}
	return st, nil
}

type bucketRow struct {
	Bucket int   `gorm:"column:bucket"`
	Count  int64 `gorm:"column:count"`
}

// bucketExpr renders the ranges as a CASE yielding the range index, -1 outside all ranges.
// Bounds come from domain constants, never from request input.
func bucketExpr(ranges []domain.PriceRange) string {
	var b strings.Builder
	b.WriteString("CASE")
	for i, r := range ranges {
		lo := strconv.FormatFloat(r.Min, 'f', -1, 64)
		if r.Unbounded() {
			fmt.Fprintf(&b, " WHEN price >= %s THEN %d", lo, i)
			continue
		}
		hi := strconv.FormatFloat(r.Max, 'f', -1, 64)
		fmt.Fprintf(&b, " WHEN price >= %s AND price <= %s THEN %d", lo, hi, i)
	}
	b.WriteString(" ELSE -1 END")
	return b.String()
}

func (s *GormTransactionStore) PriceHistogram(ctx context.Context, month time.Month, ranges []domain.PriceRange) (domain.BarChart, error) {
	var rows []bucketRow
	err := s.model(ctx).
		Select(bucketExpr(ranges)+" AS bucket, COUNT(*) AS count").
		Where("sale_month = ? AND date_of_sale IS NOT NULL", int(month)).
		Group("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate price histogram")
	}

	chart := make(domain.BarChart, len(ranges))
	for _, r := range ranges {
		chart[r.Label] = 0
	}
	for _, row := range rows {
		if row.Bucket >= 0 && row.Bucket < len(ranges) {
			chart[ranges[row.Bucket].Label] = row.Count
		}
	}
	return chart, nil
}

func (s *GormTransactionStore) CategoryBreakdown(ctx context.Context, month time.Month) ([]domain.CategoryCount, error) {
	out := make([]domain.CategoryCount, 0)
	err := s.model(ctx).
		Select("category, COUNT(*) AS count").
		Where("sale_month = ? AND date_of_sale IS NOT NULL", int(month)).
		Group("category").
		Order("category ASC").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "aggregate categories")
	}
	return out, nil
}

func (s *GormTransactionStore) ReplaceAll(ctx context.Context, txs []domain.ProductTransaction) (int, error) {
	records := prepare(txs)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.ProductTransaction{}).Error; err != nil {
			return errors.Wrap(err, "clear transactions")
		}
		if len(records) == 0 {
			return nil
		}
		return errors.Wrap(tx.CreateInBatches(records, insertBatchSize).Error, "insert transactions")
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *GormTransactionStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
