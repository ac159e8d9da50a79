package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/salesdash/salesdash/internal/domain"
	"github.com/salesdash/salesdash/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStore struct {
	rows      []domain.ProductTransaction
	total     int64
	stats     domain.Statistics
	chart     domain.BarChart
	cats      []domain.CategoryCount
	searchErr error
	statsErr  error
	chartErr  error
	catsErr   error

	lastQuery  domain.ListQuery
	lastMonth  atomic.Int32
	cancelSeen atomic.Bool
}

func (f *fakeStore) Search(ctx context.Context, q domain.ListQuery) ([]domain.ProductTransaction, int64, error) {
	f.lastQuery = q
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.rows, f.total, nil
}

func (f *fakeStore) MonthlyStatistics(ctx context.Context, month time.Month) (domain.Statistics, error) {
	f.lastMonth.Store(int32(month))
	if f.statsErr != nil {
		return domain.Statistics{}, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeStore) PriceHistogram(ctx context.Context, month time.Month, ranges []domain.PriceRange) (domain.BarChart, error) {
	if f.chartErr != nil {
		return nil, f.chartErr
	}
	return f.chart, nil
}

func (f *fakeStore) CategoryBreakdown(ctx context.Context, month time.Month) ([]domain.CategoryCount, error) {
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	// slow sibling: observe cancellation caused by a failing operation
	select {
	case <-ctx.Done():
		f.cancelSeen.Store(true)
		return nil, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	return f.cats, nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, txs []domain.ProductTransaction) (int, error) {
	return len(txs), nil
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func TestListTransactionsDefaults(t *testing.T) {
	f := &fakeStore{rows: nil, total: 21}
	svc := NewService(f)

	page, err := svc.ListTransactions(context.Background(), domain.ListQuery{SearchText: "bag"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.lastQuery.Page)
	assert.Equal(t, 10, f.lastQuery.PerPage)
	assert.Equal(t, "bag", f.lastQuery.SearchText)
	assert.Equal(t, int64(21), page.TotalCount)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.NotNil(t, page.Transactions)
}

func TestListTransactionsStoreFailure(t *testing.T) {
	svc := NewService(&fakeStore{searchErr: errors.New("boom")})
	_, err := svc.ListTransactions(context.Background(), domain.ListQuery{})
	assert.Error(t, err)
}

func TestMonthValidation(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	_, err := svc.Statistics(ctx, "Foo")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
	_, err = svc.BarChart(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
	_, err = svc.PieChart(ctx, "13")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
	_, err = svc.Combined(ctx, "Smarch", domain.ListQuery{})
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestStatisticsPassesMonth(t *testing.T) {
	f := &fakeStore{stats: domain.Statistics{TotalSaleAmount: 10, TotalSoldItems: 1}}
	svc := NewService(f)

	st, err := svc.Statistics(context.Background(), "september")
	require.NoError(t, err)
	assert.Equal(t, int32(time.September), f.lastMonth.Load())
	assert.Equal(t, f.stats, st)
}

func TestBarChartFillsMissingLabels(t *testing.T) {
	svc := NewService(&fakeStore{chart: domain.BarChart{"101 - 200": 4}})
	chart, err := svc.BarChart(context.Background(), "May")
	require.NoError(t, err)
	assert.Len(t, chart, 10)
	assert.Equal(t, int64(4), chart["101 - 200"])
	assert.Equal(t, int64(0), chart["901 - above"])
}

func TestPieChartNeverNil(t *testing.T) {
	svc := NewService(&fakeStore{})
	cats, err := svc.PieChart(context.Background(), "May")
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestCombined(t *testing.T) {
	f := &fakeStore{
		rows:  []domain.ProductTransaction{{ID: 1, Title: "a"}},
		total: 1,
		stats: domain.Statistics{TotalSaleAmount: 5, TotalSoldItems: 1},
		chart: domain.BarChart{"0 - 100": 1},
		cats:  []domain.CategoryCount{{Category: "bags", Count: 1}},
	}
	out, err := NewService(f).Combined(context.Background(), "January", domain.ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.Transactions.TotalCount)
	assert.Len(t, out.Transactions.Transactions, 1)
	assert.Equal(t, f.stats, out.Statistics)
	assert.Equal(t, int64(1), out.BarChartData["0 - 100"])
	assert.Len(t, out.BarChartData, 10)
	assert.Equal(t, f.cats, out.PieChartData)
}

func TestCombinedFailsAsAWhole(t *testing.T) {
	f := &fakeStore{statsErr: errors.New("store down")}
	out, err := NewService(f).Combined(context.Background(), "January", domain.ListQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statistics")
	assert.Equal(t, domain.Combined{}, out)
	assert.True(t, f.cancelSeen.Load())
}

func newSqliteService(t *testing.T, txs []domain.ProductTransaction) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	s := store.NewGormTransactionStore(db)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	_, err = s.ReplaceAll(context.Background(), txs)
	require.NoError(t, err)
	return NewService(s)
}

func TestStatisticsScenarioJanuary(t *testing.T) {
	sold := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	svc := newSqliteService(t, []domain.ProductTransaction{
		{Title: "sold", Price: 50, DateOfSale: &sold},
		{Title: "unsold", Price: 150},
	})

	st, err := svc.Statistics(context.Background(), "January")
	require.NoError(t, err)
	assert.Equal(t, domain.Statistics{TotalSaleAmount: 50, TotalSoldItems: 1, TotalNotSoldItems: 1}, st)

	// idempotent reads
	again, err := svc.Statistics(context.Background(), "January")
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestPaginationProperties(t *testing.T) {
	txs := make([]domain.ProductTransaction, 23)
	for i := range txs {
		txs[i] = domain.ProductTransaction{Title: "item", Price: float64(i)}
	}
	svc := newSqliteService(t, txs)

	for _, perPage := range []int{1, 3, 10, 23, 50} {
		for page := 1; page <= 4; page++ {
			res, err := svc.ListTransactions(context.Background(), domain.ListQuery{Page: page, PerPage: perPage})
			require.NoError(t, err)
			assert.LessOrEqual(t, len(res.Transactions), perPage)
			assert.Equal(t, int64(23), res.TotalCount)
			assert.Equal(t, (int64(23)+int64(perPage)-1)/int64(perPage), res.TotalPages)
		}
	}
}

func TestExportCSV(t *testing.T) {
	sold := time.Date(2022, time.March, 1, 8, 0, 0, 0, time.UTC)
	svc := newSqliteService(t, []domain.ProductTransaction{
		{Title: "Lamp", Description: "warm light", Price: 19.5, Category: "home", Sold: "true", DateOfSale: &sold},
		{Title: "Chair", Description: "oak", Price: 80, Category: "home", Sold: "false"},
	})

	var buf bytes.Buffer
	n, err := svc.ExportTransactions(context.Background(), "lamp", "csv", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Lamp", records[1][1])
	assert.Equal(t, "19.5", records[1][3])
	assert.Equal(t, "2022-03-01T08:00:00Z", records[1][7])
}

func TestExportXLSX(t *testing.T) {
	svc := newSqliteService(t, []domain.ProductTransaction{
		{Title: "Lamp", Price: 19.5, Category: "home"},
		{Title: "Chair", Price: 80, Category: "home"},
	})

	var buf bytes.Buffer
	n, err := svc.ExportTransactions(context.Background(), "", "XLSX", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "title", book.GetCellValue(exportSheet, "B1"))
	assert.Equal(t, "Lamp", book.GetCellValue(exportSheet, "B2"))
	assert.Equal(t, "Chair", book.GetCellValue(exportSheet, "B3"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewService(&fakeStore{})
	_, err := svc.ExportTransactions(context.Background(), "", "pdf", &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrInvalidExportFormat)
}
