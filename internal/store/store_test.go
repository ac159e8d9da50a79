package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/salesdash/salesdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func fixtures() []domain.ProductTransaction {
	return []domain.ProductTransaction{
		{Title: "Blue Backpack", Description: "Perfect for hiking", Price: 50, Category: "bags", Sold: "true", DateOfSale: day(2024, time.January, 5)},
		{Title: "Red Shirt", Description: "cotton", Price: 150, Category: "clothing", Sold: "false"},
		{Title: "Gold Ring 100%", Description: "shiny", Price: 25, Category: "jewelery", Sold: "true", DateOfSale: day(2021, time.January, 20)},
		{Title: "Laptop", Description: "fast_machine", Price: 950, Category: "electronics", Sold: "true", DateOfSale: day(2022, time.March, 10)},
		{Title: "Phone", Description: "smart", Price: 100.5, Category: "electronics", Sold: "true", DateOfSale: day(2023, time.January, 11)},
		{Title: "Headphones", Description: "BACKPACK compatible", Price: 250, Category: "electronics", Sold: "true", DateOfSale: day(2023, time.February, 2)},
	}
}

func titles(rows []domain.ProductTransaction) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

// runStoreSuite exercises any TransactionStore implementation against the fixtures.
func runStoreSuite(t *testing.T, s TransactionStore) {
	ctx := context.Background()
	n, err := s.ReplaceAll(ctx, fixtures())
	require.NoError(t, err)
	require.Equal(t, 6, n)

	t.Run("PaginatesInInsertionOrder", func(t *testing.T) {
		rows, total, err := s.Search(ctx, domain.ListQuery{Page: 1, PerPage: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Equal(t, []string{"Blue Backpack", "Red Shirt", "Gold Ring 100%", "Laptop"}, titles(rows))

		rows, total, err = s.Search(ctx, domain.ListQuery{Page: 2, PerPage: 4})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Equal(t, []string{"Phone", "Headphones"}, titles(rows))

		rows, _, err = s.Search(ctx, domain.ListQuery{Page: 3, PerPage: 4})
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NotNil(t, rows)
	})

	t.Run("PageFarPastTheEnd", func(t *testing.T) {
		q := domain.ListQuery{Page: math.MaxInt/4 + 2, PerPage: 4}
		rows, total, err := s.Search(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Empty(t, rows)
		assert.NotNil(t, rows)
		assert.Equal(t, int64(2), domain.TotalPages(total, q.PerPage))
	})

	t.Run("UnpaginatedSearch", func(t *testing.T) {
		rows, total, err := s.Search(ctx, domain.ListQuery{})
		require.NoError(t, err)
		assert.Len(t, rows, 6)
		assert.Equal(t, int64(6), total)
	})

	t.Run("TextSearchIsCaseInsensitive", func(t *testing.T) {
		rows, total, err := s.Search(ctx, domain.ListQuery{Page: 1, PerPage: 10, SearchText: "backpack"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.ElementsMatch(t, []string{"Blue Backpack", "Headphones"}, titles(rows))
	})

	t.Run("NumericSearchMatchesPrice", func(t *testing.T) {
		rows, total, err := s.Search(ctx, domain.ListQuery{Page: 1, PerPage: 10, SearchText: "25"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"Gold Ring 100%"}, titles(rows))
	})

	t.Run("WildcardsAreLiteral", func(t *testing.T) {
		rows, _, err := s.Search(ctx, domain.ListQuery{Page: 1, PerPage: 10, SearchText: "%"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Gold Ring 100%"}, titles(rows))

		rows, _, err = s.Search(ctx, domain.ListQuery{Page: 1, PerPage: 10, SearchText: "_"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Laptop"}, titles(rows))
	})

	t.Run("MonthlyStatistics", func(t *testing.T) {
		st, err := s.MonthlyStatistics(ctx, time.January)
		require.NoError(t, err)
		assert.InDelta(t, 175.5, st.TotalSaleAmount, 1e-9)
		assert.Equal(t, int64(3), st.TotalSoldItems)
		assert.Equal(t, int64(1), st.TotalNotSoldItems)

		st, err = s.MonthlyStatistics(ctx, time.March)
		require.NoError(t, err)
		assert.InDelta(t, 950, st.TotalSaleAmount, 1e-9)
		assert.Equal(t, int64(1), st.TotalSoldItems)
		assert.Equal(t, int64(1), st.TotalNotSoldItems)

		st, err = s.MonthlyStatistics(ctx, time.June)
		require.NoError(t, err)
		assert.Zero(t, st.TotalSaleAmount)
		assert.Zero(t, st.TotalSoldItems)
		assert.Equal(t, int64(1), st.TotalNotSoldItems)
	})

	t.Run("PriceHistogram", func(t *testing.T) {
		chart, err := s.PriceHistogram(ctx, time.January, domain.PriceRanges)
		require.NoError(t, err)
		assert.Len(t, chart, len(domain.PriceRanges))
		assert.Equal(t, int64(2), chart["0 - 100"])
		// 100.5 sits between the inclusive buckets
		assert.Equal(t, int64(0), chart["101 - 200"])

		chart, err = s.PriceHistogram(ctx, time.March, domain.PriceRanges)
		require.NoError(t, err)
		assert.Equal(t, int64(1), chart["901 - above"])
		assert.Equal(t, int64(0), chart["0 - 100"])
	})

	t.Run("CategoryBreakdown", func(t *testing.T) {
		cats, err := s.CategoryBreakdown(ctx, time.January)
		require.NoError(t, err)
		assert.Equal(t, []domain.CategoryCount{
			{Category: "bags", Count: 1},
			{Category: "electronics", Count: 1},
			{Category: "jewelery", Count: 1},
		}, cats)

		cats, err = s.CategoryBreakdown(ctx, time.August)
		require.NoError(t, err)
		assert.NotNil(t, cats)
		assert.Empty(t, cats)
	})

	t.Run("ReplaceAllDoesNotDuplicate", func(t *testing.T) {
		_, err := s.ReplaceAll(ctx, fixtures())
		require.NoError(t, err)
		rows, total, err := s.Search(ctx, domain.ListQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)

		seen := map[int64]bool{}
		for _, r := range rows {
			assert.NotZero(t, r.ID)
			assert.False(t, seen[r.ID])
			seen[r.ID] = true
		}
	})
}

func TestNextIDUnique(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := NextID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestPrepareDoesNotMutateInput(t *testing.T) {
	in := fixtures()
	out := prepare(in)
	assert.Zero(t, in[0].ID)
	assert.Zero(t, in[0].SaleMonth)
	assert.NotZero(t, out[0].ID)
	assert.Equal(t, 1, out[0].SaleMonth)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}

func TestASCIILower(t *testing.T) {
	assert.Equal(t, "Éclair tray", asciiLower("ÉCLAIR Tray"))
	assert.Equal(t, "abc-xyz 9", asciiLower("AbC-XyZ 9"))
}
