// Package report implements the transaction listing, monthly statistics and
// combined dashboard operations on top of a store.TransactionStore.
package report

import (
	"context"

	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/domain"
	"github.com/salesdash/salesdash/internal/store"
	"golang.org/x/sync/errgroup"
)

// Service handles dashboard queries
type Service struct {
	store store.TransactionStore
}

// NewService creates a report service backed by s
func NewService(s store.TransactionStore) *Service {
	return &Service{store: s}
}

// ListTransactions returns one page of records matching q.SearchText.
func (s *Service) ListTransactions(ctx context.Context, q domain.ListQuery) (domain.TransactionPage, error) {
	q = q.WithDefaults()
	rows, total, err := s.store.Search(ctx, q)
	if err != nil {
		return domain.TransactionPage{}, err
	}
	if rows == nil {
		rows = []domain.ProductTransaction{}
	}
	return domain.TransactionPage{
		Transactions: rows,
		TotalCount:   total,
		TotalPages:   domain.TotalPages(total, q.PerPage),
		Page:         q.Page,
		PerPage:      q.PerPage,
	}, nil
}

// Statistics returns the sale summary of the named month across all years.
func (s *Service) Statistics(ctx context.Context, month string) (domain.Statistics, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return domain.Statistics{}, err
	}
	return s.store.MonthlyStatistics(ctx, m)
}

// BarChart returns the price histogram of the named month.
func (s *Service) BarChart(ctx context.Context, month string) (domain.BarChart, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	chart, err := s.store.PriceHistogram(ctx, m, domain.PriceRanges)
	if err != nil {
		return nil, err
	}
	// every label is always present
	full := domain.NewBarChart()
	for label, n := range chart {
		full[label] = n
	}
	return full, nil
}

// PieChart returns per-category counts of the named month.
func (s *Service) PieChart(ctx context.Context, month string) ([]domain.CategoryCount, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	cats, err := s.store.CategoryBreakdown(ctx, m)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []domain.CategoryCount{}
	}
	return cats, nil
}

// Combined runs the listing and the three monthly reports concurrently.
// The first failure cancels the rest and fails the whole call.
func (s *Service) Combined(ctx context.Context, month string, q domain.ListQuery) (domain.Combined, error) {
	if _, err := domain.ParseMonth(month); err != nil {
		return domain.Combined{}, err
	}

	var out domain.Combined
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		page, err := s.ListTransactions(ctx, q)
		if err != nil {
			return errors.Wrap(err, "transactions")
		}
		out.Transactions = page
		return nil
	})
	eg.Go(func() error {
		st, err := s.Statistics(ctx, month)
		if err != nil {
			return errors.Wrap(err, "statistics")
		}
		out.Statistics = st
		return nil
	})
	eg.Go(func() error {
		chart, err := s.BarChart(ctx, month)
		if err != nil {
			return errors.Wrap(err, "bar chart")
		}
		out.BarChartData = chart
		return nil
	})
	eg.Go(func() error {
		cats, err := s.PieChart(ctx, month)
		if err != nil {
			return errors.Wrap(err, "pie chart")
		}
		out.PieChartData = cats
		return nil
	})
	if err := eg.Wait(); err != nil {
		return domain.Combined{}, err
	}
	return out, nil
}
