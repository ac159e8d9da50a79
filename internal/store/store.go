package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/salesdash/salesdash/internal/domain"
)

// TransactionStore is the record store behind the query and statistics services.
// Month arguments use month-of-year semantics: every year present matches.
type TransactionStore interface {
	// Search returns one page of records matching q.SearchText plus the
	// unpaginated match count. q.PerPage <= 0 returns every match.
	Search(ctx context.Context, q domain.ListQuery) ([]domain.ProductTransaction, int64, error)

	// MonthlyStatistics sums sold records of month and counts unsold records
	MonthlyStatistics(ctx context.Context, month time.Month) (domain.Statistics, error)

	// PriceHistogram counts sold records of month per inclusive price range
	PriceHistogram(ctx context.Context, month time.Month, ranges []domain.PriceRange) (domain.BarChart, error)

	// CategoryBreakdown groups sold records of month by category
	CategoryBreakdown(ctx context.Context, month time.Month) ([]domain.CategoryCount, error)

	// ReplaceAll drops every stored record and inserts txs, assigning ids
	ReplaceAll(ctx context.Context, txs []domain.ProductTransaction) (int, error)

	Close(ctx context.Context) error
}

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
)

// NextID returns a new unique record id
func NextID() int64 {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		idNode = node
	})
	return idNode.Generate().Int64()
}

// prepare copies txs, assigns missing ids and normalizes sale months.
func prepare(txs []domain.ProductTransaction) []domain.ProductTransaction {
	out := make([]domain.ProductTransaction, len(txs))
	copy(out, txs)
	for i := range out {
		if out[i].ID == 0 {
			out[i].ID = NextID()
		}
		out[i].Normalize()
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// asciiLower folds A-Z only, matching SQLite's built-in LOWER.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
