package domain

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// ListQuery is the search and pagination input for transaction listings.
// PerPage <= 0 means "no pagination" for store callers that want every match.
type ListQuery struct {
	Page       int
	PerPage    int
	SearchText string
}

// WithDefaults fills page and perPage when they are missing or invalid.
func (q ListQuery) WithDefaults() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	return q
}

// Offset is (page-1)*perPage, saturated at math.MaxInt when the product overflows.
func (q ListQuery) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

// TransactionPage is the /transactions response body
type TransactionPage struct {
	Transactions []ProductTransaction `json:"transactions"`
	TotalCount   int64                `json:"totalCount"`
	TotalPages   int64                `json:"totalPages"`
	Page         int                  `json:"page"`
	PerPage      int                  `json:"perPage"`
}

// TotalPages is ceil(total/perPage).
func TotalPages(total int64, perPage int) int64 {
	if perPage < 1 || total <= 0 {
		return 0
	}
	p := int64(perPage)
	return (total + p - 1) / p
}

// Combined is the /combine response body
type Combined struct {
	Transactions TransactionPage `json:"transactions"`
	Statistics   Statistics      `json:"statistics"`
	BarChartData BarChart        `json:"barChartData"`
	PieChartData []CategoryCount `json:"pieChartData"`
}

// SearchPrice reports whether the search text is a finite number, in which
// case records priced exactly at that value also match.
func SearchPrice(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(text)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
