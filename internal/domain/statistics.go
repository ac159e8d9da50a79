package domain

import (
	"math"
	"strconv"
)

// Statistics is the monthly sale summary
type Statistics struct {
	TotalSaleAmount   float64 `gorm:"column:total_sale_amount" json:"totalSaleAmount" bson:"totalSaleAmount"`
	TotalSoldItems    int64   `gorm:"column:total_sold_items" json:"totalSoldItems" bson:"totalSoldItems"`
	TotalNotSoldItems int64   `gorm:"column:total_not_sold_items" json:"totalNotSoldItems" bson:"totalNotSoldItems"`
}

// CategoryCount is one pie chart slice; the category is exposed as _id.
type CategoryCount struct {
	Category string `gorm:"column:category" json:"_id" bson:"_id"`
	Count    int64  `gorm:"column:count" json:"count" bson:"count"`
}

// PriceRange is an inclusive histogram bucket. Max is +Inf for the last one.
type PriceRange struct {
	Label string
	Min   float64
	Max   float64
}

// Contains reports whether price falls inside the inclusive bounds.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Unbounded reports whether the range has no upper limit.
func (r PriceRange) Unbounded() bool {
	return math.IsInf(r.Max, 1)
}

// PriceRanges are the fixed bar chart buckets: 0 - 100, 101 - 200 ... 901 - above.
var PriceRanges = buildPriceRanges()

func buildPriceRanges() []PriceRange {
	ranges := []PriceRange{{Label: "0 - 100", Min: 0, Max: 100}}
	for lo := 101; lo < 901; lo += 100 {
		hi := lo + 99
		ranges = append(ranges, PriceRange{
			Label: strconv.Itoa(lo) + " - " + strconv.Itoa(hi),
			Min:   float64(lo),
			Max:   float64(hi),
		})
	}
	return append(ranges, PriceRange{Label: "901 - above", Min: 901, Max: math.Inf(1)})
}

// BarChart maps a price range label to the number of records in it.
type BarChart map[string]int64

// NewBarChart returns a chart with every bucket present and zeroed.
func NewBarChart() BarChart {
	chart := make(BarChart, len(PriceRanges))
	for _, r := range PriceRanges {
		chart[r.Label] = 0
	}
	return chart
}
