package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SeedRecord is one entry of the third-party seed document. Types are loose
// because the upstream document is not under our control.
type SeedRecord struct {
	ID          interface{} `json:"id"`
	Title       string      `json:"title"`
	Price       interface{} `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Sold        interface{} `json:"sold"`
	DateOfSale  interface{} `json:"dateOfSale"`
}

// ToTransaction converts the seed entry; dates without an offset are read in loc.
func (r SeedRecord) ToTransaction(loc *time.Location) (ProductTransaction, error) {
	price, err := cast.ToFloat64E(r.Price)
	if err != nil {
		return ProductTransaction{}, errors.Wrap(err, "price")
	}
	if price < 0 {
		return ProductTransaction{}, ErrNegativePrice
	}

	tx := ProductTransaction{
		Title:       r.Title,
		Description: r.Description,
		Price:       price,
		Category:    r.Category,
		Image:       r.Image,
		Sold:        cast.ToString(r.Sold),
	}

	if raw := strings.TrimSpace(cast.ToString(r.DateOfSale)); raw != "" {
		if loc == nil {
			loc = time.UTC
		}
		ts, err := dateparse.ParseIn(raw, loc)
		if err != nil {
			return ProductTransaction{}, errors.Wrapf(err, "dateOfSale %q", raw)
		}
		tx.DateOfSale = &ts
	}
	tx.Normalize()
	return tx, nil
}

// DecodeSeed parses a JSON array of seed records into transactions.
func DecodeSeed(data []byte, loc *time.Location) ([]ProductTransaction, error) {
	var records []SeedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode seed document")
	}
	txs := make([]ProductTransaction, 0, len(records))
	for i, r := range records {
		tx, err := r.ToTransaction(loc)
		if err != nil {
			return nil, errors.Wrapf(err, "seed record %d", i)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
