package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	exportSheet = "Sheet1"
)

// ExportRow is the flat spreadsheet shape of a transaction
type ExportRow struct {
	ID          string `csv:"id"`
	Title       string `csv:"title"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Category    string `csv:"category"`
	Image       string `csv:"image"`
	Sold        string `csv:"sold"`
	DateOfSale  string `csv:"dateOfSale"`
}

var exportHeader = []string{"id", "title", "description", "price", "category", "image", "sold", "dateOfSale"}

func (r ExportRow) values() []string {
	return []string{r.ID, r.Title, r.Description, r.Price, r.Category, r.Image, r.Sold, r.DateOfSale}
}

func toExportRow(t domain.ProductTransaction) ExportRow {
	row := ExportRow{
		ID:          strconv.FormatInt(t.ID, 10),
		Title:       t.Title,
		Description: t.Description,
		Price:       strconv.FormatFloat(t.Price, 'f', -1, 64),
		Category:    t.Category,
		Image:       t.Image,
		Sold:        t.Sold,
	}
	if t.IsSold() {
		row.DateOfSale = t.DateOfSale.Format(time.RFC3339)
	}
	return row
}

// ParseExportFormat normalizes the requested format, defaulting to csv.
func ParseExportFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", domain.ErrInvalidExportFormat
	}
}

// ContentType returns the MIME type of an export format
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ExportTransactions writes every record matching searchText to w.
func (s *Service) ExportTransactions(ctx context.Context, searchText, format string, w io.Writer) (int, error) {
	format, err := ParseExportFormat(format)
	if err != nil {
		return 0, err
	}
	txs, _, err := s.store.Search(ctx, domain.ListQuery{SearchText: searchText})
	if err != nil {
		return 0, err
	}
	rows := make([]ExportRow, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, toExportRow(t))
	}

	if format == FormatXLSX {
		return len(rows), writeXLSX(rows, w)
	}
	return len(rows), errors.Wrap(gocsv.Marshal(rows, w), "write csv")
}

func writeXLSX(rows []ExportRow, w io.Writer) error {
	xlsx := excelize.NewFile()
	for col, h := range exportHeader {
		xlsx.SetCellValue(exportSheet, cell(col, 1), h)
	}
	for i, r := range rows {
		for col, v := range r.values() {
			xlsx.SetCellValue(exportSheet, cell(col, i+2), v)
		}
	}
	return errors.Wrap(xlsx.Write(w), "write xlsx")
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
