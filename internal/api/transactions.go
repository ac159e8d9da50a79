package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/salesdash/salesdash/internal/report"
	"github.com/salesdash/salesdash/internal/webserver"
)

func registerTransactionRoutes(s *webserver.WebServer) {
	s.GET("/transactions", ListTransactions)
	s.GET("/transactions/export", ExportTransactions)
}

// ListTransactions retrieves one page of transactions
// @Summary list transactions
// @Tags Transactions
// @Param page query int false "Page number"
// @Param perPage query int false "Items per page"
// @Param searchText query string false "Matches title, description or exact price"
// @Param month query string false "Accepted and ignored"
// @Success 200 {object} domain.TransactionPage
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func ListTransactions(c echo.Context) error {
	page, err := GetAppContext(c).Report().ListTransactions(c.Request().Context(), listQuery(c))
	if err != nil {
		return handleError(c, "QUERY_FAILED", err)
	}
	return c.JSON(http.StatusOK, page)
}

// ExportTransactions downloads every matching transaction
// @Summary export transactions
// @Tags Transactions
// @Param searchText query string false "Matches title, description or exact price"
// @Param format query string false "csv (default) or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /transactions/export [get]
func ExportTransactions(c echo.Context) error {
	format, err := report.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return handleError(c, "INVALID_FORMAT", err)
	}
	var buf bytes.Buffer
	if _, err := GetAppContext(c).Report().ExportTransactions(c.Request().Context(), c.QueryParam("searchText"), format, &buf); err != nil {
		return handleError(c, "EXPORT_FAILED", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=transactions.%s", format))
	return c.Blob(http.StatusOK, report.ContentType(format), buf.Bytes())
}
