package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/salesdash/salesdash/internal/app"
	"github.com/salesdash/salesdash/internal/domain"
	"github.com/salesdash/salesdash/internal/webserver"
	"go.uber.org/zap"
)

const (
	invalidMonthMessage = "Invalid month format. Please provide a valid month name (e.g., January)."
	internalMessage     = "Internal server error"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// InitializeResponse is returned by POST /initialize-database
type InitializeResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// GetAppContext returns the application context injected by the web server
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func fail(c echo.Context, status int, code, msg string, err error) error {
	if err != nil {
		zap.L().Error(msg,
			zap.String("code", code),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

// handleError maps service errors to HTTP responses.
func handleError(c echo.Context, code string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMonth):
		return fail(c, http.StatusBadRequest, "INVALID_MONTH", invalidMonthMessage, nil)
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return fail(c, http.StatusBadRequest, "INVALID_FORMAT", "Invalid export format. Use csv or xlsx.", nil)
	default:
		return fail(c, http.StatusInternalServerError, code, internalMessage, err)
	}
}

// listQuery reads page, perPage and searchText. Unparsable numbers fall back
// to the defaults; searchText is matched as given, surrounding spaces included.
func listQuery(c echo.Context) domain.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("perPage"))
	return domain.ListQuery{
		Page:       page,
		PerPage:    perPage,
		SearchText: c.QueryParam("searchText"),
	}.WithDefaults()
}
