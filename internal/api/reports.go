package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/salesdash/salesdash/internal/webserver"
)

func registerReportRoutes(s *webserver.WebServer) {
	s.GET("/statistics", GetStatistics)
	s.GET("/bar-chart", GetBarChart)
	s.GET("/pie-chart", GetPieChart)
	s.GET("/combine", GetCombined)
}

// GetStatistics returns the sale summary of a month
// @Summary monthly sale summary
// @Tags Reports
// @Param month query string true "Month name, e.g. March"
// @Success 200 {object} domain.Statistics
// @Failure 400 {object} ErrorResponse
// @Router /statistics [get]
func GetStatistics(c echo.Context) error {
	st, err := GetAppContext(c).Report().Statistics(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return handleError(c, "STATISTICS_FAILED", err)
	}
	return c.JSON(http.StatusOK, st)
}

// GetBarChart returns the price histogram of a month
// @Summary monthly price histogram
// @Tags Reports
// @Param month query string true "Month name"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Router /bar-chart [get]
func GetBarChart(c echo.Context) error {
	chart, err := GetAppContext(c).Report().BarChart(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return handleError(c, "BAR_CHART_FAILED", err)
	}
	return c.JSON(http.StatusOK, chart)
}

// GetPieChart returns sold counts per category
// @Summary monthly category breakdown
// @Tags Reports
// @Param month query string true "Month name"
// @Success 200 {array} domain.CategoryCount
// @Failure 400 {object} ErrorResponse
// @Router /pie-chart [get]
func GetPieChart(c echo.Context) error {
	cats, err := GetAppContext(c).Report().PieChart(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return handleError(c, "PIE_CHART_FAILED", err)
	}
	return c.JSON(http.StatusOK, cats)
}

// GetCombined returns the listing and the three monthly reports in one body
// @Summary combined dashboard data
// @Tags Reports
// @Param month query string true "Month name"
// @Param page query int false "Page number"
// @Param perPage query int false "Items per page"
// @Param searchText query string false "Search text"
// @Success 200 {object} domain.Combined
// @Failure 400 {object} ErrorResponse
// @Router /combine [get]
func GetCombined(c echo.Context) error {
	out, err := GetAppContext(c).Report().Combined(c.Request().Context(), c.QueryParam("month"), listQuery(c))
	if err != nil {
		return handleError(c, "COMBINE_FAILED", err)
	}
	return c.JSON(http.StatusOK, out)
}
