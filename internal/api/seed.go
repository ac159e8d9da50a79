package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/salesdash/salesdash/internal/webserver"
	"go.uber.org/zap"
)

func registerSeedRoutes(s *webserver.WebServer) {
	s.POST("/initialize-database", InitializeDatabase)
}

// InitializeDatabase replaces the store contents with the seed document
// @Summary load the seed transactions
// @Tags Seed
// @Success 200 {object} InitializeResponse
// @Failure 500 {object} ErrorResponse
// @Router /initialize-database [post]
func InitializeDatabase(c echo.Context) error {
	n, err := GetAppContext(c).InitializeDatabase(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "SEED_FAILED", internalMessage, err)
	}
	zap.S().Infof("database initialized with %d transactions", n)
	return c.JSON(http.StatusOK, InitializeResponse{
		Message: "Database initialized successfully with seed data",
		Count:   n,
	})
}
