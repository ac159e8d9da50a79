package webserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/salesdash/salesdash/internal/app"
	_ "github.com/salesdash/salesdash/internal/docs"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key holding the app.AppContext
const AppContextKey = "appctx"

var (
	metricsOnce sync.Once
	metrics     *prometheus.Prometheus
)

// WebServer wraps the echo instance serving the dashboard API
type WebServer struct {
	root   *echo.Echo
	appCtx app.AppContext
}

// NewWebServer builds the echo instance with the shared middleware stack.
func NewWebServer(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	origins := cfg.Web.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	})

	if cfg.Web.Metrics {
		metricsOnce.Do(func() {
			metrics = prometheus.NewPrometheus("salesdash", nil)
		})
		metrics.Use(e)
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return &WebServer{root: e, appCtx: appCtx}
}

// Echo exposes the underlying router, mainly for tests
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

func (s *WebServer) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.POST(path, h, m...)
}

// Start blocks serving HTTP until Shutdown is called
func (s *WebServer) Start() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("Prepare to start web server %s", addr)
	err := s.root.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// httpErrorHandler renders framework errors (404, 405, bind errors) as {"error": "..."}
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("unhandled request error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil {
		zap.L().Warn("write error response", zap.Error(err))
	}
}
