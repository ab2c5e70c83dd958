package httpx

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Context represents the context of the current HTTP request.
type Context = echo.Context

// HandlerFunc defines a function to handle HTTP requests.
type HandlerFunc = echo.HandlerFunc

// MiddlewareFunc defines a function to process middleware.
type MiddlewareFunc = echo.MiddlewareFunc

// HTTPErrorValue is the error type echo produces for routing failures.
type HTTPErrorValue = echo.HTTPError

// App is the main application instance for handling HTTP requests.
type App struct{ e *echo.Echo }

// New creates a new App instance.
func New() *App { return &App{echo.New()} }

// Use attaches middleware to the App instance.
func (a *App) Use(mw ...MiddlewareFunc) { a.e.Use(mw...) }

// RecoverMiddleware returns a middleware that recovers from panics and hands the
// recovered error back to the enclosing middleware instead of the error handler.
func RecoverMiddleware() MiddlewareFunc {
	cfg := middleware.DefaultRecoverConfig
	cfg.DisableErrorHandler = true
	cfg.DisablePrintStack = true
	return middleware.RecoverWithConfig(cfg)
}

// Any registers a route for every method echo knows about.
func (a *App) Any(path string, h HandlerFunc, mw ...MiddlewareFunc) {
	a.e.Any(path, h, mw...)
}

// HTTPError constructs an HTTP error for returning from handlers.
func HTTPError(code int, message ...any) error { return echo.NewHTTPError(code, message...) }
