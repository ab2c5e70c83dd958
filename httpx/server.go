package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Server struct {
	app      *App
	address  string
	srv      *http.Server
	shutdown time.Duration
}

type StartOption func(*Server)

func WithShutdownTimeout(d time.Duration) StartOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdown = d
		}
	}
}

func NewServer(opts ...ServerOption) *Server {
	cfg := defaultServerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := New()
	a.e.HideBanner = true
	a.e.HidePort = true
	a.e.HTTPErrorHandler = cfg.ErrorHandler
	a.e.Server.ReadTimeout = cfg.ReadTimeout
	a.e.Server.WriteTimeout = cfg.WriteTimeout
	a.Use(cfg.Middlewares...)

	return &Server{
		app:      a,
		address:  cfg.Address,
		shutdown: 5 * time.Second,
	}
}

// RegisterRoutes installs routes on the underlying App.
func (s *Server) RegisterRoutes(routes ...Route) {
	RegisterRoutes(s.app, routes...)
}

func (s *Server) Address() string { return s.address }

func (s *Server) Handler() http.Handler {
	return s.app.e
}

// Start serves until ctx is cancelled, then drains in-flight requests within
// the shutdown timeout.
func (s *Server) Start(ctx context.Context, opts ...StartOption) error {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an already bound listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.srv = &http.Server{
		Handler:      s.app.e,
		ReadTimeout:  s.app.e.Server.ReadTimeout,
		WriteTimeout: s.app.e.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdown)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// defaultHTTPErrorHandler renders routing and handler errors with the same
// headers as every other response. The error's message is never exposed.
func defaultHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := StatusInternalError
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code >= 100 && he.Code <= 599 {
		code = he.Code
	}
	_ = WriteResponse(c, NewResponse(code))
}
