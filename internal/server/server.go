// Package server assembles the document HTTP service.
package server

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adeilh/docserve/httpx"
	"github.com/adeilh/docserve/internal/document"
	"github.com/adeilh/docserve/internal/tracking"
)

type Options struct {
	Addr     string
	Gateway  document.Gateway
	Logger   logrus.FieldLogger
	Reporter tracking.Reporter

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New wires the handler behind the boundary and echo's panic recovery. Every
// path and method reaches the handler, so routing never answers on its own
// except for verbs echo does not register.
func New(opts Options) *httpx.Server {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	srv := httpx.NewServer(
		httpx.WithAddress(opts.Addr),
		httpx.WithTimeouts(opts.ReadTimeout, opts.WriteTimeout),
		httpx.WithMiddlewares(
			Boundary(log, opts.Reporter),
			httpx.RecoverMiddleware(),
		),
	)

	h := NewHandler(opts.Gateway)
	srv.RegisterRoutes(
		httpx.Route{Method: httpx.MethodAny, Path: "/", Handler: h.Serve},
		httpx.Route{Method: httpx.MethodAny, Path: "/*", Handler: h.Serve},
	)
	return srv
}
