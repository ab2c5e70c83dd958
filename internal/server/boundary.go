package server

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adeilh/docserve/httpx"
	"github.com/adeilh/docserve/internal/tracking"
)

// Boundary is the outermost middleware. It times and logs every request and
// turns any error that escapes the stack into a rendered response, so echo's
// error handler is never reached from here.
func Boundary(log logrus.FieldLogger, reporter tracking.Reporter) httpx.MiddlewareFunc {
	if reporter == nil {
		reporter = tracking.Nop()
	}
	return func(next httpx.HandlerFunc) httpx.HandlerFunc {
		return func(c httpx.Context) error {
			start := time.Now()
			req := c.Request()
			fields := logrus.Fields{
				"method": req.Method,
				"path":   req.URL.EscapedPath(),
			}

			err := next(c)
			if err == nil {
				log.WithFields(fields).WithFields(logrus.Fields{
					"status":      c.Response().Status,
					"duration_ms": time.Since(start).Milliseconds(),
				}).Info("request")
				return nil
			}

			var he *httpx.HTTPErrorValue
			if errors.As(err, &he) && he.Code >= 400 && he.Code < 500 {
				render(c, he.Code, log)
				log.WithFields(fields).WithFields(logrus.Fields{
					"status":      he.Code,
					"duration_ms": time.Since(start).Milliseconds(),
				}).Info("request")
				return nil
			}

			render(c, httpx.StatusInternalError, log)
			log.WithFields(fields).WithFields(logrus.Fields{
				"status":      httpx.StatusInternalError,
				"duration_ms": time.Since(start).Milliseconds(),
			}).WithError(err).Error("request failed")
			reporter.Capture(req.Context(), err)
			return nil
		}
	}
}

func render(c httpx.Context, status int, log logrus.FieldLogger) {
	if c.Response().Committed {
		return
	}
	if err := httpx.WriteResponse(c, httpx.NewResponse(status)); err != nil {
		log.WithError(err).WithField("status", status).Warn("write response")
	}
}
