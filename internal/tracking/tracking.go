// Package tracking forwards unexpected failures to an error-tracking service.
package tracking

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter receives failures that ended in a 500.
type Reporter interface {
	Capture(ctx context.Context, err error)
	Flush(timeout time.Duration) bool
}

type nop struct{}

// Nop discards everything.
func Nop() Reporter { return nop{} }

func (nop) Capture(context.Context, error) {}

func (nop) Flush(time.Duration) bool { return true }

type Options struct {
	DSN         string
	Environment string
	Release     string

	// BeforeSend may inspect or drop events; tests use it to intercept them.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
}

// Sentry reports through its own hub so no process-wide state is touched.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry returns Nop when no DSN is configured.
func NewSentry(opts Options) (Reporter, error) {
	if opts.DSN == "" {
		return Nop(), nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		BeforeSend:  opts.BeforeSend,
	})
	if err != nil {
		return nil, err
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}
	hub := s.hub
	if h := sentry.GetHubFromContext(ctx); h != nil {
		hub = h
	}
	hub.CaptureException(err)
}

func (s *Sentry) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}
