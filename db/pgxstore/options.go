package pgxstore

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures the pgx connection pool.
type Options struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
}

type Option func(*Options)

func WithDSN(dsn string) Option {
	return func(o *Options) {
		if dsn != "" {
			o.DSN = dsn
		}
	}
}

// WithMaxConns bounds how many connections the pool opens.
func WithMaxConns(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxConns = int32(n)
		}
	}
}

// WithMinConns keeps n connections open while the pool is idle.
func WithMinConns(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MinConns = int32(n)
		}
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ConnMaxLifetime = d
		}
	}
}

func defaultOptions() Options {
	return Options{
		MaxConns:        10,
		MinConns:        1,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

type gatewayOptions struct {
	queryTimeout time.Duration
	log          logrus.FieldLogger
}

type GatewayOption func(*gatewayOptions)

// WithQueryTimeout bounds connection acquisition plus query time.
func WithQueryTimeout(d time.Duration) GatewayOption {
	return func(o *gatewayOptions) {
		if d > 0 {
			o.queryTimeout = d
		}
	}
}

func WithLogger(l logrus.FieldLogger) GatewayOption {
	return func(o *gatewayOptions) {
		if l != nil {
			o.log = l
		}
	}
}
