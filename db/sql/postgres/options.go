package postgres

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures PostgreSQL connections and pool behavior.
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MinIdleConns    int
	ConnMaxLifetime time.Duration
}

type Option func(*Options)

// WithDSN sets the lib/pq connection string.
func WithDSN(dsn string) Option {
	return func(o *Options) {
		if dsn != "" {
			o.DSN = dsn
		}
	}
}

// WithMaxOpenConns controls the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxOpenConns = n
		}
	}
}

// WithMaxIdleConns controls the idle connection pool size.
func WithMaxIdleConns(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxIdleConns = n
		}
	}
}

// WithMinIdleConns sets how many connections Open establishes up front.
func WithMinIdleConns(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MinIdleConns = n
		}
	}
}

// WithConnMaxLifetime controls how long a connection can be reused.
func WithConnMaxLifetime(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ConnMaxLifetime = d
		}
	}
}

func defaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		MinIdleConns:    1,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

type gatewayOptions struct {
	queryTimeout time.Duration
	log          logrus.FieldLogger
}

type GatewayOption func(*gatewayOptions)

// WithQueryTimeout bounds connection checkout plus query time.
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
