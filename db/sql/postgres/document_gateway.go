package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adeilh/docserve/internal/document"
)

// DocumentGateway reads documents through a database/sql pool. Each lookup
// checks out one connection and prepares the query on it.
type DocumentGateway struct {
	db      *sql.DB
	timeout time.Duration
	log     logrus.FieldLogger
}

var _ document.Gateway = (*DocumentGateway)(nil)

func NewDocumentGateway(db *sql.DB, opts ...GatewayOption) *DocumentGateway {
	cfg := gatewayOptions{queryTimeout: 5 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.log == nil {
		l := logrus.New()
		l.Out = io.Discard
		cfg.log = l
	}
	return &DocumentGateway{db: db, timeout: cfg.queryTimeout, log: cfg.log}
}

func (g *DocumentGateway) Lookup(ctx context.Context, id string) document.Outcome {
	start := time.Now()
	ctx, cancel := document.DetachedContext(ctx, g.timeout)
	defer cancel()

	conn, err := g.db.Conn(ctx)
	if err != nil {
		return document.Failed(fmt.Errorf("postgres: acquire connection: %w", err))
	}
	defer conn.Close()

	stmt, err := conn.PrepareContext(ctx, document.Query)
	if err != nil {
		return document.Failed(fmt.Errorf("postgres: prepare: %w", err))
	}
	defer stmt.Close()

	var content string
	err = stmt.QueryRowContext(ctx, id).Scan(&content)

	g.log.WithFields(logrus.Fields{
		"document_id": id,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("document query")

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return document.NotFound()
	case err != nil:
		return document.Failed(fmt.Errorf("postgres: query document: %w", err))
	}
	return document.Found(content)
}
