package pgxstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/adeilh/docserve/internal/document"
)

// statementName identifies the prepared lookup on every pooled connection.
// pgx skips the round trip when the connection already holds it.
const statementName = "docserve_lookup_document"

type DocumentGateway struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	log     logrus.FieldLogger
}

var _ document.Gateway = (*DocumentGateway)(nil)

func NewDocumentGateway(pool *pgxpool.Pool, opts ...GatewayOption) *DocumentGateway {
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
	return &DocumentGateway{pool: pool, timeout: cfg.queryTimeout, log: cfg.log}
}

func (g *DocumentGateway) Lookup(ctx context.Context, id string) document.Outcome {
	start := time.Now()
	ctx, cancel := document.DetachedContext(ctx, g.timeout)
	defer cancel()

	conn, err := g.pool.Acquire(ctx)
	if err != nil {
		return document.Failed(fmt.Errorf("pgxstore: acquire connection: %w", err))
	}
	defer conn.Release()

	if _, err := conn.Conn().Prepare(ctx, statementName, document.Query); err != nil {
		return document.Failed(fmt.Errorf("pgxstore: prepare: %w", err))
	}

	var content string
	err = conn.QueryRow(ctx, statementName, id).Scan(&content)

	g.log.WithFields(logrus.Fields{
		"document_id": id,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("document query")

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return document.NotFound()
	case err != nil:
		return document.Failed(fmt.Errorf("pgxstore: query document: %w", err))
	}
	return document.Found(content)
}
