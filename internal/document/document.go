// Package document models the result of looking a document up by identifier
// and the gateways that perform the lookup.
package document

import (
	"context"
	"time"
)

// Kind tags an Outcome.
type Kind uint8

const (
	KindFound Kind = iota + 1
	KindNotFound
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindFound:
		return "found"
	case KindNotFound:
		return "not_found"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single lookup. Content is set only for found
// documents and Err only for failed lookups.
type Outcome struct {
	Kind    Kind
	Content string
	Err     error
}

func Found(content string) Outcome { return Outcome{Kind: KindFound, Content: content} }

func NotFound() Outcome { return Outcome{Kind: KindNotFound} }

func Failed(err error) Outcome { return Outcome{Kind: KindFailed, Err: err} }

// Gateway looks documents up by their opaque identifier.
type Gateway interface {
	Lookup(ctx context.Context, id string) Outcome
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, id string) Outcome

func (f GatewayFunc) Lookup(ctx context.Context, id string) Outcome { return f(ctx, id) }

// Query is the single statement every database gateway prepares.
const Query = `SELECT content FROM documents WHERE id = $1`

// DetachedContext keeps request values but drops the caller's cancellation so
// a disconnecting client cannot abort a query midway. The result is bounded by
// timeout when it is positive.
func DetachedContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
