package document

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adeilh/docserve/cache"
)

// CachedGateway is a read-through cache in front of another Gateway. Only
// found documents are stored; store errors degrade to a miss.
type CachedGateway struct {
	next  Gateway
	store cache.Store
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewCachedGateway wraps next. A non-positive ttl falls back to cache.DocumentTTL.
func NewCachedGateway(next Gateway, store cache.Store, ttl time.Duration, log logrus.FieldLogger) *CachedGateway {
	if ttl <= 0 {
		ttl = cache.DocumentTTL
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &CachedGateway{next: next, store: store, ttl: ttl, log: log}
}

func (g *CachedGateway) Lookup(ctx context.Context, id string) Outcome {
	key := cache.DocumentKey(id)

	b, err := g.store.Get(ctx, key)
	switch {
	case err == nil:
		return Found(string(b))
	case errors.Is(err, cache.ErrNotFound):
	default:
		g.log.WithError(err).WithField("document_id", id).Warn("cache read failed")
	}

	out := g.next.Lookup(ctx, id)
	if out.Kind != KindFound {
		return out
	}

	wctx, cancel := DetachedContext(ctx, time.Second)
	defer cancel()
	if err := g.store.Set(wctx, key, []byte(out.Content), g.ttl); err != nil {
		g.log.WithError(err).WithField("document_id", id).Warn("cache write failed")
	}
	return out
}
