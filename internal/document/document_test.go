package document

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/adeilh/docserve/cache"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setKeys []string
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type countingGateway struct {
	calls int
	out   Outcome
}

func (g *countingGateway) Lookup(context.Context, string) Outcome {
	g.calls++
	return g.out
}

func TestOutcomeConstructors(t *testing.T) {
	if o := Found("x"); o.Kind != KindFound || o.Content != "x" || o.Err != nil {
		t.Fatalf("Found() = %+v", o)
	}
	if o := NotFound(); o.Kind != KindNotFound || o.Content != "" {
		t.Fatalf("NotFound() = %+v", o)
	}
	err := errors.New("boom")
	if o := Failed(err); o.Kind != KindFailed || !errors.Is(o.Err, err) {
		t.Fatalf("Failed() = %+v", o)
	}
	if Found("").Kind != KindFound {
		t.Fatalf("empty content must still be found")
	}
}

func TestDetachedContextIgnoresParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, done := DetachedContext(parent, time.Minute)
	defer done()

	cancel()
	if ctx.Err() != nil {
		t.Fatalf("detached context cancelled with parent: %v", ctx.Err())
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("expected a deadline")
	}
}

func TestCachedGatewayHitSkipsNext(t *testing.T) {
	store := newMemStore()
	store.data[cache.DocumentKey("a")] = []byte("cached")
	next := &countingGateway{out: Found("fresh")}

	out := NewCachedGateway(next, store, 0, nil).Lookup(context.Background(), "a")

	if out.Kind != KindFound || out.Content != "cached" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if next.calls != 0 {
		t.Fatalf("wrapped gateway called %d times on a hit", next.calls)
	}
}

func TestCachedGatewayMissStoresFound(t *testing.T) {
	store := newMemStore()
	next := &countingGateway{out: Found("fresh")}
	g := NewCachedGateway(next, store, 0, nil)

	for i := 0; i < 2; i++ {
		out := g.Lookup(context.Background(), "a")
		if out.Kind != KindFound || out.Content != "fresh" {
			t.Fatalf("lookup %d: unexpected outcome %+v", i, out)
		}
	}
	if next.calls != 1 {
		t.Fatalf("wrapped gateway called %d times, want 1", next.calls)
	}
	if ttl := store.ttls[cache.DocumentKey("a")]; ttl != cache.DocumentTTL {
		t.Fatalf("ttl = %v, want %v", ttl, cache.DocumentTTL)
	}
}

func TestCachedGatewayDoesNotStoreMissesOrFailures(t *testing.T) {
	cases := []Outcome{NotFound(), Failed(errors.New("db down"))}
	for _, want := range cases {
		store := newMemStore()
		next := &countingGateway{out: want}

		out := NewCachedGateway(next, store, time.Minute, nil).Lookup(context.Background(), "a")
		if out.Kind != want.Kind {
			t.Fatalf("kind = %v, want %v", out.Kind, want.Kind)
		}
		if len(store.setKeys) != 0 {
			t.Fatalf("%v outcome was cached", want.Kind)
		}
	}
}

func TestCachedGatewayStoreErrorsDegradeToMiss(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	store := newMemStore()
	store.getErr = errors.New("redis: connection refused")
	store.setErr = errors.New("redis: connection refused")
	next := &countingGateway{out: Found("fresh")}

	out := NewCachedGateway(next, store, 0, logger).Lookup(context.Background(), "a")

	if out.Kind != KindFound || out.Content != "fresh" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if next.calls != 1 {
		t.Fatalf("wrapped gateway called %d times, want 1", next.calls)
	}
	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected read and write warnings, got %d", warnings)
	}
}

func TestGatewayFunc(t *testing.T) {
	var got string
	g := GatewayFunc(func(_ context.Context, id string) Outcome {
		got = id
		return NotFound()
	})
	if g.Lookup(context.Background(), "x%2Fy").Kind != KindNotFound || got != "x%2Fy" {
		t.Fatalf("GatewayFunc did not forward the identifier")
	}
}
