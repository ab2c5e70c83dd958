package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/adeilh/docserve/cache"
	testredis "github.com/adeilh/docserve/internal/testutil/rediscontainer"
)

func TestMain(m *testing.M) {
	if err := testredis.Setup(); err != nil {
		fmt.Println("redis cache tests skipped:", err)
		os.Exit(0)
	}

	code := m.Run()

	if err := testredis.Teardown(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: failed to stop redis test container:", err)
	}

	os.Exit(code)
}

func TestStoreSetGetDelete(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := fmt.Sprintf("docserve:test:%d", time.Now().UnixNano())
	value := []byte("some-payload")

	if err := store.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	payload, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if string(payload) != string(value) {
		t.Fatalf("Get() = %q, want %q", payload, value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Get(ctx, key); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreTTL(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("docserve:ttl:%d", time.Now().UnixNano())
	ttl := 200 * time.Millisecond

	if err := store.Set(ctx, key, []byte("value"), ttl); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(ttl + 100*time.Millisecond)

	if _, err := store.Get(ctx, key); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL, got %v", err)
	}
}

func TestStoreContextCancellation(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Set(ctx, "any", []byte("value"), 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStoreConcurrentSetGet(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})

	const workers = 32
	const opsPerWorker = 100

	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < opsPerWorker; i++ {
				key := fmt.Sprintf("docserve:concurrent:%d:%d", worker, i)
				val := []byte(key)

				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				if err := store.Set(ctx, key, val, time.Second); err != nil {
					errCh <- fmt.Errorf("worker %d set failed: %w", worker, err)
					cancel()
					return
				}
				payload, err := store.Get(ctx, key)
				cancel()
				if err != nil {
					errCh <- fmt.Errorf("worker %d get failed: %w", worker, err)
					return
				}
				if string(payload) != string(val) {
					errCh <- fmt.Errorf("worker %d mismatch: got %q want %q", worker, payload, val)
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent op failed: %v", err)
	}
}

func TestStoreDeleteMissingKey(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := fmt.Sprintf("docserve:missing:%d", time.Now().UnixNano())
	if err := store.Delete(ctx, key); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDocumentKeyRoundTrip(t *testing.T) {
	store := NewStore(Options{Addr: testredis.Addr()})
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	key := cache.DocumentKey(fmt.Sprintf("report-%d", time.Now().UnixNano()))
	if err := store.Set(ctx, key, []byte("{\"a\":1}"), cache.DocumentTTL); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("Get() = %q", got)
	}
}

func TestStoreUnreachableServer(t *testing.T) {
	store := NewStore(Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := store.Get(ctx, "anything")
	if err == nil || errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}
