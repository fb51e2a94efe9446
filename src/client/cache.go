package client

import (
	"context"
	"sync"
	"time"
)

// DefaultStaleTime is the window inside which a cached collection is
// served without a background refetch.
const DefaultStaleTime = 5 * time.Second

type cacheEntry struct {
	data      interface{}
	loaded    bool
	stale     bool
	updatedAt time.Time
	cancel    context.CancelFunc // in-flight background fetch, if any
}

// QueryCache holds one collection per QueryKey. All methods are safe for
// concurrent use; the cache itself never talks to the network — fetches
// are registered with BeginFetch and land through SetFetched.
type QueryCache struct {
	mu        sync.Mutex
	entries   map[QueryKey]*cacheEntry
	staleTime time.Duration
}

func NewQueryCache(staleTime time.Duration) *QueryCache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &QueryCache{
		entries:   make(map[QueryKey]*cacheEntry),
		staleTime: staleTime,
	}
}

// Get returns the cached data for key, whether any data is present, and
// whether it is still fresh.
func (qc *QueryCache) Get(key QueryKey) (data interface{}, ok bool, fresh bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	e, exists := qc.entries[key]
	if !exists || !e.loaded {
		return nil, false, false
	}
	fresh = !e.stale && time.Since(e.updatedAt) < qc.staleTime
	return e.data, true, fresh
}

// Set stores data for key and marks it fresh. Used for optimistic writes
// and rollbacks, which must land regardless of in-flight fetches.
func (qc *QueryCache) Set(key QueryKey, data interface{}) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.store(qc.entry(key), data)
}

// SetFetched stores data produced by the background fetch bound to
// fetchCtx. The write is dropped when that fetch was cancelled in the
// meantime, so a stale response can never clobber a newer cache write.
func (qc *QueryCache) SetFetched(fetchCtx context.Context, key QueryKey, data interface{}) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if fetchCtx.Err() != nil {
		return
	}
	e := qc.entry(key)
	qc.store(e, data)
	e.cancel = nil
}

// Invalidate marks key stale without dropping the cached data; the next
// read serves the old collection and refetches in the background.
func (qc *QueryCache) Invalidate(key QueryKey) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if e, ok := qc.entries[key]; ok {
		e.stale = true
	}
}

// CancelQueries aborts any in-flight background fetch for key.
func (qc *QueryCache) CancelQueries(key QueryKey) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	e, ok := qc.entries[key]
	if !ok || e.cancel == nil {
		return
	}
	e.cancel()
	e.cancel = nil
}

// BeginFetch registers a new in-flight fetch for key, cancelling any
// previous one, and returns the context the fetch must pass back to
// SetFetched.
func (qc *QueryCache) BeginFetch(ctx context.Context, key QueryKey) context.Context {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	e := qc.entry(key)
	if e.cancel != nil {
		e.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	return fetchCtx
}

func (qc *QueryCache) entry(key QueryKey) *cacheEntry {
	e, ok := qc.entries[key]
	if !ok {
		e = &cacheEntry{}
		qc.entries[key] = e
	}
	return e
}

func (qc *QueryCache) store(e *cacheEntry, data interface{}) {
	e.data = data
	e.loaded = true
	e.stale = false
	e.updatedAt = time.Now()
}
