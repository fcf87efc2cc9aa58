// Package rescache is a keyed read-through cache for tenant-scoped resource
// queries. Every key carries the tenant id, so entries for the same resource
// under different tenants can never collide; concurrent fetches for an
// identical key collapse into a single load.
package rescache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// keySep separates key components in the canonical string form. A unit
// separator cannot appear in tenant ids, resource names, or URL-encoded
// params, so prefix matching on it is collision-free.
const keySep = "\x1f"

// Key identifies a cache entry. Tenant is an explicit component rather than
// ambient state: an entry populated under one tenant is unreachable from any
// other tenant's reads.
type Key struct {
	Tenant   string
	Resource string
	Params   string // serialized query parameters, e.g. url.Values.Encode()
}

// NewKey builds a Key. Params should already be in a canonical order
// (url.Values.Encode sorts by key).
func NewKey(tenant, resource, params string) Key {
	return Key{Tenant: tenant, Resource: resource, Params: params}
}

// String returns the canonical form used as the map key and the
// de-duplication group key.
func (k Key) String() string {
	return k.Tenant + keySep + k.Resource + keySep + k.Params
}

func (k Key) prefix() string {
	return k.Tenant + keySep + k.Resource + keySep
}

// Entry holds the cached state for one key.
type Entry struct {
	Data      any
	FetchedAt time.Time // zero means the entry has been invalidated
	Err       error     // non-nil for a cached failure
}

// stale reports whether the entry needs a refetch.
func (e *Entry) stale(staleTime time.Duration, now time.Time) bool {
	if e.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(e.FetchedAt) >= staleTime
}

// Options control entry lifecycle. GCTime must exceed StaleTime: an entry
// becomes eligible for refetch at StaleTime but is only dropped from memory
// after GCTime of inactivity.
type Options struct {
	StaleTime time.Duration // age after which cached data must be refetched
	GCTime    time.Duration // inactivity window after which an entry is evicted
	ErrorTTL  time.Duration // how long a failed load is remembered before re-attempting
}

// DefaultOptions mirror the defaults the dashboard UIs were tuned against.
var DefaultOptions = Options{
	StaleTime: 30 * time.Second,
	GCTime:    5 * time.Minute,
	ErrorTTL:  5 * time.Second,
}

var ErrBadOptions = errors.New("rescache: gc time must exceed stale time")

// Cache is a process-wide store of resource entries. It is safe for
// concurrent use. Construct with New, then Start the eviction loop; Stop it
// on teardown.
type Cache struct {
	opts  Options
	items *ttlcache.Cache[string, *Entry]
	group singleflight.Group
}

// New creates a Cache with the given options. Zero fields take defaults.
func New(opts Options) (*Cache, error) {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultOptions.StaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultOptions.GCTime
	}
	if opts.ErrorTTL <= 0 {
		opts.ErrorTTL = DefaultOptions.ErrorTTL
	}
	if opts.GCTime <= opts.StaleTime {
		return nil, ErrBadOptions
	}

	items := ttlcache.New(
		ttlcache.WithTTL[string, *Entry](opts.GCTime),
	)

	return &Cache{opts: opts, items: items}, nil
}

// Start launches the background eviction loop. Call Stop on teardown.
func (c *Cache) Start() { go c.items.Start() }

// Stop halts the eviction loop and drops all entries.
func (c *Cache) Stop() {
	c.items.Stop()
	c.items.DeleteAll()
}

// Get returns the current entry for key without triggering a load.
func (c *Cache) Get(key Key) (*Entry, bool) {
	item := c.items.Get(key.String(), ttlcache.WithDisableTouchOnHit[string, *Entry]())
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Len reports the number of live entries.
func (c *Cache) Len() int { return c.items.Len() }

// Fetch returns cached data for key, loading it if absent or stale.
//
// A fresh, successful entry is returned without invoking loader. A live
// error entry returns its error without re-invoking loader; once its
// ErrorTTL elapses the next Fetch re-attempts. When a load is needed,
// concurrent callers for the identical key share one loader invocation.
//
// A loader that completes after its caller lost interest still writes only
// under its own key. Tenant is part of the key, so a late result can never
// surface in another tenant's key space.
func (c *Cache) Fetch(ctx context.Context, key Key, loader func(ctx context.Context) (any, error)) (any, error) {
	k := key.String()

	if item := c.items.Get(k); item != nil {
		e := item.Value()
		if e.Err != nil {
			return nil, e.Err
		}
		if !e.stale(c.opts.StaleTime, time.Now()) {
			return e.Data, nil
		}
	}

	v, err, _ := c.group.Do(k, func() (any, error) {
		data, err := loader(ctx)
		if err != nil {
			c.items.Set(k, &Entry{Err: err, FetchedAt: time.Now()}, c.opts.ErrorTTL)
			return nil, err
		}
		c.items.Set(k, &Entry{Data: data, FetchedAt: time.Now()}, ttlcache.DefaultTTL)
		return data, nil
	})
	return v, err
}

// Invalidate marks every entry for (tenant, resource) stale, regardless of
// params. Data is retained so callers holding an entry keep rendering it,
// but the next Fetch refetches.
func (c *Cache) Invalidate(tenant, resource string) {
	prefix := Key{Tenant: tenant, Resource: resource}.prefix()

	// Collect first: Set inside Range would deadlock on the cache lock.
	type kept struct {
		key  string
		data any
	}
	var matched []kept
	c.items.Range(func(item *ttlcache.Item[string, *Entry]) bool {
		if strings.HasPrefix(item.Key(), prefix) {
			matched = append(matched, kept{key: item.Key(), data: item.Value().Data})
		}
		return true
	})
	for _, m := range matched {
		c.items.Set(m.key, &Entry{Data: m.data}, ttlcache.DefaultTTL)
	}
}

// InvalidateKey marks a single entry stale.
func (c *Cache) InvalidateKey(key Key) {
	k := key.String()
	item := c.items.Get(k, ttlcache.WithDisableTouchOnHit[string, *Entry]())
	if item == nil {
		return
	}
	c.items.Set(k, &Entry{Data: item.Value().Data}, ttlcache.DefaultTTL)
}

// InvalidateTenant drops every entry belonging to tenant. Used when a
// session ends and the tenant's data must not outlive it.
func (c *Cache) InvalidateTenant(tenant string) {
	prefix := tenant + keySep

	var doomed []string
	c.items.Range(func(item *ttlcache.Item[string, *Entry]) bool {
		if strings.HasPrefix(item.Key(), prefix) {
			doomed = append(doomed, item.Key())
		}
		return true
	})
	for _, k := range doomed {
		c.items.Delete(k)
	}
}
