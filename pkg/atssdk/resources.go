package atssdk

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/talentpipehq/talentpipe/pkg/rescache"
)

// Status is the terminal state of a resource operation. Consumers render
// directly off it: a skeleton while the call is in flight, then empty-state
// messaging, a sign-in prompt, inline field errors, or the data.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusNoTenant
	StatusAuthRequired
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusNoTenant:
		return "no_tenant"
	case StatusAuthRequired:
		return "auth_required"
	default:
		return "error"
	}
}

// Result is the outcome of a read or mutation. Exactly one of Docs/Doc is
// populated on StatusOK depending on the operation. NoOp marks a mutation
// short-circuited by demo mode.
type Result struct {
	Status      Status
	Doc         Document
	Docs        []Document
	NoOp        bool
	Err         error
	FieldErrors map[string]string
}

// RetryPolicy controls read retries. Only transient network failures are
// retried; NotFound and AuthRequired resolve on the first attempt.
type RetryPolicy struct {
	MaxRetries      uint64        // additional attempts after the first
	InitialInterval time.Duration // first backoff delay
	MaxInterval     time.Duration // backoff cap
}

// DefaultRetryPolicy: two extra attempts, exponential backoff capped at 30s.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:      2,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     30 * time.Second,
}

// Config wires a Resources facade.
type Config struct {
	Live   Source
	Demo   Source
	Tenant *TenantContext
	Flag   *DemoFlag

	Cache *rescache.Options // nil takes rescache.DefaultOptions
	Retry *RetryPolicy      // nil takes DefaultRetryPolicy
}

// Resources is the generic CRUD facade over the ATS API. It owns the
// resource cache; all invalidation goes through its mutation path, so a
// successful write is always followed by fresh reads.
type Resources struct {
	live   Source
	demo   Source
	tenant *TenantContext
	flag   *DemoFlag
	cache  *rescache.Cache
	retry  RetryPolicy
}

// NewResources builds the facade and starts its cache. Call Close on
// teardown.
func NewResources(cfg Config) (*Resources, error) {
	if cfg.Live == nil || cfg.Demo == nil || cfg.Tenant == nil || cfg.Flag == nil {
		return nil, errors.New("atssdk: Live, Demo, Tenant and Flag are all required")
	}

	cacheOpts := rescache.DefaultOptions
	if cfg.Cache != nil {
		cacheOpts = *cfg.Cache
	}
	cache, err := rescache.New(cacheOpts)
	if err != nil {
		return nil, err
	}
	cache.Start()

	retry := DefaultRetryPolicy
	if cfg.Retry != nil {
		retry = *cfg.Retry
	}

	return &Resources{
		live:   cfg.Live,
		demo:   cfg.Demo,
		tenant: cfg.Tenant,
		flag:   cfg.Flag,
		cache:  cache,
		retry:  retry,
	}, nil
}

// Close stops the cache eviction loop.
func (r *Resources) Close() { r.cache.Stop() }

// Cache exposes the underlying cache for diagnostics and tests.
func (r *Resources) Cache() *rescache.Cache { return r.cache }

// ForgetTenant drops every cached entry for org. Call it when a session
// ends so a tenant's data does not outlive it in memory.
func (r *Resources) ForgetTenant(org string) { r.cache.InvalidateTenant(org) }

// List returns the collection for resource, filtered by params.
//
// Demo mode serves fixtures synchronously. Otherwise the read suspends
// until the session resolves, maps a missing tenant to an empty StatusOK
// result with StatusNoTenant, and then goes through the cache: a fresh
// entry short-circuits, concurrent identical reads share one request, and
// transient failures are retried per the policy.
func (r *Resources) List(ctx context.Context, resource string, params url.Values) Result {
	if r.flag.IsDemo() {
		docs, err := r.demo.List(ctx, DemoOrgID, resource, params)
		if err != nil {
			return Result{Status: StatusError, Err: err}
		}
		return Result{Status: StatusOK, Docs: docs}
	}

	org, res := r.resolveTenant(ctx)
	if res != nil {
		return *res
	}

	key := rescache.NewKey(org, resource, encodeParams(params))
	data, err := r.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		var docs []Document
		err := r.withRetry(ctx, func() error {
			var err error
			docs, err = r.live.List(ctx, org, resource, params)
			return err
		})
		return docs, err
	})
	if err != nil {
		return classifyResult(err)
	}

	docs, ok := data.([]Document)
	if !ok {
		return Result{Status: StatusError, Err: fmt.Errorf("atssdk: unexpected cache payload %T", data)}
	}
	return Result{Status: StatusOK, Docs: docs}
}

// Get returns a single document by id.
func (r *Resources) Get(ctx context.Context, resource, id string) Result {
	if r.flag.IsDemo() {
		doc, err := r.demo.Get(ctx, DemoOrgID, resource, id)
		if err != nil {
			return classifyResult(err)
		}
		return Result{Status: StatusOK, Doc: doc}
	}

	org, res := r.resolveTenant(ctx)
	if res != nil {
		return *res
	}

	key := rescache.NewKey(org, resource, itemParams(id))
	data, err := r.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		var doc Document
		err := r.withRetry(ctx, func() error {
			var err error
			doc, err = r.live.Get(ctx, org, resource, id)
			return err
		})
		return doc, err
	})
	if err != nil {
		return classifyResult(err)
	}

	doc, ok := data.(Document)
	if !ok {
		return Result{Status: StatusError, Err: fmt.Errorf("atssdk: unexpected cache payload %T", data)}
	}
	return Result{Status: StatusOK, Doc: doc}
}

// Create inserts a new document. The payload is scoped to the active
// tenant here; callers never set org_id themselves. Demo mode
// short-circuits to a no-op without touching the network. Mutations are
// never retried; on failure the cache is left untouched.
func (r *Resources) Create(ctx context.Context, resource string, payload Document) Result {
	if r.flag.IsDemo() {
		return Result{Status: StatusOK, NoOp: true}
	}

	org, res := r.resolveTenant(ctx)
	if res != nil {
		return *res
	}

	scoped := payload.Clone()
	scoped["org_id"] = org

	doc, err := r.live.Create(ctx, org, resource, scoped)
	if err != nil {
		return classifyResult(err)
	}

	r.cache.Invalidate(org, resource)
	return Result{Status: StatusOK, Doc: doc}
}

// Update modifies a document by id. On success both the resource's list
// entries and the item entry are invalidated.
func (r *Resources) Update(ctx context.Context, resource, id string, payload Document) Result {
	if r.flag.IsDemo() {
		return Result{Status: StatusOK, NoOp: true}
	}

	org, res := r.resolveTenant(ctx)
	if res != nil {
		return *res
	}

	scoped := payload.Clone()
	scoped["org_id"] = org

	doc, err := r.live.Update(ctx, org, resource, id, scoped)
	if err != nil {
		return classifyResult(err)
	}

	r.cache.Invalidate(org, resource)
	r.cache.InvalidateKey(rescache.NewKey(org, resource, itemParams(id)))
	return Result{Status: StatusOK, Doc: doc}
}

// Delete removes a document by id.
func (r *Resources) Delete(ctx context.Context, resource, id string) Result {
	if r.flag.IsDemo() {
		return Result{Status: StatusOK, NoOp: true}
	}

	org, res := r.resolveTenant(ctx)
	if res != nil {
		return *res
	}

	if err := r.live.Delete(ctx, org, resource, id); err != nil {
		return classifyResult(err)
	}

	r.cache.Invalidate(org, resource)
	r.cache.InvalidateKey(rescache.NewKey(org, resource, itemParams(id)))
	return Result{Status: StatusOK}
}

// resolveTenant waits out the loading state and returns the active org id.
// The second return is non-nil when the operation should stop with that
// result instead.
func (r *Resources) resolveTenant(ctx context.Context) (string, *Result) {
	if r.tenant.Loading() {
		if err := r.tenant.WaitReady(ctx); err != nil {
			return "", &Result{Status: StatusError, Err: err}
		}
	}

	org := r.tenant.OrgID()
	if org == "" {
		// Not an error: dashboards before onboarding render an empty state.
		return "", &Result{Status: StatusNoTenant, Docs: []Document{}}
	}
	return org, nil
}

// withRetry runs op, retrying only transient network failures.
func (r *Resources) withRetry(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.retry.InitialInterval
	bo.MaxInterval = r.retry.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, r.retry.MaxRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			return err
		}
		// NotFound, AuthRequired, validation and anything else: terminal.
		return backoff.Permanent(err)
	}, policy)
}

// classifyResult maps the error taxonomy onto result statuses.
func classifyResult(err error) Result {
	switch {
	case errors.Is(err, ErrNotFound):
		return Result{Status: StatusNotFound}
	case errors.Is(err, ErrAuthRequired):
		return Result{Status: StatusAuthRequired}
	case errors.Is(err, ErrDemoReadOnly):
		return Result{Status: StatusError, Err: err}
	default:
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return Result{Status: StatusError, Err: err, FieldErrors: valErr.Fields}
		}
		return Result{Status: StatusError, Err: err}
	}
}

// encodeParams canonicalizes query params for cache keys. url.Values.Encode
// sorts by key, so equal queries always map to equal keys.
func encodeParams(params url.Values) string {
	if len(params) == 0 {
		return ""
	}
	return params.Encode()
}

func itemParams(id string) string {
	return url.Values{"id": {id}}.Encode()
}
