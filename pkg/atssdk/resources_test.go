package atssdk

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talentpipehq/talentpipe/pkg/rescache"
)

// fakeSource is an in-memory Source with call counting and programmable
// failures, standing in for the live API.
type fakeSource struct {
	mu          sync.Mutex
	docs        map[string][]Document
	listCalls   int
	getCalls    int
	writeCalls  int
	failNext    int   // fail this many calls with a transient error
	forcedErr   error // returned for every call when set
	lastPayload Document
}

func newFakeSource() *fakeSource {
	return &fakeSource{docs: make(map[string][]Document)}
}

func (f *fakeSource) maybeFail(op string) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if f.failNext > 0 {
		f.failNext--
		return &NetworkError{Op: op, Err: errors.New("connection reset")}
	}
	return nil
}

func (f *fakeSource) List(_ context.Context, _ string, resource string, _ url.Values) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if err := f.maybeFail("list " + resource); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(f.docs[resource]))
	for _, d := range f.docs[resource] {
		out = append(out, d.Clone())
	}
	return out, nil
}

func (f *fakeSource) Get(_ context.Context, _ string, resource, id string) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if err := f.maybeFail("get " + resource); err != nil {
		return nil, err
	}
	for _, d := range f.docs[resource] {
		if d.ID() == id {
			return d.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSource) Create(_ context.Context, _ string, resource string, doc Document) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	f.lastPayload = doc
	if err := f.maybeFail("create " + resource); err != nil {
		return nil, err
	}
	f.docs[resource] = append(f.docs[resource], doc.Clone())
	return doc.Clone(), nil
}

func (f *fakeSource) Update(_ context.Context, _ string, resource, id string, doc Document) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	f.lastPayload = doc
	if err := f.maybeFail("update " + resource); err != nil {
		return nil, err
	}
	for i, d := range f.docs[resource] {
		if d.ID() == id {
			merged := d.Clone()
			for k, v := range doc {
				merged[k] = v
			}
			f.docs[resource][i] = merged
			return merged.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeSource) Delete(_ context.Context, _ string, resource, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if err := f.maybeFail("delete " + resource); err != nil {
		return err
	}
	kept := f.docs[resource][:0]
	for _, d := range f.docs[resource] {
		if d.ID() != id {
			kept = append(kept, d)
		}
	}
	f.docs[resource] = kept
	return nil
}

// testProvider is a SessionProvider whose session can be swapped mid-test.
type testProvider struct {
	mu   sync.Mutex
	sess Session
	subs []func(Session)
}

func (p *testProvider) Current() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sess
}

func (p *testProvider) Subscribe(fn func(Session)) func() {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	sess := p.sess
	p.mu.Unlock()
	fn(sess)
	return func() {}
}

func (p *testProvider) publish(sess Session) {
	p.mu.Lock()
	p.sess = sess
	subs := append([]func(Session){}, p.subs...)
	p.mu.Unlock()
	for _, fn := range subs {
		fn(sess)
	}
}

type harness struct {
	res      *Resources
	live     *fakeSource
	provider *testProvider
	prefs    *MemPrefStore
}

func newHarness(t *testing.T, sess Session) *harness {
	t.Helper()

	live := newFakeSource()
	provider := &testProvider{sess: sess}
	tenant := NewTenantContext(provider)
	t.Cleanup(tenant.Close)
	prefs := NewMemPrefStore()

	res, err := NewResources(Config{
		Live:   live,
		Demo:   NewDemoSource(),
		Tenant: tenant,
		Flag:   NewDemoFlag(prefs, tenant, nil),
		Cache:  &rescache.Options{StaleTime: time.Minute, GCTime: 5 * time.Minute, ErrorTTL: time.Millisecond},
		Retry:  &RetryPolicy{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond},
	})
	require.NoError(t, err)
	t.Cleanup(res.Close)

	return &harness{res: res, live: live, provider: provider, prefs: prefs}
}

func signedIn(org string) Session {
	return Session{UserID: "u1", OrgID: org, Role: RoleRecruiter, Ready: true}
}

func TestListCachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.docs[ResourceClients] = []Document{{"id": "c1", "name": "Acme"}}

	ctx := context.Background()

	out := h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Len(t, out.Docs, 1)
	require.Equal(t, "Acme", out.Docs[0]["name"])

	// Cached: no second network call.
	out = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 1, h.live.listCalls)

	// A successful update invalidates the list; the next read refetches and
	// sees the new name.
	upd := h.res.Update(ctx, ResourceClients, "c1", Document{"name": "Acme Inc"})
	require.Equal(t, StatusOK, upd.Status)

	out = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 2, h.live.listCalls)
	require.Equal(t, "Acme Inc", out.Docs[0]["name"])
}

func TestListRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.docs[ResourceJobs] = []Document{{"id": "j1", "title": "Data Engineer"}}
	h.live.failNext = 2 // fail twice, succeed on the third attempt

	out := h.res.List(context.Background(), ResourceJobs, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Len(t, out.Docs, 1)
	require.Equal(t, 3, h.live.listCalls)
}

func TestGetNotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))

	out := h.res.Get(context.Background(), ResourceCandidates, "missing")
	require.Equal(t, StatusNotFound, out.Status)
	require.Equal(t, 1, h.live.getCalls, "a 404-class failure resolves on the first attempt")
}

func TestAuthRequiredIsASentinelNotARetry(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.forcedErr = ErrAuthRequired

	out := h.res.List(context.Background(), ResourceClients, nil)
	require.Equal(t, StatusAuthRequired, out.Status)
	require.Equal(t, 1, h.live.listCalls)
}

func TestValidationErrorsSurfaceFieldMessages(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.forcedErr = &ValidationError{Fields: map[string]string{"name": "is required"}}

	out := h.res.Create(context.Background(), ResourceClients, Document{})
	require.Equal(t, StatusError, out.Status)
	require.Equal(t, "is required", out.FieldErrors["name"])
}

func TestNoTenantResolvesEmptyNotError(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Session{Ready: true}) // signed out

	out := h.res.List(context.Background(), ResourceClients, nil)
	require.Equal(t, StatusNoTenant, out.Status)
	require.NotNil(t, out.Docs)
	require.Empty(t, out.Docs)
	require.NoError(t, out.Err)
	require.Zero(t, h.live.listCalls)
}

func TestReadsSuspendWhileSessionLoading(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Session{}) // not ready yet
	h.live.docs[ResourceClients] = []Document{{"id": "c1", "name": "Acme"}}

	done := make(chan Result, 1)
	go func() {
		done <- h.res.List(context.Background(), ResourceClients, nil)
	}()

	select {
	case <-done:
		t.Fatal("read must suspend until the session resolves")
	case <-time.After(50 * time.Millisecond):
	}

	h.provider.publish(signedIn("org-a"))

	select {
	case out := <-done:
		require.Equal(t, StatusOK, out.Status)
		require.Len(t, out.Docs, 1)
	case <-time.After(time.Second):
		t.Fatal("read did not resume after session resolved")
	}
}

func TestTenantSwitchRekeysCache(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.docs[ResourceClients] = []Document{{"id": "c1", "name": "Acme"}}

	ctx := context.Background()

	out := h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 1, h.live.listCalls)

	// Same resource under another org must not reuse org-a's entry.
	h.provider.publish(signedIn("org-b"))
	out = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 2, h.live.listCalls)

	// Switching back hits org-a's still-live entry without a refetch.
	h.provider.publish(signedIn("org-a"))
	out = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 2, h.live.listCalls)
}

func TestCreateScopesPayloadToTenant(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))

	out := h.res.Create(context.Background(), ResourceCandidates, Document{"name": "Jordan Lee"})
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, "org-a", h.live.lastPayload["org_id"], "the facade, not the caller, sets the tenant")
}

func TestDemoModeReadsFixturesAndRejectsWrites(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.prefs.Set(PrefDemo, "true")

	ctx := context.Background()

	out := h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.NotEmpty(t, out.Docs)
	require.Zero(t, h.live.listCalls, "demo reads never touch the network")

	// Writes short-circuit to a deterministic no-op.
	created := h.res.Create(ctx, ResourceClients, Document{"name": "New Co"})
	require.Equal(t, StatusOK, created.Status)
	require.True(t, created.NoOp)
	require.Zero(t, h.live.writeCalls)

	deleted := h.res.Delete(ctx, ResourceClients, "demo-cl-001")
	require.True(t, deleted.NoOp)
	require.Zero(t, h.live.writeCalls)
}

func TestDemoViewerRoleDefaultsToDemo(t *testing.T) {
	t.Parallel()

	h := newHarness(t, Session{UserID: "u9", OrgID: "org-x", Role: RoleDemoViewer, Ready: true})

	out := h.res.List(context.Background(), ResourceJobs, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Zero(t, h.live.listCalls)
}

func TestMutationFailureLeavesCacheIntact(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.docs[ResourceClients] = []Document{{"id": "c1", "name": "Acme"}}

	ctx := context.Background()

	out := h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 1, h.live.listCalls)

	h.live.forcedErr = &NetworkError{Op: "update clients", Err: errors.New("boom")}
	upd := h.res.Update(ctx, ResourceClients, "c1", Document{"name": "Broken"})
	require.Equal(t, StatusError, upd.Status)
	h.live.forcedErr = nil

	// The failed mutation did not invalidate: the next read is served from
	// cache with the old data.
	out = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, StatusOK, out.Status)
	require.Equal(t, 1, h.live.listCalls)
	require.Equal(t, "Acme", out.Docs[0]["name"])
}

func TestForgetTenantDropsCachedEntries(t *testing.T) {
	t.Parallel()

	h := newHarness(t, signedIn("org-a"))
	h.live.docs[ResourceClients] = []Document{{"id": "c1", "name": "Acme"}}

	ctx := context.Background()
	_ = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, 1, h.live.listCalls)

	h.res.ForgetTenant("org-a")

	_ = h.res.List(ctx, ResourceClients, nil)
	require.Equal(t, 2, h.live.listCalls)
}
