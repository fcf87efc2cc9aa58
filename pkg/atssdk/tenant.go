package atssdk

import (
	"context"
	"sync"
)

// TenantContext tracks the active organization and role for the session.
// The session subscription is its sole writer; every reader sees a
// consistent snapshot. While Loading is true, dependent reads block in
// WaitReady instead of fetching with an empty tenant, which prevents a
// flash of "organization required" before the session resolves.
type TenantContext struct {
	mu     sync.RWMutex
	sess   Session
	ready  chan struct{}
	once   sync.Once
	cancel func()
}

// NewTenantContext subscribes to provider and tracks its session. Call
// Close when done to release the subscription.
func NewTenantContext(provider SessionProvider) *TenantContext {
	tc := &TenantContext{ready: make(chan struct{})}
	tc.cancel = provider.Subscribe(tc.onSession)
	return tc
}

func (tc *TenantContext) onSession(sess Session) {
	tc.mu.Lock()
	tc.sess = sess
	tc.mu.Unlock()

	if sess.Ready {
		tc.once.Do(func() { close(tc.ready) })
	}
}

// OrgID returns the active organization id, or "" when signed out or still
// loading.
func (tc *TenantContext) OrgID() string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.sess.OrgID
}

// Role returns the active user's role, or "" when unknown.
func (tc *TenantContext) Role() Role {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.sess.Role
}

// Loading reports whether the session provider is still resolving.
func (tc *TenantContext) Loading() bool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return !tc.sess.Ready
}

// WaitReady blocks until the session has resolved or ctx expires.
func (tc *TenantContext) WaitReady(ctx context.Context) error {
	select {
	case <-tc.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the provider subscription.
func (tc *TenantContext) Close() {
	if tc.cancel != nil {
		tc.cancel()
	}
}
