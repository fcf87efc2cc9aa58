package atssdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// StaticSessionProvider always reports the same session. Useful for tests
// and for tooling that authenticates out of band.
type StaticSessionProvider struct {
	Session Session
}

func (p *StaticSessionProvider) Current() Session { return p.Session }

func (p *StaticSessionProvider) Subscribe(fn func(Session)) (cancel func()) {
	fn(p.Session)
	return func() {}
}

// APISessionProvider authenticates against the TalentPipe auth endpoints and
// publishes the resulting session. It is the SDK-side half of the spec's
// auth/session collaborator.
type APISessionProvider struct {
	http  *resty.Client
	prefs PrefStore

	mu      sync.RWMutex
	sess    Session
	token   string
	subs    map[int]func(Session)
	nextSub int
}

// NewAPISessionProvider creates a provider for the API at baseURL. prefs may
// be nil; when set, the signed-in user and org are persisted under tp_user
// and tp_current_org.
func NewAPISessionProvider(baseURL string, prefs PrefStore) *APISessionProvider {
	return &APISessionProvider{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json"),
		prefs: prefs,
		subs:  make(map[int]func(Session)),
	}
}

// Token returns the current bearer token for LiveSource wiring.
func (p *APISessionProvider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

func (p *APISessionProvider) Current() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sess
}

func (p *APISessionProvider) Subscribe(fn func(Session)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	sess := p.sess
	p.mu.Unlock()

	fn(sess)
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID    string `json:"id"`
		OrgID string `json:"org_id"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login authenticates with email and password and publishes the session.
func (p *APISessionProvider) Login(ctx context.Context, email, password string) (Session, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post("/api/auth/login")
	if err != nil {
		return Session{}, &NetworkError{Op: "login", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		if err := classifyResponse("login", resp); err != nil {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("atssdk: login: unexpected status %d", resp.StatusCode())
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.Body(), &lr); err != nil {
		return Session{}, fmt.Errorf("atssdk: login: decode response: %w", err)
	}

	sess := Session{
		UserID: lr.User.ID,
		OrgID:  lr.User.OrgID,
		Role:   Role(lr.User.Role),
		Ready:  true,
	}

	if p.prefs != nil {
		p.prefs.Set(PrefUser, sess.UserID)
		p.prefs.Set(PrefCurrentOrg, sess.OrgID)
	}

	p.publish(sess, lr.AccessToken)
	return sess, nil
}

// Logout clears the session. Subscribers see a ready, signed-out session
// (OrgID empty) so dependent reads resolve to the no-tenant empty state
// instead of hanging on loading.
func (p *APISessionProvider) Logout() {
	if p.prefs != nil {
		p.prefs.Delete(PrefUser)
		p.prefs.Delete(PrefCurrentOrg)
	}
	p.publish(Session{Ready: true}, "")
}

// MarkResolved publishes a ready, anonymous session. Call it when startup
// determines there is no stored login, so consumers stop suspending.
func (p *APISessionProvider) MarkResolved() {
	p.mu.RLock()
	ready := p.sess.Ready
	p.mu.RUnlock()
	if ready {
		return
	}
	p.publish(Session{Ready: true}, "")
}

func (p *APISessionProvider) publish(sess Session, token string) {
	p.mu.Lock()
	p.sess = sess
	p.token = token
	subs := make([]func(Session), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// WaitHealthy polls the API health endpoint until it responds or ctx
// expires. Handy for CLI tools that start the server themselves.
func (p *APISessionProvider) WaitHealthy(ctx context.Context) error {
	for {
		resp, err := p.http.R().SetContext(ctx).Get("/livez")
		if err == nil && resp.StatusCode() == http.StatusOK {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
}
