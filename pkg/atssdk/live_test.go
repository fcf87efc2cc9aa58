package atssdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiveSourceListDecodesEnvelope(t *testing.T) {
	t.Parallel()

	var gotOrg, gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/clients", r.URL.Path)
		gotOrg = r.Header.Get("X-Org-ID")
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"c1","name":"Acme"}]}`))
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, func() string { return "tok-123" })
	docs, err := src.List(context.Background(), "org-a", ResourceClients, url.Values{"industry": {"Software"}})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "c1", docs[0].ID())
	require.Equal(t, "org-a", gotOrg)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.Equal(t, "industry=Software", gotQuery)
}

func TestLiveSourceEmptyListIsNotNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	docs, err := src.List(context.Background(), "org-a", ResourceClients, nil)
	require.NoError(t, err)
	require.NotNil(t, docs)
	require.Empty(t, docs)
}

func TestLiveSourceDetectsInBandAuthSentinel(t *testing.T) {
	t.Parallel()

	// The sentinel is honoured even on a 200: some proxies rewrite statuses,
	// the body is authoritative.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"authRequired":true,"error":"auth_required"}`))
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	_, err := src.List(context.Background(), "org-a", ResourceClients, nil)
	require.ErrorIs(t, err, ErrAuthRequired)
}

func TestLiveSourceBare401IsAuthRequired(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	_, err := src.Get(context.Background(), "org-a", ResourceClients, "c1")
	require.ErrorIs(t, err, ErrAuthRequired)
}

func TestLiveSource404MapsToNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found"}`))
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	_, err := src.Get(context.Background(), "org-a", ResourceCandidates, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLiveSource422MapsToValidationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"validation_error","fields":{"name":"is required"}}`))
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	_, err := src.Create(context.Background(), "org-a", ResourceClients, Document{})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "is required", valErr.Fields["name"])
}

func TestLiveSource5xxIsRetryableNetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	_, err := src.List(context.Background(), "org-a", ResourceJobs, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestLiveSourceTransportFailureIsNetworkError(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	src := NewLiveSource("http://127.0.0.1:1", nil)
	_, err := src.List(context.Background(), "org-a", ResourceJobs, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestLiveSourceContextCancellation(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	src := NewLiveSource(srv.URL, nil)
	_, err := src.List(ctx, "org-a", ResourceClients, nil)
	require.Error(t, err)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		require.ErrorIs(t, err, context.Canceled)
	}
}

func TestLiveSourceDeleteNoContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/clients/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	src := NewLiveSource(srv.URL, nil)
	require.NoError(t, src.Delete(context.Background(), "org-a", ResourceClients, "c1"))
}
