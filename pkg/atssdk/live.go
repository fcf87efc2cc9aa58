package atssdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every network operation. A request that exceeds it
// surfaces as a retryable NetworkError.
const DefaultTimeout = 15 * time.Second

// TokenFunc supplies the current bearer token, or "" when signed out.
type TokenFunc func() string

// LiveSource talks to the TalentPipe API over HTTP. Retries are deliberately
// disabled at this layer; the facade owns the retry policy so 404 and auth
// failures are never re-sent.
type LiveSource struct {
	http *resty.Client
}

var _ Source = (*LiveSource)(nil)

// NewLiveSource creates a source for the API at baseURL. token may be nil
// for unauthenticated use (every call will then produce the auth sentinel).
func NewLiveSource(baseURL string, token TokenFunc) *LiveSource {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if token != nil {
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if t := token(); t != "" {
				req.SetHeader("Authorization", "Bearer "+t)
			}
			return nil
		})
	}

	return &LiveSource{http: client}
}

// listEnvelope is the wire shape of list responses.
type listEnvelope struct {
	Data []Document `json:"data"`
}

func (s *LiveSource) List(ctx context.Context, orgID, resource string, params url.Values) ([]Document, error) {
	req := s.http.R().
		SetContext(ctx).
		SetHeader("X-Org-ID", orgID)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	resp, err := req.Get("/api/" + resource)
	op := "list " + resource
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if err := classifyResponse(op, resp); err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("atssdk: %s: decode response: %w", op, err)
	}
	if env.Data == nil {
		env.Data = []Document{}
	}
	return env.Data, nil
}

func (s *LiveSource) Get(ctx context.Context, orgID, resource, id string) (Document, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("X-Org-ID", orgID).
		Get("/api/" + resource + "/" + url.PathEscape(id))
	op := "get " + resource
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if err := classifyResponse(op, resp); err != nil {
		return nil, err
	}

	return decodeDocument(op, resp.Body())
}

func (s *LiveSource) Create(ctx context.Context, orgID, resource string, doc Document) (Document, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("X-Org-ID", orgID).
		SetBody(doc).
		Post("/api/" + resource)
	op := "create " + resource
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if err := classifyResponse(op, resp); err != nil {
		return nil, err
	}

	return decodeDocument(op, resp.Body())
}

func (s *LiveSource) Update(ctx context.Context, orgID, resource, id string, doc Document) (Document, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("X-Org-ID", orgID).
		SetBody(doc).
		Put("/api/" + resource + "/" + url.PathEscape(id))
	op := "update " + resource
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if err := classifyResponse(op, resp); err != nil {
		return nil, err
	}

	return decodeDocument(op, resp.Body())
}

func (s *LiveSource) Delete(ctx context.Context, orgID, resource, id string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("X-Org-ID", orgID).
		Delete("/api/" + resource + "/" + url.PathEscape(id))
	op := "delete " + resource
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	return classifyResponse(op, resp)
}

// apiError is the wire shape of error responses. AuthRequired is the
// in-band sentinel: it is honoured even when a proxy rewrites the status.
type apiError struct {
	AuthRequired bool              `json:"authRequired"`
	Error        string            `json:"error"`
	Description  string            `json:"error_description"`
	Fields       map[string]string `json:"fields"`
}

// classifyResponse maps an HTTP response to the SDK error taxonomy.
// nil means success.
func classifyResponse(op string, resp *resty.Response) error {
	code := resp.StatusCode()

	// The auth sentinel is carried in the body, not just the status.
	var apiErr apiError
	parsed := json.Unmarshal(resp.Body(), &apiErr) == nil
	if parsed && apiErr.AuthRequired {
		return ErrAuthRequired
	}

	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrAuthRequired
	case code == http.StatusUnprocessableEntity || (code == http.StatusBadRequest && parsed && len(apiErr.Fields) > 0):
		fields := apiErr.Fields
		if fields == nil {
			fields = map[string]string{}
		}
		return &ValidationError{Fields: fields}
	case code == http.StatusForbidden:
		// Authenticated but not allowed. Terminal, not retryable.
		return fmt.Errorf("atssdk: %s: forbidden", op)
	default:
		desc := apiErr.Description
		if desc == "" {
			desc = http.StatusText(code)
		}
		return &NetworkError{Op: op, Err: fmt.Errorf("http %d: %s", code, desc)}
	}
}

func decodeDocument(op string, body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("atssdk: %s: decode response: %w", op, err)
	}
	return doc, nil
}
