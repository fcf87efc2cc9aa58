package atssdk

import (
	"context"
	"net/url"
	"sort"
	"sync"
)

// DemoOrgID is the tenant id all demo fixtures live under. It never
// collides with a real organization because real ids are ULIDs.
const DemoOrgID = "org-demo"

// DemoSource serves the static fixture dataset. Reads are synchronous and
// never touch the network; writes are rejected with ErrDemoReadOnly so a
// demo session can never mutate anything.
type DemoSource struct {
	mu       sync.RWMutex
	fixtures map[string][]Document
}

var _ Source = (*DemoSource)(nil)

// NewDemoSource creates a source over the built-in fixture dataset.
func NewDemoSource() *DemoSource {
	return &DemoSource{fixtures: demoFixtures()}
}

// List returns the fixtures for resource, filtered by exact match on each
// query parameter (e.g. stage=interview). Unknown resources yield an empty
// list, mirroring the live API's behaviour for an empty tenant.
func (s *DemoSource) List(_ context.Context, _ string, resource string, params url.Values) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.fixtures[resource]
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if matchesParams(d, params) {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (s *DemoSource) Get(_ context.Context, _ string, resource, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.fixtures[resource] {
		if d.ID() == id {
			return d.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *DemoSource) Create(context.Context, string, string, Document) (Document, error) {
	return nil, ErrDemoReadOnly
}

func (s *DemoSource) Update(context.Context, string, string, string, Document) (Document, error) {
	return nil, ErrDemoReadOnly
}

func (s *DemoSource) Delete(context.Context, string, string, string) error {
	return ErrDemoReadOnly
}

func matchesParams(d Document, params url.Values) bool {
	for key, vals := range params {
		if len(vals) == 0 {
			continue
		}
		field, ok := d[key].(string)
		if !ok || field != vals[0] {
			return false
		}
	}
	return true
}
