package atssdk

import (
	"context"
	"net/url"
)

// Source is the capability interface both data sources satisfy. The facade
// depends only on this, never on a concrete source, so demo/live branching
// lives in exactly one place.
//
// Every method takes the organization id explicitly. Nothing in the SDK
// captures a tenant ambiently; that keeps the isolation invariant visible
// at every call site.
type Source interface {
	List(ctx context.Context, orgID, resource string, params url.Values) ([]Document, error)
	Get(ctx context.Context, orgID, resource, id string) (Document, error)
	Create(ctx context.Context, orgID, resource string, doc Document) (Document, error)
	Update(ctx context.Context, orgID, resource, id string, doc Document) (Document, error)
	Delete(ctx context.Context, orgID, resource, id string) error
}
