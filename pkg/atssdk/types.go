package atssdk

// Role mirrors the server-side user roles.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleRecruiter     Role = "recruiter"
	RoleHiringManager Role = "hiring_manager"
	RoleDemoViewer    Role = "demo_viewer"
)

// Resource names served under /api/{resource}.
const (
	ResourceClients      = "clients"
	ResourceCandidates   = "candidates"
	ResourceJobs         = "jobs"
	ResourceApplications = "applications"
	ResourceNotes        = "notes"
)

// Document is a resource record as the API serializes it. The facade is
// generic over resource types, so records stay schemaless at this layer;
// typed views belong to the consumer.
type Document map[string]any

// ID returns the document's id field, or "" if absent.
func (d Document) ID() string {
	if v, ok := d["id"].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy. Sources hand out clones so callers can
// mutate results without corrupting cached or fixture data.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Session is the authenticated identity the SDK operates under.
type Session struct {
	UserID string
	OrgID  string
	Role   Role
	Ready  bool // false while the provider is still resolving
}

// SessionProvider supplies the current session and change notifications.
// The tenant context is its only consumer.
type SessionProvider interface {
	// Current returns the latest known session. Ready is false until the
	// provider has resolved (e.g. restored or refreshed a login).
	Current() Session

	// Subscribe registers fn for session changes and returns a cancel
	// function. fn is invoked with the current session immediately.
	Subscribe(fn func(Session)) (cancel func())
}
