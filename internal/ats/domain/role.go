package domain

// Role controls what a user can do inside their organization. Roles are
// flat; there is no per-resource permission model.
type Role string

const (
	// RoleAdmin manages the organization, its users and all records.
	RoleAdmin Role = "admin"

	// RoleRecruiter owns the day-to-day pipeline work.
	RoleRecruiter Role = "recruiter"

	// RoleHiringManager reviews candidates and moves applications for
	// their own roles.
	RoleHiringManager Role = "hiring_manager"

	// RoleDemoViewer only ever sees demonstration data and can never
	// mutate anything.
	RoleDemoViewer Role = "demo_viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleHiringManager, RoleDemoViewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
