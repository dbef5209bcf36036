package types

// Role is the closed set of user roles. Capabilities are ordered:
// viewer < editor < admin.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// CanEdit reports whether the role may create, update or delete entities it owns.
func (r Role) CanEdit() bool {
	return r == RoleEditor || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
