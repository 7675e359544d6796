package auth

// Marketplace role vocabulary. Routes gate on membership in an allow-list,
// not on a hierarchy: an empty allow-list admits any authenticated identity.
const (
	RoleAdmin      = "admin"
	RoleCompany    = "company"
	RoleAgency     = "agency"
	RoleFreelancer = "freelancer"
)

// Identity is the resolved caller attached to a request after successful
// authentication. Immutable for the request's lifetime; never persisted.
type Identity struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// IsAdmin reports whether the identity holds the administrative role.
func (id *Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// RoleAllowed checks role membership against an allow-list. An empty list
// means any role is sufficient.
func RoleAllowed(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
