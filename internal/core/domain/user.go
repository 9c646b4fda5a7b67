package domain

// RoleAdmin gates the back-office: only users carrying it may create or
// update products.
const RoleAdmin = "admin"

// User models the account attached to the current session. It is read-only
// on the client; the backend owns its lifecycle.
type User struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	for _, role := range u.Roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}

// AuthStatus is the lifecycle state of the client session.
type AuthStatus string

const (
	AuthChecking         AuthStatus = "checking"
	AuthAuthenticated    AuthStatus = "authenticated"
	AuthNotAuthenticated AuthStatus = "not-authenticated"
)
