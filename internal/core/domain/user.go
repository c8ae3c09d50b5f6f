package domain

import "time"

// RoleName is the name of an employee role. Comparison is exact and
// case-sensitive.
type RoleName string

const (
	RoleAdmin     RoleName = "Admin"
	RoleManager   RoleName = "Manager"
	RoleSales     RoleName = "Sales"
	RoleInventory RoleName = "Inventory"
)

// ParseRoleName validates a role name read from the store against the closed
// set of known roles.
func ParseRoleName(s string) (RoleName, error) {
	switch r := RoleName(s); r {
	case RoleAdmin, RoleManager, RoleSales, RoleInventory:
		return r, nil
	default:
		return "", ErrUnknownRole
	}
}

// Role is a named set of permissions shared by many profiles.
type Role struct {
	ID          string           `json:"id"`
	Name        RoleName         `json:"name"`
	Permissions PermissionMatrix `json:"permissions"`
}

// UserProfile is the employee record bound to a session identity.
type UserProfile struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	RoleID    string  `json:"role_id"`
	Active    bool    `json:"active"`
	Role      *Role   `json:"role"`
}

// HasRole reports whether the profile's role is one of allowed.
func (u *UserProfile) HasRole(allowed ...RoleName) bool {
	if u == nil || u.Role == nil {
		return false
	}
	for _, r := range allowed {
		if u.Role.Name == r {
			return true
		}
	}
	return false
}

// Credential is the login record used to authenticate an employee.
type Credential struct {
	UserID       string
	Email        string
	PasswordHash string
}

// Session is a validated identity bound to a single user.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
