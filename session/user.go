package session

import "time"

// RoleType represents a storefront user role
type RoleType string

const (
	RoleAdmin RoleType = "admin"
	RoleUser  RoleType = "user"
)

// User is the identity record resolved from the server. It is nil until the
// profile fetch completes.
type User struct {
	ID         int64     `json:"id,omitempty"`          // Unique identifier for the user
	Username   string    `json:"username,omitempty"`    // Unique username
	Email      string    `json:"email,omitempty"`       // User's email address
	FirstName  string    `json:"first_name,omitempty"`  // First name of the user
	LastName   string    `json:"last_name,omitempty"`   // Last name of the user
	Role       RoleType  `json:"role,omitempty"`        // Role assigned by the server
	IsActive   bool      `json:"is_active,omitempty"`   // Whether the account is active
	DateJoined time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
}

// IsAdmin returns true if the user carries the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) FullName() string {
	switch {
	case u == nil:
		return ""
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Registration is the payload for creating a new account. The server assigns
// the role.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate is a partial update of the current user; nil fields are left
// unchanged.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// AdminUserUpdate is a partial edit of any account, available to admins only.
// Unlike ProfileUpdate it can change the role and active flag; the server
// rejects the request when the caller is not an admin.
type AdminUserUpdate struct {
	Username  *string   `json:"username,omitempty"`
	Email     *string   `json:"email,omitempty"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Role      *RoleType `json:"role,omitempty"`
	IsActive  *bool     `json:"is_active,omitempty"`
}
