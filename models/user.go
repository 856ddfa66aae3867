package models

import "time"

// Role defines the authorization level of a user account.
type Role string

const (
	// RoleSuperAdmin can manage users, events and letters without restriction.
	RoleSuperAdmin Role = "super_admin"

	// RoleAdmin can manage letters and events.
	RoleAdmin Role = "admin"

	// RoleUser is a signer account: it can sign letters assigned to it.
	RoleUser Role = "user"
)

// User represents an account that can log in and sign letters.
//
// The raw secret key is never stored on this type. Only its bcrypt hash is
// persisted, and the hash itself is excluded from JSON so it can never leak
// through an API response.
type User struct {
	// ID is the unique identifier of the user (UUID string).
	ID string `json:"id"`

	// Name is the display name of the user, also recorded on signatures.
	Name string `json:"name"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// SecretKeyHash is the bcrypt hash of the user's secret key.
	// Never exposed via JSON; written only by the credential manager.
	SecretKeyHash string `json:"-"`

	// IsActive reports whether the account may log in and sign.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// CreatedUser is the result of creating a user or resetting a secret key.
//
// SecretKey carries the raw key exactly once: it exists only in this result
// type and is never persisted or retrievable afterwards. Losing it requires
// a reset, which replaces the stored hash and invalidates the old key.
type CreatedUser struct {
	User User `json:"user"`

	// SecretKey is the one-time revealed raw secret key.
	SecretKey string `json:"secret_key"`
}

// UserUpdate describes a partial update of a user record.
// Nil fields are left unchanged.
type UserUpdate struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Role          *Role   `json:"role,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
	secretKeyHash *string
}

// WithSecretKeyHash returns a copy of the update carrying a replacement
// secret key hash. The field is unexported so that a hash replacement can
// only originate from the user service's reset flow, never from a decoded
// API payload.
func (u UserUpdate) WithSecretKeyHash(hash string) UserUpdate {
	u.secretKeyHash = &hash
	return u
}

// SecretKeyHash reports the replacement hash, if any.
func (u UserUpdate) SecretKeyHash() (string, bool) {
	if u.secretKeyHash == nil {
		return "", false
	}
	return *u.secretKeyHash, true
}
