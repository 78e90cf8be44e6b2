package domain

import "time"

// Role determines which side of the marketplace a user acts on.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleBuyer:
		return true
	}
	return false
}

// User is a registered marketplace account. Role is fixed at registration.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the authenticated caller of an operation.
type Identity struct {
	ID   string
	Role Role
}

// NewUser creates a user record with an already hashed password.
func NewUser(id, username, email, firstName, lastName string, role Role, passwordHash string) User {
	return User{
		ID:           id,
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Identity returns the identity a session for this user carries.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}
