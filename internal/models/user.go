package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account roles. Admins can use the admin panel; they are unrelated to group admins.
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address, stored lower-cased (unique).
	Email string

	// Mobile is an optional phone number (unique when set).
	// Used to add members and to log in from an invite link.
	Mobile string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Role is UserRoleUser or UserRoleAdmin.
	Role string

	// Active is false once an admin deactivates the account.
	// Inactive users cannot log in.
	Active bool

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64
}

// IsAdmin reports whether the account may use the admin panel.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// ValidUserRole reports whether role is a known account role.
func ValidUserRole(role string) bool {
	return role == UserRoleUser || role == UserRoleAdmin
}

// NewUser creates a user with a fresh ID and normalized email.
func NewUser(name, email, mobile, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		Mobile:       strings.TrimSpace(mobile),
		PasswordHash: passwordHash,
		Role:         UserRoleUser,
		Active:       true,
		CreatedAt:    time.Now().Unix(),
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
