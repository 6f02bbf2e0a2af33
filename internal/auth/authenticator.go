package auth

import (
	"context"

	"github.com/mmynk/splitmonth/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OTP, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account. Email is required; mobile is optional
	// but must be unique when given.
	Register(ctx context.Context, name, email, mobile, credential string) (*models.User, error)

	// Authenticate verifies an email and credential and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// AuthenticateMobile verifies a mobile number and credential.
	AuthenticateMobile(ctx context.Context, mobile, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
