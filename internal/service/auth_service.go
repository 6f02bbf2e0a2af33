package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/internal/auth"
	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
	"github.com/mmynk/splitmonth/pkg/api"
)

var errNameEmailRequired = errors.New("name and email are required")

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	users         storage.UserStore
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
	admins        map[string]bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(users storage.UserStore, authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:         users,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// WithAdminEmails makes accounts signing up with one of emails service admins.
func (s *AuthService) WithAdminEmails(emails []string) *AuthService {
	s.admins = make(map[string]bool, len(emails))
	for _, email := range emails {
		s.admins[models.NormalizeEmail(email)] = true
	}
	return s
}

// Signup creates a new user account and logs it in.
func (s *AuthService) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	email := models.NormalizeEmail(req.Msg.Email)
	name := strings.TrimSpace(req.Msg.Name)
	mobile := strings.TrimSpace(req.Msg.Mobile)
	s.logger.Info("Signup request", "email", email)

	if email == "" || name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errNameEmailRequired)
	}

	user, err := s.authenticator.Register(ctx, name, email, mobile, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Signup failed", "email", email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists), errors.Is(err, auth.ErrMobileExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if s.admins[user.Email] {
		user.Role = models.UserRoleAdmin
		if err := s.users.UpdateUser(ctx, user); err != nil {
			s.logger.Error("Failed to promote admin", "user_id", user.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	resp, err := s.session(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
	return resp, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	email := models.NormalizeEmail(req.Msg.Email)
	s.logger.Info("Login request", "email", email)

	if email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, loginError(err)
	}

	return s.session(user)
}

// LoginMobile authenticates by mobile number and password.
func (s *AuthService) LoginMobile(ctx context.Context, req *connect.Request[api.LoginMobileRequest]) (*connect.Response[api.AuthResponse], error) {
	mobile := strings.TrimSpace(req.Msg.Mobile)
	s.logger.Info("LoginMobile request", "mobile", mobile)

	if mobile == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.AuthenticateMobile(ctx, mobile, req.Msg.Password)
	if err != nil {
		s.logger.Warn("LoginMobile failed", "mobile", mobile, "error", err)
		return nil, loginError(err)
	}

	return s.session(user)
}

// CheckMobile reports whether a mobile number belongs to an account, so the
// join page can choose between login and signup.
func (s *AuthService) CheckMobile(ctx context.Context, req *connect.Request[api.CheckMobileRequest]) (*connect.Response[api.CheckMobileResponse], error) {
	mobile := strings.TrimSpace(req.Msg.Mobile)
	if mobile == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("mobile required"))
	}

	_, err := s.users.GetUserByMobile(ctx, mobile)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Error("CheckMobile failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.CheckMobileResponse{Exists: err == nil}), nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetCurrentUser failed", "user_id", userID, "error", err)
		if errors.Is(err, storage.ErrNotFound) {
			// Token outlived the account.
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// loginError hides every authentication failure except a deactivated account.
func loginError(err error) error {
	if errors.Is(err, auth.ErrAccountDisabled) {
		return connect.NewError(connect.CodePermissionDenied, err)
	}
	return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
}

// session issues a token for user.
func (s *AuthService) session(user *models.User) (*connect.Response[api.AuthResponse], error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.AuthResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}
