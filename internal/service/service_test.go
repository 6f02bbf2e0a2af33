package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitmonth/internal/auth"
	"github.com/mmynk/splitmonth/internal/middleware"
	"github.com/mmynk/splitmonth/internal/storage/sqlite"
	"github.com/mmynk/splitmonth/pkg/api"
	"github.com/mmynk/splitmonth/pkg/api/apiconnect"
)

const (
	testPassword   = "secret1"
	testAdminEmail = "root@example.com" // signs up as a service admin
)

// testEnv is a running server backed by a temporary SQLite database.
type testEnv struct {
	t     *testing.T
	url   string
	store *sqlite.SQLiteStore
}

// session holds clients that authenticate as one user.
type session struct {
	userID   string
	token    string
	auth     *apiconnect.AuthServiceClient
	groups   *apiconnect.GroupServiceClient
	expenses *apiconnect.ExpenseServiceClient
	admin    *apiconnect.AdminServiceClient
}

// setupTestServer starts every service behind the same interceptors as the server.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	optionalAuth := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	requireAuth := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	requireAdmin := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.RequireAdmin(store),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	authService := NewAuthService(store, authenticator, jwtManager, logger).WithAdminEmails([]string{testAdminEmail})
	mux.Handle(apiconnect.NewAuthServiceHandler(authService, optionalAuth))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), optionalAuth))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), requireAuth))
	mux.Handle(apiconnect.NewAdminServiceHandler(NewAdminService(store), requireAdmin))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{t: t, url: server.URL, store: store}
}

// bearer returns a client interceptor that sends token on every call.
func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

// as returns clients authenticated with token. An empty token is anonymous.
func (e *testEnv) as(token string) *session {
	opts := connect.WithInterceptors(bearer(token))
	return &session{
		token:    token,
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, e.url, opts),
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, e.url, opts),
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, e.url, opts),
		admin:    apiconnect.NewAdminServiceClient(http.DefaultClient, e.url, opts),
	}
}

// signup registers a user and returns a session for them.
func (e *testEnv) signup(name, email, mobile string) *session {
	e.t.Helper()

	resp, err := e.as("").auth.Signup(context.Background(), connect.NewRequest(&api.SignupRequest{
		Name:     name,
		Email:    email,
		Password: testPassword,
		Mobile:   mobile,
	}))
	if err != nil {
		e.t.Fatalf("Signup(%s) failed: %v", email, err)
	}

	s := e.as(resp.Msg.Token)
	s.userID = resp.Msg.User.ID
	return s
}

// createGroup creates a group owned by owner and adds the other sessions as members.
func createGroup(t *testing.T, owner *session, name string, members ...*session) *api.Group {
	t.Helper()

	resp, err := owner.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	group := resp.Msg.Group

	for _, m := range members {
		joined, err := m.groups.JoinGroup(context.Background(), connect.NewRequest(&api.JoinGroupRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("JoinGroup failed: %v", err)
		}
		group = joined.Msg.Group
	}
	return group
}

// wantCode fails the test unless err carries the given Connect code.
func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amount(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
