package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "splitmonth.v1.AuthService"

const (
	AuthServiceSignupProcedure         = "/splitmonth.v1.AuthService/Signup"
	AuthServiceLoginProcedure          = "/splitmonth.v1.AuthService/Login"
	AuthServiceLoginMobileProcedure    = "/splitmonth.v1.AuthService/LoginMobile"
	AuthServiceCheckMobileProcedure    = "/splitmonth.v1.AuthService/CheckMobile"
	AuthServiceGetCurrentUserProcedure = "/splitmonth.v1.AuthService/GetCurrentUser"
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Signup(context.Context, *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	LoginMobile(context.Context, *connect.Request[api.LoginMobileRequest]) (*connect.Response[api.AuthResponse], error)
	CheckMobile(context.Context, *connect.Request[api.CheckMobileRequest]) (*connect.Response[api.CheckMobileResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler returns the path prefix and handler serving svc.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AuthServiceSignupProcedure, svc.Signup, opts)
	handle(mux, AuthServiceLoginProcedure, svc.Login, opts)
	handle(mux, AuthServiceLoginMobileProcedure, svc.LoginMobile, opts)
	handle(mux, AuthServiceCheckMobileProcedure, svc.CheckMobile, opts)
	handle(mux, AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts)
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient calls a remote AuthService.
type AuthServiceClient struct {
	signup         *connect.Client[api.SignupRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	loginMobile    *connect.Client[api.LoginMobileRequest, api.AuthResponse]
	checkMobile    *connect.Client[api.CheckMobileRequest, api.CheckMobileResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

// NewAuthServiceClient creates a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		signup:         newClient[api.SignupRequest, api.AuthResponse](httpClient, baseURL, AuthServiceSignupProcedure, opts),
		login:          newClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		loginMobile:    newClient[api.LoginMobileRequest, api.AuthResponse](httpClient, baseURL, AuthServiceLoginMobileProcedure, opts),
		checkMobile:    newClient[api.CheckMobileRequest, api.CheckMobileResponse](httpClient, baseURL, AuthServiceCheckMobileProcedure, opts),
		getCurrentUser: newClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
	}
}

func (c *AuthServiceClient) Signup(ctx context.Context, req *connect.Request[api.SignupRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.signup.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) LoginMobile(ctx context.Context, req *connect.Request[api.LoginMobileRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.loginMobile.CallUnary(ctx, req)
}

func (c *AuthServiceClient) CheckMobile(ctx context.Context, req *connect.Request[api.CheckMobileRequest]) (*connect.Response[api.CheckMobileResponse], error) {
	return c.checkMobile.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
