package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/pkg/api"
)

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "splitmonth.v1.AdminService"

const (
	AdminServiceGetStatsProcedure     = "/splitmonth.v1.AdminService/GetStats"
	AdminServiceListUsersProcedure    = "/splitmonth.v1.AdminService/ListUsers"
	AdminServiceGetUserProcedure      = "/splitmonth.v1.AdminService/GetUser"
	AdminServiceUpdateUserProcedure   = "/splitmonth.v1.AdminService/UpdateUser"
	AdminServiceDeleteUserProcedure   = "/splitmonth.v1.AdminService/DeleteUser"
	AdminServiceListGroupsProcedure   = "/splitmonth.v1.AdminService/ListGroups"
	AdminServiceDeleteGroupProcedure  = "/splitmonth.v1.AdminService/DeleteGroup"
	AdminServiceListExpensesProcedure = "/splitmonth.v1.AdminService/ListExpenses"
)

// AdminServiceHandler is implemented by the server side of AdminService.
type AdminServiceHandler interface {
	GetStats(context.Context, *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	UpdateUser(context.Context, *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UserResponse], error)
	DeleteUser(context.Context, *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.UserResponse], error)
	ListGroups(context.Context, *connect.Request[api.AdminListGroupsRequest]) (*connect.Response[api.AdminListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.AdminDeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	ListExpenses(context.Context, *connect.Request[api.AdminListExpensesRequest]) (*connect.Response[api.AdminListExpensesResponse], error)
}

// NewAdminServiceHandler returns the path prefix and handler serving svc.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, AdminServiceGetStatsProcedure, svc.GetStats, opts)
	handle(mux, AdminServiceListUsersProcedure, svc.ListUsers, opts)
	handle(mux, AdminServiceGetUserProcedure, svc.GetUser, opts)
	handle(mux, AdminServiceUpdateUserProcedure, svc.UpdateUser, opts)
	handle(mux, AdminServiceDeleteUserProcedure, svc.DeleteUser, opts)
	handle(mux, AdminServiceListGroupsProcedure, svc.ListGroups, opts)
	handle(mux, AdminServiceDeleteGroupProcedure, svc.DeleteGroup, opts)
	handle(mux, AdminServiceListExpensesProcedure, svc.ListExpenses, opts)
	return "/" + AdminServiceName + "/", mux
}

// AdminServiceClient calls a remote AdminService.
type AdminServiceClient struct {
	getStats     *connect.Client[api.GetStatsRequest, api.GetStatsResponse]
	listUsers    *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	getUser      *connect.Client[api.GetUserRequest, api.GetUserResponse]
	updateUser   *connect.Client[api.UpdateUserRequest, api.UserResponse]
	deleteUser   *connect.Client[api.DeleteUserRequest, api.UserResponse]
	listGroups   *connect.Client[api.AdminListGroupsRequest, api.AdminListGroupsResponse]
	deleteGroup  *connect.Client[api.AdminDeleteGroupRequest, api.DeleteGroupResponse]
	listExpenses *connect.Client[api.AdminListExpensesRequest, api.AdminListExpensesResponse]
}

// NewAdminServiceClient creates a client for the AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AdminServiceClient {
	opts = clientOptions(opts)
	return &AdminServiceClient{
		getStats:     newClient[api.GetStatsRequest, api.GetStatsResponse](httpClient, baseURL, AdminServiceGetStatsProcedure, opts),
		listUsers:    newClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL, AdminServiceListUsersProcedure, opts),
		getUser:      newClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL, AdminServiceGetUserProcedure, opts),
		updateUser:   newClient[api.UpdateUserRequest, api.UserResponse](httpClient, baseURL, AdminServiceUpdateUserProcedure, opts),
		deleteUser:   newClient[api.DeleteUserRequest, api.UserResponse](httpClient, baseURL, AdminServiceDeleteUserProcedure, opts),
		listGroups:   newClient[api.AdminListGroupsRequest, api.AdminListGroupsResponse](httpClient, baseURL, AdminServiceListGroupsProcedure, opts),
		deleteGroup:  newClient[api.AdminDeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL, AdminServiceDeleteGroupProcedure, opts),
		listExpenses: newClient[api.AdminListExpensesRequest, api.AdminListExpensesResponse](httpClient, baseURL, AdminServiceListExpensesProcedure, opts),
	}
}

func (c *AdminServiceClient) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *AdminServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *AdminServiceClient) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.updateUser.CallUnary(ctx, req)
}

func (c *AdminServiceClient) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.deleteUser.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.AdminListGroupsRequest]) (*connect.Response[api.AdminListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *AdminServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.AdminDeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *AdminServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.AdminListExpensesRequest]) (*connect.Response[api.AdminListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}
