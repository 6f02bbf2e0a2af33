package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "splitmonth.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure  = "/splitmonth.v1.GroupService/CreateGroup"
	GroupServiceListGroupsProcedure   = "/splitmonth.v1.GroupService/ListGroups"
	GroupServiceGetGroupProcedure     = "/splitmonth.v1.GroupService/GetGroup"
	GroupServiceUpdateGroupProcedure  = "/splitmonth.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure  = "/splitmonth.v1.GroupService/DeleteGroup"
	GroupServiceJoinGroupProcedure    = "/splitmonth.v1.GroupService/JoinGroup"
	GroupServiceGetJoinInfoProcedure  = "/splitmonth.v1.GroupService/GetJoinInfo"
	GroupServiceAddMemberProcedure    = "/splitmonth.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure = "/splitmonth.v1.GroupService/RemoveMember"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	JoinGroup(context.Context, *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetJoinInfo(context.Context, *connect.Request[api.GetJoinInfoRequest]) (*connect.Response[api.GetJoinInfoResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error)
}

// NewGroupServiceHandler returns the path prefix and handler serving svc.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	handle(mux, GroupServiceCreateGroupProcedure, svc.CreateGroup, opts)
	handle(mux, GroupServiceListGroupsProcedure, svc.ListGroups, opts)
	handle(mux, GroupServiceGetGroupProcedure, svc.GetGroup, opts)
	handle(mux, GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts)
	handle(mux, GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts)
	handle(mux, GroupServiceJoinGroupProcedure, svc.JoinGroup, opts)
	handle(mux, GroupServiceGetJoinInfoProcedure, svc.GetJoinInfo, opts)
	handle(mux, GroupServiceAddMemberProcedure, svc.AddMember, opts)
	handle(mux, GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts)
	return "/" + GroupServiceName + "/", mux
}

// GroupServiceClient calls a remote GroupService.
type GroupServiceClient struct {
	createGroup  *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	listGroups   *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	getGroup     *connect.Client[api.GetGroupRequest, api.GroupResponse]
	updateGroup  *connect.Client[api.UpdateGroupRequest, api.GroupResponse]
	deleteGroup  *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	joinGroup    *connect.Client[api.JoinGroupRequest, api.GroupResponse]
	getJoinInfo  *connect.Client[api.GetJoinInfoRequest, api.GetJoinInfoResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.GroupResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.GroupResponse]
}

// NewGroupServiceClient creates a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:  newClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		listGroups:   newClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL, GroupServiceListGroupsProcedure, opts),
		getGroup:     newClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		updateGroup:  newClient[api.UpdateGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceUpdateGroupProcedure, opts),
		deleteGroup:  newClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL, GroupServiceDeleteGroupProcedure, opts),
		joinGroup:    newClient[api.JoinGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceJoinGroupProcedure, opts),
		getJoinInfo:  newClient[api.GetJoinInfoRequest, api.GetJoinInfoResponse](httpClient, baseURL, GroupServiceGetJoinInfoProcedure, opts),
		addMember:    newClient[api.AddMemberRequest, api.GroupResponse](httpClient, baseURL, GroupServiceAddMemberProcedure, opts),
		removeMember: newClient[api.RemoveMemberRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveMemberProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.joinGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetJoinInfo(ctx context.Context, req *connect.Request[api.GetJoinInfoRequest]) (*connect.Response[api.GetJoinInfoResponse], error) {
	return c.getJoinInfo.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}
