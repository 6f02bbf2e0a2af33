package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
	"github.com/mmynk/splitmonth/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group with the caller as its admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("CreateGroup request received", "name", name, "user_id", userID)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group name required"))
	}

	group := &models.Group{
		Name:      name,
		CreatedBy: userID,
		Members:   []models.Member{{UserID: userID, Role: models.RoleAdmin}},
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return s.groupResponse(ctx, group.ID)
}

// ListGroups retrieves the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListGroups failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Debug("ListGroups successful", "user_id", userID, "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// UpdateGroup renames a group. Admin only.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("UpdateGroup request received", "group_id", req.Msg.GroupID, "name", name)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group name required"))
	}
	if _, err := loadAdminGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateGroupName(ctx, req.Msg.GroupID, name); err != nil {
		slog.Error("UpdateGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	return s.groupResponse(ctx, req.Msg.GroupID)
}

// DeleteGroup removes a group with all its expenses and settlements. Admin only.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID, "user_id", userID)

	if _, err := loadAdminGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// JoinGroup adds the caller to a group from an invite link.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("JoinGroup request received", "group_id", req.Msg.GroupID, "user_id", userID)

	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}

	if err := s.store.AddGroupMember(ctx, req.Msg.GroupID, userID, models.RoleMember); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("you are already a member of this group"))
		}
		if isMissingGroup(ctx, s.store, req.Msg.GroupID) {
			return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group not found"))
		}
		slog.Error("JoinGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("User joined group", "group_id", req.Msg.GroupID, "user_id", userID)
	return s.groupResponse(ctx, req.Msg.GroupID)
}

// GetJoinInfo returns what an invite page shows before the visitor logs in.
func (s *GroupService) GetJoinInfo(ctx context.Context, req *connect.Request[api.GetJoinInfoRequest]) (*connect.Response[api.GetJoinInfoResponse], error) {
	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.GetJoinInfoResponse{
		GroupID: group.ID,
		Name:    group.Name,
	}), nil
}

// AddMember adds an existing user, found by mobile or email. Admin only.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	mobile := strings.TrimSpace(req.Msg.Mobile)
	email := models.NormalizeEmail(req.Msg.Email)
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "mobile", mobile, "email", email)

	if mobile == "" && email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("mobile or email required"))
	}
	if _, err := loadAdminGroup(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, err
	}

	var user *models.User
	if mobile != "" {
		user, err = s.store.GetUserByMobile(ctx, mobile)
	} else {
		user, err = s.store.GetUserByEmail(ctx, email)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("no user with that mobile or email; share the invite link instead"))
	}
	if err != nil {
		slog.Error("AddMember lookup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if err := s.store.AddGroupMember(ctx, req.Msg.GroupID, user.ID, models.RoleMember); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("%s is already a member", user.Name))
		}
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupID, "member_id", user.ID)
	return s.groupResponse(ctx, req.Msg.GroupID)
}

// RemoveMember removes a non-admin member. Admin only.
// Expenses the member paid stay in the group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)

	group, err := loadAdminGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	member, ok := group.FindMember(req.Msg.UserID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("member not found"))
	}
	if member.Role == models.RoleAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("cannot remove an admin"))
	}

	if err := s.store.RemoveGroupMember(ctx, req.Msg.GroupID, req.Msg.UserID); err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Member removed", "group_id", req.Msg.GroupID, "member_id", req.Msg.UserID)
	return s.groupResponse(ctx, req.Msg.GroupID)
}

// groupResponse reloads a group so the response carries the stored roster.
func (s *GroupService) groupResponse(ctx context.Context, groupID string) (*connect.Response[api.GroupResponse], error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("Failed to fetch group", "group_id", groupID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

func isMissingGroup(ctx context.Context, store storage.GroupStore, groupID string) bool {
	_, err := store.GetGroup(ctx, groupID)
	return errors.Is(err, storage.ErrNotFound)
}
