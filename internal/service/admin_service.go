package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/internal/middleware"
	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
	"github.com/mmynk/splitmonth/pkg/api"
)

const (
	defaultPageSize        = 20
	defaultExpensePageSize = 50
	maxPageSize            = 100
	recentUsers            = 5
	userExpensePreview     = 10
)

var (
	errOwnRole        = errors.New("cannot change your own role")
	errDeactivateSelf = errors.New("cannot deactivate yourself")
)

// AdminService implements the Connect AdminService: service-wide views and
// account management. It is served behind RequireAuth and RequireAdmin.
type AdminService struct {
	store storage.Store
}

// NewAdminService creates a new AdminService with the given storage backend.
func NewAdminService(store storage.Store) *AdminService {
	return &AdminService{store: store}
}

// GetStats returns the dashboard counts and the newest accounts.
func (s *AdminService) GetStats(ctx context.Context, req *connect.Request[api.GetStatsRequest]) (*connect.Response[api.GetStatsResponse], error) {
	stats, err := s.store.CountStats(ctx)
	if err != nil {
		slog.Error("GetStats failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	recent, _, err := s.store.ListUsers(ctx, storage.UserFilter{Limit: recentUsers})
	if err != nil {
		slog.Error("GetStats failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetStatsResponse{
		TotalUsers:    stats.Users,
		ActiveUsers:   stats.ActiveUsers,
		TotalGroups:   stats.Groups,
		TotalExpenses: stats.Expenses,
		RecentUsers:   toAPIUsers(recent),
	}), nil
}

// ListUsers pages through accounts, optionally filtered by search text and status.
func (s *AdminService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	status := req.Msg.Status
	if status != "" && status != storage.StatusActive && status != storage.StatusInactive {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status %q", status))
	}

	page, limit, offset := pageBounds(req.Msg.Page, req.Msg.Limit, defaultPageSize)
	users, total, err := s.store.ListUsers(ctx, storage.UserFilter{
		Search: strings.TrimSpace(req.Msg.Search),
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("ListUsers failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListUsersResponse{
		Users:      toAPIUsers(users),
		Pagination: pagination(page, limit, total),
	}), nil
}

// GetUser returns an account with its groups and the latest expenses it paid.
func (s *AdminService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	user, err := s.loadUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForUser(ctx, user.ID)
	if err != nil {
		slog.Error("GetUser failed", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	apiGroups := make([]*api.Group, len(groups))
	for i, g := range groups {
		apiGroups[i] = toAPIGroup(g)
	}

	expenses, _, err := s.store.ListAllExpenses(ctx, storage.ExpenseFilter{PayerID: user.ID, Limit: userExpensePreview})
	if err != nil {
		slog.Error("GetUser failed", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	apiExpenses, err := s.expenseViews(ctx, expenses)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetUserResponse{
		User:     toAPIUser(user),
		Groups:   apiGroups,
		Expenses: apiExpenses,
	}), nil
}

// UpdateUser changes an account's profile, role or active flag.
// Admins cannot change their own role or deactivate themselves.
func (s *AdminService) UpdateUser(ctx context.Context, req *connect.Request[api.UpdateUserRequest]) (*connect.Response[api.UserResponse], error) {
	callerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Admin UpdateUser request received", "user_id", req.Msg.UserID, "admin_id", callerID)

	user, err := s.loadUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	self := user.ID == callerID

	if role := req.Msg.Role; role != "" {
		if !models.ValidUserRole(role) {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown role %q", role))
		}
		if self && role != user.Role {
			return nil, connect.NewError(connect.CodeInvalidArgument, errOwnRole)
		}
		user.Role = role
	}
	if req.Msg.Active != nil {
		if self && !*req.Msg.Active {
			return nil, connect.NewError(connect.CodeInvalidArgument, errDeactivateSelf)
		}
		user.Active = *req.Msg.Active
	}
	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		user.Name = name
	}
	if email := models.NormalizeEmail(req.Msg.Email); email != "" {
		user.Email = email
	}
	if req.Msg.Mobile != nil {
		user.Mobile = strings.TrimSpace(*req.Msg.Mobile)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Warn("Admin UpdateUser failed", "user_id", user.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("User updated", "user_id", user.ID, "role", user.Role, "active", user.Active)
	return connect.NewResponse(&api.UserResponse{User: toAPIUser(user)}), nil
}

// DeleteUser deactivates an account. Its groups and expenses are kept.
func (s *AdminService) DeleteUser(ctx context.Context, req *connect.Request[api.DeleteUserRequest]) (*connect.Response[api.UserResponse], error) {
	callerID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Admin DeleteUser request received", "user_id", req.Msg.UserID, "admin_id", callerID)

	if req.Msg.UserID == callerID {
		return nil, connect.NewError(connect.CodeInvalidArgument, errDeactivateSelf)
	}
	user, err := s.loadUser(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	user.Active = false
	if err := s.store.UpdateUser(ctx, user); err != nil {
		slog.Error("Admin DeleteUser failed", "user_id", user.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("User deactivated", "user_id", user.ID)
	return connect.NewResponse(&api.UserResponse{User: toAPIUser(user)}), nil
}

// ListGroups pages through every group, optionally filtered by name.
func (s *AdminService) ListGroups(ctx context.Context, req *connect.Request[api.AdminListGroupsRequest]) (*connect.Response[api.AdminListGroupsResponse], error) {
	page, limit, offset := pageBounds(req.Msg.Page, req.Msg.Limit, defaultPageSize)
	groups, total, err := s.store.ListAllGroups(ctx, storage.GroupFilter{
		Search: strings.TrimSpace(req.Msg.Search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("Admin ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, g := range groups {
		apiGroups[i] = toAPIGroup(g)
	}

	return connect.NewResponse(&api.AdminListGroupsResponse{
		Groups:     apiGroups,
		Pagination: pagination(page, limit, total),
	}), nil
}

// DeleteGroup removes any group with its expenses and settlements.
func (s *AdminService) DeleteGroup(ctx context.Context, req *connect.Request[api.AdminDeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("Admin DeleteGroup request received", "group_id", req.Msg.GroupID, "admin_id", middleware.GetUserID(ctx))

	if req.Msg.GroupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}
	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Warn("Admin DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Group deleted by admin", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// ListExpenses pages through expenses across groups, newest first.
func (s *AdminService) ListExpenses(ctx context.Context, req *connect.Request[api.AdminListExpensesRequest]) (*connect.Response[api.AdminListExpensesResponse], error) {
	page, limit, offset := pageBounds(req.Msg.Page, req.Msg.Limit, defaultExpensePageSize)
	expenses, total, err := s.store.ListAllExpenses(ctx, storage.ExpenseFilter{
		GroupID: req.Msg.GroupID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		slog.Error("Admin ListExpenses failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	apiExpenses, err := s.expenseViews(ctx, expenses)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.AdminListExpensesResponse{
		Expenses:   apiExpenses,
		Pagination: pagination(page, limit, total),
	}), nil
}

func (s *AdminService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("user_id required"))
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

// expenseViews converts expenses with payer and group names filled in.
// Names of deleted users or groups are left empty.
func (s *AdminService) expenseViews(ctx context.Context, expenses []*models.Expense) ([]*api.Expense, error) {
	payers := make(map[string]string)
	groups := make(map[string]string)

	views := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		if _, ok := payers[e.PayerID]; !ok {
			user, err := s.store.GetUserByID(ctx, e.PayerID)
			switch {
			case err == nil:
				payers[e.PayerID] = user.Name
			case errors.Is(err, storage.ErrNotFound):
				payers[e.PayerID] = ""
			default:
				return nil, connect.NewError(connect.CodeInternal, err)
			}
		}
		if _, ok := groups[e.GroupID]; !ok {
			group, err := s.store.GetGroup(ctx, e.GroupID)
			switch {
			case err == nil:
				groups[e.GroupID] = group.Name
			case errors.Is(err, storage.ErrNotFound):
				groups[e.GroupID] = ""
			default:
				return nil, connect.NewError(connect.CodeInternal, err)
			}
		}

		views[i] = toAPIExpense(e, payers)
		views[i].GroupName = groups[e.GroupID]
	}
	return views, nil
}

// PromoteAdmins gives the admin role to existing accounts registered with one
// of emails and returns how many changed. Emails without an account are
// skipped; AuthService.WithAdminEmails covers them at signup.
func PromoteAdmins(ctx context.Context, users storage.UserStore, emails []string) (int, error) {
	promoted := 0
	for _, email := range emails {
		user, err := users.GetUserByEmail(ctx, models.NormalizeEmail(email))
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return promoted, fmt.Errorf("failed to look up admin %s: %w", email, err)
		}
		if user.IsAdmin() {
			continue
		}

		user.Role = models.UserRoleAdmin
		if err := users.UpdateUser(ctx, user); err != nil {
			return promoted, fmt.Errorf("failed to promote admin %s: %w", email, err)
		}
		promoted++
	}
	return promoted, nil
}

// pageBounds clamps a 1-based page and its size and returns the row offset.
func pageBounds(page, limit, defaultLimit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	limit = min(limit, maxPageSize)
	return page, limit, (page - 1) * limit
}

func pagination(page, limit, total int) *api.Pagination {
	return &api.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
}

func toAPIUsers(users []*models.User) []*api.User {
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}
