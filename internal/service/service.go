// Package service implements the Connect RPC services.
package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/internal/middleware"
	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
	"github.com/mmynk/splitmonth/pkg/api"
)

var (
	errAuthRequired  = errors.New("authentication required")
	errNotMember     = errors.New("you are not a member of this group")
	errAdminRequired = errors.New("only group admins can do this")
)

// currentUser returns the authenticated user ID or an Unauthenticated error.
func currentUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// storeError converts a storage error into a Connect error.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// loadMemberGroup loads a group and checks that userID belongs to it.
func loadMemberGroup(ctx context.Context, store storage.GroupStore, groupID, userID string) (*models.Group, error) {
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("group_id required"))
	}
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeError(err)
	}
	if _, ok := group.FindMember(userID); !ok {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotMember)
	}
	return group, nil
}

// loadAdminGroup loads a group and checks that userID is one of its admins.
func loadAdminGroup(ctx context.Context, store storage.GroupStore, groupID, userID string) (*models.Group, error) {
	group, err := loadMemberGroup(ctx, store, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !group.IsAdmin(userID) {
		return nil, connect.NewError(connect.CodePermissionDenied, errAdminRequired)
	}
	return group, nil
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.Member{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Role:   m.Role,
		}
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatedBy: g.CreatedBy,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense, names map[string]string) *api.Expense {
	return &api.Expense{
		ID:             e.ID,
		GroupID:        e.GroupID,
		Description:    e.Description,
		Amount:         e.Amount,
		PayerID:        e.PayerID,
		PayerName:      names[e.PayerID],
		Date:           e.Date.Format(dateLayout),
		Month:          e.Month,
		Category:       e.Category,
		CustomCategory: e.CustomCategory,
		AddedBy:        e.AddedBy,
		CreatedAt:      e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement, names map[string]string) *api.Settlement {
	txs := make([]*api.Transfer, len(s.Transactions))
	for i, t := range s.Transactions {
		txs[i] = &api.Transfer{
			From:     t.FromUserID,
			FromName: displayName(names, t.FromUserID),
			To:       t.ToUserID,
			ToName:   displayName(names, t.ToUserID),
			Amount:   t.Amount,
		}
	}
	return &api.Settlement{
		ID:           s.ID,
		GroupID:      s.GroupID,
		Month:        s.Month,
		Status:       s.Status,
		Transactions: txs,
		SettledAt:    s.SettledAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// displayName falls back to the ID for users no longer in the roster.
func displayName(names map[string]string, userID string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return userID
}
