// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitmonth/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when a write would violate a uniqueness rule.
var ErrConflict = errors.New("already exists")

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*models.User, error)

	// UpdateUser overwrites name, email, mobile, role and active.
	// Returns ErrConflict if the new email or mobile belongs to another user.
	UpdateUser(ctx context.Context, user *models.User) error
}

// GroupStore persists groups and their rosters.
type GroupStore interface {
	// CreateGroup persists a new group with its initial members.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with members, names and emails filled in.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser returns every group userID belongs to, most recent first.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	UpdateGroupName(ctx context.Context, groupID, name string) error
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember returns ErrConflict if the user is already a member.
	AddGroupMember(ctx context.Context, groupID, userID, role string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
}

// ExpenseStore persists expenses.
type ExpenseStore interface {
	// CreateExpense persists a new expense. ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense that belongs to groupID.
	GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error)

	// ListExpenses returns a group's expenses, newest date first.
	// An empty month returns every month.
	ListExpenses(ctx context.Context, groupID, month string) ([]*models.Expense, error)

	// ListMonths returns the distinct months that have expenses, newest first.
	ListMonths(ctx context.Context, groupID string) ([]string, error)

	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, groupID, expenseID string) error
}

// SettlementStore persists settlement snapshots keyed by (group, month).
type SettlementStore interface {
	// GetSettlement returns ErrNotFound if no snapshot exists yet.
	GetSettlement(ctx context.Context, groupID, month string) (*models.Settlement, error)

	// SaveSettlementTransactions creates the snapshot if missing (status pending)
	// and replaces its transactions. Status is left untouched.
	SaveSettlementTransactions(ctx context.Context, groupID, month string, txs []models.SettlementTransaction) (*models.Settlement, error)

	// SetSettlementStatus creates an empty snapshot if missing and sets its status.
	// A non-zero settledAt is recorded as the settlement time.
	SetSettlementStatus(ctx context.Context, groupID, month, status string, settledAt int64) (*models.Settlement, error)
}

// User listing statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// UserFilter narrows an account listing. Zero values match everything.
type UserFilter struct {
	// Search matches a substring of name, email or mobile, ignoring ASCII case.
	Search string
	// Status is StatusActive, StatusInactive or empty.
	Status string
	Limit  int
	Offset int
}

type GroupFilter struct {
	Search string
	Limit  int
	Offset int
}

type ExpenseFilter struct {
	GroupID string
	PayerID string
	Limit   int
	Offset  int
}

// Stats are the headline counts of the admin dashboard.
type Stats struct {
	Users       int
	ActiveUsers int
	Groups      int
	Expenses    int
}

// AdminStore serves the service-wide views of the admin panel.
// List methods return one page, newest first, plus the total match count.
// A Limit of zero or less means no limit.
type AdminStore interface {
	CountStats(ctx context.Context) (Stats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, int, error)
	ListAllGroups(ctx context.Context, filter GroupFilter) ([]*models.Group, int, error)
	ListAllExpenses(ctx context.Context, filter ExpenseFilter) ([]*models.Expense, int, error)
}

// Store defines the full set of storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore
	SettlementStore
	AdminStore

	// Close releases any resources held by the store.
	Close() error
}
