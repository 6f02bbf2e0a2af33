package api

// Pagination describes one page of an admin listing. Page is 1-based.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type GetStatsRequest struct{}

// GetStatsResponse is the admin dashboard summary.
type GetStatsResponse struct {
	TotalUsers    int     `json:"totalUsers"`
	ActiveUsers   int     `json:"activeUsers"`
	TotalGroups   int     `json:"totalGroups"`
	TotalExpenses int     `json:"totalExpenses"`
	RecentUsers   []*User `json:"recentUsers"`
}

// ListUsersRequest pages through accounts. Status is "active", "inactive" or empty.
type ListUsersRequest struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
}

type ListUsersResponse struct {
	Users      []*User     `json:"users"`
	Pagination *Pagination `json:"pagination"`
}

type GetUserRequest struct {
	UserID string `json:"userId"`
}

// GetUserResponse is an account with its groups and latest paid expenses.
type GetUserResponse struct {
	User     *User      `json:"user"`
	Groups   []*Group   `json:"groups"`
	Expenses []*Expense `json:"expenses"`
}

// UpdateUserRequest changes the fields that are set. An empty Mobile clears it.
type UpdateUserRequest struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name,omitempty"`
	Email  string  `json:"email,omitempty"`
	Mobile *string `json:"mobile,omitempty"`
	Active *bool   `json:"isActive,omitempty"`
	Role   string  `json:"role,omitempty"`
}

type UserResponse struct {
	User *User `json:"user"`
}

// DeleteUserRequest deactivates an account. Nothing is removed.
type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

type AdminListGroupsRequest struct {
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Search string `json:"search,omitempty"`
}

type AdminListGroupsResponse struct {
	Groups     []*Group    `json:"groups"`
	Pagination *Pagination `json:"pagination"`
}

type AdminDeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type AdminListExpensesRequest struct {
	Page    int    `json:"page,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type AdminListExpensesResponse struct {
	Expenses   []*Expense  `json:"expenses"`
	Pagination *Pagination `json:"pagination"`
}
