package api

import "github.com/shopspring/decimal"

// Expense is one shared expense.
type Expense struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"groupId"`
	GroupName      string          `json:"groupName,omitempty"` // admin listings only
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payerId"`
	PayerName      string          `json:"payerName,omitempty"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Month          string          `json:"month"`
	Category       string          `json:"category"`
	CustomCategory string          `json:"customCategory,omitempty"`
	AddedBy        string          `json:"addedBy"`
	CreatedAt      int64           `json:"createdAt"`
}

// AddExpenseRequest records a new expense. PayerID defaults to the caller and
// Date to today.
type AddExpenseRequest struct {
	GroupID        string           `json:"groupId"`
	Description    string           `json:"description"`
	Amount         *decimal.Decimal `json:"amount"`
	Date           string           `json:"date,omitempty"`
	PayerID        string           `json:"payerId,omitempty"`
	Category       string           `json:"category,omitempty"`
	CustomCategory string           `json:"customCategory,omitempty"`
}

// UpdateExpenseRequest changes only the fields that are set.
type UpdateExpenseRequest struct {
	GroupID        string           `json:"groupId"`
	ExpenseID      string           `json:"expenseId"`
	Description    string           `json:"description,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Date           string           `json:"date,omitempty"`
	PayerID        string           `json:"payerId,omitempty"`
	Category       string           `json:"category,omitempty"`
	CustomCategory string           `json:"customCategory,omitempty"`
}

type ExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
	Month   string `json:"month,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListMonthsRequest struct {
	GroupID string `json:"groupId"`
}

type ListMonthsResponse struct {
	Months []string `json:"months"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}
