package api

import "github.com/shopspring/decimal"

type GetBalancesRequest struct {
	GroupID string `json:"groupId"`
	Month   string `json:"month"`
}

// GetBalancesResponse is the balance sheet of one group-month.
type GetBalancesResponse struct {
	Month          string           `json:"month"`
	TotalExpense   decimal.Decimal  `json:"totalExpense"`
	SharePerPerson decimal.Decimal  `json:"sharePerPerson"`
	Balances       []*MemberBalance `json:"balances"`
	Categories     []*CategoryTotal `json:"categories"`
}

// MemberBalance is one member's position for the month.
// Positive Balance = owed money, Negative = owes money.
type MemberBalance struct {
	UserID  string          `json:"userId"`
	Name    string          `json:"name"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}

type CategoryTotal struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type GetSettlementRequest struct {
	GroupID string `json:"groupId"`
	Month   string `json:"month"`
}

type UpdateSettlementStatusRequest struct {
	GroupID string `json:"groupId"`
	Month   string `json:"month"`
	Status  string `json:"status"`
}

type SettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

// Settlement is the stored snapshot of recommended transfers for a group-month.
type Settlement struct {
	ID           string      `json:"id"`
	GroupID      string      `json:"groupId"`
	Month        string      `json:"month"`
	Status       string      `json:"status"`
	Transactions []*Transfer `json:"transactions"`
	SettledAt    int64       `json:"settledAt,omitempty"`
	UpdatedAt    int64       `json:"updatedAt"`
}

// Transfer is one recommended payment, with display names resolved.
type Transfer struct {
	From     string          `json:"from"`
	FromName string          `json:"fromName"`
	To       string          `json:"to"`
	ToName   string          `json:"toName"`
	Amount   decimal.Decimal `json:"amount"`
}
