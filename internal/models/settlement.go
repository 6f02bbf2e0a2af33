package models

import "github.com/shopspring/decimal"

// Settlement statuses.
const (
	SettlementPending  = "pending"
	SettlementSettled  = "settled"
	SettlementArchived = "archived"
)

// IsValidSettlementStatus reports whether status is one of the known statuses.
func IsValidSettlementStatus(status string) bool {
	switch status {
	case SettlementPending, SettlementSettled, SettlementArchived:
		return true
	}
	return false
}

// Settlement is the stored snapshot of recommended transfers for one group-month.
// There is at most one settlement per (GroupID, Month).
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// Month is the YYYY-MM bucket this settlement covers.
	Month string

	// Status is pending, settled or archived. Managed by users, never by the calculator.
	Status string

	// Transactions are the transfers in display order.
	Transactions []SettlementTransaction

	// SettledAt is the Unix timestamp of the last transition to settled (0 if never).
	SettledAt int64

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// SettlementTransaction is one recommended payment.
type SettlementTransaction struct {
	// FromUserID is the debtor who pays.
	FromUserID string

	// ToUserID is the creditor who receives.
	ToUserID string

	// Amount is the payment amount, rounded to cents.
	Amount decimal.Decimal
}
