package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Expense categories.
const (
	CategoryFood      = "Food"
	CategoryRent      = "Rent"
	CategoryUtilities = "Utilities"
	CategoryMisc      = "Misc"
	CategoryCustom    = "Custom"
)

// Categories lists every accepted expense category.
var Categories = []string{CategoryFood, CategoryRent, CategoryUtilities, CategoryMisc, CategoryCustom}

// MinExpenseAmount is the smallest amount an expense can have.
var MinExpenseAmount = decimal.New(1, -2)

// Expense represents one shared expense within a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Groceries").
	Description string

	// Amount is what the payer spent. At least MinExpenseAmount.
	Amount decimal.Decimal

	// PayerID is the user who paid.
	PayerID string

	// Date is the calendar date of the expense (UTC midnight).
	Date time.Time

	// Month is the YYYY-MM bucket derived from Date.
	Month string

	// Category is one of Categories.
	Category string

	// CustomCategory is the free-form label used when Category is Custom.
	CustomCategory string

	// AddedBy is the user who recorded the expense.
	AddedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// NormalizeCategory returns category if it is known, otherwise Misc.
func NormalizeCategory(category string) string {
	if slices.Contains(Categories, category) {
		return category
	}
	return CategoryMisc
}
