package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// CustomCategory is the category whose display label comes from the expense itself.
const CustomCategory = "Custom"

// ExpenseForCategory represents an expense with the fields needed for a category breakdown.
type ExpenseForCategory struct {
	Amount         decimal.Decimal
	Category       string
	CustomCategory string
}

// CategoryTotal is the spend for one category label within a group-month.
type CategoryTotal struct {
	Label  string
	Amount decimal.Decimal
}

// CategoryLabel returns the label an expense is grouped under.
func CategoryLabel(category, customCategory string) string {
	if category == CustomCategory && customCategory != "" {
		return customCategory
	}
	return category
}

// SummarizeByCategory totals expenses per category label, largest first.
func SummarizeByCategory(expenses []ExpenseForCategory) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		label := CategoryLabel(e.Category, e.CustomCategory)
		totals[label] = totals[label].Add(e.Amount)
	}

	summary := make([]CategoryTotal, 0, len(totals))
	for label, amount := range totals {
		summary = append(summary, CategoryTotal{Label: label, Amount: amount})
	}
	slices.SortFunc(summary, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return summary
}
