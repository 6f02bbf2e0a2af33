package calculator

import (
	"github.com/shopspring/decimal"
)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	Amount  decimal.Decimal
	PayerID string
}

// BalanceResult is the outcome of aggregating one group-month of expenses.
type BalanceResult struct {
	// Members is the deduplicated roster in the order it was given.
	Members []string

	// TotalExpense is the sum of every expense amount, including expenses
	// paid by someone outside the roster.
	TotalExpense decimal.Decimal

	// SharePerPerson is TotalExpense split equally across the roster.
	// Zero when the roster is empty.
	SharePerPerson decimal.Decimal

	// PaidByMember maps every roster member to the amount they paid.
	PaidByMember map[string]decimal.Decimal

	// NetBalance maps every roster member to paid minus share.
	// Positive = owed money, Negative = owes money.
	NetBalance map[string]decimal.Decimal
}

// ComputeBalances computes each member's net balance for a set of expenses
// shared equally by memberIDs.
//
// Algorithm:
// - total = sum of all expense amounts
// - share = total / number of members (no rounding)
// - paid[m] = sum of amounts where m is the payer
// - net[m] = paid[m] - share
//
// Expenses whose payer is not in memberIDs still count toward the total but
// are not attributed to anyone. An empty roster yields an all-zero result.
func ComputeBalances(expenses []ExpenseForBalance, memberIDs []string) BalanceResult {
	members := uniqueMembers(memberIDs)
	result := BalanceResult{
		Members:        members,
		TotalExpense:   decimal.Zero,
		SharePerPerson: decimal.Zero,
		PaidByMember:   make(map[string]decimal.Decimal, len(members)),
		NetBalance:     make(map[string]decimal.Decimal, len(members)),
	}
	if len(members) == 0 {
		return result
	}

	for _, e := range expenses {
		result.TotalExpense = result.TotalExpense.Add(e.Amount)
	}
	result.SharePerPerson = result.TotalExpense.Div(decimal.NewFromInt(int64(len(members))))

	for _, id := range members {
		result.PaidByMember[id] = decimal.Zero
	}
	for _, e := range expenses {
		paid, ok := result.PaidByMember[e.PayerID]
		if !ok {
			continue
		}
		result.PaidByMember[e.PayerID] = paid.Add(e.Amount)
	}

	for _, id := range members {
		result.NetBalance[id] = result.PaidByMember[id].Sub(result.SharePerPerson)
	}

	return result
}

// uniqueMembers drops empty and repeated ids, keeping first-seen order.
func uniqueMembers(memberIDs []string) []string {
	seen := make(map[string]bool, len(memberIDs))
	members := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}
	return members
}
