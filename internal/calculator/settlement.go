package calculator

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Transfer is one recommended payment from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// settleEpsilon is the smallest balance still worth a transfer (one cent).
var settleEpsilon = decimal.New(1, -2)

type party struct {
	id      string
	balance decimal.Decimal
}

// MinimizeSettlement turns net balances into a short list of transfers that
// clears them, using greedy largest-first matching.
//
// Balances are rounded to cents before matching. Creditors are visited from
// the largest amount owed down, debtors from the largest debt down; equal
// balances are ordered by member id so the result is stable across runs.
// Every transfer fully settles at least one side, so the result holds at most
// k-1 transfers for k non-zero balances.
//
// Balances that do not sum to zero are not rejected: whatever cannot be
// matched is left unsettled.
func MinimizeSettlement(netBalance map[string]decimal.Decimal) []Transfer {
	var creditors, debtors []*party
	for _, id := range slices.Sorted(maps.Keys(netBalance)) {
		rounded := netBalance[id].Round(2)
		switch rounded.Sign() {
		case 1:
			creditors = append(creditors, &party{id: id, balance: rounded})
		case -1:
			debtors = append(debtors, &party{id: id, balance: rounded})
		}
	}

	// Largest creditor first; ids are already ascending so a stable sort keeps ties by id.
	slices.SortStableFunc(creditors, func(a, b *party) int {
		return b.balance.Cmp(a.balance)
	})
	// Most negative debtor first.
	slices.SortStableFunc(debtors, func(a, b *party) int {
		return a.balance.Cmp(b.balance)
	})

	transfers := make([]Transfer, 0)
	c, d := 0, 0
	for c < len(creditors) && d < len(debtors) {
		cred := creditors[c]
		deb := debtors[d]

		amount := decimal.Min(cred.balance, deb.balance.Neg())
		if !amount.IsPositive() {
			break
		}

		transfers = append(transfers, Transfer{
			From:   deb.id,
			To:     cred.id,
			Amount: amount.Round(2),
		})

		cred.balance = cred.balance.Sub(amount)
		deb.balance = deb.balance.Add(amount)

		if cred.balance.LessThan(settleEpsilon) {
			c++
		}
		if deb.balance.GreaterThan(settleEpsilon.Neg()) {
			d++
		}
	}

	return transfers
}

// CheckSettlement applies transfers to netBalance and returns what each member
// still has outstanding. A member paying a transfer moves toward zero from
// below; a member receiving one moves toward zero from above.
func CheckSettlement(netBalance map[string]decimal.Decimal, transfers []Transfer) map[string]decimal.Decimal {
	residual := make(map[string]decimal.Decimal, len(netBalance))
	for id, bal := range netBalance {
		residual[id] = bal
	}
	for _, t := range transfers {
		residual[t.From] = residual[t.From].Add(t.Amount)
		residual[t.To] = residual[t.To].Sub(t.Amount)
	}
	return residual
}

// Unsettled returns, in id order, the members whose balance is at least one cent
// away from zero.
func Unsettled(balances map[string]decimal.Decimal) []string {
	var ids []string
	for _, id := range slices.Sorted(maps.Keys(balances)) {
		if balances[id].Abs().GreaterThanOrEqual(settleEpsilon) {
			ids = append(ids, id)
		}
	}
	return ids
}

// FormatTransfers renders transfers one per line as "from -> to: amount",
// using names to replace ids when a name is known.
func FormatTransfers(transfers []Transfer, names map[string]string) string {
	label := func(id string) string {
		if name, ok := names[id]; ok && name != "" {
			return name
		}
		return id
	}

	var b strings.Builder
	for _, t := range transfers {
		b.WriteString(label(t.From))
		b.WriteString(" -> ")
		b.WriteString(label(t.To))
		b.WriteString(": ")
		b.WriteString(t.Amount.StringFixed(2))
		b.WriteString("\n")
	}
	return b.String()
}
