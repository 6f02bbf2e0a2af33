package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []ExpenseForBalance
		members      []string
		validateFunc func(t *testing.T, result BalanceResult)
	}{
		{
			name:     "empty input",
			expenses: nil,
			members:  nil,
			validateFunc: func(t *testing.T, result BalanceResult) {
				if !result.TotalExpense.IsZero() {
					t.Errorf("TotalExpense = %s, want 0", result.TotalExpense)
				}
				if !result.SharePerPerson.IsZero() {
					t.Errorf("SharePerPerson = %s, want 0", result.SharePerPerson)
				}
				if result.PaidByMember == nil || len(result.PaidByMember) != 0 {
					t.Errorf("PaidByMember = %v, want empty map", result.PaidByMember)
				}
				if result.NetBalance == nil || len(result.NetBalance) != 0 {
					t.Errorf("NetBalance = %v, want empty map", result.NetBalance)
				}
			},
		},
		{
			name:     "empty roster ignores expenses",
			expenses: []ExpenseForBalance{{Amount: dec("50"), PayerID: "A"}},
			members:  []string{},
			validateFunc: func(t *testing.T, result BalanceResult) {
				if !result.TotalExpense.IsZero() {
					t.Errorf("TotalExpense = %s, want 0", result.TotalExpense)
				}
				if len(result.NetBalance) != 0 {
					t.Errorf("NetBalance = %v, want empty", result.NetBalance)
				}
			},
		},
		{
			name:     "single payer equal split",
			expenses: []ExpenseForBalance{{Amount: dec("300"), PayerID: "A"}},
			members:  []string{"A", "B", "C"},
			validateFunc: func(t *testing.T, result BalanceResult) {
				if !result.TotalExpense.Equal(dec("300")) {
					t.Errorf("TotalExpense = %s, want 300", result.TotalExpense)
				}
				if !result.SharePerPerson.Equal(dec("100")) {
					t.Errorf("SharePerPerson = %s, want 100", result.SharePerPerson)
				}
				want := map[string]string{"A": "200", "B": "-100", "C": "-100"}
				for id, w := range want {
					if !result.NetBalance[id].Equal(dec(w)) {
						t.Errorf("NetBalance[%s] = %s, want %s", id, result.NetBalance[id], w)
					}
				}
			},
		},
		{
			name: "already settled",
			expenses: []ExpenseForBalance{
				{Amount: dec("100"), PayerID: "A"},
				{Amount: dec("100"), PayerID: "B"},
			},
			members: []string{"A", "B"},
			validateFunc: func(t *testing.T, result BalanceResult) {
				for _, id := range []string{"A", "B"} {
					if !result.NetBalance[id].IsZero() {
						t.Errorf("NetBalance[%s] = %s, want 0", id, result.NetBalance[id])
					}
					if !result.PaidByMember[id].Equal(dec("100")) {
						t.Errorf("PaidByMember[%s] = %s, want 100", id, result.PaidByMember[id])
					}
				}
			},
		},
		{
			name:     "unknown payer counts toward total only",
			expenses: []ExpenseForBalance{{Amount: dec("100"), PayerID: "ghost"}},
			members:  []string{"A", "B"},
			validateFunc: func(t *testing.T, result BalanceResult) {
				if !result.TotalExpense.Equal(dec("100")) {
					t.Errorf("TotalExpense = %s, want 100", result.TotalExpense)
				}
				if !result.SharePerPerson.Equal(dec("50")) {
					t.Errorf("SharePerPerson = %s, want 50", result.SharePerPerson)
				}
				if _, ok := result.PaidByMember["ghost"]; ok {
					t.Error("ghost should not appear in PaidByMember")
				}
				for _, id := range []string{"A", "B"} {
					if !result.PaidByMember[id].IsZero() {
						t.Errorf("PaidByMember[%s] = %s, want 0", id, result.PaidByMember[id])
					}
					if !result.NetBalance[id].Equal(dec("-50")) {
						t.Errorf("NetBalance[%s] = %s, want -50", id, result.NetBalance[id])
					}
				}
			},
		},
		{
			name: "duplicate roster ids count once",
			expenses: []ExpenseForBalance{
				{Amount: dec("90"), PayerID: "B"},
			},
			members: []string{"A", "B", "A", "C"},
			validateFunc: func(t *testing.T, result BalanceResult) {
				if len(result.Members) != 3 {
					t.Fatalf("Members = %v, want 3 unique", result.Members)
				}
				if !result.SharePerPerson.Equal(dec("30")) {
					t.Errorf("SharePerPerson = %s, want 30", result.SharePerPerson)
				}
				if !result.NetBalance["B"].Equal(dec("60")) {
					t.Errorf("NetBalance[B] = %s, want 60", result.NetBalance["B"])
				}
			},
		},
		{
			name: "member who paid nothing still owes a share",
			expenses: []ExpenseForBalance{
				{Amount: dec("40.50"), PayerID: "A"},
				{Amount: dec("19.50"), PayerID: "B"},
			},
			members: []string{"A", "B", "C", "D"},
			validateFunc: func(t *testing.T, result BalanceResult) {
				if !result.SharePerPerson.Equal(dec("15")) {
					t.Errorf("SharePerPerson = %s, want 15", result.SharePerPerson)
				}
				want := map[string]string{"A": "25.5", "B": "4.5", "C": "-15", "D": "-15"}
				for id, w := range want {
					if !result.NetBalance[id].Equal(dec(w)) {
						t.Errorf("NetBalance[%s] = %s, want %s", id, result.NetBalance[id], w)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeBalances(tt.expenses, tt.members)
			tt.validateFunc(t, result)
		})
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	tolerance := dec("0.000000001")
	cases := []struct {
		name     string
		expenses []ExpenseForBalance
		members  []string
	}{
		{
			name:     "thirds",
			expenses: []ExpenseForBalance{{Amount: dec("100"), PayerID: "A"}},
			members:  []string{"A", "B", "C"},
		},
		{
			name: "sevenths with several payers",
			expenses: []ExpenseForBalance{
				{Amount: dec("12.34"), PayerID: "A"},
				{Amount: dec("56.78"), PayerID: "C"},
				{Amount: dec("0.01"), PayerID: "G"},
				{Amount: dec("999.99"), PayerID: "E"},
			},
			members: []string{"A", "B", "C", "D", "E", "F", "G"},
		},
		{
			name:     "nothing spent",
			expenses: nil,
			members:  []string{"A", "B"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ComputeBalances(tc.expenses, tc.members)
			sum := decimal.Zero
			for _, bal := range result.NetBalance {
				sum = sum.Add(bal)
			}
			if sum.Abs().GreaterThan(tolerance) {
				t.Errorf("sum of net balances = %s, want ~0", sum)
			}
		})
	}
}

func TestComputeBalances_Idempotent(t *testing.T) {
	expenses := []ExpenseForBalance{
		{Amount: dec("10"), PayerID: "A"},
		{Amount: dec("20"), PayerID: "B"},
	}
	members := []string{"A", "B", "C"}

	first := ComputeBalances(expenses, members)
	second := ComputeBalances(expenses, members)

	for _, id := range members {
		if !first.NetBalance[id].Equal(second.NetBalance[id]) {
			t.Errorf("NetBalance[%s] differs between calls: %s vs %s", id, first.NetBalance[id], second.NetBalance[id])
		}
	}
	if !expenses[0].Amount.Equal(dec("10")) || expenses[0].PayerID != "A" {
		t.Error("ComputeBalances must not mutate its input")
	}
}
