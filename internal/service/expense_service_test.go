package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/pkg/api"
)

// flat is a three person group with one session per member.
type flat struct {
	env               *testEnv
	group             *api.Group
	alice, bob, carol *session
}

func setupFlat(t *testing.T) *flat {
	t.Helper()
	env := setupTestServer(t)
	alice := env.signup("Alice", "alice@example.com", "")
	bob := env.signup("Bob", "bob@example.com", "")
	carol := env.signup("Carol", "carol@example.com", "")
	group := createGroup(t, alice, "Flat", bob, carol)
	return &flat{env: env, group: group, alice: alice, bob: bob, carol: carol}
}

func (f *flat) add(t *testing.T, who *session, req *api.AddExpenseRequest) *api.Expense {
	t.Helper()
	req.GroupID = f.group.ID
	resp, err := who.expenses.AddExpense(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("AddExpense(%s) failed: %v", req.Description, err)
	}
	return resp.Msg.Expense
}

func TestAddExpense(t *testing.T) {
	f := setupFlat(t)

	e := f.add(t, f.alice, &api.AddExpenseRequest{
		Description: "Groceries",
		Amount:      amount("42.50"),
		Date:        "2026-03-14",
		Category:    models.CategoryFood,
	})
	if e.PayerID != f.alice.userID || e.PayerName != "Alice" {
		t.Errorf("payer: expected caller, got %s (%s)", e.PayerID, e.PayerName)
	}
	if e.Month != "2026-03" || e.Date != "2026-03-14" {
		t.Errorf("date: got %s / %s", e.Date, e.Month)
	}
	if !e.Amount.Equal(dec("42.50")) {
		t.Errorf("amount: expected 42.50, got %s", e.Amount)
	}

	e = f.add(t, f.alice, &api.AddExpenseRequest{
		Description: "Internet",
		Amount:      amount("30"),
		Date:        "2026-03-01",
		PayerID:     f.bob.userID,
		Category:    "Streaming",
	})
	if e.PayerID != f.bob.userID || e.AddedBy != f.alice.userID {
		t.Errorf("expected Bob as payer and Alice as adder, got %s / %s", e.PayerID, e.AddedBy)
	}
	if e.Category != models.CategoryMisc {
		t.Errorf("unknown category: expected Misc, got %s", e.Category)
	}

	e = f.add(t, f.carol, &api.AddExpenseRequest{
		Description:    "Plants",
		Amount:         amount("12"),
		Date:           "2026-03-02",
		Category:       models.CategoryCustom,
		CustomCategory: " Garden ",
	})
	if e.CustomCategory != "Garden" {
		t.Errorf("custom category: expected 'Garden', got %q", e.CustomCategory)
	}

	e = f.add(t, f.carol, &api.AddExpenseRequest{Description: "Today", Amount: amount("1")})
	if e.Date == "" || e.Month != e.Date[:7] {
		t.Errorf("default date: got %s / %s", e.Date, e.Month)
	}
}

func TestAddExpenseValidation(t *testing.T) {
	f := setupFlat(t)
	outsider := f.env.signup("Mallory", "mallory@example.com", "")
	ctx := context.Background()

	tests := []struct {
		name string
		who  *session
		req  *api.AddExpenseRequest
		code connect.Code
	}{
		{
			name: "missing amount",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "x"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "zero amount",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("0")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "rounds below a cent",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("0.004")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "empty description",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "  ", Amount: amount("5")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "bad date",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("5"), Date: "14/03/2026"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "payer outside group",
			who:  f.alice,
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("5"), PayerID: outsider.userID},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "caller outside group",
			who:  outsider,
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("5")},
			code: connect.CodePermissionDenied,
		},
		{
			name: "anonymous",
			who:  f.env.as(""),
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("5")},
			code: connect.CodeUnauthenticated,
		},
		{
			name: "forged token",
			who:  f.env.as("forged"),
			req:  &api.AddExpenseRequest{Description: "x", Amount: amount("5")},
			code: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.GroupID = f.group.ID
			_, err := tt.who.expenses.AddExpense(ctx, connect.NewRequest(tt.req))
			wantCode(t, err, tt.code)
		})
	}
}

func TestListExpensesAndMonths(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	f.add(t, f.alice, &api.AddExpenseRequest{Description: "Feb rent", Amount: amount("900"), Date: "2026-02-01", Category: models.CategoryRent})
	f.add(t, f.bob, &api.AddExpenseRequest{Description: "Mar power", Amount: amount("60"), Date: "2026-03-03", Category: models.CategoryUtilities})
	f.add(t, f.carol, &api.AddExpenseRequest{Description: "Mar food", Amount: amount("45"), Date: "2026-03-20", Category: models.CategoryFood})

	months, err := f.bob.expenses.ListMonths(ctx, connect.NewRequest(&api.ListMonthsRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	if len(months.Msg.Months) != 2 || months.Msg.Months[0] != "2026-03" || months.Msg.Months[1] != "2026-02" {
		t.Errorf("months: expected [2026-03 2026-02], got %v", months.Msg.Months)
	}

	march, err := f.bob.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: f.group.ID, Month: "2026-03"}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(march.Msg.Expenses) != 2 {
		t.Fatalf("expected 2 March expenses, got %d", len(march.Msg.Expenses))
	}
	if march.Msg.Expenses[0].Description != "Mar food" {
		t.Errorf("expected newest first, got %s", march.Msg.Expenses[0].Description)
	}

	all, err := f.bob.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(all.Msg.Expenses) != 3 {
		t.Errorf("expected 3 expenses overall, got %d", len(all.Msg.Expenses))
	}

	_, err = f.bob.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: f.group.ID, Month: "March"}))
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestUpdateExpense(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	e := f.add(t, f.alice, &api.AddExpenseRequest{Description: "Dinner", Amount: amount("80"), Date: "2026-03-31", Category: models.CategoryFood})

	resp, err := f.bob.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		GroupID:   f.group.ID,
		ExpenseID: e.ID,
		Date:      "2026-04-01",
		PayerID:   f.bob.userID,
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	updated := resp.Msg.Expense
	if updated.Month != "2026-04" {
		t.Errorf("month: expected 2026-04 after date change, got %s", updated.Month)
	}
	if updated.Description != "Dinner" || !updated.Amount.Equal(dec("80")) || updated.Category != models.CategoryFood {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.PayerID != f.bob.userID {
		t.Errorf("payer: expected Bob, got %s", updated.PayerID)
	}

	_, err = f.bob.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		GroupID:   f.group.ID,
		ExpenseID: e.ID,
		Amount:    amount("-3"),
	}))
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = f.bob.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		GroupID:   f.group.ID,
		ExpenseID: "missing",
		Amount:    amount("3"),
	}))
	wantCode(t, err, connect.CodeNotFound)

	months, err := f.bob.expenses.ListMonths(ctx, connect.NewRequest(&api.ListMonthsRequest{GroupID: f.group.ID}))
	if err != nil {
		t.Fatalf("ListMonths failed: %v", err)
	}
	if len(months.Msg.Months) != 1 || months.Msg.Months[0] != "2026-04" {
		t.Errorf("months: expected [2026-04], got %v", months.Msg.Months)
	}
}

func TestUpdateExpenseCategory(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	e := f.add(t, f.alice, &api.AddExpenseRequest{Description: "Lunch", Amount: amount("12"), Date: "2026-03-02", Category: models.CategoryFood})

	tests := []struct {
		name       string
		category   string
		custom     string
		wantCat    string
		wantCustom string
	}{
		{"unknown keeps the stored category", "Travel", "", models.CategoryFood, ""},
		{"empty keeps the stored category", "", "", models.CategoryFood, ""},
		{"known category applies", models.CategoryUtilities, "", models.CategoryUtilities, ""},
		{"custom applies its label", models.CategoryCustom, " Gifts ", models.CategoryCustom, "Gifts"},
		{"unknown keeps the custom label", "Travel", "Other", models.CategoryCustom, "Gifts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.bob.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
				GroupID:        f.group.ID,
				ExpenseID:      e.ID,
				Category:       tt.category,
				CustomCategory: tt.custom,
			}))
			if err != nil {
				t.Fatalf("UpdateExpense failed: %v", err)
			}
			got := resp.Msg.Expense
			if got.Category != tt.wantCat || got.CustomCategory != tt.wantCustom {
				t.Errorf("expected %s/%q, got %s/%q", tt.wantCat, tt.wantCustom, got.Category, got.CustomCategory)
			}
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	e := f.add(t, f.alice, &api.AddExpenseRequest{Description: "Oops", Amount: amount("10"), Date: "2026-03-01"})

	req := &api.DeleteExpenseRequest{GroupID: f.group.ID, ExpenseID: e.ID}
	if _, err := f.carol.expenses.DeleteExpense(ctx, connect.NewRequest(req)); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	_, err := f.carol.expenses.DeleteExpense(ctx, connect.NewRequest(req))
	wantCode(t, err, connect.CodeNotFound)
}

func TestGetBalances(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	f.add(t, f.alice, &api.AddExpenseRequest{Description: "Rent share", Amount: amount("90"), Date: "2026-03-01", Category: models.CategoryRent})
	f.add(t, f.bob, &api.AddExpenseRequest{Description: "Food", Amount: amount("30"), Date: "2026-03-10", Category: models.CategoryFood})
	f.add(t, f.bob, &api.AddExpenseRequest{Description: "April", Amount: amount("999"), Date: "2026-04-01"})

	resp, err := f.carol.expenses.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupID: f.group.ID, Month: "2026-03"}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}

	if !resp.Msg.TotalExpense.Equal(dec("120")) {
		t.Errorf("total: expected 120, got %s", resp.Msg.TotalExpense)
	}
	if !resp.Msg.SharePerPerson.Equal(dec("40")) {
		t.Errorf("share: expected 40, got %s", resp.Msg.SharePerPerson)
	}

	want := map[string]struct{ paid, balance string }{
		f.alice.userID: {"90", "50"},
		f.bob.userID:   {"30", "-10"},
		f.carol.userID: {"0", "-40"},
	}
	if len(resp.Msg.Balances) != len(want) {
		t.Fatalf("expected %d balances, got %d", len(want), len(resp.Msg.Balances))
	}
	for _, b := range resp.Msg.Balances {
		w, ok := want[b.UserID]
		if !ok {
			t.Errorf("unexpected member %s", b.UserID)
			continue
		}
		if !b.Paid.Equal(dec(w.paid)) || !b.Balance.Equal(dec(w.balance)) {
			t.Errorf("%s: expected paid %s balance %s, got %s / %s", b.Name, w.paid, w.balance, b.Paid, b.Balance)
		}
	}

	if len(resp.Msg.Categories) != 2 || resp.Msg.Categories[0].Label != models.CategoryRent {
		t.Errorf("categories: expected Rent first of 2, got %+v", resp.Msg.Categories)
	}

	empty, err := f.carol.expenses.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupID: f.group.ID, Month: "2025-01"}))
	if err != nil {
		t.Fatalf("GetBalances for an empty month failed: %v", err)
	}
	if !empty.Msg.TotalExpense.IsZero() || len(empty.Msg.Balances) != 3 {
		t.Errorf("empty month: expected zero total and 3 zero balances, got %+v", empty.Msg)
	}

	_, err = f.carol.expenses.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupID: f.group.ID}))
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestGetSettlement(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	f.add(t, f.alice, &api.AddExpenseRequest{Description: "Rent share", Amount: amount("90"), Date: "2026-03-01"})
	f.add(t, f.bob, &api.AddExpenseRequest{Description: "Food", Amount: amount("30"), Date: "2026-03-10"})

	req := &api.GetSettlementRequest{GroupID: f.group.ID, Month: "2026-03"}
	resp, err := f.bob.expenses.GetSettlement(ctx, connect.NewRequest(req))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	s := resp.Msg.Settlement
	if s.Status != models.SettlementPending {
		t.Errorf("status: expected pending, got %s", s.Status)
	}

	// Carol owes 40 and Bob owes 10, both to Alice. Largest debt goes first.
	want := []struct{ from, to, amount string }{
		{f.carol.userID, f.alice.userID, "40"},
		{f.bob.userID, f.alice.userID, "10"},
	}
	if len(s.Transactions) != len(want) {
		t.Fatalf("expected %d transfers, got %+v", len(want), s.Transactions)
	}
	for i, w := range want {
		tr := s.Transactions[i]
		if tr.From != w.from || tr.To != w.to || !tr.Amount.Equal(dec(w.amount)) {
			t.Errorf("transfer %d: expected %s -> %s %s, got %s -> %s %s", i, w.from, w.to, w.amount, tr.From, tr.To, tr.Amount)
		}
	}
	if s.Transactions[0].FromName != "Carol" || s.Transactions[0].ToName != "Alice" {
		t.Errorf("names: got %s -> %s", s.Transactions[0].FromName, s.Transactions[0].ToName)
	}

	// Settling keeps the status when the plan is recomputed.
	if _, err := f.alice.expenses.UpdateSettlementStatus(ctx, connect.NewRequest(&api.UpdateSettlementStatusRequest{
		GroupID: f.group.ID, Month: "2026-03", Status: models.SettlementSettled,
	})); err != nil {
		t.Fatalf("UpdateSettlementStatus failed: %v", err)
	}
	again, err := f.bob.expenses.GetSettlement(ctx, connect.NewRequest(req))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if again.Msg.Settlement.ID != s.ID {
		t.Errorf("expected the same settlement record, got %s and %s", s.ID, again.Msg.Settlement.ID)
	}
	if again.Msg.Settlement.Status != models.SettlementSettled {
		t.Errorf("status: expected settled to survive recompute, got %s", again.Msg.Settlement.Status)
	}
}

func TestGetSettlementRounding(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	f.add(t, f.alice, &api.AddExpenseRequest{Description: "Dinner", Amount: amount("100"), Date: "2026-05-05"})

	resp, err := f.carol.expenses.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{GroupID: f.group.ID, Month: "2026-05"}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	txs := resp.Msg.Settlement.Transactions
	if len(txs) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(txs))
	}
	for _, tr := range txs {
		if tr.To != f.alice.userID || !tr.Amount.Equal(dec("33.33")) {
			t.Errorf("expected 33.33 to Alice, got %s to %s", tr.Amount, tr.ToName)
		}
	}
	// Equal debts are ordered by member id.
	if txs[0].From > txs[1].From {
		t.Errorf("expected debtors in id order, got %s then %s", txs[0].From, txs[1].From)
	}
}

func TestBalancesAfterPayerLeaves(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()

	e := f.add(t, f.carol, &api.AddExpenseRequest{Description: "Internet", Amount: amount("90"), Date: "2026-07-03"})
	if _, err := f.alice.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{
		GroupID: f.group.ID, UserID: f.carol.userID,
	})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	list, err := f.alice.expenses.ListExpenses(ctx, connect.NewRequest(&api.ListExpensesRequest{GroupID: f.group.ID, Month: "2026-07"}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 1 || list.Msg.Expenses[0].ID != e.ID || list.Msg.Expenses[0].PayerID != f.carol.userID {
		t.Fatalf("expected the departed member's expense to stay, got %+v", list.Msg.Expenses)
	}

	balances, err := f.bob.expenses.GetBalances(ctx, connect.NewRequest(&api.GetBalancesRequest{GroupID: f.group.ID, Month: "2026-07"}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if !balances.Msg.TotalExpense.Equal(dec("90")) {
		t.Errorf("total: expected 90, got %s", balances.Msg.TotalExpense)
	}
	if !balances.Msg.SharePerPerson.Equal(dec("45")) {
		t.Errorf("share: expected 45 across the current roster, got %s", balances.Msg.SharePerPerson)
	}
	if len(balances.Msg.Balances) != 2 {
		t.Fatalf("expected balances for the 2 remaining members, got %d", len(balances.Msg.Balances))
	}
	for _, b := range balances.Msg.Balances {
		if b.UserID == f.carol.userID {
			t.Errorf("departed member should not have a balance")
		}
		if !b.Paid.IsZero() || !b.Balance.Equal(dec("-45")) {
			t.Errorf("%s: expected paid 0 balance -45, got %s / %s", b.Name, b.Paid, b.Balance)
		}
	}

	// Nobody left in the group is owed, so there is no one to pay.
	settlement, err := f.bob.expenses.GetSettlement(ctx, connect.NewRequest(&api.GetSettlementRequest{GroupID: f.group.ID, Month: "2026-07"}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if len(settlement.Msg.Settlement.Transactions) != 0 {
		t.Errorf("expected no transfers, got %+v", settlement.Msg.Settlement.Transactions)
	}
}

func TestGetSettlementEmptyMonth(t *testing.T) {
	f := setupFlat(t)

	resp, err := f.alice.expenses.GetSettlement(context.Background(), connect.NewRequest(&api.GetSettlementRequest{GroupID: f.group.ID, Month: "2026-06"}))
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if len(resp.Msg.Settlement.Transactions) != 0 {
		t.Errorf("expected no transfers, got %+v", resp.Msg.Settlement.Transactions)
	}
}

func TestUpdateSettlementStatus(t *testing.T) {
	f := setupFlat(t)
	ctx := context.Background()
	outsider := f.env.signup("Mallory", "mallory@example.com", "")

	update := func(who *session, status string) (*api.Settlement, error) {
		resp, err := who.expenses.UpdateSettlementStatus(ctx, connect.NewRequest(&api.UpdateSettlementStatusRequest{
			GroupID: f.group.ID,
			Month:   "2026-07",
			Status:  status,
		}))
		if err != nil {
			return nil, err
		}
		return resp.Msg.Settlement, nil
	}

	// Unknown status on a missing record creates an empty pending one.
	s, err := update(f.bob, "paid")
	if err != nil {
		t.Fatalf("UpdateSettlementStatus failed: %v", err)
	}
	if s.Status != models.SettlementPending || len(s.Transactions) != 0 {
		t.Errorf("expected empty pending record, got %+v", s)
	}

	before := time.Now().Unix()
	s, err = update(f.bob, models.SettlementSettled)
	if err != nil {
		t.Fatalf("UpdateSettlementStatus failed: %v", err)
	}
	if s.Status != models.SettlementSettled || s.SettledAt < before {
		t.Errorf("expected settled with settled_at >= %d, got %+v", before, s)
	}

	s, err = update(f.bob, "bogus")
	if err != nil {
		t.Fatalf("UpdateSettlementStatus failed: %v", err)
	}
	if s.Status != models.SettlementSettled {
		t.Errorf("unknown status should be ignored, got %s", s.Status)
	}

	s, err = update(f.alice, models.SettlementArchived)
	if err != nil {
		t.Fatalf("UpdateSettlementStatus failed: %v", err)
	}
	if s.Status != models.SettlementArchived {
		t.Errorf("expected archived, got %s", s.Status)
	}

	_, err = update(outsider, models.SettlementPending)
	wantCode(t, err, connect.CodePermissionDenied)
}
