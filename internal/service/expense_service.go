package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmonth/internal/calculator"
	"github.com/mmynk/splitmonth/internal/metrics"
	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
	"github.com/mmynk/splitmonth/pkg/api"
)

// dateLayout is the wire format of expense dates.
const dateLayout = "2006-01-02"

// ExpenseService implements the Connect ExpenseService: expenses, monthly
// balances and settlement plans. Every call requires group membership.
type ExpenseService struct {
	store storage.Store
	now   func() time.Time
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

// AddExpense records an expense in a group.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddExpense request received", "group_id", req.Msg.GroupID, "user_id", userID)

	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID: group.ID,
		PayerID: userID,
		AddedBy: userID,
	}
	if req.Msg.Amount == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount required"))
	}
	date := s.today()
	if req.Msg.Date != "" {
		date, err = parseDate(req.Msg.Date)
		if err != nil {
			return nil, err
		}
	}
	if req.Msg.PayerID != "" {
		expense.PayerID = req.Msg.PayerID
	}
	if err := checkPayer(group, expense.PayerID); err != nil {
		return nil, err
	}
	if err := applyExpenseFields(expense, req.Msg.Description, *req.Msg.Amount, date, req.Msg.Category, req.Msg.CustomCategory); err != nil {
		return nil, err
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Expense added",
		"group_id", group.ID,
		"expense_id", expense.ID,
		"month", expense.Month,
		"amount", expense.Amount.String(),
	)

	return connect.NewResponse(&api.ExpenseResponse{
		Expense: toAPIExpense(expense, group.MemberNames()),
	}), nil
}

// ListExpenses returns a group's expenses, optionally for one month.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.Month != "" {
		if err := validateMonth(req.Msg.Month); err != nil {
			return nil, err
		}
	}
	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, group.ID, req.Msg.Month)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	names := group.MemberNames()
	apiExpenses := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		apiExpenses[i] = toAPIExpense(e, names)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: apiExpenses}), nil
}

// ListMonths returns the months that have expenses, newest first.
func (s *ExpenseService) ListMonths(ctx context.Context, req *connect.Request[api.ListMonthsRequest]) (*connect.Response[api.ListMonthsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	months, err := s.store.ListMonths(ctx, group.ID)
	if err != nil {
		slog.Error("ListMonths failed", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListMonthsResponse{Months: months}), nil
}

// UpdateExpense changes the fields set in the request.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	expense, err := s.store.GetExpense(ctx, group.ID, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError(err)
	}

	description := expense.Description
	if req.Msg.Description != "" {
		description = req.Msg.Description
	}
	amount := expense.Amount
	if req.Msg.Amount != nil {
		amount = *req.Msg.Amount
	}
	date := expense.Date
	if req.Msg.Date != "" {
		date, err = parseDate(req.Msg.Date)
		if err != nil {
			return nil, err
		}
	}
	// Unknown categories keep the stored one; only AddExpense falls back to Misc.
	category, custom := expense.Category, expense.CustomCategory
	if slices.Contains(models.Categories, req.Msg.Category) {
		category, custom = req.Msg.Category, req.Msg.CustomCategory
	}
	// A payer who has since left the group stays on their old expenses.
	if req.Msg.PayerID != "" {
		if err := checkPayer(group, req.Msg.PayerID); err != nil {
			return nil, err
		}
		expense.PayerID = req.Msg.PayerID
	}
	if err := applyExpenseFields(expense, description, amount, date, category, custom); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Expense updated", "group_id", group.ID, "expense_id", expense.ID, "month", expense.Month)
	return connect.NewResponse(&api.ExpenseResponse{
		Expense: toAPIExpense(expense, group.MemberNames()),
	}), nil
}

// DeleteExpense removes an expense from a group.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, group.ID, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, storeError(err)
	}

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// GetBalances returns the balance sheet of one group-month.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	group, expenses, err := s.loadMonth(ctx, req.Msg.GroupID, req.Msg.Month, userID)
	if err != nil {
		return nil, err
	}

	result := calculator.ComputeBalances(toBalanceInputs(expenses), group.MemberIDs())
	names := group.MemberNames()

	balances := make([]*api.MemberBalance, len(result.Members))
	for i, id := range result.Members {
		balances[i] = &api.MemberBalance{
			UserID:  id,
			Name:    displayName(names, id),
			Paid:    result.PaidByMember[id].Round(2),
			Balance: result.NetBalance[id].Round(2),
		}
	}

	categoryInputs := make([]calculator.ExpenseForCategory, len(expenses))
	for i, e := range expenses {
		categoryInputs[i] = calculator.ExpenseForCategory{
			Amount:         e.Amount,
			Category:       e.Category,
			CustomCategory: e.CustomCategory,
		}
	}
	totals := calculator.SummarizeByCategory(categoryInputs)
	categories := make([]*api.CategoryTotal, len(totals))
	for i, c := range totals {
		categories[i] = &api.CategoryTotal{Label: c.Label, Amount: c.Amount}
	}

	slog.Debug("GetBalances successful",
		"group_id", group.ID,
		"month", req.Msg.Month,
		"expenses_count", len(expenses),
		"total", result.TotalExpense.String(),
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		Month:          req.Msg.Month,
		TotalExpense:   result.TotalExpense.Round(2),
		SharePerPerson: result.SharePerPerson.Round(2),
		Balances:       balances,
		Categories:     categories,
	}), nil
}

// GetSettlement recomputes the transfers that settle a group-month, stores
// them and returns the stored settlement.
func (s *ExpenseService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	group, expenses, err := s.loadMonth(ctx, req.Msg.GroupID, req.Msg.Month, userID)
	if err != nil {
		return nil, err
	}

	result := calculator.ComputeBalances(toBalanceInputs(expenses), group.MemberIDs())
	transfers := calculator.MinimizeSettlement(result.NetBalance)

	txs := make([]models.SettlementTransaction, len(transfers))
	for i, t := range transfers {
		txs[i] = models.SettlementTransaction{
			FromUserID: t.From,
			ToUserID:   t.To,
			Amount:     t.Amount,
		}
	}

	settlement, err := s.store.SaveSettlementTransactions(ctx, group.ID, req.Msg.Month, txs)
	if err != nil {
		slog.Error("GetSettlement failed to save", "group_id", group.ID, "month", req.Msg.Month, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	metrics.ObserveSettlement(len(transfers), len(calculator.Unsettled(result.NetBalance)))
	slog.Info("Settlement computed",
		"group_id", group.ID,
		"month", req.Msg.Month,
		"transfers", len(transfers),
		"status", settlement.Status,
	)

	return connect.NewResponse(&api.SettlementResponse{
		Settlement: toAPISettlement(settlement, group.MemberNames()),
	}), nil
}

// UpdateSettlementStatus marks a group-month pending, settled or archived.
// Unknown statuses leave the settlement as it is.
func (s *ExpenseService) UpdateSettlementStatus(ctx context.Context, req *connect.Request[api.UpdateSettlementStatusRequest]) (*connect.Response[api.SettlementResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateSettlementStatus request received",
		"group_id", req.Msg.GroupID,
		"month", req.Msg.Month,
		"status", req.Msg.Status,
	)

	if err := validateMonth(req.Msg.Month); err != nil {
		return nil, err
	}
	group, err := loadMemberGroup(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, err
	}

	var settlement *models.Settlement
	if models.IsValidSettlementStatus(req.Msg.Status) {
		var settledAt int64
		if req.Msg.Status == models.SettlementSettled {
			settledAt = s.now().Unix()
		}
		settlement, err = s.store.SetSettlementStatus(ctx, group.ID, req.Msg.Month, req.Msg.Status, settledAt)
	} else {
		slog.Warn("Ignoring unknown settlement status", "status", req.Msg.Status)
		settlement, err = s.store.GetSettlement(ctx, group.ID, req.Msg.Month)
		if errors.Is(err, storage.ErrNotFound) {
			settlement, err = s.store.SetSettlementStatus(ctx, group.ID, req.Msg.Month, models.SettlementPending, 0)
		}
	}
	if err != nil {
		slog.Error("UpdateSettlementStatus failed", "group_id", group.ID, "month", req.Msg.Month, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.SettlementResponse{
		Settlement: toAPISettlement(settlement, group.MemberNames()),
	}), nil
}

// loadMonth checks membership and returns the group with one month of expenses.
func (s *ExpenseService) loadMonth(ctx context.Context, groupID, month, userID string) (*models.Group, []*models.Expense, error) {
	if err := validateMonth(month); err != nil {
		return nil, nil, err
	}
	group, err := loadMemberGroup(ctx, s.store, groupID, userID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, group.ID, month)
	if err != nil {
		slog.Error("Failed to list expenses", "group_id", group.ID, "month", month, "error", err)
		return nil, nil, connect.NewError(connect.CodeInternal, err)
	}
	return group, expenses, nil
}

// today is the current calendar date at UTC midnight.
func (s *ExpenseService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// checkPayer rejects payers outside the current roster.
func checkPayer(group *models.Group, payerID string) error {
	if _, ok := group.FindMember(payerID); !ok {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("payer must be a member of the group"))
	}
	return nil
}

// applyExpenseFields validates the editable fields and stores them on expense.
func applyExpenseFields(expense *models.Expense, description string, amount decimal.Decimal, date time.Time, category, custom string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("description required"))
	}
	amount = amount.Round(2)
	if amount.LessThan(models.MinExpenseAmount) {
		return connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("amount must be at least %s", models.MinExpenseAmount.StringFixed(2)))
	}
	expense.Description = description
	expense.Amount = amount
	expense.Date = date
	expense.Month = calculator.MonthOf(date)
	expense.Category = models.NormalizeCategory(category)
	expense.CustomCategory = ""
	if expense.Category == models.CategoryCustom {
		expense.CustomCategory = strings.TrimSpace(custom)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s))
	}
	return date, nil
}

func validateMonth(month string) error {
	if month == "" {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("month required"))
	}
	if _, err := calculator.ParseMonth(month); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

func toBalanceInputs(expenses []*models.Expense) []calculator.ExpenseForBalance {
	inputs := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		inputs[i] = calculator.ExpenseForBalance{Amount: e.Amount, PayerID: e.PayerID}
	}
	return inputs
}
