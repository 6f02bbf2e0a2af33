package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
)

// dateLayout is how expense dates are stored.
const dateLayout = "2006-01-02"

const expenseColumns = "id, group_id, description, amount, payer_id, expense_date, month, category, custom_category, added_by, created_at"

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount, expense.PayerID,
		expense.Date.Format(dateLayout), expense.Month, expense.Category, nullable(expense.CustomCategory),
		expense.AddedBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	s.touchGroup(ctx, expense.GroupID, expense.CreatedAt)
	return nil
}

// GetExpense retrieves an expense by ID, scoped to its group.
func (s *SQLiteStore) GetExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListExpenses retrieves a group's expenses, optionally filtered to one month.
func (s *SQLiteStore) ListExpenses(ctx context.Context, groupID, month string) ([]*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = ?`
	args := []any{groupID}
	if month != "" {
		query += ` AND month = ?`
		args = append(args, month)
	}
	query += ` ORDER BY expense_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// ListMonths returns the distinct months a group has expenses in, newest first.
func (s *SQLiteStore) ListMonths(ctx context.Context, groupID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT month FROM expenses WHERE group_id = ? ORDER BY month DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list months: %w", err)
	}
	defer rows.Close()

	months := []string{}
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, month)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate months: %w", err)
	}

	return months, nil
}

// UpdateExpense overwrites the mutable fields of an existing expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount = ?, payer_id = ?, expense_date = ?, month = ?, category = ?, custom_category = ?
		 WHERE id = ? AND group_id = ?`,
		expense.Description, expense.Amount, expense.PayerID, expense.Date.Format(dateLayout), expense.Month,
		expense.Category, nullable(expense.CustomCategory),
		expense.ID, expense.GroupID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return expectRow(result, "expense", expense.ID)
}

// DeleteExpense removes an expense from its group.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, groupID, expenseID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND group_id = ?",
		expenseID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectRow(result, "expense", expenseID)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	var date string
	var custom sql.NullString

	if err := row.Scan(&e.ID, &e.GroupID, &e.Description, &e.Amount, &e.PayerID,
		&date, &e.Month, &e.Category, &custom, &e.AddedBy, &e.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	e.Date = parsed
	e.CustomCategory = custom.String

	return e, nil
}
