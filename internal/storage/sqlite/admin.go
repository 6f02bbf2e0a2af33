package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/splitmonth/internal/models"
	"github.com/mmynk/splitmonth/internal/storage"
)

// CountStats returns the headline counts of the admin dashboard.
func (s *SQLiteStore) CountStats(ctx context.Context) (storage.Stats, error) {
	var stats storage.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = 1),
			(SELECT COUNT(*) FROM groups),
			(SELECT COUNT(*) FROM expenses)`,
	).Scan(&stats.Users, &stats.ActiveUsers, &stats.Groups, &stats.Expenses)
	if err != nil {
		return storage.Stats{}, fmt.Errorf("failed to count stats: %w", err)
	}
	return stats, nil
}

// ListAllGroups returns one page of every group, newest first, with members.
func (s *SQLiteStore) ListAllGroups(ctx context.Context, filter storage.GroupFilter) ([]*models.Group, int, error) {
	where := ""
	var args []any
	if filter.Search != "" {
		where = ` WHERE name LIKE ? ESCAPE '\'`
		args = append(args, likePattern(filter.Search))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query, args := page(`SELECT id FROM groups`+where+` ORDER BY created_at DESC, id`, args, filter.Limit, filter.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}

// ListAllExpenses returns one page of expenses across groups, most recently added first.
func (s *SQLiteStore) ListAllExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, int, error) {
	where := " WHERE 1 = 1"
	var args []any
	if filter.GroupID != "" {
		where += " AND group_id = ?"
		args = append(args, filter.GroupID)
	}
	if filter.PayerID != "" {
		where += " AND payer_id = ?"
		args = append(args, filter.PayerID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query, args := page(`SELECT `+expenseColumns+` FROM expenses`+where+` ORDER BY created_at DESC, id`, args, filter.Limit, filter.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, total, nil
}

// page appends LIMIT/OFFSET to query. A non-positive limit returns every row.
func page(query string, args []any, limit, offset int) (string, []any) {
	if limit <= 0 {
		return query, args
	}
	return query + " LIMIT ? OFFSET ?", append(args, limit, max(offset, 0))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s anywhere, with LIKE wildcards in s taken literally.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
