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

// GetSettlement retrieves the settlement snapshot for a group-month.
func (s *SQLiteStore) GetSettlement(ctx context.Context, groupID, month string) (*models.Settlement, error) {
	return getSettlement(ctx, s.db, groupID, month)
}

// SaveSettlementTransactions replaces the transfers of a group-month snapshot,
// creating a pending snapshot first if there is none.
func (s *SQLiteStore) SaveSettlementTransactions(ctx context.Context, groupID, month string, txs []models.SettlementTransaction) (*models.Settlement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	settlementID, err := ensureSettlement(ctx, tx, groupID, month, now)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM settlement_transactions WHERE settlement_id = ?", settlementID,
	); err != nil {
		return nil, fmt.Errorf("failed to clear settlement transactions: %w", err)
	}

	for i, t := range txs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlement_transactions (settlement_id, position, from_user_id, to_user_id, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			settlementID, i, t.FromUserID, t.ToUserID, t.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert settlement transaction: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE settlements SET updated_at = ? WHERE id = ?", now, settlementID,
	); err != nil {
		return nil, fmt.Errorf("failed to update settlement: %w", err)
	}

	settlement, err := getSettlement(ctx, tx, groupID, month)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settlement, nil
}

// SetSettlementStatus updates the status of a group-month snapshot,
// creating an empty pending snapshot first if there is none.
func (s *SQLiteStore) SetSettlementStatus(ctx context.Context, groupID, month, status string, settledAt int64) (*models.Settlement, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	settlementID, err := ensureSettlement(ctx, tx, groupID, month, now)
	if err != nil {
		return nil, err
	}

	if settledAt != 0 {
		_, err = tx.ExecContext(ctx,
			"UPDATE settlements SET status = ?, settled_at = ?, updated_at = ? WHERE id = ?",
			status, settledAt, now, settlementID,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE settlements SET status = ?, updated_at = ? WHERE id = ?",
			status, now, settlementID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update settlement status: %w", err)
	}

	settlement, err := getSettlement(ctx, tx, groupID, month)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return settlement, nil
}

// ensureSettlement returns the ID of the group-month snapshot, inserting a pending one if needed.
func ensureSettlement(ctx context.Context, tx *sql.Tx, groupID, month string, now int64) (string, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, month, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, month) DO NOTHING`,
		uuid.New().String(), groupID, month, models.SettlementPending, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert settlement: %w", err)
	}

	var id string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM settlements WHERE group_id = ? AND month = ?", groupID, month,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to get settlement id: %w", err)
	}
	return id, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func getSettlement(ctx context.Context, q querier, groupID, month string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var settledAt sql.NullInt64

	err := q.QueryRowContext(ctx,
		`SELECT id, group_id, month, status, settled_at, created_at, updated_at
		 FROM settlements WHERE group_id = ? AND month = ?`,
		groupID, month,
	).Scan(&settlement.ID, &settlement.GroupID, &settlement.Month, &settlement.Status,
		&settledAt, &settlement.CreatedAt, &settlement.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: settlement %s/%s", storage.ErrNotFound, groupID, month)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	settlement.SettledAt = settledAt.Int64

	rows, err := q.QueryContext(ctx,
		`SELECT from_user_id, to_user_id, amount FROM settlement_transactions
		 WHERE settlement_id = ? ORDER BY position`,
		settlement.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement transactions: %w", err)
	}
	defer rows.Close()

	settlement.Transactions = []models.SettlementTransaction{}
	for rows.Next() {
		var t models.SettlementTransaction
		if err := rows.Scan(&t.FromUserID, &t.ToUserID, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement transaction: %w", err)
		}
		settlement.Transactions = append(settlement.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement transactions: %w", err)
	}

	return settlement, nil
}
