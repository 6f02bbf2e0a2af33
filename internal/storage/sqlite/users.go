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

const userColumns = "id, name, email, mobile, password_hash, role, is_active, created_at"

// CreateUser inserts a new user into the database.
// Returns storage.ErrConflict if the email or mobile is already registered.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	if user.Role == "" {
		user.Role = models.UserRoleUser
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, nullable(user.Mobile), user.PasswordHash,
		user.Role, user.Active, user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user %s", storage.ErrConflict, user.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by their (normalized) email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", models.NormalizeEmail(email))
}

// GetUserByMobile retrieves a user by their mobile number.
func (s *SQLiteStore) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return s.getUser(ctx, "mobile", mobile)
}

// UpdateUser overwrites the editable fields of an account.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, mobile = ?, role = ?, is_active = ? WHERE id = ?`,
		user.Name, user.Email, nullable(user.Mobile), user.Role, user.Active, user.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user %s", storage.ErrConflict, user.Email)
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return expectRow(result, "user", user.ID)
}

// ListUsers returns one page of accounts, newest first, and the number of matches.
func (s *SQLiteStore) ListUsers(ctx context.Context, filter storage.UserFilter) ([]*models.User, int, error) {
	where := " WHERE 1 = 1"
	var args []any
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		where += ` AND (name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR mobile LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern, pattern)
	}
	switch filter.Status {
	case storage.StatusActive:
		where += " AND is_active = 1"
	case storage.StatusInactive:
		where += " AND is_active = 0"
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query, args := page(`SELECT `+userColumns+` FROM users`+where+` ORDER BY created_at DESC, id`, args, filter.Limit, filter.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// getUser looks a user up by one unique column. column is never user input.
func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`,
		value,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", storage.ErrNotFound, value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var mobile sql.NullString

	if err := row.Scan(&user.ID, &user.Name, &user.Email, &mobile, &user.PasswordHash,
		&user.Role, &user.Active, &user.CreatedAt); err != nil {
		return nil, err
	}

	user.Mobile = mobile.String
	return user, nil
}
