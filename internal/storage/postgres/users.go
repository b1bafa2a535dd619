package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// Users retrieves all users.
func (c *Client) Users(ctx context.Context) ([]*storage.User, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, balance
		FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// User retrieves a user by id, or (nil, nil) when absent.
func (c *Client) User(ctx context.Context, id string) (*storage.User, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, name, balance
		FROM users
		WHERE id = $1
	`, id)

	var u storage.User
	err := row.Scan(&u.ID, &u.Name, &u.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user and returns the new record.
func (c *Client) CreateUser(ctx context.Context, params storage.CreateUserParams) (*storage.User, error) {
	var u storage.User
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, balance)
		VALUES ($1, $2, $3)
		RETURNING id, name, balance
	`, uuid.New().String(), params.Name, params.Balance).Scan(&u.ID, &u.Name, &u.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", storeErr(err))
	}
	return &u, nil
}

// UpdateUser applies a partial update and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, id string, params storage.ChangeUserParams) (*storage.User, error) {
	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if params.Name != nil {
		args = append(args, *params.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Balance != nil {
		args = append(args, *params.Balance)
		set = append(set, fmt.Sprintf("balance = $%d", len(args)))
	}
	if len(set) == 0 {
		// Nothing to write; partial-update semantics still require the
		// record to exist.
		u, err := c.User(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, storage.ErrNotFound
		}
		return u, nil
	}

	args = append(args, id)
	var u storage.User
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING id, name, balance
	`, strings.Join(set, ", "), len(args)), args...).Scan(&u.ID, &u.Name, &u.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", storeErr(err))
	}
	return &u, nil
}

// DeleteUser removes a user; profile, posts and subscription rows go with it
// via ON DELETE CASCADE.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", storeErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUsers(rows *sql.Rows) ([]*storage.User, error) {
	out := make([]*storage.User, 0)
	for rows.Next() {
		var u storage.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
