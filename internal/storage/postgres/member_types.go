package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// MemberTypes retrieves all member types.
func (c *Client) MemberTypes(ctx context.Context) ([]*storage.MemberType, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, discount, posts_limit_per_month
		FROM member_types
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list member types: %w", err)
	}
	defer rows.Close()

	out := make([]*storage.MemberType, 0)
	for rows.Next() {
		var mt storage.MemberType
		if err := rows.Scan(&mt.ID, &mt.Discount, &mt.PostsLimitPerMonth); err != nil {
			return nil, fmt.Errorf("failed to scan member type: %w", err)
		}
		out = append(out, &mt)
	}
	return out, rows.Err()
}

// MemberType retrieves a member type by id, or (nil, nil) when absent.
func (c *Client) MemberType(ctx context.Context, id string) (*storage.MemberType, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, discount, posts_limit_per_month
		FROM member_types
		WHERE id = $1
	`, id)

	var mt storage.MemberType
	err := row.Scan(&mt.ID, &mt.Discount, &mt.PostsLimitPerMonth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member type: %w", err)
	}
	return &mt, nil
}
