package postgres

import (
	"context"
	"fmt"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// SubscribedToAuthors lists the users the given subscriber subscribes to.
func (c *Client) SubscribedToAuthors(ctx context.Context, subscriberID string) ([]*storage.User, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.balance
		FROM users u
		JOIN subscribers_on_authors s ON s.author_id = u.id
		WHERE s.subscriber_id = $1
	`, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed-to authors: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Subscribers lists the users subscribed to the given author.
func (c *Client) Subscribers(ctx context.Context, authorID string) ([]*storage.User, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.balance
		FROM users u
		JOIN subscribers_on_authors s ON s.subscriber_id = u.id
		WHERE s.author_id = $1
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Subscribe inserts a (subscriber, author) join row. A repeated pair violates
// the composite primary key and surfaces as ErrDuplicate.
func (c *Client) Subscribe(ctx context.Context, subscriberID, authorID string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO subscribers_on_authors (subscriber_id, author_id)
		VALUES ($1, $2)
	`, subscriberID, authorID)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", storeErr(err))
	}
	return nil
}

// Unsubscribe deletes the join row keyed by the composite pair.
func (c *Client) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM subscribers_on_authors
		WHERE subscriber_id = $1 AND author_id = $2
	`, subscriberID, authorID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
