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

// Posts retrieves all posts.
func (c *Client) Posts(ctx context.Context) ([]*storage.Post, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, content, author_id
		FROM posts
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// Post retrieves a post by id, or (nil, nil) when absent.
func (c *Client) Post(ctx context.Context, id string) (*storage.Post, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, title, content, author_id
		FROM posts
		WHERE id = $1
	`, id)

	var p storage.Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// PostsByAuthor retrieves all posts authored by the given user.
func (c *Client) PostsByAuthor(ctx context.Context, authorID string) ([]*storage.Post, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, content, author_id
		FROM posts
		WHERE author_id = $1
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CreatePost inserts a post and returns the new record.
func (c *Client) CreatePost(ctx context.Context, params storage.CreatePostParams) (*storage.Post, error) {
	var p storage.Post
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, title, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, content, author_id
	`, uuid.New().String(), params.Title, params.Content, params.AuthorID).
		Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", storeErr(err))
	}
	return &p, nil
}

// UpdatePost applies a partial update and returns the updated record.
func (c *Client) UpdatePost(ctx context.Context, id string, params storage.ChangePostParams) (*storage.Post, error) {
	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if params.Title != nil {
		args = append(args, *params.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if params.Content != nil {
		args = append(args, *params.Content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if params.AuthorID != nil {
		args = append(args, *params.AuthorID)
		set = append(set, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if len(set) == 0 {
		p, err := c.Post(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, storage.ErrNotFound
		}
		return p, nil
	}

	args = append(args, id)
	var p storage.Post
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE posts SET %s
		WHERE id = $%d
		RETURNING id, title, content, author_id
	`, strings.Join(set, ", "), len(args)), args...).
		Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", storeErr(err))
	}
	return &p, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanPosts(rows *sql.Rows) ([]*storage.Post, error) {
	out := make([]*storage.Post, 0)
	for rows.Next() {
		var p storage.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
