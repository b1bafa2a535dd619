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

const profileColumns = "id, is_male, year_of_birth, user_id, member_type_id"

// Profiles retrieves all profiles.
func (c *Client) Profiles(ctx context.Context) ([]*storage.Profile, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	out := make([]*storage.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Profile retrieves a profile by id, or (nil, nil) when absent.
func (c *Client) Profile(ctx context.Context, id string) (*storage.Profile, error) {
	return c.profileWhere(ctx, "id", id)
}

// ProfileByUserID retrieves the profile owned by the given user, or
// (nil, nil) when the user has none.
func (c *Client) ProfileByUserID(ctx context.Context, userID string) (*storage.Profile, error) {
	return c.profileWhere(ctx, "user_id", userID)
}

func (c *Client) profileWhere(ctx context.Context, column, value string) (*storage.Profile, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE `+column+` = $1
	`, value)

	var p storage.Profile
	err := row.Scan(&p.ID, &p.IsMale, &p.YearOfBirth, &p.UserID, &p.MemberTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a profile and returns the new record.
func (c *Client) CreateProfile(ctx context.Context, params storage.CreateProfileParams) (*storage.Profile, error) {
	var p storage.Profile
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, is_male, year_of_birth, user_id, member_type_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+profileColumns+`
	`, uuid.New().String(), params.IsMale, params.YearOfBirth, params.UserID, params.MemberTypeID).
		Scan(&p.ID, &p.IsMale, &p.YearOfBirth, &p.UserID, &p.MemberTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", storeErr(err))
	}
	return &p, nil
}

// UpdateProfile applies a partial update and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, id string, params storage.ChangeProfileParams) (*storage.Profile, error) {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if params.IsMale != nil {
		args = append(args, *params.IsMale)
		set = append(set, fmt.Sprintf("is_male = $%d", len(args)))
	}
	if params.YearOfBirth != nil {
		args = append(args, *params.YearOfBirth)
		set = append(set, fmt.Sprintf("year_of_birth = $%d", len(args)))
	}
	if params.MemberTypeID != nil {
		args = append(args, *params.MemberTypeID)
		set = append(set, fmt.Sprintf("member_type_id = $%d", len(args)))
	}
	if params.UserID != nil {
		args = append(args, *params.UserID)
		set = append(set, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if len(set) == 0 {
		p, err := c.Profile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, storage.ErrNotFound
		}
		return p, nil
	}

	args = append(args, id)
	var p storage.Profile
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE profiles SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), profileColumns), args...).
		Scan(&p.ID, &p.IsMale, &p.YearOfBirth, &p.UserID, &p.MemberTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", storeErr(err))
	}
	return &p, nil
}

// DeleteProfile removes a profile. Deleting a profile does not cascade to the
// user.
func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanProfile(rows *sql.Rows) (*storage.Profile, error) {
	var p storage.Profile
	if err := rows.Scan(&p.ID, &p.IsMale, &p.YearOfBirth, &p.UserID, &p.MemberTypeID); err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	return &p, nil
}
