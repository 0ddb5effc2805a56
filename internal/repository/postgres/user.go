package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warbandhq/chapter-registry/internal/models"
)

const userColumns = `id, user_id, google_user_id, email, role, status, created_at, updated_at`

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.UserID,
		&u.GoogleUserID,
		&u.Email,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row. The numeric id, status default and
// timestamps come from the database.
func (s *UserStore) Create(ctx context.Context, publicID uuid.UUID, googleUserID, email, role string) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, google_user_id, email, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'pending', now(), now())
		RETURNING ` + userColumns

	u, err := scanUser(s.pool.QueryRow(ctx, query, publicID, googleUserID, email, role))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *UserStore) ExistsByEmailOrGoogleID(ctx context.Context, email, googleUserID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1 OR google_user_id = $2
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, email, googleUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (s *UserStore) ExistsByPublicID(ctx context.Context, publicID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE user_id = $1
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, publicID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getBy(ctx, `email = $1`, email)
}

func (s *UserStore) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.User, error) {
	return s.getBy(ctx, `user_id = $1`, publicID)
}

func (s *UserStore) GetByGoogleID(ctx context.Context, googleUserID string) (*models.User, error) {
	return s.getBy(ctx, `google_user_id = $1`, googleUserID)
}

func (s *UserStore) getBy(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	u, err := scanUser(s.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
