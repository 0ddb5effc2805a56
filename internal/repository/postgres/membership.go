package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warbandhq/chapter-registry/internal/models"
)

const membershipColumns = `id, user_id, chapter_id, chapter_rank, warrior_name, status, created_at, updated_at`

type MembershipStore struct {
	pool *pgxpool.Pool
}

func NewMembershipStore(pool *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{pool: pool}
}

// Create inserts a membership and returns the stored row with the
// store-assigned id and timestamps.
func (s *MembershipStore) Create(ctx context.Context, userID uuid.UUID, chapterID, rank, warriorName string) (*models.Membership, error) {
	query := `
		INSERT INTO memberships (user_id, chapter_id, chapter_rank, warrior_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'pending', now(), now())
		RETURNING ` + membershipColumns

	var m models.Membership
	err := s.pool.QueryRow(ctx, query, userID, chapterID, rank, warriorName).Scan(
		&m.ID,
		&m.UserID,
		&m.ChapterID,
		&m.Rank,
		&m.WarriorName,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	return &m, nil
}

func (s *MembershipStore) ExistsPair(ctx context.Context, userID uuid.UUID, chapterID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE user_id = $1 AND chapter_id = $2
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, userID, chapterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check membership pair: %w", err)
	}
	return exists, nil
}

// ExistsWarriorName checks the whole memberships table, not one chapter.
func (s *MembershipStore) ExistsWarriorName(ctx context.Context, warriorName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE LOWER(warrior_name) = LOWER($1)
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, warriorName).Scan(&exists); err != nil {
		return false, fmt.Errorf("check warrior name: %w", err)
	}
	return exists, nil
}

func (s *MembershipStore) ListByChapter(ctx context.Context, chapterID string) ([]models.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE chapter_id = $1
		ORDER BY warrior_name ASC`

	rows, err := s.pool.Query(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	memberships := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ChapterID,
			&m.Rank,
			&m.WarriorName,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	return memberships, nil
}

func (s *MembershipStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MembershipWithChapter, error) {
	query := `
		SELECT m.id, m.user_id, m.chapter_id, m.chapter_rank, m.warrior_name, m.status,
		       m.created_at, m.updated_at, c.chapter_name, c.chapter_description
		FROM memberships m
		JOIN chapters c ON c.chapter_id = m.chapter_id
		WHERE m.user_id = $1
		ORDER BY c.chapter_name ASC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}
	defer rows.Close()

	memberships := make([]models.MembershipWithChapter, 0)
	for rows.Next() {
		var m models.MembershipWithChapter
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.ChapterID,
			&m.Rank,
			&m.WarriorName,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.ChapterName,
			&m.ChapterDescription,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}

	return memberships, nil
}
