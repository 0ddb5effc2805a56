package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/warbandhq/chapter-registry/internal/models"
)

const chapterColumns = `id, chapter_id, chapter_name, chapter_description, created_by, status, created_at, updated_at`

type ChapterStore struct {
	pool *pgxpool.Pool
}

func NewChapterStore(pool *pgxpool.Pool) *ChapterStore {
	return &ChapterStore{pool: pool}
}

func scanChapter(row pgx.Row) (*models.Chapter, error) {
	var ch models.Chapter
	err := row.Scan(
		&ch.ID,
		&ch.ChapterID,
		&ch.Name,
		&ch.Description,
		&ch.CreatedBy,
		&ch.Status,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create inserts the chapter exactly as given. The numeric id is supplied
// by the caller (max+1, computed by the service), not by the sequence.
func (s *ChapterStore) Create(ctx context.Context, ch *models.Chapter) (*models.Chapter, error) {
	query := `
		INSERT INTO chapters (id, chapter_id, chapter_name, chapter_description, created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + chapterColumns

	stored, err := scanChapter(s.pool.QueryRow(ctx, query,
		ch.ID, ch.ChapterID, ch.Name, ch.Description, ch.CreatedBy, ch.Status, ch.CreatedAt, ch.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert chapter: %w", err)
	}
	return stored, nil
}

func (s *ChapterStore) MaxID(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(id), 0) FROM chapters`

	var max int
	if err := s.pool.QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("max chapter id: %w", err)
	}
	return max, nil
}

func (s *ChapterStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM chapters
			WHERE LOWER(chapter_name) = LOWER($1)
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check chapter name: %w", err)
	}
	return exists, nil
}

func (s *ChapterStore) ExistsByChapterID(ctx context.Context, chapterID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM chapters
			WHERE chapter_id = $1
		)`

	var exists bool
	if err := s.pool.QueryRow(ctx, query, chapterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check chapter id: %w", err)
	}
	return exists, nil
}

func (s *ChapterStore) GetByChapterID(ctx context.Context, chapterID string) (*models.Chapter, error) {
	query := `SELECT ` + chapterColumns + ` FROM chapters WHERE chapter_id = $1`

	ch, err := scanChapter(s.pool.QueryRow(ctx, query, chapterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}
	return ch, nil
}

func (s *ChapterStore) List(ctx context.Context, limit, offset int) ([]models.ChapterSummary, error) {
	query := `
		SELECT chapter_id, chapter_name
		FROM chapters
		ORDER BY chapter_name ASC
		LIMIT $1 OFFSET $2`

	rows, err := s.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := make([]models.ChapterSummary, 0)
	for rows.Next() {
		var ch models.ChapterSummary
		if err := rows.Scan(&ch.ChapterID, &ch.Name); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	return chapters, nil
}

func (s *ChapterStore) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM chapters`

	var total int
	if err := s.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return total, nil
}
