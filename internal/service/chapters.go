package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/warbandhq/chapter-registry/internal/models"
	"github.com/warbandhq/chapter-registry/internal/repository"
)

const (
	chapterIDLength  = 6
	chapterIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultPageSize applies when the list request carries no limit.
	DefaultPageSize = 50
)

// NewChapterID generates a random 6-character lowercase alphanumeric
// chapter identifier.
func NewChapterID() string {
	buf := make([]byte, chapterIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = chapterIDCharset[int(b)%len(chapterIDCharset)]
	}
	return string(buf)
}

// Chapters implements the chapter workflows over the chapter repository.
type Chapters struct {
	repo repository.ChapterRepository
}

func NewChapters(repo repository.ChapterRepository) *Chapters {
	return &Chapters{repo: repo}
}

// Create registers a new chapter. The name must be unused
// (case-insensitive) and the generated identifier must not collide with an
// existing one; a collision fails the request rather than regenerating.
// The numeric id is assigned as current max plus one, not by the store.
func (s *Chapters) Create(ctx context.Context, name, description, createdBy string) (*models.Chapter, error) {
	if name == "" || description == "" || createdBy == "" {
		return nil, fmt.Errorf("Chapter_Name, Chapter_Description and Created_By are required: %w", ErrValidation)
	}

	nameTaken, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check chapter name: %w", err)
	}
	if nameTaken {
		return nil, fmt.Errorf("create chapter %q: %w", name, ErrChapterNameTaken)
	}

	chapterID := NewChapterID()
	idTaken, err := s.repo.ExistsByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("check chapter id: %w", err)
	}
	if idTaken {
		return nil, fmt.Errorf("create chapter %q: %w", name, ErrChapterIDCollision)
	}

	maxID, err := s.repo.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next chapter id: %w", err)
	}

	now := time.Now().UTC()
	chapter, err := s.repo.Create(ctx, &models.Chapter{
		ID:          maxID + 1,
		ChapterID:   chapterID,
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create chapter: %w", err)
	}
	return chapter, nil
}

// List returns one alphabetical page of chapters plus the pagination
// envelope. Page defaults to 1 and limit to DefaultPageSize; a page past
// the end yields an empty list with the correct total.
func (s *Chapters) List(ctx context.Context, page, limit int) ([]models.ChapterSummary, models.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := (page - 1) * limit

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count chapters: %w", err)
	}

	chapters, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list chapters: %w", err)
	}

	return chapters, models.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Count returns the total number of chapters.
func (s *Chapters) Count(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return total, nil
}

// CheckName reports whether a chapter name is already in use,
// case-insensitively, with a human-readable message.
func (s *Chapters) CheckName(ctx context.Context, name string) (bool, string, error) {
	if name == "" {
		return false, "", fmt.Errorf("Chapter_Name is required: %w", ErrValidation)
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return false, "", fmt.Errorf("check chapter name: %w", err)
	}
	if exists {
		return true, "Chapter name already exists", nil
	}
	return false, "Chapter name is available", nil
}

// Get returns the full chapter record for a public chapter id.
func (s *Chapters) Get(ctx context.Context, chapterID string) (*models.Chapter, error) {
	chapter, err := s.repo.GetByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("get chapter %q: %w", chapterID, err)
	}
	if chapter == nil {
		return nil, fmt.Errorf("get chapter %q: %w", chapterID, ErrChapterNotFound)
	}
	return chapter, nil
}
