package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/models"
	"github.com/warbandhq/chapter-registry/internal/repository"
)

// DefaultRank applies when a membership is created without an explicit rank.
const DefaultRank = "member"

// Memberships implements the membership workflows. It needs all three
// repositories: memberships for its own rows, users and chapters to
// validate references before inserting.
type Memberships struct {
	repo     repository.MembershipRepository
	users    repository.UserRepository
	chapters repository.ChapterRepository
}

func NewMemberships(repo repository.MembershipRepository, users repository.UserRepository, chapters repository.ChapterRepository) *Memberships {
	return &Memberships{repo: repo, users: users, chapters: chapters}
}

// Create enrolls a user in a chapter. The checks run in a fixed order and
// each short-circuits with its own error:
//
//  1. the user reference must resolve → ErrUserNotFound
//  2. the chapter reference must resolve → ErrChapterNotFound
//  3. the (user, chapter) pair must be new → ErrAlreadyMember
//  4. the warrior name must be unused anywhere, case-insensitively →
//     ErrWarriorNameTaken
func (s *Memberships) Create(ctx context.Context, userID uuid.UUID, chapterID, rank, warriorName string) (*models.Membership, error) {
	if userID == uuid.Nil || chapterID == "" || warriorName == "" {
		return nil, fmt.Errorf("User_ID, Chapter_Id and Warrior_Name are required: %w", ErrValidation)
	}
	if rank == "" {
		rank = DefaultRank
	}

	userExists, err := s.users.ExistsByPublicID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !userExists {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	chapterExists, err := s.chapters.ExistsByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("check chapter: %w", err)
	}
	if !chapterExists {
		return nil, fmt.Errorf("chapter %s: %w", chapterID, ErrChapterNotFound)
	}

	isMember, err := s.repo.ExistsPair(ctx, userID, chapterID)
	if err != nil {
		return nil, fmt.Errorf("check membership pair: %w", err)
	}
	if isMember {
		return nil, fmt.Errorf("user %s in chapter %s: %w", userID, chapterID, ErrAlreadyMember)
	}

	nameTaken, err := s.repo.ExistsWarriorName(ctx, warriorName)
	if err != nil {
		return nil, fmt.Errorf("check warrior name: %w", err)
	}
	if nameTaken {
		return nil, fmt.Errorf("warrior name %q: %w", warriorName, ErrWarriorNameTaken)
	}

	membership, err := s.repo.Create(ctx, userID, chapterID, rank, warriorName)
	if err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}
	return membership, nil
}

// ListByChapter returns a chapter's memberships ordered by warrior name.
func (s *Memberships) ListByChapter(ctx context.Context, chapterID string) ([]models.Membership, error) {
	exists, err := s.chapters.ExistsByChapterID(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("check chapter: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("chapter %s: %w", chapterID, ErrChapterNotFound)
	}

	memberships, err := s.repo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// ListByUser returns a user's memberships, each joined with the chapter's
// name and description, ordered by chapter name.
func (s *Memberships) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MembershipWithChapter, error) {
	exists, err := s.users.ExistsByPublicID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	memberships, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// CheckWarriorName reports whether a warrior name is still available. The
// check is case-insensitive and system-wide, matching the uniqueness rule
// enforced at creation.
func (s *Memberships) CheckWarriorName(ctx context.Context, warriorName string) (bool, error) {
	if warriorName == "" {
		return false, fmt.Errorf("warriorName is required: %w", ErrValidation)
	}

	exists, err := s.repo.ExistsWarriorName(ctx, warriorName)
	if err != nil {
		return false, fmt.Errorf("check warrior name: %w", err)
	}
	return !exists, nil
}
