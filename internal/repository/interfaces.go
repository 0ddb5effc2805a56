package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/models"
)

// Every method takes a context so a cancelled HTTP request cancels its
// database work. All lookups return (nil, nil) when no row matches; list
// methods return empty slices (never nil) so JSON serializes to [].

// UserRepository handles identity records.
type UserRepository interface {
	// Create inserts a new user and returns the stored row, including the
	// store-assigned numeric id and timestamps.
	Create(ctx context.Context, publicID uuid.UUID, googleUserID, email, role string) (*models.User, error)

	// ExistsByEmailOrGoogleID reports whether a user already holds the
	// given email or the given provider id.
	ExistsByEmailOrGoogleID(ctx context.Context, email, googleUserID string) (bool, error)

	// ExistsByPublicID reports whether the public identifier resolves to a
	// user. Called before every membership insert.
	ExistsByPublicID(ctx context.Context, publicID uuid.UUID) (bool, error)

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID uuid.UUID) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleUserID string) (*models.User, error)

	// Delete removes the user with the given internal numeric id.
	Delete(ctx context.Context, id int) error
}

// ChapterRepository handles group records.
type ChapterRepository interface {
	// Create inserts the chapter exactly as given, including its numeric
	// id, and returns the stored row.
	Create(ctx context.Context, ch *models.Chapter) (*models.Chapter, error)

	// MaxID returns the highest numeric chapter id, 0 when empty.
	MaxID(ctx context.Context) (int, error)

	// ExistsByName is a case-insensitive name check.
	ExistsByName(ctx context.Context, name string) (bool, error)

	ExistsByChapterID(ctx context.Context, chapterID string) (bool, error)
	GetByChapterID(ctx context.Context, chapterID string) (*models.Chapter, error)

	// List returns identifier+name slices ordered alphabetically by name.
	List(ctx context.Context, limit, offset int) ([]models.ChapterSummary, error)
	Count(ctx context.Context) (int, error)
}

// MembershipRepository handles the user↔chapter join records.
type MembershipRepository interface {
	// Create inserts a membership and returns the stored row.
	Create(ctx context.Context, userID uuid.UUID, chapterID, rank, warriorName string) (*models.Membership, error)

	// ExistsPair reports whether the user already belongs to the chapter.
	ExistsPair(ctx context.Context, userID uuid.UUID, chapterID string) (bool, error)

	// ExistsWarriorName is a case-insensitive check across all memberships,
	// not scoped to any chapter.
	ExistsWarriorName(ctx context.Context, warriorName string) (bool, error)

	// ListByChapter returns the chapter's memberships ordered by warrior name.
	ListByChapter(ctx context.Context, chapterID string) ([]models.Membership, error)

	// ListByUser returns the user's memberships joined with chapter name and
	// description, ordered by chapter name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MembershipWithChapter, error)
}
