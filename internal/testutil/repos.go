// Package testutil provides in-memory repository implementations for
// service and handler tests. They mirror the Postgres stores' behavior:
// lookups return (nil, nil) on a miss, case-insensitive checks use folded
// comparison, and list methods return empty slices, never nil.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/models"
	"github.com/warbandhq/chapter-registry/internal/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.ChapterRepository    = (*ChapterRepo)(nil)
	_ repository.MembershipRepository = (*MembershipRepo)(nil)
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	Users  []models.User
	nextID int
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Users: make([]models.User, 0)}
}

func (r *UserRepo) Create(_ context.Context, publicID uuid.UUID, googleUserID, email, role string) (*models.User, error) {
	r.nextID++
	now := time.Now().UTC()
	u := models.User{
		ID:           r.nextID,
		UserID:       publicID,
		GoogleUserID: googleUserID,
		Email:        email,
		Role:         role,
		Status:       "pending",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.Users = append(r.Users, u)
	return &u, nil
}

func (r *UserRepo) ExistsByEmailOrGoogleID(_ context.Context, email, googleUserID string) (bool, error) {
	for _, u := range r.Users {
		if u.Email == email || u.GoogleUserID == googleUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) ExistsByPublicID(_ context.Context, publicID uuid.UUID) (bool, error) {
	for _, u := range r.Users {
		if u.UserID == publicID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByPublicID(_ context.Context, publicID uuid.UUID) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.UserID == publicID })
}

func (r *UserRepo) GetByGoogleID(_ context.Context, googleUserID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.GoogleUserID == googleUserID })
}

func (r *UserRepo) find(match func(models.User) bool) (*models.User, error) {
	for _, u := range r.Users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Delete(_ context.Context, id int) error {
	for i, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			return nil
		}
	}
	return nil
}

// ChapterRepo is an in-memory repository.ChapterRepository.
//
// ForceIDCollision makes ExistsByChapterID report every generated id as
// taken, for exercising the fail-fast collision path without controlling
// the random generator.
type ChapterRepo struct {
	Chapters         []models.Chapter
	ForceIDCollision bool
}

func NewChapterRepo() *ChapterRepo {
	return &ChapterRepo{Chapters: make([]models.Chapter, 0)}
}

func (r *ChapterRepo) Create(_ context.Context, ch *models.Chapter) (*models.Chapter, error) {
	stored := *ch
	r.Chapters = append(r.Chapters, stored)
	return &stored, nil
}

func (r *ChapterRepo) MaxID(_ context.Context) (int, error) {
	max := 0
	for _, ch := range r.Chapters {
		if ch.ID > max {
			max = ch.ID
		}
	}
	return max, nil
}

func (r *ChapterRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, ch := range r.Chapters {
		if strings.EqualFold(ch.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ChapterRepo) ExistsByChapterID(_ context.Context, chapterID string) (bool, error) {
	if r.ForceIDCollision {
		return true, nil
	}
	for _, ch := range r.Chapters {
		if ch.ChapterID == chapterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ChapterRepo) GetByChapterID(_ context.Context, chapterID string) (*models.Chapter, error) {
	for _, ch := range r.Chapters {
		if ch.ChapterID == chapterID {
			found := ch
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ChapterRepo) List(_ context.Context, limit, offset int) ([]models.ChapterSummary, error) {
	sorted := make([]models.Chapter, len(r.Chapters))
	copy(sorted, r.Chapters)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	summaries := make([]models.ChapterSummary, 0)
	for i := offset; i < len(sorted) && i < offset+limit; i++ {
		summaries = append(summaries, models.ChapterSummary{
			ChapterID: sorted[i].ChapterID,
			Name:      sorted[i].Name,
		})
	}
	return summaries, nil
}

func (r *ChapterRepo) Count(_ context.Context) (int, error) {
	return len(r.Chapters), nil
}

// MembershipRepo is an in-memory repository.MembershipRepository. It holds
// a ChapterRepo reference for the list-by-user join.
type MembershipRepo struct {
	Memberships []models.Membership
	ChapterRepo *ChapterRepo
	nextID      int
}

func NewMembershipRepo(chapters *ChapterRepo) *MembershipRepo {
	return &MembershipRepo{
		Memberships: make([]models.Membership, 0),
		ChapterRepo: chapters,
	}
}

func (r *MembershipRepo) Create(_ context.Context, userID uuid.UUID, chapterID, rank, warriorName string) (*models.Membership, error) {
	r.nextID++
	now := time.Now().UTC()
	m := models.Membership{
		ID:          r.nextID,
		UserID:      userID,
		ChapterID:   chapterID,
		Rank:        rank,
		WarriorName: warriorName,
		Status:      "pending",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Memberships = append(r.Memberships, m)
	return &m, nil
}

func (r *MembershipRepo) ExistsPair(_ context.Context, userID uuid.UUID, chapterID string) (bool, error) {
	for _, m := range r.Memberships {
		if m.UserID == userID && m.ChapterID == chapterID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MembershipRepo) ExistsWarriorName(_ context.Context, warriorName string) (bool, error) {
	for _, m := range r.Memberships {
		if strings.EqualFold(m.WarriorName, warriorName) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MembershipRepo) ListByChapter(_ context.Context, chapterID string) ([]models.Membership, error) {
	memberships := make([]models.Membership, 0)
	for _, m := range r.Memberships {
		if m.ChapterID == chapterID {
			memberships = append(memberships, m)
		}
	}
	sort.Slice(memberships, func(i, j int) bool {
		return memberships[i].WarriorName < memberships[j].WarriorName
	})
	return memberships, nil
}

func (r *MembershipRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.MembershipWithChapter, error) {
	memberships := make([]models.MembershipWithChapter, 0)
	for _, m := range r.Memberships {
		if m.UserID != userID {
			continue
		}
		joined := models.MembershipWithChapter{Membership: m}
		if r.ChapterRepo != nil {
			if ch, _ := r.ChapterRepo.GetByChapterID(context.Background(), m.ChapterID); ch != nil {
				joined.ChapterName = ch.Name
				joined.ChapterDescription = ch.Description
			}
		}
		memberships = append(memberships, joined)
	}
	sort.Slice(memberships, func(i, j int) bool {
		return memberships[i].ChapterName < memberships[j].ChapterName
	})
	return memberships, nil
}
