package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/service"
	"github.com/warbandhq/chapter-registry/internal/testutil"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		identifier string
		want       service.IdentifierKind
	}{
		{"alice@example.com", service.ByEmail},
		{"550e8400-e29b-41d4-a716-446655440000", service.ByPublicID},
		{"108034567890123456789", service.ByGoogleID},
		{"weird@but@email", service.ByEmail},
		{"not-a-uuid-at-all", service.ByGoogleID},
	}

	for _, tt := range tests {
		if got := service.ClassifyIdentifier(tt.identifier); got != tt.want {
			t.Errorf("ClassifyIdentifier(%q) = %v, want %v", tt.identifier, got, tt.want)
		}
	}
}

func TestUsersCreate(t *testing.T) {
	repo := testutil.NewUserRepo()
	users := service.NewUsers(repo)
	ctx := context.Background()

	user, err := users.Create(ctx, "google-123", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected store-assigned numeric id")
	}
	if user.UserID == uuid.Nil {
		t.Error("expected generated public id")
	}
	if user.Status != "pending" {
		t.Errorf("status: got %q, want %q", user.Status, "pending")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}
}

func TestUsersCreateValidation(t *testing.T) {
	users := service.NewUsers(testutil.NewUserRepo())
	ctx := context.Background()

	tests := []struct {
		name                string
		google, email, role string
		want                error
	}{
		{"missing google id", "", "a@b.com", "user", service.ErrValidation},
		{"missing email", "g", "", "user", service.ErrValidation},
		{"missing role", "g", "a@b.com", "", service.ErrValidation},
		{"email without at", "g", "nodomain", "user", service.ErrInvalidEmail},
		{"email without tld", "g", "a@b", "user", service.ErrInvalidEmail},
		{"email with spaces", "g", "a b@c.com", "user", service.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := users.Create(ctx, tt.google, tt.email, tt.role); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUsersCreateConflicts(t *testing.T) {
	repo := testutil.NewUserRepo()
	users := service.NewUsers(repo)
	ctx := context.Background()

	if _, err := users.Create(ctx, "google-123", "alice@example.com", "user"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Same email, different provider id.
	if _, err := users.Create(ctx, "google-999", "alice@example.com", "user"); !errors.Is(err, service.ErrUserExists) {
		t.Errorf("duplicate email: got %v, want ErrUserExists", err)
	}

	// Same provider id, different email.
	if _, err := users.Create(ctx, "google-123", "other@example.com", "user"); !errors.Is(err, service.ErrUserExists) {
		t.Errorf("duplicate google id: got %v, want ErrUserExists", err)
	}
}

func TestUsersDeleteByEachIdentifierForm(t *testing.T) {
	ctx := context.Background()

	// Each sub-test creates a fresh user and deletes it by one of the
	// three identifier forms.
	identifiers := []struct {
		name string
		pick func(publicID uuid.UUID) string
	}{
		{"email", func(uuid.UUID) string { return "alice@example.com" }},
		{"public id", func(publicID uuid.UUID) string { return publicID.String() }},
		{"google id", func(uuid.UUID) string { return "google-123" }},
	}

	for _, tt := range identifiers {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewUserRepo()
			users := service.NewUsers(repo)

			created, err := users.Create(ctx, "google-123", "alice@example.com", "user")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			if err := users.Delete(ctx, tt.pick(created.UserID)); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if len(repo.Users) != 0 {
				t.Errorf("expected user removed, %d left", len(repo.Users))
			}
		})
	}
}

func TestUsersDeleteNotFound(t *testing.T) {
	users := service.NewUsers(testutil.NewUserRepo())
	ctx := context.Background()

	for _, identifier := range []string{
		"ghost@example.com",
		uuid.NewString(),
		"google-ghost",
	} {
		if err := users.Delete(ctx, identifier); !errors.Is(err, service.ErrUserNotFound) {
			t.Errorf("Delete(%q): got %v, want ErrUserNotFound", identifier, err)
		}
	}
}

func TestUsersLookupPublicID(t *testing.T) {
	repo := testutil.NewUserRepo()
	users := service.NewUsers(repo)
	ctx := context.Background()

	created, err := users.Create(ctx, "google-123", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := users.LookupPublicID(ctx, "google-123")
	if err != nil {
		t.Fatalf("LookupPublicID: %v", err)
	}
	if got != created.UserID {
		t.Errorf("got %s, want %s", got, created.UserID)
	}

	if _, err := users.LookupPublicID(ctx, "google-ghost"); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("unknown google id: got %v, want ErrUserNotFound", err)
	}
}
