package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/warbandhq/chapter-registry/internal/models"
	"github.com/warbandhq/chapter-registry/internal/repository"
)

// emailPattern is a deliberately loose local@domain.tld shape check, not a
// full RFC 5322 validator. The provider already verified the address; this
// only rejects obvious garbage.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IdentifierKind classifies the path identifier of a delete request.
type IdentifierKind int

const (
	// ByEmail — identifier contains "@".
	ByEmail IdentifierKind = iota
	// ByPublicID — identifier parses as a UUID.
	ByPublicID
	// ByGoogleID — anything else.
	ByGoogleID
)

// ClassifyIdentifier resolves which lookup field an opaque path identifier
// refers to, using ordered shape predicates. Best-effort: a Google user id
// containing "@" would be misread as an email, which is acceptable because
// provider ids are documented not to contain "@".
func ClassifyIdentifier(identifier string) IdentifierKind {
	if strings.Contains(identifier, "@") {
		return ByEmail
	}
	if _, err := uuid.Parse(identifier); err == nil {
		return ByPublicID
	}
	return ByGoogleID
}

// Users implements the user workflows over the user repository.
type Users struct {
	repo repository.UserRepository
}

func NewUsers(repo repository.UserRepository) *Users {
	return &Users{repo: repo}
}

// Create registers a new user. Fails with ErrUserExists when a user
// already holds the email or the Google user id. On success the stored
// row is returned, including the generated public id.
func (s *Users) Create(ctx context.Context, googleUserID, email, role string) (*models.User, error) {
	if googleUserID == "" || email == "" || role == "" {
		return nil, fmt.Errorf("GoogleUserId, Email and Role are required: %w", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("email %q: %w", email, ErrInvalidEmail)
	}

	exists, err := s.repo.ExistsByEmailOrGoogleID(ctx, email, googleUserID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("create user %q: %w", email, ErrUserExists)
	}

	user, err := s.repo.Create(ctx, uuid.New(), googleUserID, email, role)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Delete removes a user addressed by any of its three identifier forms.
// The identifier is classified by shape, looked up by the matching field,
// and the row deleted by its internal id.
func (s *Users) Delete(ctx context.Context, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier is required: %w", ErrValidation)
	}

	var (
		user *models.User
		err  error
	)
	switch ClassifyIdentifier(identifier) {
	case ByEmail:
		user, err = s.repo.GetByEmail(ctx, identifier)
	case ByPublicID:
		user, err = s.repo.GetByPublicID(ctx, uuid.MustParse(identifier))
	default:
		user, err = s.repo.GetByGoogleID(ctx, identifier)
	}
	if err != nil {
		return fmt.Errorf("lookup user %q: %w", identifier, err)
	}
	if user == nil {
		return fmt.Errorf("delete user %q: %w", identifier, ErrUserNotFound)
	}

	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user %q: %w", identifier, err)
	}
	return nil
}

// LookupPublicID returns the public identifier for a Google user id.
func (s *Users) LookupPublicID(ctx context.Context, googleUserID string) (uuid.UUID, error) {
	if googleUserID == "" {
		return uuid.Nil, fmt.Errorf("GoogleUserId is required: %w", ErrValidation)
	}

	user, err := s.repo.GetByGoogleID(ctx, googleUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup user by google id: %w", err)
	}
	if user == nil {
		return uuid.Nil, fmt.Errorf("lookup google id %q: %w", googleUserID, ErrUserNotFound)
	}
	return user.UserID, nil
}
