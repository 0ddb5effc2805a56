// Package service holds the business rules for users, chapters and
// memberships: input validation, uniqueness and existence checks, and the
// orchestration of reads and writes through the repositories.
//
// Failures are reported as sentinel errors, wrapped with context via
// fmt.Errorf("%w") on the way up. Handlers pick status codes and response
// messages with errors.Is; the services never see HTTP.
package service

import "errors"

var (
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("missing or invalid input")

	// ErrInvalidEmail indicates the email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrUserExists indicates the email or Google user id is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrChapterNotFound indicates the referenced chapter does not exist.
	ErrChapterNotFound = errors.New("chapter not found")

	// ErrChapterNameTaken indicates a chapter already holds the name,
	// compared case-insensitively.
	ErrChapterNameTaken = errors.New("chapter name already exists")

	// ErrChapterIDCollision indicates the freshly generated chapter id is
	// already in use. The create fails outright; there is no regenerate
	// loop.
	ErrChapterIDCollision = errors.New("generated chapter id already exists")

	// ErrAlreadyMember indicates the user already belongs to the chapter.
	ErrAlreadyMember = errors.New("user is already a member of this chapter")

	// ErrWarriorNameTaken indicates another membership anywhere in the
	// system already holds the warrior name, compared case-insensitively.
	ErrWarriorNameTaken = errors.New("warrior name is already taken")
)
