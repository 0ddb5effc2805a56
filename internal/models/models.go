package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity record. Authentication lives with the external
// provider; this row ties the provider id to our own public id.
//
// Two ids on purpose:
//   - ID is the store-assigned numeric key, internal only.
//   - UserID is the opaque public identifier handed to clients and used as
//     the reference key in memberships. Generated once at create, immutable
//     after that.
type User struct {
	ID           int       `json:"id"`
	UserID       uuid.UUID `json:"User_ID"`
	GoogleUserID string    `json:"Google_User_ID"`
	Email        string    `json:"Email"`
	Role         string    `json:"Role"`
	Status       string    `json:"Status"`
	CreatedAt    time.Time `json:"Created_At"`
	UpdatedAt    time.Time `json:"Updated_At"`
}

// Chapter is a local group. ChapterID is a 6-character lowercase
// alphanumeric slug, generated at create and globally unique. Name is
// unique case-insensitively.
type Chapter struct {
	ID          int       `json:"id"`
	ChapterID   string    `json:"Chapter_Id"`
	Name        string    `json:"Chapter_Name"`
	Description string    `json:"Chapter_Description"`
	CreatedBy   string    `json:"Created_By"`
	Status      string    `json:"Status"`
	CreatedAt   time.Time `json:"Created_At"`
	UpdatedAt   time.Time `json:"Updated_At"`
}

// ChapterSummary is the slim shape returned by the paginated chapter list.
type ChapterSummary struct {
	ChapterID string `json:"Chapter_Id"`
	Name      string `json:"Chapter_Name"`
}

// Membership joins a user to a chapter. The (UserID, ChapterID) pair is
// unique, and WarriorName is unique case-insensitively across the whole
// system, not just within a chapter.
type Membership struct {
	ID          int       `json:"id"`
	UserID      uuid.UUID `json:"User_ID"`
	ChapterID   string    `json:"Chapter_Id"`
	Rank        string    `json:"Chapter_Rank"`
	WarriorName string    `json:"Warrior_Name"`
	Status      string    `json:"Status"`
	CreatedAt   time.Time `json:"Created_At"`
	UpdatedAt   time.Time `json:"Updated_At"`
}

// MembershipWithChapter is a membership row augmented with the joined
// chapter's name and description, for the list-by-user view.
type MembershipWithChapter struct {
	Membership
	ChapterName        string `json:"Chapter_Name"`
	ChapterDescription string `json:"Chapter_Description"`
}

// Pagination is the envelope returned alongside paginated lists.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
