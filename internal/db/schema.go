package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// schemaStatements are executed in order on every startup. Each statement
// is a no-op when its object already exists, so re-running the initializer
// against a live database is safe.
//
// The "ADD COLUMN IF NOT EXISTS" statements are additive migrations for
// columns introduced after the tables first shipped; they keep old
// databases upgradeable without a migration tool.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		user_id       UUID        NOT NULL UNIQUE,
		google_user_id TEXT       NOT NULL,
		email         TEXT        NOT NULL UNIQUE,
		role          TEXT        NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS status TEXT NOT NULL DEFAULT 'pending'`,

	`CREATE TABLE IF NOT EXISTS chapters (
		id                  SERIAL PRIMARY KEY,
		chapter_id          CHAR(6)     NOT NULL UNIQUE,
		chapter_name        TEXT        NOT NULL UNIQUE,
		chapter_description TEXT        NOT NULL DEFAULT '',
		created_by          TEXT        NOT NULL DEFAULT '',
		status              TEXT        NOT NULL DEFAULT 'pending',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// The service checks chapter-name uniqueness case-insensitively before
	// inserting, but that check and the insert are separate statements.
	// This index is the backstop that makes two racing creates unable to
	// both land.
	`CREATE UNIQUE INDEX IF NOT EXISTS chapters_name_lower_idx ON chapters (LOWER(chapter_name))`,

	`CREATE TABLE IF NOT EXISTS memberships (
		id           SERIAL PRIMARY KEY,
		user_id      UUID        NOT NULL REFERENCES users (user_id),
		chapter_id   CHAR(6)     NOT NULL REFERENCES chapters (chapter_id),
		warrior_name TEXT        NOT NULL,
		status       TEXT        NOT NULL DEFAULT 'pending',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, chapter_id)
	)`,
	`ALTER TABLE memberships ADD COLUMN IF NOT EXISTS chapter_rank TEXT NOT NULL DEFAULT 'member'`,
	// Warrior names are unique across the whole system, not per chapter.
	`CREATE UNIQUE INDEX IF NOT EXISTS memberships_warrior_name_lower_idx ON memberships (LOWER(warrior_name))`,
}

// InitSchema creates or upgrades the three tables and their constraints.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	db.logger.Info("schema initialized", zap.Int("statements", len(schemaStatements)))
	return nil
}
