package database

import (
	"context"
	"fmt"
)

// schema is applied at startup. Idempotent: everything is IF NOT EXISTS.
//
// Notes on shape:
//   - posts.author_id has no foreign-key constraint: post creation does not
//     validate the author beyond the notification lookup, and deleting an
//     author leaves their posts behind.
//   - posts.comment_ids mirrors the comment rows; both sides are updated in
//     one transaction by the comment repository.
//   - comments.author is free text, not a reference.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		google_id     TEXT,
		name          TEXT NOT NULL,
		surname       TEXT,
		birth_date    TEXT,
		avatar        TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS authors_google_id_idx
		ON authors (google_id) WHERE google_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS posts (
		id              UUID PRIMARY KEY,
		category        TEXT NOT NULL,
		title           TEXT NOT NULL,
		cover           TEXT,
		read_time_value INT NOT NULL,
		read_time_unit  TEXT NOT NULL,
		author_id       UUID NOT NULL,
		content         TEXT NOT NULL,
		comment_ids     UUID[] NOT NULL DEFAULT '{}',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS posts_author_id_idx ON posts (author_id)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         UUID PRIMARY KEY,
		content    TEXT NOT NULL,
		author     TEXT NOT NULL,
		post_id    UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id)`,
}

// Migrate bootstraps the schema.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
