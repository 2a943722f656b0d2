// Package booru is a small image-board catalog used to exercise search
// configs end to end: posts with tags, uploaders and comments, and users.
package booru

import (
	"context"

	"github.com/jmoiron/sqlx"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

const ddlSQLite = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	rank TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY,
	user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
	safety TEXT NOT NULL,
	score INTEGER NOT NULL DEFAULT 0,
	ratio DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS post_tags (
	post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (post_id, tag_id)
);
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY,
	post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
	text TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag_id);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
`

const ddlPostgres = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	rank TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS posts (
	id BIGINT PRIMARY KEY,
	user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
	safety TEXT NOT NULL,
	score BIGINT NOT NULL DEFAULT 0,
	ratio DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS tags (
	id BIGINT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS post_tags (
	post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (post_id, tag_id)
);
CREATE TABLE IF NOT EXISTS comments (
	id BIGINT PRIMARY KEY,
	post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
	text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag_id);
CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
`

// post_stats is plain SQL on both backends
const ddlViews = `
CREATE VIEW post_stats AS
SELECT p.id AS post_id,
	(SELECT COUNT(*) FROM post_tags pt WHERE pt.post_id = p.id) AS tag_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
FROM posts p
`

// CreateSchema creates the catalog tables and views. Existing tables are
// kept; the view is recreated.
func CreateSchema(ctx context.Context, db *sqlx.DB, d sqlbuilder.Dialect) error {
	ddl := ddlSQLite
	if d == sqlbuilder.DialectPostgres {
		ddl = ddlPostgres
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return scerrors.Wrap(scerrors.ErrSQL, "begin schema transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{ddl, "DROP VIEW IF EXISTS post_stats", ddlViews} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return scerrors.Wrap(scerrors.ErrSQL, "create schema", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return scerrors.Wrap(scerrors.ErrSQL, "commit schema", err)
	}
	return nil
}
