package database

import (
	"context"
	"database/sql"
)

// Schema statements executed on startup.  All of them are idempotent so
// the server can run Migrate on every boot.

const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    email         VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    role          VARCHAR(32)  NOT NULL DEFAULT 'FAN',
    is_active     TINYINT(1)   NOT NULL DEFAULT 1,
    created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

const createRefreshTokensSQL = `
CREATE TABLE IF NOT EXISTS refresh_tokens (
    id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    user_id    BIGINT UNSIGNED NOT NULL,
    token_hash CHAR(64)  NOT NULL UNIQUE,
    expires_at DATETIME  NOT NULL,
    revoked_at DATETIME  NULL,
    created_at DATETIME  NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
)`

const createGenresSQL = `
CREATE TABLE IF NOT EXISTS genres (
    id   TINYINT UNSIGNED NOT NULL PRIMARY KEY,
    name VARCHAR(64) NOT NULL UNIQUE
)`

const createGigsSQL = `
CREATE TABLE IF NOT EXISTS gigs (
    id         BIGINT UNSIGNED  NOT NULL AUTO_INCREMENT PRIMARY KEY,
    owner_id   BIGINT UNSIGNED  NOT NULL,
    venue      VARCHAR(255)     NOT NULL,
    starts_at  DATETIME         NOT NULL,
    genre_id   TINYINT UNSIGNED NOT NULL,
    created_at DATETIME         NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME         NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    CONSTRAINT fk_gigs_owner FOREIGN KEY (owner_id) REFERENCES users (id),
    CONSTRAINT fk_gigs_genre FOREIGN KEY (genre_id) REFERENCES genres (id),
    INDEX idx_gigs_starts_at (starts_at)
)`

// seedGenresSQL inserts the built-in genre catalogue.  INSERT IGNORE
// keeps the statement idempotent; genre IDs start at 1 because forms
// use zero for "nothing selected".
const seedGenresSQL = `
INSERT IGNORE INTO genres (id, name) VALUES
    (1, 'Rock'),
    (2, 'Jazz'),
    (3, 'Blues'),
    (4, 'Electronic'),
    (5, 'Hip-Hop'),
    (6, 'Folk'),
    (7, 'Classical'),
    (8, 'Pop')`

// Migrate creates the application schema and seeds the genre catalogue.
// It is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		createUsersSQL,
		createRefreshTokensSQL,
		createGenresSQL,
		createGigsSQL,
		seedGenresSQL,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
