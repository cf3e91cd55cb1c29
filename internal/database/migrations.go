package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// migrations are applied in order on every start; each statement is idempotent.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				id                BIGSERIAL PRIMARY KEY,
				name              TEXT,
				email             TEXT NOT NULL UNIQUE,
				password          TEXT NOT NULL,
				full_name         TEXT,
				gender            TEXT,
				interested_in     TEXT,
				birth_date        TIMESTAMPTZ,
				bio               TEXT,
				profile_image_url TEXT,
				created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		name: "matches",
		sql: `
			CREATE TABLE IF NOT EXISTS matches (
				id         BIGSERIAL PRIMARY KEY,
				user1_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				user2_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				matched_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		name: "messages",
		sql: `
			CREATE TABLE IF NOT EXISTS messages (
				id          BIGSERIAL PRIMARY KEY,
				sender_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				content     TEXT NOT NULL,
				sent_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
				is_read     BOOLEAN NOT NULL DEFAULT false
			)`,
	},
	{
		name: "sessions",
		sql: `
			CREATE TABLE IF NOT EXISTS sessions (
				id            BIGSERIAL PRIMARY KEY,
				user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				session_token TEXT NOT NULL UNIQUE,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		name: "user_interactions",
		sql: `
			CREATE TABLE IF NOT EXISTS user_interactions (
				id               BIGSERIAL PRIMARY KEY,
				user_email       TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE ON UPDATE CASCADE,
				shown_user_email TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE ON UPDATE CASCADE,
				is_liked         BOOLEAN,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
	},
	{
		name: "indexes",
		sql: `
			CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_matches_matched_at ON matches(matched_at DESC);
			CREATE INDEX IF NOT EXISTS idx_messages_sent_at ON messages(sent_at DESC);
			CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at DESC);
			CREATE INDEX IF NOT EXISTS idx_user_interactions_created_at ON user_interactions(created_at DESC)`,
	},
}

// Migrate creates the panel schema if it does not exist yet
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, m := range migrations {
		if _, err := db.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("Migration applied")
	}
	return nil
}
