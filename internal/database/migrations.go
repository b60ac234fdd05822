package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		birth_date DATE,
		birth_time VARCHAR(5),
		birth_location VARCHAR(255),
		subscription_plan VARCHAR(32) NOT NULL DEFAULT 'FREE',
		subscription_status VARCHAR(32) NOT NULL DEFAULT 'active',
		readings_left INTEGER NOT NULL DEFAULT 4,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tarot_readings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		deck_type VARCHAR(16) NOT NULL CHECK (deck_type IN ('NORMAL', 'EGIPCIO')),
		spread_type VARCHAR(16) NOT NULL CHECK (spread_type IN ('SINGLE', 'THREE_CARD', 'CELTIC_CROSS')),
		cards JSONB NOT NULL DEFAULT '[]',
		interpretation TEXT,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,

	// Serves the history listing: owner filter plus (created_at, id) descending order.
	`CREATE INDEX IF NOT EXISTS idx_tarot_readings_user_created ON tarot_readings(user_id, created_at DESC, id DESC)`,

	// Owner reference is fixed at insert.
	`CREATE OR REPLACE FUNCTION tarot_readings_lock_owner() RETURNS trigger AS $$
	BEGIN
		IF NEW.user_id <> OLD.user_id THEN
			RAISE EXCEPTION 'tarot_readings.user_id is immutable';
		END IF;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS trg_tarot_readings_lock_owner ON tarot_readings`,

	`CREATE TRIGGER trg_tarot_readings_lock_owner
		BEFORE UPDATE ON tarot_readings
		FOR EACH ROW EXECUTE FUNCTION tarot_readings_lock_owner()`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
