package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create users table
-- Version: 001

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(50) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

-- Usernames are case-sensitive; emails are not.
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email));
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create students table
-- Version: 002

CREATE TABLE IF NOT EXISTS students (
    id UUID PRIMARY KEY,
    first_name VARCHAR(50) NOT NULL,
    last_name VARCHAR(50) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    student_number VARCHAR(50) NOT NULL UNIQUE,
    age INTEGER NOT NULL,
    major VARCHAR(100) NOT NULL,
    gpa DOUBLE PRECISION NOT NULL DEFAULT 0,
    enrollment_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    -- Constraints for data integrity
    CONSTRAINT valid_age CHECK (age >= 16 AND age <= 100),
    CONSTRAINT valid_gpa CHECK (gpa >= 0 AND gpa <= 4),

    -- Tokenized, case-insensitive text search over name and major.
    -- 'simple' keeps matching language-agnostic (names are not English prose).
    search_vector TSVECTOR GENERATED ALWAYS AS (
        to_tsvector('simple', first_name || ' ' || last_name || ' ' || major)
    ) STORED
);

CREATE INDEX IF NOT EXISTS idx_students_search ON students USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_students_major ON students (major);
CREATE INDEX IF NOT EXISTS idx_students_created_at ON students (created_at DESC);
`

// migrations in execution order.
var migrations = []struct {
	version int
	up      string
}{
	{1, migration001Up},
	{2, migration002Up},
}

// Migrate applies all pending migrations. Every statement is idempotent, so
// re-running on startup is safe.
func (c *Connection) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := c.pool.Exec(ctx, m.up); err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, m.version, err)
		}
	}
	return nil
}
