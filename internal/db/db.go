package db

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema on startup. Safe to run on every boot.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id              SERIAL PRIMARY KEY,
    title           VARCHAR(200)  NOT NULL,
    description     VARCHAR(1000) NOT NULL DEFAULT '',
    priority        VARCHAR(10)   NOT NULL DEFAULT 'medium',
    priority_reason VARCHAR(500)  NOT NULL DEFAULT '',
    status          VARCHAR(10)   NOT NULL DEFAULT 'todo',
    created_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ   NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS task_events (
    id         SERIAL PRIMARY KEY,
    event_name TEXT        NOT NULL,
    task_id    INT,
    props      JSONB       NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
