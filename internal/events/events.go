package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
)

// Recorder appends observability events to the task_events table.
// Best effort: failures are logged, never returned to handlers. A nil
// recorder drops everything, which keeps handler tests off a database.
type Recorder struct {
	DB *sql.DB
}

func New(db *sql.DB) *Recorder {
	return &Recorder{DB: db}
}

// Log stores one event row. taskID may be nil for events that are not
// tied to a stored task (e.g. priority_analyzed).
func (r *Recorder) Log(ctx context.Context, name string, taskID *int, props map[string]any) {
	if r == nil || r.DB == nil {
		return
	}

	if props == nil {
		props = map[string]any{}
	}
	payload, err := json.Marshal(props)
	if err != nil {
		log.Printf("[WARN] event %s: marshal props: %v", name, err)
		return
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO task_events (event_name, task_id, props)
		VALUES ($1, $2, $3)
	`, name, taskID, payload)
	if err != nil {
		log.Printf("[WARN] event %s: insert: %v", name, err)
	}
}
