package tasks

import "time"

// Priority and status labels stored on a task. The advisor only ever
// emits the same three priority labels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusTodo = "todo"
	StatusDone = "done"
)

// Field bounds enforced before anything reaches the store.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxReasonLen      = 500
)

type Task struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Priority       string    `json:"priority"`
	PriorityReason string    `json:"priority_reason,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusDone
}
