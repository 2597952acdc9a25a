package models

import "time"

// Todo is a single task record. IDs are opaque and stable for the record's
// lifetime; Text is always non-empty after creation or edit.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats is the derived aggregate view of a todo collection. It is recomputed
// on demand and never stored; Active+Completed == Total always holds.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// Event actions emitted by the store after successful mutations.
const (
	ActionCreated = "created"
	ActionToggled = "toggled"
	ActionEdited  = "edited"
	ActionDeleted = "deleted"
	ActionCleared = "cleared"
)

// TodoEvent is the change-event payload published after a store mutation
// (create/toggle/edit/delete/clear).
type TodoEvent struct {
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	TodoID     string    `json:"todo_id,omitempty"`
	Text       string    `json:"text,omitempty"`
	Completed  *bool     `json:"completed,omitempty"`
	Removed    int       `json:"removed,omitempty"` // clear: number of records removed
	OccurredAt time.Time `json:"occurred_at"`
}
