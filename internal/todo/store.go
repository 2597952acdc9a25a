// Package todo implements the ordered, persisted todo collection with CRUD
// operations and derived statistics. The full collection is rewritten to
// storage after every mutation under the key "todos".
package todo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"statelab/internal/models"
	"statelab/internal/state"
	"statelab/internal/storage"
	"statelab/pkg/logger"
)

// StorageKey is the key the store owns exclusively in its backend.
const StorageKey = "todos"

// Publisher receives a change event after each successful mutation.
// Publishing is best-effort; failures are logged and ignored.
type Publisher interface {
	Publish(ctx context.Context, ev *models.TodoEvent) error
}

// Store is an ordered, persisted todo collection. Mutations are processed
// strictly in call order and the new state is observable as soon as the call
// returns; persistence write order matches mutation order.
type Store struct {
	mu     sync.Mutex
	coll   *state.Persistent[[]models.Todo]
	events Publisher
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher attaches a change-event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Store) { s.events = p }
}

// New loads the collection persisted in backend (empty when absent).
func New(ctx context.Context, backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		coll: state.NewPersistent(ctx, backend, StorageKey, []models.Todo{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new record with the trimmed text. Empty-after-trim text is
// rejected silently: the second return is false and nothing changes.
func (s *Store) Add(ctx context.Context, text string) (models.Todo, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Todo{}, false
	}
	now := time.Now()
	created := models.Todo{
		ID:        uuid.New().String(),
		Text:      trimmed,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mutate(ctx, func(prev []models.Todo) []models.Todo {
		return append(prev, created)
	})

	s.publish(ctx, &models.TodoEvent{
		Action: models.ActionCreated,
		TodoID: created.ID,
		Text:   created.Text,
	})
	return created, true
}

// Toggle flips the completed flag on the matching record. Unknown ids are a
// silent no-op.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	var toggled *models.Todo
	s.mutate(ctx, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if todos[i].ID == id {
				todos[i].Completed = !todos[i].Completed
				todos[i].UpdatedAt = time.Now()
				toggled = &todos[i]
				break
			}
		}
		return todos
	})
	if toggled == nil {
		return false
	}
	completed := toggled.Completed
	s.publish(ctx, &models.TodoEvent{
		Action:    models.ActionToggled,
		TodoID:    id,
		Completed: &completed,
	})
	return true
}

// Edit replaces the text on the matching record, leaving id and completed
// unchanged. Empty-after-trim text and unknown ids are silent no-ops.
func (s *Store) Edit(ctx context.Context, id, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	found := false
	s.mutate(ctx, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if todos[i].ID == id {
				todos[i].Text = trimmed
				todos[i].UpdatedAt = time.Now()
				found = true
				break
			}
		}
		return todos
	})
	if !found {
		return false
	}
	s.publish(ctx, &models.TodoEvent{
		Action: models.ActionEdited,
		TodoID: id,
		Text:   trimmed,
	})
	return true
}

// Delete removes the matching record. Unknown ids are a silent no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, func(todos []models.Todo) []models.Todo {
		for i := range todos {
			if todos[i].ID == id {
				found = true
				return append(todos[:i], todos[i+1:]...)
			}
		}
		return todos
	})
	if !found {
		return false
	}
	s.publish(ctx, &models.TodoEvent{
		Action: models.ActionDeleted,
		TodoID: id,
	})
	return true
}

// ClearCompleted removes every completed record and returns how many were
// removed. The snapshot is persisted even when nothing was removed.
func (s *Store) ClearCompleted(ctx context.Context) int {
	removed := 0
	s.mutate(ctx, func(todos []models.Todo) []models.Todo {
		kept := todos[:0]
		for _, t := range todos {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		return kept
	})
	s.publish(ctx, &models.TodoEvent{
		Action:  models.ActionCleared,
		Removed: removed,
	})
	return removed
}

// List returns the collection in insertion order. The slice is a copy;
// mutating it does not affect the store.
func (s *Store) List() []models.Todo {
	todos := s.coll.Get()
	out := make([]models.Todo, len(todos))
	copy(out, todos)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.Todo, bool) {
	for _, t := range s.coll.Get() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Todo{}, false
}

// Stats derives the aggregate view from the current collection. It is
// recomputed on every call and never persisted.
func (s *Store) Stats() models.Stats {
	todos := s.coll.Get()
	st := models.Stats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}

// Apply replays a change event onto the store, preserving the originating
// record id. Used by the mirror worker; unknown actions are ignored.
func (s *Store) Apply(ctx context.Context, ev *models.TodoEvent) {
	switch ev.Action {
	case models.ActionCreated:
		if strings.TrimSpace(ev.Text) == "" || ev.TodoID == "" {
			return
		}
		now := time.Now()
		s.mutate(ctx, func(todos []models.Todo) []models.Todo {
			for i := range todos {
				if todos[i].ID == ev.TodoID {
					return todos // already applied
				}
			}
			return append(todos, models.Todo{
				ID:        ev.TodoID,
				Text:      strings.TrimSpace(ev.Text),
				CreatedAt: now,
				UpdatedAt: now,
			})
		})
	case models.ActionToggled:
		s.mutate(ctx, func(todos []models.Todo) []models.Todo {
			for i := range todos {
				if todos[i].ID == ev.TodoID {
					if ev.Completed != nil {
						todos[i].Completed = *ev.Completed
					} else {
						todos[i].Completed = !todos[i].Completed
					}
					todos[i].UpdatedAt = time.Now()
					break
				}
			}
			return todos
		})
	case models.ActionEdited:
		trimmed := strings.TrimSpace(ev.Text)
		if trimmed == "" {
			return
		}
		s.mutate(ctx, func(todos []models.Todo) []models.Todo {
			for i := range todos {
				if todos[i].ID == ev.TodoID {
					todos[i].Text = trimmed
					todos[i].UpdatedAt = time.Now()
					break
				}
			}
			return todos
		})
	case models.ActionDeleted:
		s.mutate(ctx, func(todos []models.Todo) []models.Todo {
			for i := range todos {
				if todos[i].ID == ev.TodoID {
					return append(todos[:i], todos[i+1:]...)
				}
			}
			return todos
		})
	case models.ActionCleared:
		s.mutate(ctx, func(todos []models.Todo) []models.Todo {
			kept := todos[:0]
			for _, t := range todos {
				if !t.Completed {
					kept = append(kept, t)
				}
			}
			return kept
		})
	default:
		logger.Debug(ctx, "Ignoring unknown event action", "action", ev.Action)
	}
}

// mutate serializes a read-modify-write against the persisted collection.
// fn receives a fresh copy, so readers holding the previous snapshot never
// observe in-place edits.
func (s *Store) mutate(ctx context.Context, fn func([]models.Todo) []models.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coll.Update(ctx, func(prev []models.Todo) []models.Todo {
		next := make([]models.Todo, len(prev))
		copy(next, prev)
		return fn(next)
	})
}

func (s *Store) publish(ctx context.Context, ev *models.TodoEvent) {
	if s.events == nil {
		return
	}
	ev.EventID = uuid.New().String()
	ev.OccurredAt = time.Now()
	if err := s.events.Publish(ctx, ev); err != nil {
		logger.Error(ctx, "Todo event publish failed", "error", err, "action", ev.Action)
	}
}
