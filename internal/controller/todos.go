// Package controller exposes the todo store over HTTP. This is the demo
// surface of the tutorial app; all state semantics live in the store.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"statelab/internal/models"
	"statelab/internal/state"
	"statelab/internal/todo"
)

// Controller holds the handlers' dependencies.
type Controller struct {
	store  *todo.Store
	uptime *state.Counter
}

// New wires a controller around a store and the app's uptime counter.
func New(store *todo.Store, uptime *state.Counter) *Controller {
	return &Controller{store: store, uptime: uptime}
}

// ListTodos returns the collection in insertion order. ?filter=active or
// ?filter=completed narrows the view for display; the stored order is
// untouched.
func (ct *Controller) ListTodos(c *gin.Context) {
	todos := ct.store.List()
	switch c.Query("filter") {
	case "active":
		todos = filter(todos, func(t models.Todo) bool { return !t.Completed })
	case "completed":
		todos = filter(todos, func(t models.Todo) bool { return t.Completed })
	}
	c.JSON(http.StatusOK, todos)
}

// GetStats returns the derived aggregate view.
func (ct *Controller) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ct.store.Stats())
}

// CreateTodo adds a record. Empty text is a validation rejection (422), not
// a stored record.
func (ct *Controller) CreateTodo(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	created, ok := ct.store.Add(c.Request.Context(), body.Text)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Text must not be empty"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateTodo edits text and/or toggles completion on one record.
func (ct *Controller) UpdateTodo(c *gin.Context) {
	id := c.Param("id")
	var body struct {
		Text   string `json:"text"`
		Toggle bool   `json:"toggle"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	ctx := c.Request.Context()
	changed := false
	if body.Text != "" {
		changed = ct.store.Edit(ctx, id, body.Text) || changed
	}
	if body.Toggle {
		changed = ct.store.Toggle(ctx, id) || changed
	}
	if !changed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	updated, _ := ct.store.Get(id)
	c.JSON(http.StatusOK, updated)
}

// DeleteTodo removes one record.
func (ct *Controller) DeleteTodo(c *gin.Context) {
	if !ct.store.Delete(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCompleted removes every completed record.
func (ct *Controller) ClearCompleted(c *gin.Context) {
	removed := ct.store.ClearCompleted(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Health returns 200 if the process is alive.
func (ct *Controller) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Uptime reports the tick counter driven by the configured interval.
func (ct *Controller) Uptime(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ticks": ct.uptime.Value()})
}

func filter(todos []models.Todo, keep func(models.Todo) bool) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
