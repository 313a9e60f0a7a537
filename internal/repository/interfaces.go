package repository

import (
	"context"
	"errors"

	"github.com/Kerhoff/todo-api/internal/models"
)

// ErrNotFound is returned when no todo has the requested id.
var ErrNotFound = errors.New("todo not found")

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	// Create persists todo as given and fills in its id and timestamps.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	// List returns every todo in insertion order.
	List(ctx context.Context) ([]*models.Todo, error)
	// Toggle flips the completed flag of a todo in one step.
	Toggle(ctx context.Context, id int64) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every todo and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}
