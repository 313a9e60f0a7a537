// Package memory holds an in-process TodoRepository used by handler and
// service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
)

type todoRepository struct {
	mu     sync.RWMutex
	todos  map[int64]*models.Todo
	order  []int64
	nextID int64
	now    func() time.Time
}

// NewTodoRepository creates an empty store whose ids start at 1.
func NewTodoRepository() repository.TodoRepository {
	return NewTodoRepositoryWithClock(time.Now)
}

// NewTodoRepositoryWithClock is NewTodoRepository with a custom time source.
func NewTodoRepositoryWithClock(now func() time.Time) repository.TodoRepository {
	return &todoRepository{
		todos:  make(map[int64]*models.Todo),
		nextID: 1,
		now:    now,
	}
}

func (r *todoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	todo.ID = r.nextID
	todo.CreatedAt = now
	todo.UpdatedAt = now
	r.nextID++

	r.todos[todo.ID] = todo.Clone()
	r.order = append(r.order, todo.ID)
	return todo, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return todo.Clone(), nil
}

func (r *todoRepository) List(ctx context.Context) ([]*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]*models.Todo, 0, len(r.order))
	for _, id := range r.order {
		todos = append(todos, r.todos[id].Clone())
	}
	return todos, nil
}

func (r *todoRepository) Toggle(ctx context.Context, id int64) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	todo, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	todo.Toggle(r.now())
	return todo.Clone(), nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *todoRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.order))
	r.todos = make(map[int64]*models.Todo)
	r.order = nil
	return n, nil
}
