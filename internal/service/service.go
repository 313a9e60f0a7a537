package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kerhoff/todo-api/internal/metrics"
	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
	"github.com/sirupsen/logrus"
)

// Pinger verifies that the storage backend is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service is the business logic layer between the HTTP API and the todo
// repository.
type Service struct {
	db      Pinger
	logger  *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	Todos   repository.TodoRepository
}

// New creates a new Service. m may be nil.
func New(db Pinger, logger *logrus.Logger, m *metrics.Metrics, todos repository.TodoRepository) *Service {
	return &Service{
		db:      db,
		logger:  logger,
		metrics: m,
		now:     time.Now,
		Todos:   todos,
	}
}

// ListTodos returns every todo in insertion order.
func (s *Service) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	todos, err := s.Todos.List(ctx)
	s.observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodo validates req and persists a new, incomplete todo. A failed
// validation is returned as models.ValidationErrors and nothing is written.
func (s *Service) CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	todo, verrs := req.Validate()
	if verrs != nil {
		s.metrics.ObserveOperation("create", metrics.ResultInvalid)
		return nil, verrs
	}

	created, err := s.Todos.Create(ctx, todo)
	s.observe("create", err)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("todo_id", created.ID).Debug("Created todo")
	return created, nil
}

// ToggleTodo flips the completed flag of the todo with the given id.
func (s *Service) ToggleTodo(ctx context.Context, id int64) (*models.Todo, error) {
	todo, err := s.Todos.Toggle(ctx, id)
	s.observe("toggle", err)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"todo_id": id, "completed": todo.Completed}).Debug("Toggled todo")
	return todo, nil
}

// DeleteTodo permanently removes the todo with the given id.
func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	err := s.Todos.Delete(ctx, id)
	s.observe("delete", err)
	if err != nil {
		return err
	}
	s.logger.WithField("todo_id", id).Debug("Deleted todo")
	return nil
}

func (s *Service) observe(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.ObserveOperation(operation, metrics.ResultOK)
	case errors.Is(err, repository.ErrNotFound):
		s.metrics.ObserveOperation(operation, metrics.ResultNotFound)
	default:
		s.metrics.ObserveOperation(operation, metrics.ResultError)
	}
}
