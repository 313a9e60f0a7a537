package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
)

const todoColumns = `id, title, description, completed, created_at, updated_at`

type todoRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &todoRepository{db: db, now: time.Now}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	todo := &models.Todo{}
	err := s.Scan(
		&todo.ID, &todo.Title, &todo.Description, &todo.Completed,
		&todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *todoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `INSERT INTO todos (title, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	now := r.now()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get todo %d: %w", id, err)
	}
	return todo, nil
}

func (r *todoRepository) List(ctx context.Context) ([]*models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return todos, nil
}

// Toggle relies on the row lock taken by UPDATE, so concurrent toggles on
// the same id are serialized by Postgres.
func (r *todoRepository) Toggle(ctx context.Context, id int64) (*models.Todo, error) {
	query := `UPDATE todos SET completed = NOT completed, updated_at = GREATEST(updated_at, $2)
		WHERE id = $1 RETURNING ` + todoColumns
	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, r.now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle todo %d: %w", id, err)
	}
	return todo, nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *todoRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos: %w", err)
	}
	return n, nil
}
