package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
)

func TestCreateAssignsDistinctIDs(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	seen := map[int64]bool{}
	for _, title := range []string{"a", "b", "c"} {
		todo, err := repo.Create(ctx, &models.Todo{Title: title})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		if seen[todo.ID] {
			t.Fatalf("id %d assigned twice", todo.ID)
		}
		seen[todo.ID] = true
	}

	todos, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 3 || todos[0].Title != "a" || todos[2].Title != "c" {
		t.Fatalf("expected insertion order, got %+v", todos)
	}
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	first, _ := repo.Create(ctx, &models.Todo{Title: "a"})
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, _ := repo.Create(ctx, &models.Todo{Title: "b"})
	if second.ID == first.ID {
		t.Fatalf("id %d reused", first.ID)
	}
}

func TestToggleAdvancesUpdatedAt(t *testing.T) {
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	repo := NewTodoRepositoryWithClock(func() time.Time { return clock })
	ctx := context.Background()

	todo, _ := repo.Create(ctx, &models.Todo{Title: "a"})

	clock = clock.Add(time.Second)
	toggled, err := repo.Toggle(ctx, todo.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed || !toggled.UpdatedAt.Equal(clock) {
		t.Fatalf("unexpected toggled todo: %+v", toggled)
	}

	clock = clock.Add(-time.Hour)
	again, _ := repo.Toggle(ctx, todo.ID)
	if again.Completed {
		t.Fatalf("expected second toggle to restore completed=false")
	}
	if again.UpdatedAt.Before(toggled.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v < %v", again.UpdatedAt, toggled.UpdatedAt)
	}
}

func TestMissingIDs(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Toggle(ctx, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("toggle: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestReturnedTodosAreCopies(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()

	todo, _ := repo.Create(ctx, &models.Todo{Title: "a"})
	todo.Title = "mutated"

	stored, _ := repo.GetByID(ctx, todo.ID)
	if stored.Title != "a" {
		t.Fatalf("store was mutated through returned pointer: %q", stored.Title)
	}
}

func TestDeleteAll(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		repo.Create(ctx, &models.Todo{Title: "x"})
	}

	n, err := repo.DeleteAll(ctx)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 removed, got %d (%v)", n, err)
	}
	todos, _ := repo.List(ctx)
	if len(todos) != 0 {
		t.Fatalf("expected empty store, got %d todos", len(todos))
	}
}

func TestConcurrentToggles(t *testing.T) {
	repo := NewTodoRepository()
	ctx := context.Background()
	todo, _ := repo.Create(ctx, &models.Todo{Title: "a"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Toggle(ctx, todo.ID)
		}()
	}
	wg.Wait()

	got, _ := repo.GetByID(ctx, todo.ID)
	if got.Completed {
		t.Fatalf("expected an even number of toggles to leave completed=false")
	}
}

func TestCancelledContext(t *testing.T) {
	repo := NewTodoRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
