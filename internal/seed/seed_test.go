package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository/memory"
	"github.com/Kerhoff/todo-api/pkg/logger"
)

func TestDefaultDataset(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	want := []string{"Complete AWS deployment", "Add authentication", "Write tests"}
	if len(ds.Todos) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(ds.Todos))
	}
	for i, title := range want {
		if ds.Todos[i].Title != title || ds.Todos[i].Description == "" {
			t.Fatalf("row %d: unexpected entry %+v", i, ds.Todos[i])
		}
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[[todo]]\ntitle = \"x\"\npriority = \"high\"\n"))
	if err == nil || !strings.Contains(err.Error(), "todo.priority") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestParseRejectsCompletedKey(t *testing.T) {
	_, err := Parse([]byte("[[todo]]\ntitle = \"x\"\ncompleted = true\n"))
	if err == nil || !strings.Contains(err.Error(), "todo.completed") {
		t.Fatalf("expected completed key to be rejected, got %v", err)
	}
}

func TestRunInsertsDataset(t *testing.T) {
	repo := memory.NewTodoRepository()
	ctx := context.Background()
	ds, _ := Default()

	n, err := Run(ctx, repo, logger.Discard(), ds, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 inserted, got %d", n)
	}

	todos, _ := repo.List(ctx)
	if len(todos) != 3 || todos[0].Title != "Complete AWS deployment" {
		t.Fatalf("unexpected store contents: %+v", todos)
	}
	for _, todo := range todos {
		if todo.Completed {
			t.Fatalf("seeded todo %d is already completed", todo.ID)
		}
	}
	if todos[0].Description == nil || *todos[0].Description != "Deploy the todo API to AWS ECS" {
		t.Fatalf("description not stored: %+v", todos[0])
	}
}

func TestRunBypassesValidation(t *testing.T) {
	repo := memory.NewTodoRepository()
	ds := Dataset{Todos: []Entry{{Title: strings.Repeat("x", models.TitleMaxLength+10)}}}

	if _, err := Run(context.Background(), repo, logger.Discard(), ds, Options{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	todos, _ := repo.List(context.Background())
	if len(todos) != 1 {
		t.Fatalf("expected oversized row to be written as-is")
	}
}

func TestRunFresh(t *testing.T) {
	repo := memory.NewTodoRepository()
	ctx := context.Background()
	ds, _ := Default()

	Run(ctx, repo, logger.Discard(), ds, Options{})
	if _, err := Run(ctx, repo, logger.Discard(), ds, Options{Fresh: true}); err != nil {
		t.Fatalf("fresh run: %v", err)
	}

	todos, _ := repo.List(ctx)
	if len(todos) != 3 {
		t.Fatalf("expected fresh seed to leave 3 rows, got %d", len(todos))
	}
}
