// Package seed inserts the demo dataset into the todo store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/todo-api/internal/models"
	"github.com/Kerhoff/todo-api/internal/repository"
)

//go:embed todos.toml
var defaultDataset []byte

// Entry is one demo row. Seeded rows always start incomplete, so there is
// no completed key.
type Entry struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Dataset is the decoded seed file.
type Dataset struct {
	Todos []Entry `toml:"todo"`
}

// Options controls a seed run.
type Options struct {
	// Fresh deletes every existing todo before inserting.
	Fresh bool
}

// Default returns the built-in demo dataset.
func Default() (Dataset, error) {
	return Parse(defaultDataset)
}

// Parse decodes a TOML dataset, rejecting keys it does not know.
func Parse(data []byte) (Dataset, error) {
	var ds Dataset
	md, err := toml.Decode(string(data), &ds)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to decode seed data: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Dataset{}, fmt.Errorf("unknown keys in seed data: %s", strings.Join(keys, ", "))
	}
	return ds, nil
}

// Run writes ds straight through the repository; rows are not validated.
// It returns the number of rows inserted.
func Run(ctx context.Context, repo repository.TodoRepository, logger *logrus.Logger, ds Dataset, opts Options) (int, error) {
	if opts.Fresh {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		logger.WithField("deleted", n).Info("Cleared existing todos")
	}

	for i, e := range ds.Todos {
		todo := &models.Todo{Title: e.Title}
		if e.Description != "" {
			desc := e.Description
			todo.Description = &desc
		}
		created, err := repo.Create(ctx, todo)
		if err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", e.Title, err)
		}
		logger.WithFields(logrus.Fields{"todo_id": created.ID, "title": created.Title}).Debug("Seeded todo")
	}

	logger.WithField("inserted", len(ds.Todos)).Info("Seeding completed")
	return len(ds.Todos), nil
}
