package models

import (
	"strings"
	"testing"
)

func TestCreateTodoRequestValidate(t *testing.T) {
	long := strings.Repeat("a", TitleMaxLength+1)
	exact := strings.Repeat("é", TitleMaxLength)

	tests := []struct {
		name      string
		req       CreateTodoRequest
		wantTitle string
		wantDesc  *string
		wantErr   map[string]string
	}{
		{
			name:      "title only",
			req:       CreateTodoRequest{Title: "Write spec"},
			wantTitle: "Write spec",
		},
		{
			name:      "trims title and description",
			req:       CreateTodoRequest{Title: "  Ship it ", Description: " today "},
			wantTitle: "Ship it",
			wantDesc:  ptr("today"),
		},
		{
			name:      "blank description becomes null",
			req:       CreateTodoRequest{Title: "x", Description: "   "},
			wantTitle: "x",
		},
		{
			name:      "multibyte title at the limit",
			req:       CreateTodoRequest{Title: exact},
			wantTitle: exact,
		},
		{
			name:    "missing title",
			req:     CreateTodoRequest{},
			wantErr: map[string]string{"title": "The title field is required."},
		},
		{
			name:    "blank title",
			req:     CreateTodoRequest{Title: " \t"},
			wantErr: map[string]string{"title": "The title field is required."},
		},
		{
			name:    "title not a string",
			req:     CreateTodoRequest{Title: float64(42)},
			wantErr: map[string]string{"title": "The title field must be a string."},
		},
		{
			name:    "title too long",
			req:     CreateTodoRequest{Title: long},
			wantErr: map[string]string{"title": "The title field must not be greater than 255 characters."},
		},
		{
			name: "bad description and missing title",
			req:  CreateTodoRequest{Description: true},
			wantErr: map[string]string{
				"title":       "The title field is required.",
				"description": "The description field must be a string.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, errs := tt.req.Validate()
			if tt.wantErr != nil {
				if todo != nil {
					t.Fatalf("expected no todo, got %+v", todo)
				}
				fields := errs.Fields()
				if len(fields) != len(tt.wantErr) {
					t.Fatalf("expected %d failing fields, got %v", len(tt.wantErr), fields)
				}
				for field, msg := range tt.wantErr {
					if got := fields[field]; len(got) != 1 || got[0] != msg {
						t.Fatalf("field %s: expected %q, got %v", field, msg, got)
					}
				}
				return
			}
			if errs != nil {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if todo.Title != tt.wantTitle {
				t.Fatalf("expected title %q, got %q", tt.wantTitle, todo.Title)
			}
			if todo.Completed {
				t.Fatalf("expected new todo to be incomplete")
			}
			switch {
			case tt.wantDesc == nil && todo.Description != nil:
				t.Fatalf("expected nil description, got %q", *todo.Description)
			case tt.wantDesc != nil && (todo.Description == nil || *todo.Description != *tt.wantDesc):
				t.Fatalf("expected description %q, got %v", *tt.wantDesc, todo.Description)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{"title", "The title field is required."},
		{"description", "The description field must be a string."},
	}
	want := "The title field is required. (and 1 more error)"
	if errs.Error() != want {
		t.Fatalf("expected %q, got %q", want, errs.Error())
	}
	if ValidationErrors(nil).Message() != "" {
		t.Fatalf("expected empty message for no errors")
	}
}

func ptr(s string) *string { return &s }
