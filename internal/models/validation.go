package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError describes a single rule a request field violated.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors is the result of a failed validation. It is returned as a
// value alongside the zero result, never raised.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return v.Message()
}

// Message summarizes the errors using the first one.
func (v ValidationErrors) Message() string {
	switch len(v) {
	case 0:
		return ""
	case 1:
		return v[0].Message
	case 2:
		return fmt.Sprintf("%s (and 1 more error)", v[0].Message)
	default:
		return fmt.Sprintf("%s (and %d more errors)", v[0].Message, len(v)-1)
	}
}

// Fields groups messages by field name.
func (v ValidationErrors) Fields() map[string][]string {
	fields := make(map[string][]string, len(v))
	for _, e := range v {
		fields[e.Field] = append(fields[e.Field], e.Message)
	}
	return fields
}

// CreateTodoRequest is the decoded body of a create call. Fields are kept
// untyped so that type mismatches surface as validation errors instead of
// decode failures.
type CreateTodoRequest struct {
	Title       any `json:"title"`
	Description any `json:"description"`
}

// Validate checks the request and, on success, returns the todo to persist.
// Strings are trimmed and an empty description is stored as null.
func (r CreateTodoRequest) Validate() (*Todo, ValidationErrors) {
	var errs ValidationErrors
	todo := &Todo{}

	switch title := r.Title.(type) {
	case nil:
		errs = append(errs, FieldError{"title", "The title field is required."})
	case string:
		title = strings.TrimSpace(title)
		switch {
		case title == "":
			errs = append(errs, FieldError{"title", "The title field is required."})
		case utf8.RuneCountInString(title) > TitleMaxLength:
			errs = append(errs, FieldError{"title",
				fmt.Sprintf("The title field must not be greater than %d characters.", TitleMaxLength)})
		default:
			todo.Title = title
		}
	default:
		errs = append(errs, FieldError{"title", "The title field must be a string."})
	}

	switch desc := r.Description.(type) {
	case nil:
	case string:
		if desc = strings.TrimSpace(desc); desc != "" {
			todo.Description = &desc
		}
	default:
		errs = append(errs, FieldError{"description", "The description field must be a string."})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return todo, nil
}
