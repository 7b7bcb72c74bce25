package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrEmptyTitle    = errors.New("model: task title is required")
	ErrTaskNotFound  = errors.New("model: task not found")
)

type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Columns lists the board columns in display order.
var Columns = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusDoing:
		return "Doing"
	case StatusDone:
		return "Done"
	default:
		return "To Do"
	}
}

func (s Status) Icon() string {
	switch s {
	case StatusDoing:
		return "🚧"
	case StatusDone:
		return "✅"
	default:
		return "📝"
	}
}

// ParseStatus maps a stored or typed status onto a column. Unknown values fall back to todo.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return StatusTodo
}

// ColumnIndex returns the display index of s, or 0 for unknown statuses.
func ColumnIndex(s Status) int {
	for i, c := range Columns {
		if c == s {
			return i
		}
	}
	return 0
}

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}
