package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:     "task-1",
		Title:  "Write the timer",
		Status: StatusDoing,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsEmptyTitle(t *testing.T) {
	task := Task{ID: "task-1", Title: "   ", Status: StatusTodo}
	if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestTaskValidateInvalidStatus(t *testing.T) {
	task := Task{ID: "task-1", Title: "Bad state", Status: Status("blocked")}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestParseStatusFallsBackToTodo(t *testing.T) {
	cases := map[string]Status{
		"todo":    StatusTodo,
		"DOING":   StatusDoing,
		" done ":  StatusDone,
		"blocked": StatusTodo,
		"":        StatusTodo,
	}
	for in, want := range cases {
		if got := ParseStatus(in); got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusLabelsAndIcons(t *testing.T) {
	if StatusTodo.Label() != "To Do" || StatusDoing.Label() != "Doing" || StatusDone.Label() != "Done" {
		t.Fatal("unexpected status labels")
	}
	if StatusDone.Icon() != "✅" || StatusDoing.Icon() != "🚧" || StatusTodo.Icon() != "📝" {
		t.Fatal("unexpected status icons")
	}
	if ColumnIndex(StatusDone) != 2 || ColumnIndex(Status("x")) != 0 {
		t.Fatal("unexpected column index")
	}
}
