package model

import (
	"strings"

	"github.com/google/uuid"
)

// Board is the ordered task collection. Column order is the order of tasks sharing a status.
type Board struct {
	tasks []Task
	newID func() string
}

func NewBoard() *Board {
	return &Board{newID: uuid.NewString}
}

// NewBoardFromTasks builds a board from already-normalized tasks, skipping invalid entries.
func NewBoardFromTasks(tasks []Task) *Board {
	b := NewBoard()
	for _, t := range tasks {
		if t.Validate() != nil {
			continue
		}
		if _, ok := b.index(t.ID); ok {
			continue
		}
		b.tasks = append(b.tasks, t)
	}
	return b
}

func (b *Board) Len() int {
	return len(b.tasks)
}

func (b *Board) Tasks() []Task {
	out := make([]Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

func (b *Board) Column(status Status) []Task {
	out := make([]Task, 0)
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) Counts() map[Status]int {
	out := make(map[Status]int, len(Columns))
	for _, c := range Columns {
		out[c] = 0
	}
	for _, t := range b.tasks {
		out[t.Status]++
	}
	return out
}

func (b *Board) Get(id string) (Task, bool) {
	i, ok := b.index(id)
	if !ok {
		return Task{}, false
	}
	return b.tasks[i], true
}

// Add appends a new todo task. Title and description are trimmed; an empty title is rejected.
func (b *Board) Add(title, description string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	t := Task{
		ID:          b.nextID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      StatusTodo,
	}
	b.tasks = append(b.tasks, t)
	return t, nil
}

// Move drops the task at the end of the target column. entered reports whether the task
// arrived in done from another column.
func (b *Board) Move(id string, to Status) (entered bool, err error) {
	if !to.IsValid() {
		return false, ErrInvalidStatus
	}
	i, ok := b.index(id)
	if !ok {
		return false, ErrTaskNotFound
	}
	t := b.tasks[i]
	from := t.Status
	t.Status = to
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	b.tasks = append(b.tasks, t)
	return to == StatusDone && from != StatusDone, nil
}

// Reorder swaps the task with its neighbour delta positions away inside the same column.
func (b *Board) Reorder(id string, delta int) bool {
	i, ok := b.index(id)
	if !ok || delta == 0 {
		return false
	}
	status := b.tasks[i].Status
	positions := make([]int, 0)
	at := -1
	for j, t := range b.tasks {
		if t.Status == status {
			if j == i {
				at = len(positions)
			}
			positions = append(positions, j)
		}
	}
	target := at + delta
	if target < 0 || target >= len(positions) {
		return false
	}
	j := positions[target]
	b.tasks[i], b.tasks[j] = b.tasks[j], b.tasks[i]
	return true
}

func (b *Board) Delete(id string) bool {
	i, ok := b.index(id)
	if !ok {
		return false
	}
	b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
	return true
}

// FindByPrefix resolves a task by exact id, id prefix, or case-insensitive title.
func (b *Board) FindByPrefix(ref string) (Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, false
	}
	if t, ok := b.Get(ref); ok {
		return t, true
	}
	for _, t := range b.tasks {
		if strings.HasPrefix(t.ID, ref) || strings.EqualFold(t.Title, ref) {
			return t, true
		}
	}
	return Task{}, false
}

func (b *Board) index(id string) (int, bool) {
	for i, t := range b.tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (b *Board) nextID() string {
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	return b.newID()
}
