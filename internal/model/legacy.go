package model

import (
	"strings"

	"github.com/google/uuid"
)

const untitledTask = "Untitled task"

// StoredTask is the persisted task record. Older records used column/text instead of
// status/title; both shapes decode into it.
type StoredTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text,omitempty"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Column      string `json:"column,omitempty"`
}

// Normalize upgrades stored records to Task. changed reports whether any record needed
// upgrading, so callers can write the normalized form back.
func Normalize(items []StoredTask) (tasks []Task, changed bool) {
	tasks = make([]Task, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = item.Column
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = strings.TrimSpace(item.Text)
		}
		if title == "" {
			title = untitledTask
		}
		id := strings.TrimSpace(item.ID)
		if id == "" || seen[id] {
			id = uuid.NewString()
		}
		seen[id] = true
		t := Task{
			ID:          id,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			Status:      ParseStatus(status),
		}
		if t.ID != item.ID || t.Title != item.Title || string(t.Status) != item.Status || item.Column != "" || item.Text != "" || t.Description != item.Description {
			changed = true
		}
		tasks = append(tasks, t)
	}
	return tasks, changed
}

func ToStored(tasks []Task) []StoredTask {
	out := make([]StoredTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, StoredTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
		})
	}
	return out
}
