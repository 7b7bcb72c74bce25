package model

import "testing"

func TestNormalizeUpgradesLegacyRecords(t *testing.T) {
	tasks, changed := Normalize([]StoredTask{
		{ID: "a", Text: "old title", Column: "doing"},
		{ID: "", Title: "", Status: ""},
		{ID: "c", Title: "current", Description: "d", Status: "done"},
	})
	if !changed {
		t.Fatal("expected legacy records to be reported as changed")
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "old title" || tasks[0].Status != StatusDoing {
		t.Fatalf("unexpected legacy upgrade: %+v", tasks[0])
	}
	if tasks[1].ID == "" || tasks[1].Title != "Untitled task" || tasks[1].Status != StatusTodo {
		t.Fatalf("unexpected defaults: %+v", tasks[1])
	}
	if tasks[2].Title != "current" || tasks[2].Description != "d" || tasks[2].Status != StatusDone {
		t.Fatalf("unexpected current record: %+v", tasks[2])
	}
}

func TestNormalizeCurrentRecordsUnchanged(t *testing.T) {
	in := ToStored([]Task{
		{ID: "1", Title: "one", Status: StatusTodo},
		{ID: "2", Title: "two", Description: "x", Status: StatusDone},
	})
	tasks, changed := Normalize(in)
	if changed {
		t.Fatal("expected current records to be unchanged")
	}
	if len(tasks) != 2 || tasks[1].Description != "x" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestNormalizeReplacesDuplicateIDs(t *testing.T) {
	tasks, changed := Normalize([]StoredTask{
		{ID: "same", Title: "a", Status: "todo"},
		{ID: "same", Title: "b", Status: "todo"},
	})
	if !changed {
		t.Fatal("expected duplicate id to count as a change")
	}
	if tasks[0].ID == tasks[1].ID {
		t.Fatalf("expected distinct ids, got %q twice", tasks[0].ID)
	}
}
