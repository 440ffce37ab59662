package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRecordsRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.TaskStarted("run-1", "build the thing"); err != nil {
		t.Fatalf("TaskStarted: %v", err)
	}
	runs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d", len(runs))
	}
	if runs[0].ID != "run-1" || runs[0].Prompt != "build the thing" {
		t.Fatalf("run = %+v", runs[0])
	}
	if runs[0].Outcome != "" || runs[0].FinishedAt != "" {
		t.Fatalf("unfinished run has outcome: %+v", runs[0])
	}

	if err := store.TaskFinished("run-1", "taskCompleted"); err != nil {
		t.Fatalf("TaskFinished: %v", err)
	}
	runs, err = store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if runs[0].Outcome != "taskCompleted" || runs[0].FinishedAt == "" {
		t.Fatalf("finished run = %+v", runs[0])
	}
}

func TestStoreRecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("run-%d", i)
		if err := store.TaskStarted(id, "prompt"); err != nil {
			t.Fatalf("TaskStarted %s: %v", id, err)
		}
		// Started-at timestamps order the listing; keep them distinct.
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len = %d, want 3", len(runs))
	}
	if runs[0].ID != "run-4" || runs[2].ID != "run-2" {
		t.Fatalf("order = %s..%s", runs[0].ID, runs[2].ID)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.TaskStarted("persisted", "survives restart"); err != nil {
		t.Fatalf("TaskStarted: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	runs, err := again.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "persisted" {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestStoreFinishUnknownRun(t *testing.T) {
	store := openTestStore(t)
	// Finishing an unknown run is a no-op, not an error.
	if err := store.TaskFinished("ghost", "taskCompleted"); err != nil {
		t.Fatalf("TaskFinished: %v", err)
	}
}
