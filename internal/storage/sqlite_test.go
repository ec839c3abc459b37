package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/cogito/internal/games/cogito"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreProgressRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadProgress("main"); err != nil || ok {
		t.Fatalf("fresh slot: ok=%v err=%v", ok, err)
	}

	if err := store.SaveProgress("main", 1, 3); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress("main", 2, 1); err != nil {
		t.Fatalf("SaveProgress() overwrite failed: %v", err)
	}
	if err := store.SaveProgress("other", 1, 2); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	e, ok, err := store.LoadProgress("main")
	if err != nil || !ok {
		t.Fatalf("LoadProgress() ok=%v err=%v", ok, err)
	}
	if e.World != 2 || e.Level != 1 {
		t.Errorf("progress = %d-%d, want 2-1", e.World, e.Level)
	}

	slots, err := store.Slots()
	if err != nil {
		t.Fatalf("Slots() failed: %v", err)
	}
	if len(slots) != 2 || slots[0].Slot != "main" || slots[1].Slot != "other" {
		t.Errorf("slots = %+v", slots)
	}

	if err := store.ResetProgress("main"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	if _, ok, _ := store.LoadProgress("main"); ok {
		t.Error("slot still present after reset")
	}
	if _, ok, _ := store.LoadProgress("other"); !ok {
		t.Error("reset removed another slot")
	}
}

func TestStoreCompletions(t *testing.T) {
	store := openTestStore(t)

	runs := []CompletionEntry{
		{LevelID: "thin_ice", World: 1, Level: 2, Moves: 14, Undos: 3},
		{LevelID: "thin_ice", World: 1, Level: 2, Moves: 9, Undos: 1},
		{LevelID: "thin_ice", World: 1, Level: 2, Moves: 9, Undos: 0},
		{LevelID: "first_steps", World: 1, Level: 1, Moves: 6, ShiftsUsed: 1},
		{LevelID: "conveyors", World: 2, Level: 1, Moves: 20},
	}
	for _, r := range runs {
		if _, err := store.RecordCompletion(r); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	got, err := store.Completions("thin_ice", 2)
	if err != nil {
		t.Fatalf("Completions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 completions, got %d", len(got))
	}
	if got[0].Moves != 9 || got[0].Undos != 0 {
		t.Errorf("best = %+v, want 9 moves 0 undos", got[0])
	}
	if got[0].RunID == uuid.Nil {
		t.Error("run id not generated")
	}

	best, err := store.BestCompletions()
	if err != nil {
		t.Fatalf("BestCompletions() failed: %v", err)
	}
	wantOrder := []string{"first_steps", "thin_ice", "conveyors"}
	if len(best) != len(wantOrder) {
		t.Fatalf("best = %d levels, want %d", len(best), len(wantOrder))
	}
	for i, id := range wantOrder {
		if best[i].LevelID != id {
			t.Errorf("best[%d] = %s, want %s", i, best[i].LevelID, id)
		}
	}
	if best[1].Moves != 9 || best[1].Undos != 0 {
		t.Errorf("best thin_ice = %+v", best[1])
	}

	if err := store.ClearCompletions(); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}
	if best, _ := store.BestCompletions(); len(best) != 0 {
		t.Errorf("Expected empty log, got %d", len(best))
	}
}

func TestStoreDuplicateRunRejected(t *testing.T) {
	store := openTestStore(t)
	id := uuid.New()
	if _, err := store.RecordCompletion(CompletionEntry{RunID: id, LevelID: "x", Moves: 1}); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if _, err := store.RecordCompletion(CompletionEntry{RunID: id, LevelID: "x", Moves: 1}); err == nil {
		t.Error("the same run must not be logged twice")
	}
}

func TestSlotSaver(t *testing.T) {
	store := openTestStore(t)
	saver := store.Saver("default")

	p, err := saver.LoadProgress()
	if err != nil {
		t.Fatalf("LoadProgress() failed: %v", err)
	}
	if p != cogito.FirstProgress {
		t.Errorf("fresh slot = %v, want %v", p, cogito.FirstProgress)
	}

	if err := saver.SaveProgress(cogito.Progress{World: 1, Level: 3}); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if p, _ := saver.LoadProgress(); p != (cogito.Progress{World: 1, Level: 3}) {
		t.Errorf("progress = %v, want 1-3", p)
	}
	if p, _ := store.Saver("other").LoadProgress(); p != cogito.FirstProgress {
		t.Errorf("slots leak into each other: %v", p)
	}

	run := uuid.New()
	err = saver.RecordCompletion(cogito.Completion{RunID: run, LevelID: "sand_bridge", World: 1, Level: 3, Moves: 11, Undos: 2})
	if err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	got, err := store.Completions("sand_bridge", 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("Completions() = %v, %v", got, err)
	}
	if got[0].RunID != run || got[0].Moves != 11 || got[0].Undos != 2 {
		t.Errorf("completion = %+v", got[0])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
