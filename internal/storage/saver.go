package storage

import (
	"github.com/vovakirdan/cogito/internal/games/cogito"
)

// SlotSaver binds a store to one save slot so the game can persist
// without a direct storage dependency.
type SlotSaver struct {
	store *Store
	slot  string
}

// Ensure SlotSaver implements cogito.Saver
var _ cogito.Saver = (*SlotSaver)(nil)

// Saver returns the game-facing saver of a slot.
func (s *Store) Saver(slot string) *SlotSaver {
	return &SlotSaver{store: s, slot: slot}
}

// LoadProgress returns the slot's progress; a fresh slot starts at 1-1.
func (s *SlotSaver) LoadProgress() (cogito.Progress, error) {
	e, ok, err := s.store.LoadProgress(s.slot)
	if err != nil {
		return cogito.Progress{}, err
	}
	if !ok {
		return cogito.FirstProgress, nil
	}
	return cogito.Progress{World: e.World, Level: e.Level}, nil
}

func (s *SlotSaver) SaveProgress(p cogito.Progress) error {
	return s.store.SaveProgress(s.slot, p.World, p.Level)
}

func (s *SlotSaver) RecordCompletion(c cogito.Completion) error {
	_, err := s.store.RecordCompletion(CompletionEntry{
		RunID:      c.RunID,
		LevelID:    c.LevelID,
		World:      c.World,
		Level:      c.Level,
		Moves:      c.Moves,
		Undos:      c.Undos,
		ShiftsUsed: c.ShiftsUsed,
	})
	return err
}
