package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/kv"
)

// EntriesKey is the key-value slot holding the JSON array of entries
const EntriesKey = "mood_entries"

// ReadResult contains the entries read from storage and, when the stored
// payload could not be decoded, the corruption that caused an empty result.
type ReadResult struct {
	Entries    []entry.MoodEntry
	Corruption *CorruptionError
}

// EntryStore persists the whole entry collection, in insertion order, under a single key.
// Every mutation reads the full collection, changes it and writes it back.
// The mutex serializes mutations inside one process; separate processes sharing a
// medium are last-writer-wins.
type EntryStore struct {
	mu     sync.Mutex
	kv     kv.Store
	key    string
	logger *slog.Logger
}

// NewEntryStore creates an EntryStore over the given medium.
// A nil logger discards log output.
func NewEntryStore(store kv.Store, logger *slog.Logger) *EntryStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EntryStore{kv: store, key: EntriesKey, logger: logger}
}

// Key returns the slot the collection is stored under.
func (s *EntryStore) Key() string {
	return s.key
}

// snapshot is the decoded state of the slot at one point in time
type snapshot struct {
	raw     []byte
	entries []entry.MoodEntry
	corrupt *CorruptionError
}

// load reads and decodes the slot. A missing or empty slot is an empty collection.
// A payload that fails to decode is reported in snapshot.corrupt, not as an error.
func (s *EntryStore) load() (snapshot, error) {
	raw, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return snapshot{entries: []entry.MoodEntry{}}, nil
		}
		return snapshot{entries: []entry.MoodEntry{}}, err
	}

	snap := snapshot{raw: raw, entries: []entry.MoodEntry{}}
	if len(bytes.TrimSpace(raw)) == 0 {
		return snap, nil
	}

	var entries []entry.MoodEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		snap.corrupt = &CorruptionError{Key: s.key, Size: len(raw), Err: err}
		s.logger.Warn("stored entries could not be parsed, treating as empty",
			slog.String("key", s.key),
			slog.Int("bytes", len(raw)),
			slog.String("error", err.Error()))
		return snap, nil
	}
	if entries != nil {
		snap.entries = entries
	}
	return snap, nil
}

// save encodes the collection and replaces the slot.
// A corrupt payload about to be overwritten is copied to a backup slot first.
func (s *EntryStore) save(op string, snap snapshot, entries []entry.MoodEntry) error {
	if snap.corrupt != nil {
		if err := s.createBackup(snap.raw); err != nil {
			return &WriteError{Op: op, Key: s.key, Err: fmt.Errorf("preserve corrupted payload: %w", err)}
		}
		s.logger.Warn("corrupted payload preserved before overwrite",
			slog.String("key", s.key),
			slog.String("backup", backupKey(s.key, 1)))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return &WriteError{Op: op, Key: s.key, Err: err}
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return &WriteError{Op: op, Key: s.key, Err: err}
	}
	return nil
}

// Append adds e to the end of the collection.
// An entry without an id or with invalid user fields is rejected before anything is read or written.
func (s *EntryStore) Append(e entry.MoodEntry) error {
	if strings.TrimSpace(e.ID) == "" {
		return &entry.ValidationError{Field: "id", Message: "id cannot be empty"}
	}
	if err := entry.Validate(e.Scale, e.Description); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return &WriteError{Op: "append", Key: s.key, Err: err}
	}

	for _, existing := range snap.entries {
		if existing.ID == e.ID {
			return &WriteError{Op: "append", Key: s.key, Err: fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)}
		}
	}

	entries := append(snap.entries, e)
	return s.save("append", snap, entries)
}

// All returns every stored entry in insertion order.
// It returns an empty slice when nothing was written yet or the payload cannot be read.
func (s *EntryStore) All() []entry.MoodEntry {
	result, err := s.Read()
	if err != nil {
		s.logger.Warn("stored entries could not be read, treating as empty",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		return []entry.MoodEntry{}
	}
	return result.Entries
}

// Read returns every stored entry along with any corruption found in the payload.
// Corruption still yields an empty, non-nil Entries slice.
// An error is returned only when the medium itself fails.
func (s *EntryStore) Read() (ReadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return ReadResult{Entries: []entry.MoodEntry{}}, err
	}
	return ReadResult{Entries: snap.entries, Corruption: snap.corrupt}, nil
}

// Update merges p into the entry with the given id.
// Updating an id that is not stored is a silent no-op.
func (s *EntryStore) Update(id string, p entry.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return &WriteError{Op: "update", Key: s.key, Err: err}
	}

	index := -1
	for i, e := range snap.entries {
		if e.ID == id {
			index = i
			break
		}
	}
	if index == -1 || p.IsEmpty() {
		return nil
	}

	merged, err := p.Apply(snap.entries[index])
	if err != nil {
		return err
	}
	if merged == snap.entries[index] {
		return nil
	}

	snap.entries[index] = merged
	return s.save("update", snap, snap.entries)
}

// Health contains information about the state of the stored payload.
type Health struct {
	Key         string
	Present     bool   // a value exists under Key
	Bytes       int    // payload size
	Entries     int    // decoded entries
	WithInsight int    // decoded entries carrying an insight
	Corrupt     bool   // the payload failed to decode
	Error       string // decode error when Corrupt
	Backups     int    // preserved corrupted payloads
}

// Health analyzes the stored payload without modifying it.
func (s *EntryStore) Health() (Health, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := Health{Key: s.key}
	snap, err := s.load()
	if err != nil {
		return h, err
	}

	h.Present = snap.raw != nil
	h.Bytes = len(snap.raw)
	h.Entries = len(snap.entries)
	for _, e := range snap.entries {
		if e.HasInsight() {
			h.WithInsight++
		}
	}
	if snap.corrupt != nil {
		h.Corrupt = true
		h.Error = snap.corrupt.Err.Error()
	}

	backups, err := s.listBackups()
	if err != nil {
		return h, err
	}
	h.Backups = len(backups)
	return h, nil
}
