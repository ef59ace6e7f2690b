package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/kv"
)

// failingStore wraps a kv.Store and fails Set after failAfter successful writes
type failingStore struct {
	kv.Store
	failAfter int
	sets      int
	getErr    error
}

func (f *failingStore) Get(key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Store.Get(key)
}

func (f *failingStore) Set(key string, value []byte) error {
	if f.sets >= f.failAfter {
		return errors.New("disk full")
	}
	f.sets++
	return f.Store.Set(key, value)
}

func newTestEntry(id string, scale int, desc string) entry.MoodEntry {
	return entry.MoodEntry{
		ID:          id,
		Scale:       scale,
		Description: desc,
		Date:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(scale) * time.Hour),
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestEntryStore_AllEmpty(t *testing.T) {
	s := NewEntryStore(kv.NewMemoryStore(), nil)

	entries := s.All()
	if entries == nil {
		t.Fatal("All() returned nil, expected empty slice")
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}
}

func TestEntryStore_EmptyPayload(t *testing.T) {
	for _, payload := range []string{"", "   ", "\n"} {
		mem := kv.NewMemoryStore()
		if err := mem.Set(EntriesKey, []byte(payload)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		s := NewEntryStore(mem, nil)

		result, err := s.Read()
		if err != nil {
			t.Fatalf("Read(%q) returned error: %v", payload, err)
		}
		if len(result.Entries) != 0 || result.Corruption != nil {
			t.Errorf("Read(%q) = %+v, expected empty result without corruption", payload, result)
		}
	}
}

func TestEntryStore_AppendPreservesOrder(t *testing.T) {
	s := NewEntryStore(kv.NewMemoryStore(), nil)

	ids := []string{"c", "a", "b"}
	for i, id := range ids {
		if err := s.Append(newTestEntry(id, i+1, "entry "+id)); err != nil {
			t.Fatalf("Append(%s) failed: %v", id, err)
		}
	}

	entries := s.All()
	if len(entries) != len(ids) {
		t.Fatalf("Expected %d entries, got %d", len(ids), len(entries))
	}
	for i, id := range ids {
		if entries[i].ID != id {
			t.Errorf("entries[%d].ID = %q, expected %q", i, entries[i].ID, id)
		}
	}
}

func TestEntryStore_RoundTrip(t *testing.T) {
	mem := kv.NewMemoryStore()
	s := NewEntryStore(mem, nil)

	var want []entry.MoodEntry
	for i := 1; i <= 10; i++ {
		e := newTestEntry(fmt.Sprintf("id-%d", i), i, fmt.Sprintf("day %d", i))
		if i%2 == 0 {
			e.Insight = "insight " + e.ID
		}
		want = append(want, e)
		if err := s.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	// A fresh store over the same medium sees the same collection
	got := NewEntryStore(mem, nil).All()
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Scale != want[i].Scale ||
			got[i].Description != want[i].Description || got[i].Insight != want[i].Insight ||
			!got[i].Date.Equal(want[i].Date) {
			t.Errorf("entry %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestEntryStore_DiskRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	disk := kv.NewDiskStore(dir)

	if err := NewEntryStore(disk, nil).Append(newTestEntry("disk-1", 6, "persisted")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries := NewEntryStore(kv.NewDiskStore(dir), nil).All()
	if len(entries) != 1 || entries[0].ID != "disk-1" {
		t.Errorf("Expected the persisted entry, got %+v", entries)
	}
}

func TestEntryStore_AppendDuplicateID(t *testing.T) {
	s := NewEntryStore(kv.NewMemoryStore(), nil)

	if err := s.Append(newTestEntry("dup", 5, "first")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	err := s.Append(newTestEntry("dup", 7, "second"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Expected ErrDuplicateID, got %v", err)
	}
	if len(s.All()) != 1 {
		t.Error("Duplicate append should not change the collection")
	}
}

func TestEntryStore_AppendInvalid(t *testing.T) {
	tests := []struct {
		name  string
		entry entry.MoodEntry
		field string
	}{
		{"zero scale", newTestEntry("a", 0, "too low"), "scale"},
		{"scale above max", newTestEntry("b", 11, "too high"), "scale"},
		{"blank description", newTestEntry("c", 5, "   "), "description"},
		{"empty id", newTestEntry("", 5, "no id"), "id"},
		{"blank id", newTestEntry("  ", 5, "no id"), "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemoryStore()
			s := NewEntryStore(mem, nil)

			err := s.Append(tt.entry)
			if !errors.Is(err, entry.ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			var verr *entry.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("Expected error on field %q, got %v", tt.field, err)
			}
			if errors.Is(err, ErrStorageWrite) {
				t.Error("Rejected entries should not be reported as storage failures")
			}
			if _, err := mem.Get(EntriesKey); !errors.Is(err, kv.ErrNotFound) {
				t.Errorf("Expected nothing written, got %v", err)
			}
			if len(s.All()) != 0 {
				t.Error("Rejected entry should not be stored")
			}
		})
	}
}

func TestEntryStore_Update(t *testing.T) {
	s := NewEntryStore(kv.NewMemoryStore(), nil)
	_ = s.Append(newTestEntry("a", 3, "first"))
	_ = s.Append(newTestEntry("b", 8, "second"))

	if err := s.Update("b", entry.Patch{Insight: strPtr("Keep it up.")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	entries := s.All()
	if entries[1].Insight != "Keep it up." {
		t.Errorf("Insight = %q, expected %q", entries[1].Insight, "Keep it up.")
	}
	if entries[1].Scale != 8 || entries[1].Description != "second" {
		t.Errorf("Update modified fields not in the patch: %+v", entries[1])
	}
	if entries[0].HasInsight() {
		t.Error("Update touched a different entry")
	}
}

func TestEntryStore_UpdateNoOps(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		patch entry.Patch
	}{
		{"unknown id", "missing", entry.Patch{Insight: strPtr("x")}},
		{"empty patch", "a", entry.Patch{}},
		{"unchanged values", "a", entry.Patch{Scale: intPtr(3), Description: strPtr("first")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemoryStore()
			s := NewEntryStore(mem, nil)
			_ = s.Append(newTestEntry("a", 3, "first"))
			before, _ := mem.Get(EntriesKey)

			if err := s.Update(tt.id, tt.patch); err != nil {
				t.Fatalf("Update returned error: %v", err)
			}

			after, _ := mem.Get(EntriesKey)
			if string(before) != string(after) {
				t.Errorf("Payload changed:\nbefore: %s\nafter:  %s", before, after)
			}
		})
	}
}

func TestEntryStore_UpdateInvalid(t *testing.T) {
	s := NewEntryStore(kv.NewMemoryStore(), nil)
	_ = s.Append(newTestEntry("a", 3, "first"))

	err := s.Update("a", entry.Patch{Scale: intPtr(11)})
	if !errors.Is(err, entry.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if s.All()[0].Scale != 3 {
		t.Error("Invalid update should not be persisted")
	}
}

func TestEntryStore_Corruption(t *testing.T) {
	mem := kv.NewMemoryStore()
	_ = mem.Set(EntriesKey, []byte("{not json"))
	s := NewEntryStore(mem, nil)

	if entries := s.All(); len(entries) != 0 {
		t.Errorf("Expected empty collection for corrupt payload, got %d", len(entries))
	}

	result, err := s.Read()
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if result.Corruption == nil {
		t.Fatal("Expected Corruption to be reported")
	}
	if !errors.Is(result.Corruption, ErrCorrupt) {
		t.Error("Corruption should match ErrCorrupt")
	}
	if result.Corruption.Size != len("{not json") {
		t.Errorf("Corruption.Size = %d, expected %d", result.Corruption.Size, len("{not json"))
	}

	// The next write replaces the payload and preserves the old one
	if err := s.Append(newTestEntry("fresh", 5, "after corruption")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if entries := s.All(); len(entries) != 1 || entries[0].ID != "fresh" {
		t.Errorf("Expected only the fresh entry, got %+v", entries)
	}

	backup, err := mem.Get(backupKey(EntriesKey, 1))
	if err != nil {
		t.Fatalf("Expected backup slot, got error: %v", err)
	}
	if string(backup) != "{not json" {
		t.Errorf("Backup = %q, expected original payload", backup)
	}
}

func TestEntryStore_WriteError(t *testing.T) {
	fs := &failingStore{Store: kv.NewMemoryStore(), failAfter: 1}
	s := NewEntryStore(fs, nil)

	if err := s.Append(newTestEntry("a", 4, "ok")); err != nil {
		t.Fatalf("First append failed: %v", err)
	}

	err := s.Append(newTestEntry("b", 5, "fails"))
	if !errors.Is(err, ErrStorageWrite) {
		t.Fatalf("Expected ErrStorageWrite, got %v", err)
	}
	var we *WriteError
	if !errors.As(err, &we) || we.Op != "append" {
		t.Errorf("Expected WriteError with op append, got %v", err)
	}

	err = s.Update("a", entry.Patch{Insight: strPtr("later")})
	if !errors.Is(err, ErrStorageWrite) {
		t.Errorf("Expected ErrStorageWrite from Update, got %v", err)
	}

	if entries := s.All(); len(entries) != 1 || entries[0].HasInsight() {
		t.Errorf("Failed writes should leave the collection unchanged, got %+v", entries)
	}
}

func TestEntryStore_ReadError(t *testing.T) {
	fs := &failingStore{Store: kv.NewMemoryStore(), failAfter: 10, getErr: errors.New("permission denied")}
	s := NewEntryStore(fs, nil)

	if _, err := s.Read(); err == nil {
		t.Error("Expected Read to surface the medium error")
	}
	entries := s.All()
	if entries == nil || len(entries) != 0 {
		t.Errorf("All() should return an empty slice on medium error, got %v", entries)
	}
}

func TestEntryStore_Health(t *testing.T) {
	mem := kv.NewMemoryStore()
	s := NewEntryStore(mem, nil)

	h, err := s.Health()
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if h.Present || h.Entries != 0 || h.Corrupt {
		t.Errorf("Unexpected health for empty store: %+v", h)
	}

	_ = s.Append(newTestEntry("a", 2, "one"))
	e := newTestEntry("b", 9, "two")
	e.Insight = "Nice."
	_ = s.Append(e)

	h, err = s.Health()
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if !h.Present || h.Entries != 2 || h.WithInsight != 1 || h.Bytes == 0 {
		t.Errorf("Unexpected health: %+v", h)
	}

	_ = mem.Set(EntriesKey, []byte("[{"))
	h, err = s.Health()
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if !h.Corrupt || h.Error == "" || h.Entries != 0 {
		t.Errorf("Expected corrupt health, got %+v", h)
	}
}
