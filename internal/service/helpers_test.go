package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/insight"
	"github.com/xolan/mood/internal/kv"
	"github.com/xolan/mood/internal/storage"
)

// fakeInsighter returns canned insights and records every call
type fakeInsighter struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []string
}

func (f *fakeInsighter) Insight(_ context.Context, scale int, description string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%d:%s", scale, description))
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeInsighter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var errUpstream = &insight.RequestError{Status: http.StatusInternalServerError, Message: insight.MsgFailed, Err: errors.New("timeout")}

// sequentialIDs returns id-1, id-2, ...
func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
}

// steppingClock starts at 2026-03-01 09:00 UTC and advances one hour per call
func steppingClock() func() time.Time {
	current := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Hour)
		return current
	}
}

type fixture struct {
	mem      *kv.MemoryStore
	store    *storage.EntryStore
	insights *fakeInsighter
	svc      *EntryService
}

func newFixture(t *testing.T, mode string) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Insight.Mode = mode

	mem := kv.NewMemoryStore()
	store := storage.NewEntryStore(mem, nil)
	fi := &fakeInsighter{text: "You sound well rested."}
	svc := NewEntryService(store, fi, cfg, nil, WithClock(steppingClock()), WithIDGenerator(sequentialIDs()))
	return &fixture{mem: mem, store: store, insights: fi, svc: svc}
}
