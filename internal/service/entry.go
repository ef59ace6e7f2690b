package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/filter"
	"github.com/xolan/mood/internal/insight"
	"github.com/xolan/mood/internal/stats"
	"github.com/xolan/mood/internal/storage"
)

// Common errors for the entry service
var (
	ErrNoEntries      = errors.New("no entries found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrAmbiguousID    = errors.New("id prefix matches more than one entry")
	ErrInsightPending = errors.New("entry saved without insight")
)

// EntryService creates mood entries and attaches their insights
type EntryService struct {
	store    *storage.EntryStore
	insights insight.Insighter
	config   config.Config
	logger   *slog.Logger
	now      func() time.Time
	newID    func() (string, error)
}

// EntryOption customizes an EntryService
type EntryOption func(*EntryService)

// WithClock sets the source of entry dates.
func WithClock(now func() time.Time) EntryOption {
	return func(s *EntryService) { s.now = now }
}

// WithIDGenerator sets the source of entry ids.
func WithIDGenerator(newID func() (string, error)) EntryOption {
	return func(s *EntryService) { s.newID = newID }
}

// NewEntryService creates a new EntryService
func NewEntryService(store *storage.EntryStore, insights insight.Insighter, cfg config.Config, logger *slog.Logger, opts ...EntryOption) *EntryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &EntryService{
		store:    store,
		insights: insights,
		config:   cfg,
		logger:   logger,
		now:      time.Now,
		newID:    newUUIDv7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Deferred reports whether Submit saves entries before their insight arrives.
func (s *EntryService) Deferred() bool {
	return s.config.Insight.Mode == config.ModeDeferred
}

// Submit creates an entry using the configured insight mode.
func (s *EntryService) Submit(ctx context.Context, scale int, description string) (*entry.MoodEntry, error) {
	if s.Deferred() {
		return s.CreateDeferred(ctx, scale, description)
	}
	return s.Create(ctx, scale, description)
}

// newEntry validates input and assembles an entry without insight.
func (s *EntryService) newEntry(scale int, description string) (entry.MoodEntry, error) {
	description = strings.TrimSpace(description)
	if err := entry.Validate(scale, description); err != nil {
		return entry.MoodEntry{}, err
	}

	id, err := s.newID()
	if err != nil {
		return entry.MoodEntry{}, fmt.Errorf("failed to generate entry id: %w", err)
	}
	return entry.MoodEntry{
		ID:          id,
		Scale:       scale,
		Description: description,
		Date:        s.now(),
	}, nil
}

// Create requests an insight and stores the entry together with it.
// When the insight request fails nothing is stored and the *insight.RequestError is returned wrapped.
func (s *EntryService) Create(ctx context.Context, scale int, description string) (*entry.MoodEntry, error) {
	e, err := s.newEntry(scale, description)
	if err != nil {
		return nil, err
	}

	text, err := s.insights.Insight(ctx, e.Scale, e.Description)
	if err != nil {
		s.logger.Warn("insight request failed, entry not saved",
			slog.Int("scale", e.Scale),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}
	e.Insight = text

	if err := s.store.Append(e); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return &e, nil
}

// CreateDeferred stores the entry first, then requests its insight and attaches it.
// If the insight cannot be obtained the saved entry is returned with an error wrapping ErrInsightPending.
func (s *EntryService) CreateDeferred(ctx context.Context, scale int, description string) (*entry.MoodEntry, error) {
	e, err := s.newEntry(scale, description)
	if err != nil {
		return nil, err
	}

	if err := s.store.Append(e); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	attached, err := s.attach(ctx, e)
	if err != nil {
		return &e, err
	}
	return attached, nil
}

// attach requests an insight for e and stores it
func (s *EntryService) attach(ctx context.Context, e entry.MoodEntry) (*entry.MoodEntry, error) {
	text, err := s.insights.Insight(ctx, e.Scale, e.Description)
	if err != nil {
		s.logger.Warn("insight request failed, entry kept without insight",
			slog.String("id", e.ID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrInsightPending, err)
	}

	if err := s.store.Update(e.ID, entry.WithInsight(text)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsightPending, err)
	}
	e.Insight = text
	return &e, nil
}

// AttachInsight requests the insight for a stored entry that has none.
// An entry that already has an insight is returned unchanged.
func (s *EntryService) AttachInsight(ctx context.Context, id string) (*entry.MoodEntry, error) {
	e, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if e.HasInsight() {
		return e, nil
	}
	return s.attach(ctx, *e)
}

// AttachPending requests insights for every entry lacking one, oldest first.
// It keeps going after a failure and returns the entries it updated along with the joined errors.
func (s *EntryService) AttachPending(ctx context.Context) ([]entry.MoodEntry, error) {
	var (
		updated []entry.MoodEntry
		errs    []error
	)
	for _, e := range s.Pending() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		attached, err := s.attach(ctx, e)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.ID, err))
			continue
		}
		updated = append(updated, *attached)
	}
	return updated, errors.Join(errs...)
}

// Pending returns the stored entries without an insight, in stored order.
func (s *EntryService) Pending() []entry.MoodEntry {
	var pending []entry.MoodEntry
	for _, e := range s.store.All() {
		if !e.HasInsight() {
			pending = append(pending, e)
		}
	}
	return pending
}

// List returns stored entries matching opts.Filter, newest first.
func (s *EntryService) List(opts ListOptions) (*ListResult, error) {
	result, err := s.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	entries := stats.SortNewestFirst(result.Entries)
	stored := len(entries)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	entries = filter.Apply(entries, opts.Filter)
	total := len(entries)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	return &ListResult{
		Entries:    entries,
		Total:      total,
		Stored:     stored,
		IDs:        ids,
		Corruption: result.Corruption,
	}, nil
}

// Latest returns the most recent entry, or ErrNoEntries.
func (s *EntryService) Latest() (*entry.MoodEntry, error) {
	result, err := s.List(ListOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, ErrNoEntries
	}
	return &result.Entries[0], nil
}

// Get returns the entry with the given id or unique id prefix.
func (s *EntryService) Get(id string) (*entry.MoodEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEntryNotFound
	}

	var matches []entry.MoodEntry
	for _, e := range s.store.All() {
		if e.ID == id {
			return &e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s (%d matches)", ErrAmbiguousID, id, len(matches))
	}
}
