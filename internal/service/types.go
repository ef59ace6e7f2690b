// Package service provides the business logic layer for the mood application.
// It wraps the entry store, the insight client, config and stats,
// providing a clean API for the CLI, the TUI and the server.
package service

import (
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/filter"
	"github.com/xolan/mood/internal/stats"
	"github.com/xolan/mood/internal/storage"
)

// ListOptions narrows a listing of entries
type ListOptions struct {
	Limit  int // 0 lists every entry
	Filter filter.Filter
}

// ListResult contains the results of listing entries
type ListResult struct {
	Entries    []entry.MoodEntry // newest first
	Total      int               // entries matching Filter before Limit was applied
	Stored     int               // every stored entry
	IDs        []string          // id of every stored entry, for unambiguous short ids
	Corruption *storage.CorruptionError
}

// TrendResult contains the chart points and summary for the recent entries
type TrendResult struct {
	Points     []entry.MoodEntry // chronological
	Daily      []stats.DayAverage
	Summary    stats.Summary // over Points
	Overall    stats.Summary // over every stored entry
	ShowChart  bool
	Corruption *storage.CorruptionError
}
