package service

import (
	"fmt"

	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/stats"
	"github.com/xolan/mood/internal/storage"
)

// TrendService provides mood trends over recent entries
type TrendService struct {
	store  *storage.EntryStore
	config config.Config
}

// NewTrendService creates a new TrendService
func NewTrendService(store *storage.EntryStore, cfg config.Config) *TrendService {
	return &TrendService{store: store, config: cfg}
}

// Trend returns the n most recent entries with their summary.
// n <= 0 uses stats.ChartSize.
func (s *TrendService) Trend(n int) (*TrendResult, error) {
	if n <= 0 {
		n = stats.ChartSize
	}

	result, err := s.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	loc, err := s.config.Location()
	if err != nil {
		return nil, err
	}

	points := stats.Recent(result.Entries, n)
	return &TrendResult{
		Points:     points,
		Daily:      stats.DailyAverages(points, loc),
		Summary:    stats.Summarize(points),
		Overall:    stats.Summarize(result.Entries),
		ShowChart:  stats.ShowChart(points),
		Corruption: result.Corruption,
	}, nil
}
