// Package stats derives aggregate statistics over the tracked collection.
// Reducers are read-only and recompute from a full store scan on every
// call; nothing here mutates the store.
package stats

import (
	"log/slog"

	"github.com/drake/tvtrack/internal/domain"
)

// Summary is a snapshot of the whole tracked collection.
type Summary struct {
	Series   int
	Seasons  int
	Episodes int
}

// Service computes aggregates for reporting surfaces.
type Service struct {
	store  domain.Store
	logger *slog.Logger
}

// NewService creates a new stats service.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Summarize computes all collection totals in a single scan.
func (s *Service) Summarize() (Summary, error) {
	collection, err := s.store.GetSeriesCollection()
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Series: len(collection)}
	for _, series := range collection {
		summary.Seasons += series.TotalSeasons()
		summary.Episodes += series.TotalEpisodesWatched()
	}
	return summary, nil
}

// TotalSeries returns the number of tracked series.
func (s *Service) TotalSeries() (int, error) {
	return s.store.GetTotalSeries()
}

// TotalSeasons returns the season count summed across all tracked series.
func (s *Service) TotalSeasons() (int, error) {
	summary, err := s.Summarize()
	return summary.Seasons, err
}

// TotalEpisodesWatched returns the watched episode count summed across
// all tracked series.
func (s *Service) TotalEpisodesWatched() (int, error) {
	summary, err := s.Summarize()
	return summary.Episodes, err
}

// LastWatched returns the last-watched markers for a series: the highest
// season with any tracked episode, and the highest tracked episode within
// it. ok is false when the series is untracked or nothing is watched.
func (s *Service) LastWatched(id uint32) (season, episode uint32, ok bool, err error) {
	series, found, err := s.store.GetSeries(id)
	if err != nil || !found {
		return 0, 0, false, err
	}

	number, last, found := series.LastWatchedSeason()
	if !found {
		return 0, 0, false, nil
	}
	episode, _ = last.LastEpisodeWatched()
	return number, episode, true, nil
}
