package tracker

import "github.com/drake/tvtrack/internal/domain"

// GetSeries returns the tracked series for id, or ok=false when untracked.
func (s *Service) GetSeries(id uint32) (*domain.Series, bool, error) {
	return s.store.GetSeries(id)
}

// IsEpisodeWatched reports whether the episode is marked watched. An
// untracked series or season reports false.
func (s *Service) IsEpisodeWatched(id, season, episode uint32) (bool, error) {
	series, ok, err := s.store.GetSeries(id)
	if err != nil || !ok {
		return false, err
	}
	target, ok := series.Season(season)
	if !ok {
		return false, nil
	}
	return target.IsEpisodeWatched(episode), nil
}
