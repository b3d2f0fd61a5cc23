package tracker

import (
	"context"

	"github.com/drake/tvtrack/internal/domain"
)

// trackResult classifies the single-episode tracking primitive.
type trackResult int

const (
	trackAdded trackResult = iota
	trackAlready
	trackUnwatchable
)

// TrackSeries persists the series, upserting any existing entry.
func (s *Service) TrackSeries(series *domain.Series) error {
	lock := s.seriesLock(series.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.TrackSeries(series); err != nil {
		s.logger.Error("failed to track series", "id", series.ID, "error", err)
		return err
	}
	s.logger.Debug("tracked series", "id", series.ID, "name", series.Name)
	return nil
}

// UntrackSeries removes the series from the store. Untracking a series
// that is not tracked is a no-op.
func (s *Service) UntrackSeries(id uint32) error {
	lock := s.seriesLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.UntrackSeries(id); err != nil {
		s.logger.Error("failed to untrack series", "id", id, "error", err)
		return err
	}
	s.logger.Debug("untracked series", "id", id)
	return nil
}

// AddSeason inserts an empty season at the given number. Re-adding an
// existing season replaces it, dropping its tracked episodes.
func (s *Service) AddSeason(id, season uint32) error {
	return s.mutate(id, func(series *domain.Series) error {
		series.PutSeason(season)
		return nil
	})
}

// RemoveSeason removes the season entry and persists the series.
func (s *Service) RemoveSeason(id, season uint32) error {
	return s.mutate(id, func(series *domain.Series) error {
		series.DeleteSeason(season)
		return nil
	})
}

// AddEpisode marks a single episode watched, creating the season if
// absent. Returns whether the episode was newly tracked; an episode that
// has not aired is never tracked.
func (s *Service) AddEpisode(ctx context.Context, id, season, episode uint32) (bool, error) {
	var added bool
	err := s.mutate(id, func(series *domain.Series) error {
		target := series.EnsureSeason(season)
		added = s.trackEpisode(ctx, series.ID, season, target, episode) == trackAdded
		return nil
	})
	return added, err
}

// AddEpisodes marks every episode in the inclusive range [first, last]
// watched, creating the season if absent. Episodes resolve sequentially
// left to right, one catalog round-trip each. A failed lookup counts the
// episode as unwatchable and the loop continues.
func (s *Service) AddEpisodes(ctx context.Context, id, season, first, last uint32) (domain.AddResult, error) {
	var result domain.AddResult
	if first > last {
		return result, nil
	}

	err := s.mutate(id, func(series *domain.Series) error {
		target := series.EnsureSeason(season)
		for episode := first; ; episode++ {
			switch s.trackEpisode(ctx, series.ID, season, target, episode) {
			case trackAdded:
				result.NewlyAdded++
			case trackAlready:
				result.AlreadyTracked++
			case trackUnwatchable:
				result.Unwatchable++
			}
			if episode == last {
				break
			}
		}
		return nil
	})
	if err != nil {
		return domain.AddResult{}, err
	}

	s.logger.Debug("tracked episode range",
		"id", id, "season", season, "first", first, "last", last,
		"outcome", result.Outcome().String(),
		"added", result.NewlyAdded, "already", result.AlreadyTracked, "unwatchable", result.Unwatchable)
	return result, nil
}

// RemoveEpisode unmarks the episode if its season exists. The series is
// persisted either way.
func (s *Service) RemoveEpisode(id, season, episode uint32) error {
	return s.mutate(id, func(series *domain.Series) error {
		if target, ok := series.Season(season); ok {
			target.Untrack(episode)
		}
		return nil
	})
}

// trackEpisode is the single-episode gate: the episode joins the watched
// set only when the catalog resolves it and reports it has aired.
func (s *Service) trackEpisode(ctx context.Context, seriesID, seasonNumber uint32, season *domain.Season, episode uint32) trackResult {
	if season.IsEpisodeWatched(episode) {
		return trackAlready
	}

	info, err := s.resolver.Resolve(ctx, seriesID, seasonNumber, episode)
	if err != nil {
		// Soft negative: the episode stays untracked, the caller is not failed.
		s.logger.Warn("episode lookup failed",
			"id", seriesID, "season", seasonNumber, "episode", episode, "error", err)
		return trackUnwatchable
	}
	if info == nil {
		return trackUnwatchable
	}
	if watchable, known := s.resolver.Watchable(info); !known || !watchable {
		return trackUnwatchable
	}

	season.Track(episode)
	return trackAdded
}
