package domain

// Series represents one tracked show. Identity is the externally-assigned
// numeric id; Name is informational only.
type Series struct {
	ID      uint32             `json:"id"`
	Name    string             `json:"name"`
	Seasons map[uint32]*Season `json:"seasons"`
}

// NewSeries creates an untracked series with no seasons.
func NewSeries(name string, id uint32) *Series {
	return &Series{
		ID:      id,
		Name:    name,
		Seasons: make(map[uint32]*Season),
	}
}

// Season returns the season with the given number, if present.
func (s *Series) Season(number uint32) (*Season, bool) {
	season, ok := s.Seasons[number]
	return season, ok
}

// PutSeason inserts an empty season at the given number, replacing any
// existing season and its tracked episodes.
func (s *Series) PutSeason(number uint32) *Season {
	season := NewSeason()
	s.Seasons[number] = season
	return season
}

// EnsureSeason returns the season with the given number, creating an
// empty one if absent.
func (s *Series) EnsureSeason(number uint32) *Season {
	if season, ok := s.Seasons[number]; ok {
		return season
	}
	return s.PutSeason(number)
}

// DeleteSeason removes the season entry. Missing seasons are a no-op.
func (s *Series) DeleteSeason(number uint32) {
	delete(s.Seasons, number)
}

// TotalSeasons returns the number of season entries, watched or not.
func (s *Series) TotalSeasons() int {
	return len(s.Seasons)
}

// TotalEpisodesWatched returns the tracked episode count summed across
// all seasons.
func (s *Series) TotalEpisodesWatched() int {
	total := 0
	for _, season := range s.Seasons {
		total += season.EpisodesWatched()
	}
	return total
}

// LastWatchedSeason returns the highest-numbered season that has at least
// one tracked episode. Seasons with zero tracked episodes are skipped even
// when higher-numbered.
func (s *Series) LastWatchedSeason() (uint32, *Season, bool) {
	var (
		bestNumber uint32
		best       *Season
	)
	for number, season := range s.Seasons {
		if season.EpisodesWatched() == 0 {
			continue
		}
		if best == nil || number > bestNumber {
			bestNumber = number
			best = season
		}
	}
	if best == nil {
		return 0, nil, false
	}
	return bestNumber, best, true
}

// Season represents one season of a series: the set of episode numbers
// marked watched. Order carries no meaning.
type Season struct {
	Episodes map[uint32]struct{} `json:"episodes"`
}

// NewSeason creates a season with no tracked episodes.
func NewSeason() *Season {
	return &Season{Episodes: make(map[uint32]struct{})}
}

// Track adds the episode to the watched set. Returns true if the episode
// was newly added.
func (s *Season) Track(episode uint32) bool {
	if _, ok := s.Episodes[episode]; ok {
		return false
	}
	s.Episodes[episode] = struct{}{}
	return true
}

// Untrack removes the episode from the watched set.
func (s *Season) Untrack(episode uint32) {
	delete(s.Episodes, episode)
}

// IsEpisodeWatched reports whether the episode is in the watched set.
func (s *Season) IsEpisodeWatched(episode uint32) bool {
	_, ok := s.Episodes[episode]
	return ok
}

// EpisodesWatched returns the tracked episode count.
func (s *Season) EpisodesWatched() int {
	return len(s.Episodes)
}

// LastEpisodeWatched returns the highest tracked episode number, skipping
// any unwatched episodes in between.
func (s *Season) LastEpisodeWatched() (uint32, bool) {
	var (
		best  uint32
		found bool
	)
	for episode := range s.Episodes {
		if !found || episode > best {
			best = episode
			found = true
		}
	}
	return best, found
}
