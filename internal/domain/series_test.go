package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeriesStartsEmpty(t *testing.T) {
	series := NewSeries("Dark", 17861)

	assert.Equal(t, uint32(17861), series.ID)
	assert.Equal(t, "Dark", series.Name)
	assert.Equal(t, 0, series.TotalSeasons())
	assert.Equal(t, 0, series.TotalEpisodesWatched())
}

func TestPutSeasonReplacesExisting(t *testing.T) {
	series := NewSeries("Dark", 17861)
	season := series.PutSeason(1)
	season.Track(1)
	season.Track(2)
	require.Equal(t, 2, season.EpisodesWatched())

	// Re-adding is destructive: the season comes back empty.
	replaced := series.PutSeason(1)
	assert.Equal(t, 0, replaced.EpisodesWatched())
	assert.Equal(t, 1, series.TotalSeasons())
}

func TestEnsureSeasonKeepsExisting(t *testing.T) {
	series := NewSeries("Dark", 17861)
	season := series.EnsureSeason(2)
	season.Track(3)

	same := series.EnsureSeason(2)
	assert.Equal(t, 1, same.EpisodesWatched())
	assert.True(t, same.IsEpisodeWatched(3))
}

func TestDeleteSeasonMissingIsNoop(t *testing.T) {
	series := NewSeries("Dark", 17861)
	series.PutSeason(1)

	series.DeleteSeason(9)
	assert.Equal(t, 1, series.TotalSeasons())

	series.DeleteSeason(1)
	assert.Equal(t, 0, series.TotalSeasons())
}

func TestTotalEpisodesWatchedSumsSeasons(t *testing.T) {
	series := NewSeries("Dark", 17861)
	s1 := series.PutSeason(1)
	s1.Track(1)
	s1.Track(2)
	s2 := series.PutSeason(2)
	s2.Track(1)
	series.PutSeason(3)

	assert.Equal(t, 3, series.TotalEpisodesWatched())
}

func TestLastWatchedSeasonSkipsUnwatched(t *testing.T) {
	series := NewSeries("Dark", 17861)
	series.PutSeason(1)
	s2 := series.PutSeason(2)
	for episode := uint32(1); episode <= 5; episode++ {
		s2.Track(episode)
	}
	series.PutSeason(3)

	number, season, ok := series.LastWatchedSeason()
	require.True(t, ok)
	assert.Equal(t, uint32(2), number)
	assert.Equal(t, 5, season.EpisodesWatched())
}

func TestLastWatchedSeasonNoneWatched(t *testing.T) {
	series := NewSeries("Dark", 17861)
	series.PutSeason(1)
	series.PutSeason(2)

	_, _, ok := series.LastWatchedSeason()
	assert.False(t, ok)
}

func TestSeasonTrackIsSetInsert(t *testing.T) {
	season := NewSeason()

	assert.True(t, season.Track(4))
	assert.False(t, season.Track(4))
	assert.True(t, season.IsEpisodeWatched(4))
	assert.Equal(t, 1, season.EpisodesWatched())

	season.Untrack(4)
	assert.False(t, season.IsEpisodeWatched(4))
	assert.Equal(t, 0, season.EpisodesWatched())
}

func TestSeasonLastEpisodeWatched(t *testing.T) {
	season := NewSeason()
	_, ok := season.LastEpisodeWatched()
	assert.False(t, ok)

	season.Track(3)
	season.Track(11)
	season.Track(7)

	last, ok := season.LastEpisodeWatched()
	require.True(t, ok)
	assert.Equal(t, uint32(11), last)
}
