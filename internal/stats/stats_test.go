package stats

import (
	"testing"

	"github.com/drake/tvtrack/internal/adapter"
	"github.com/drake/tvtrack/internal/domain"
	"github.com/drake/tvtrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, domain.Store) {
	t.Helper()
	trackerStore, err := store.NewTrackerStore("")
	require.NoError(t, err)
	t.Cleanup(func() { trackerStore.Close() })
	return NewService(trackerStore, adapter.NullLogger()), trackerStore
}

func seedCollection(t *testing.T, s domain.Store) {
	t.Helper()

	// 2 seasons, 7 watched episodes
	first := domain.NewSeries("Severance", 44217)
	season := first.PutSeason(1)
	for episode := uint32(1); episode <= 5; episode++ {
		season.Track(episode)
	}
	season = first.PutSeason(2)
	season.Track(1)
	season.Track(2)
	require.NoError(t, s.TrackSeries(first))

	// 3 seasons, 1 watched episode
	second := domain.NewSeries("Dark", 17861)
	second.PutSeason(1)
	second.PutSeason(2).Track(8)
	second.PutSeason(3)
	require.NoError(t, s.TrackSeries(second))

	// tracked but nothing watched
	require.NoError(t, s.TrackSeries(domain.NewSeries("The Wire", 179)))
}

func TestSummarize(t *testing.T) {
	svc, trackerStore := newTestService(t)
	seedCollection(t, trackerStore)

	summary, err := svc.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Series)
	assert.Equal(t, 5, summary.Seasons)
	assert.Equal(t, 8, summary.Episodes)
}

func TestSummarizeEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.Summarize()
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}

func TestTotals(t *testing.T) {
	svc, trackerStore := newTestService(t)
	seedCollection(t, trackerStore)

	series, err := svc.TotalSeries()
	require.NoError(t, err)
	assert.Equal(t, 3, series)

	seasons, err := svc.TotalSeasons()
	require.NoError(t, err)
	assert.Equal(t, 5, seasons)

	episodes, err := svc.TotalEpisodesWatched()
	require.NoError(t, err)
	assert.Equal(t, 8, episodes)
}

func TestLastWatched(t *testing.T) {
	svc, trackerStore := newTestService(t)
	seedCollection(t, trackerStore)

	season, episode, ok, err := svc.LastWatched(44217)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(2), season)
	assert.Equal(t, uint32(2), episode)

	// Unwatched seasons above the marker are skipped.
	season, episode, ok, err = svc.LastWatched(17861)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(2), season)
	assert.Equal(t, uint32(8), episode)
}

func TestLastWatchedNothingWatched(t *testing.T) {
	svc, trackerStore := newTestService(t)
	seedCollection(t, trackerStore)

	_, _, ok, err := svc.LastWatched(179)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastWatchedUntrackedSeries(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, ok, err := svc.LastWatched(555)
	require.NoError(t, err)
	assert.False(t, ok)
}
