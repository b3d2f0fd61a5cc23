package domain

import (
	"context"
	"time"
)

// SeriesEntry pairs a store key with its decoded series.
type SeriesEntry struct {
	ID     string
	Series *Series
}

// Store is the tracking store: a durable mapping from series id to
// serialized series state. Absence is reported through the bool return,
// never as an error; errors mean store I/O or decode faults.
type Store interface {
	// TrackSeries upserts the series keyed by its id.
	TrackSeries(series *Series) error

	// UntrackSeries removes the entry. Removing a missing key is a no-op.
	UntrackSeries(id uint32) error

	// GetSeries returns the series, or ok=false if not tracked.
	GetSeries(id uint32) (*Series, bool, error)

	// GetSeriesCollection returns every stored series. Order is store
	// iteration order, not insertion or numeric order.
	GetSeriesCollection() ([]*Series, error)

	// GetSeriesIDCollection returns every stored key.
	GetSeriesIDCollection() ([]string, error)

	// GetIDsAndSeries returns every stored key paired with its series.
	GetIDsAndSeries() ([]SeriesEntry, error)

	// GetTotalSeries returns the number of stored entries.
	GetTotalSeries() (int, error)

	Close() error
}

// EpisodeInfo is catalog metadata for a single episode.
type EpisodeInfo struct {
	ID       uint32
	Name     string
	Season   uint32
	Number   uint32
	Airstamp *time.Time
	Runtime  int // minutes, 0 when unknown
}

// EpisodeResolver is the metadata collaborator consumed by the episode
// tracking gate.
type EpisodeResolver interface {
	// Resolve looks up an episode in the series' catalog. A missing
	// episode is (nil, nil); errors mean the lookup itself failed.
	Resolve(ctx context.Context, seriesID, season, episode uint32) (*EpisodeInfo, error)

	// Watchable reports whether the episode has already aired. known is
	// false when the air time cannot be determined; callers treat that
	// as not watchable.
	Watchable(info *EpisodeInfo) (watchable, known bool)
}
