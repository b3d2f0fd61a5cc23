package tracker

import (
	"log/slog"
	"sync"

	"github.com/drake/tvtrack/internal/domain"
)

// Service orchestrates series mutations against the tracking store.
// Every mutation is a read-modify-write cycle: decode the whole series,
// mutate in memory, write the whole series back. Cycles for the same
// series id are serialized through a per-series lock so concurrent
// callers cannot drop each other's updates.
type Service struct {
	store    domain.Store
	resolver domain.EpisodeResolver
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[uint32]*sync.Mutex
}

// NewService creates a new tracker service.
func NewService(store domain.Store, resolver domain.EpisodeResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger,
		locks:    make(map[uint32]*sync.Mutex),
	}
}

func (s *Service) seriesLock(id uint32) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// mutate loads the series, applies fn, and persists the result, all under
// the per-series lock. The series must already be tracked.
func (s *Service) mutate(id uint32, fn func(*domain.Series) error) error {
	lock := s.seriesLock(id)
	lock.Lock()
	defer lock.Unlock()

	series, ok, err := s.store.GetSeries(id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSeriesNotFound
	}
	if err := fn(series); err != nil {
		return err
	}
	return s.store.TrackSeries(series)
}
