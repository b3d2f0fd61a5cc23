package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/drake/tvtrack/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketSeries = []byte("series")

// TrackerStore implements domain.Store using BoltDB. One record per
// tracked series, keyed by the series id in decimal string form, value a
// JSON-encoded domain.Series. Writes are flushed before returning.
type TrackerStore struct {
	db *bolt.DB

	// Memory-only mode (no persistence) when db is nil
	mu  sync.RWMutex
	mem map[string][]byte
}

// NewTrackerStore opens (or creates) the store under dir. An empty dir
// selects memory-only mode with no persistence, used for tests.
func NewTrackerStore(dir string) (*TrackerStore, error) {
	if dir == "" {
		return &TrackerStore{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dbPath := filepath.Join(dir, "tvtrack.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSeries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TrackerStore{db: db}, nil
}

func (s *TrackerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func seriesKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeSeries(key string, data []byte) (*domain.Series, error) {
	var series domain.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", domain.ErrCorruptRecord, key, err)
	}
	return &series, nil
}

// TrackSeries serializes and upserts the series keyed by its id.
func (s *TrackerStore) TrackSeries(series *domain.Series) error {
	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to encode series %d: %w", series.ID, err)
	}

	key := seriesKey(series.ID)

	if s.db == nil {
		s.mu.Lock()
		s.mem[key] = data
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).Put([]byte(key), data)
	})
}

// UntrackSeries removes the entry for id. Missing keys are a no-op.
func (s *TrackerStore) UntrackSeries(id uint32) error {
	key := seriesKey(id)

	if s.db == nil {
		s.mu.Lock()
		delete(s.mem, key)
		s.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).Delete([]byte(key))
	})
}

// GetSeries returns the series for id, or ok=false when not tracked.
func (s *TrackerStore) GetSeries(id uint32) (*domain.Series, bool, error) {
	key := seriesKey(id)

	var data []byte
	if s.db == nil {
		s.mu.RLock()
		data = s.mem[key]
		s.mu.RUnlock()
	} else {
		err := s.db.View(func(tx *bolt.Tx) error {
			if v := tx.Bucket(bucketSeries).Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return nil, false, err
		}
	}

	if data == nil {
		return nil, false, nil
	}

	series, err := decodeSeries(key, data)
	if err != nil {
		return nil, false, err
	}
	return series, true, nil
}

// GetSeriesCollection returns every stored series via a full scan.
func (s *TrackerStore) GetSeriesCollection() ([]*domain.Series, error) {
	entries, err := s.GetIDsAndSeries()
	if err != nil {
		return nil, err
	}
	collection := make([]*domain.Series, len(entries))
	for i, entry := range entries {
		collection[i] = entry.Series
	}
	return collection, nil
}

// GetSeriesIDCollection returns every stored key via a full key scan.
func (s *TrackerStore) GetSeriesIDCollection() ([]string, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		ids := make([]string, 0, len(s.mem))
		for k := range s.mem {
			ids = append(ids, k)
		}
		sort.Strings(ids)
		return ids, nil
	}

	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetIDsAndSeries returns every stored key paired with its decoded series.
func (s *TrackerStore) GetIDsAndSeries() ([]domain.SeriesEntry, error) {
	if s.db == nil {
		s.mu.RLock()
		keys := make([]string, 0, len(s.mem))
		for k := range s.mem {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		data := make(map[string][]byte, len(keys))
		for _, k := range keys {
			data[k] = s.mem[k]
		}
		s.mu.RUnlock()

		entries := make([]domain.SeriesEntry, 0, len(keys))
		for _, k := range keys {
			series, err := decodeSeries(k, data[k])
			if err != nil {
				return nil, err
			}
			entries = append(entries, domain.SeriesEntry{ID: k, Series: series})
		}
		return entries, nil
	}

	var entries []domain.SeriesEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSeries).ForEach(func(k, v []byte) error {
			series, err := decodeSeries(string(k), v)
			if err != nil {
				return err
			}
			entries = append(entries, domain.SeriesEntry{ID: string(k), Series: series})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetTotalSeries returns the number of stored entries.
func (s *TrackerStore) GetTotalSeries() (int, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.mem), nil
	}

	var total int
	err := s.db.View(func(tx *bolt.Tx) error {
		total = tx.Bucket(bucketSeries).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
