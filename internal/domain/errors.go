package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSeriesNotFound indicates the series is not tracked in the store
	ErrSeriesNotFound = errors.New("series not found")

	// ErrCorruptRecord indicates a stored record could not be decoded
	ErrCorruptRecord = errors.New("stored series record is corrupt")
)
