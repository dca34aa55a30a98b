package domain

import "errors"

// Sentinel errors for the failure categories the calendar core can surface.
// Callers match with errors.Is; details are attached by wrapping.
var (
	// ErrMalformedTideData indicates the input event sequence violates the
	// ordering or high/low alternation invariants. Not recoverable; the run
	// aborts.
	ErrMalformedTideData = errors.New("malformed tide data")

	// ErrSampleUnavailable indicates the ephemeris failed to answer for a
	// required instant. The core does not retry; the whole run may be
	// repeated externally.
	ErrSampleUnavailable = errors.New("sky sample unavailable")

	// ErrEventNotFound indicates a requested celestial event could not be
	// located within the calendar's date span. Only that annotation is
	// skipped; the rest of the calendar proceeds.
	ErrEventNotFound = errors.New("celestial event not found in range")

	// ErrNonexistentLocalTime indicates a wall-clock time that is skipped by
	// a daylight-saving transition in the requested zone.
	ErrNonexistentLocalTime = errors.New("nonexistent local time")

	// ErrAmbiguousLocalTime indicates a wall-clock time that occurs twice
	// across a daylight-saving transition in the requested zone.
	ErrAmbiguousLocalTime = errors.New("ambiguous local time")
)
