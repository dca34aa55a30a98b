package ephem

import (
	"sync"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// Cached wraps an Ephemeris with memoization. All oracle queries are pure
// functions of their inputs, so repeat lookups (the moon phase mapper and the
// sky sampler both walk the same instants) can be answered from memory.
type Cached struct {
	inner domain.Ephemeris

	mu       sync.RWMutex
	altitude map[altKey]float64
	phase    map[int64]float64
	illum    map[int64]float64
	quarters map[quarterKey]time.Time
}

type altKey struct {
	body domain.Body
	unix int64
}

type quarterKey struct {
	q    domain.QuarterPhase
	unix int64
}

// NewCached wraps eph with a memoizing layer.
func NewCached(eph domain.Ephemeris) *Cached {
	return &Cached{
		inner:    eph,
		altitude: make(map[altKey]float64),
		phase:    make(map[int64]float64),
		illum:    make(map[int64]float64),
		quarters: make(map[quarterKey]time.Time),
	}
}

func (c *Cached) Altitude(body domain.Body, utc time.Time) (float64, error) {
	key := altKey{body: body, unix: utc.UnixNano()}

	c.mu.RLock()
	v, ok := c.altitude[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.inner.Altitude(body, utc)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.altitude[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *Cached) PhaseAngle(utc time.Time) (float64, error) {
	key := utc.UnixNano()

	c.mu.RLock()
	v, ok := c.phase[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.inner.PhaseAngle(utc)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.phase[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *Cached) Illumination(utc time.Time) (float64, error) {
	key := utc.UnixNano()

	c.mu.RLock()
	v, ok := c.illum[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.inner.Illumination(utc)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.illum[key] = v
	c.mu.Unlock()
	return v, nil
}

func (c *Cached) QuarterAfter(q domain.QuarterPhase, utc time.Time) (time.Time, error) {
	key := quarterKey{q: q, unix: utc.UnixNano()}

	c.mu.RLock()
	v, ok := c.quarters[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	v, err := c.inner.QuarterAfter(q, utc)
	if err != nil {
		return time.Time{}, err
	}
	c.mu.Lock()
	c.quarters[key] = v
	c.mu.Unlock()
	return v, nil
}

// SeasonInstant and SunTimes are queried a handful of times per run; pass
// them through.

func (c *Cached) SeasonInstant(kind domain.SeasonKind, year int) (time.Time, error) {
	return c.inner.SeasonInstant(kind, year)
}

func (c *Cached) SunTimes(date domain.Date, loc *time.Location) (domain.SunTimes, error) {
	return c.inner.SunTimes(date, loc)
}

var _ domain.Ephemeris = (*Cached)(nil)
