package domain

import "time"

// Body identifies a tracked celestial body.
type Body int

const (
	BodySun Body = iota
	BodyMoon
)

func (b Body) String() string {
	switch b {
	case BodySun:
		return "sun"
	case BodyMoon:
		return "moon"
	}
	return "unknown"
}

// QuarterPhase is one of the four principal lunar phases.
type QuarterPhase int

const (
	NewMoon QuarterPhase = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

// Angle returns the phase-cycle fraction at which the quarter occurs:
// 0 = new, 0.25 = first quarter, 0.5 = full, 0.75 = last quarter.
func (q QuarterPhase) Angle() float64 {
	return float64(q) * 0.25
}

func (q QuarterPhase) String() string {
	switch q {
	case NewMoon:
		return "new moon"
	case FirstQuarter:
		return "first quarter"
	case FullMoon:
		return "full moon"
	case LastQuarter:
		return "last quarter"
	}
	return "unknown"
}

// SeasonKind identifies one of the four yearly solstice/equinox events.
type SeasonKind string

const (
	EquinoxMarch     SeasonKind = "march_equinox"
	SolsticeJune     SeasonKind = "june_solstice"
	EquinoxSeptember SeasonKind = "september_equinox"
	SolsticeDecember SeasonKind = "december_solstice"
)

// SeasonKinds lists all four events in calendar order.
var SeasonKinds = []SeasonKind{EquinoxMarch, SolsticeJune, EquinoxSeptember, SolsticeDecember}

// SunTimes holds the per-day solar event instants, in UTC.
type SunTimes struct {
	Dawn time.Time // civil dawn
	Rise time.Time
	Noon time.Time
	Set  time.Time
	Dusk time.Time // civil dusk
}

// Ephemeris answers astronomical queries at arbitrary instants. All inputs
// and outputs are UTC. Implementations are pure functions of their inputs and
// safe to memoize; see adapter/ephem for the production implementation and
// the tests for scripted stubs.
type Ephemeris interface {
	// Altitude returns the body's altitude above the horizon in degrees.
	Altitude(body Body, utc time.Time) (float64, error)

	// PhaseAngle returns the moon's position in the synodic cycle as a
	// fraction in [0, 1): 0 new, 0.5 full.
	PhaseAngle(utc time.Time) (float64, error)

	// Illumination returns the illuminated fraction of the moon's disk.
	Illumination(utc time.Time) (float64, error)

	// QuarterAfter returns the first instant strictly after utc at which the
	// given quarter phase occurs.
	QuarterAfter(q QuarterPhase, utc time.Time) (time.Time, error)

	// SeasonInstant returns the UTC instant of the given solstice or equinox
	// in the given year.
	SeasonInstant(kind SeasonKind, year int) (time.Time, error)

	// SunTimes returns the solar event instants for the local calendar date
	// in loc.
	SunTimes(date Date, loc *time.Location) (SunTimes, error)
}
