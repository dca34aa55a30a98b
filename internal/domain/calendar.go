package domain

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time-of-day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns local midnight at the start of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Next returns the following civil date.
func (d Date) Next() Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, 1))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// StationType distinguishes directly-predicted stations from those derived by
// offsets from a nearby reference station.
type StationType string

const (
	StationHarmonic    StationType = "harmonic"
	StationSubordinate StationType = "subordinate"
)

// ReferenceOffsets holds the correction metadata carried by subordinate
// station prediction tables. Height offsets are multiplicative factors; time
// offsets are in minutes.
type ReferenceOffsets struct {
	StationID        string
	StationName      string
	TimeOffsetLow    int
	TimeOffsetHigh   int
	HeightFactorLow  float64
	HeightFactorHigh float64
}

// Station describes the tide station a calendar is generated for.
type Station struct {
	ID        string
	Name      string
	State     string
	Type      StationType
	Latitude  float64
	Longitude float64
	Timezone  string

	// Reference is set only for subordinate stations.
	Reference *ReferenceOffsets
}

// Location resolves the station's IANA timezone.
func (s Station) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("station %s: unknown timezone %q: %w", s.ID, s.Timezone, err)
	}
	return loc, nil
}

// CalendarDay aggregates everything a renderer needs for one date's column:
// the reconstructed tide curve, sun and moon altitude tracks, the day's moon
// icon, and any seasonal markers falling on the date. Constructed once and
// never mutated afterwards.
type CalendarDay struct {
	Date Date

	TideSamples []TideCurveSample
	SunSamples  []SkySample
	MoonSamples []SkySample

	MoonIcon        int
	MoonIlluminated float64

	SunTimes *SunTimes
	MoonRise *time.Time
	MoonSet  *time.Time

	Events []CelestialEvent
}

// Calendar is the full date-indexed output of a generation run.
type Calendar struct {
	Station   Station
	Year      int
	AnnualMax float64
	AnnualMin float64
	Days      []CalendarDay
}
