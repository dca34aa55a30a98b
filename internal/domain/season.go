package domain

import (
	"errors"
	"fmt"
	"time"
)

// CelestialEvent is a localized solstice or equinox marker. DayFraction is
// the event's position within its local calendar day, for horizontal icon
// placement within that date's column.
type CelestialEvent struct {
	Kind        SeasonKind
	Time        time.Time // UTC
	Local       time.Time
	DayFraction float64
}

// LocateSeasonEvents queries the ephemeris for the year's four solstice and
// equinox instants and localizes them. The ephemeris answer is authoritative;
// no interpolation happens here.
//
// Events falling outside [rangeStart, rangeEnd] (local dates) are reported
// via a joined ErrEventNotFound error while the located events are still
// returned, so a caller can keep the rest of the calendar and skip only the
// missing annotations.
func LocateSeasonEvents(eph Ephemeris, year int, loc *time.Location, rangeStart, rangeEnd Date) ([]CelestialEvent, error) {
	events := make([]CelestialEvent, 0, len(SeasonKinds))
	var errs []error

	for _, kind := range SeasonKinds {
		utc, err := eph.SeasonInstant(kind, year)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %d: %v", ErrEventNotFound, kind, year, err))
			continue
		}
		local := ToLocal(utc, loc)
		date := DateOf(local)
		if date.Before(rangeStart) || date.After(rangeEnd) {
			errs = append(errs, fmt.Errorf("%w: %s %d falls on %s, outside %s..%s",
				ErrEventNotFound, kind, year, date, rangeStart, rangeEnd))
			continue
		}
		events = append(events, CelestialEvent{
			Kind:        kind,
			Time:        utc,
			Local:       local,
			DayFraction: DayFraction(utc, loc),
		})
	}

	return events, errors.Join(errs...)
}

// EventsOn filters the located events to those falling on one local date.
func EventsOn(events []CelestialEvent, date Date) []CelestialEvent {
	var out []CelestialEvent
	for _, e := range events {
		if DateOf(e.Local) == date {
			out = append(out, e)
		}
	}
	return out
}
