package domain

import (
	"fmt"
	"time"
)

// All internal computation runs on UTC instants; wall-clock values exist only
// at the boundary (parsing the station's prediction table, placing output on
// the page). The helpers here cross that boundary explicitly so nothing else
// has to.

// ToLocal converts a UTC instant to wall-clock time in loc.
func ToLocal(utc time.Time, loc *time.Location) time.Time {
	return utc.In(loc)
}

// ToUTC interprets the wall-clock fields of t (year..second) in loc and
// returns the corresponding UTC instant. Wall-clock times skipped or repeated
// by a daylight-saving transition fail with ErrNonexistentLocalTime or
// ErrAmbiguousLocalTime instead of silently picking a side.
func ToUTC(t time.Time, loc *time.Location) (time.Time, error) {
	instant := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)

	// time.Date normalizes nonexistent wall clocks to a real instant with a
	// different wall clock; detect by reading the fields back.
	if !sameWallClock(instant.In(loc), t) {
		return time.Time{}, fmt.Errorf("%w: %s in %s",
			ErrNonexistentLocalTime, t.Format("2006-01-02 15:04:05"), loc)
	}

	// A wall clock is ambiguous when a second instant a transition-shift
	// away shows the same fields (the fall-back window). Most zones shift by
	// an hour; a few (Lord Howe) shift by thirty minutes.
	for _, d := range []time.Duration{-time.Hour, -30 * time.Minute, 30 * time.Minute, time.Hour} {
		other := instant.Add(d)
		if sameWallClock(other.In(loc), t) {
			return time.Time{}, fmt.Errorf("%w: %s in %s",
				ErrAmbiguousLocalTime, t.Format("2006-01-02 15:04:05"), loc)
		}
	}

	return instant.UTC(), nil
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

// LocalDayBounds returns the UTC instants of local midnight starting the date
// and local midnight starting the next date. On daylight-saving transition
// days the two are 23 or 25 hours apart.
func LocalDayBounds(date Date, loc *time.Location) (startUTC, endUTC time.Time) {
	return date.In(loc).UTC(), date.Next().In(loc).UTC()
}

// LocalAnchor returns the UTC instant of the given local hour on the date.
// During a spring-forward gap time.Date normalizes to the neighboring real
// instant, which is what the daily anchors want.
func LocalAnchor(date Date, hour int, loc *time.Location) time.Time {
	return time.Date(date.Year, date.Month, date.Day, hour, 0, 0, 0, loc).UTC()
}

// DayFraction returns how far into its local day the instant falls, in
// [0, 1), measured against the actual local day length so transition days
// place correctly.
func DayFraction(utc time.Time, loc *time.Location) float64 {
	local := ToLocal(utc, loc)
	start, end := LocalDayBounds(DateOf(local), loc)
	return float64(utc.Sub(start)) / float64(end.Sub(start))
}
