package domain

import (
	"fmt"
	"math"
	"time"
)

// MoonIconCount is the number of discrete moon phase icons a calendar page
// can show. The true synodic month (~29.53 days) does not divide evenly into
// 28, so consecutive dates may repeat or skip one icon at a cycle boundary.
// That mismatch is bounded and accepted; the index never moves backwards.
const MoonIconCount = 28

// MoonAnchorHour is the local time-of-day each date's phase is evaluated at.
const MoonAnchorHour = 22

// MoonPhaseDay is the discrete per-date lunar state shown on the calendar.
type MoonPhaseDay struct {
	Date        Date
	IconIndex   int     // [0, MoonIconCount)
	Illuminated float64 // fraction of the disk lit at the anchor instant
}

// lunarCycle caches the quarter-phase instants of one synodic month. The
// boundaries slice is [new, first quarter, full, last quarter, next new].
type lunarCycle struct {
	bounds [5]time.Time
}

func (c lunarCycle) contains(t time.Time) bool {
	return !t.Before(c.bounds[0]) && t.Before(c.bounds[4])
}

// iconAt maps an instant inside the cycle to an icon index. Each quarter
// spans 7 icons; the instant's fractional progress between its bracketing
// quarter events is scaled and rounded, with half-icon ties resolved toward
// the nearer quarter icon (0, 7, 14, 21).
func (c lunarCycle) iconAt(t time.Time) int {
	k := 3
	for k > 0 && t.Before(c.bounds[k]) {
		k--
	}
	span := c.bounds[k+1].Sub(c.bounds[k])
	frac := float64(t.Sub(c.bounds[k])) / float64(span)

	offset := frac * 7
	var r float64
	if offset < 3.5 {
		r = math.Ceil(offset - 0.5) // ties toward the quarter below
	} else {
		r = math.Floor(offset + 0.5) // ties toward the quarter above
	}
	return (k*7 + int(r)) % MoonIconCount
}

// cycleAround builds the lunar cycle containing the given instant.
func cycleAround(eph Ephemeris, t time.Time) (lunarCycle, error) {
	// The previous new moon is at most one synodic month back; walk forward
	// from there until the next new moon passes t.
	lastNew, err := eph.QuarterAfter(NewMoon, t.Add(-30*24*time.Hour))
	if err != nil {
		return lunarCycle{}, err
	}
	var nextNew time.Time
	for {
		nextNew, err = eph.QuarterAfter(NewMoon, lastNew.Add(time.Minute))
		if err != nil {
			return lunarCycle{}, err
		}
		if nextNew.After(t) {
			break
		}
		lastNew = nextNew
	}
	return cycleFrom(eph, lastNew, nextNew)
}

func cycleFrom(eph Ephemeris, lastNew, nextNew time.Time) (lunarCycle, error) {
	c := lunarCycle{}
	c.bounds[0] = lastNew
	c.bounds[4] = nextNew
	for i, q := range []QuarterPhase{FirstQuarter, FullMoon, LastQuarter} {
		t, err := eph.QuarterAfter(q, lastNew)
		if err != nil {
			return lunarCycle{}, err
		}
		c.bounds[i+1] = t
	}
	for i := 1; i < len(c.bounds); i++ {
		if !c.bounds[i].After(c.bounds[i-1]) {
			return lunarCycle{}, fmt.Errorf("%w: quarter phases out of order in cycle starting %s",
				ErrSampleUnavailable, lastNew.Format(time.RFC3339))
		}
	}
	return c, nil
}

// MapLunarPhases computes the per-date moon icon index and illuminated
// fraction for every date in [start, end], evaluating the continuous phase
// signal at each date's 22:00 local anchor.
func MapLunarPhases(eph Ephemeris, start, end Date, loc *time.Location) ([]MoonPhaseDay, error) {
	days := make([]MoonPhaseDay, 0, 366)

	anchor := LocalAnchor(start, MoonAnchorHour, loc)
	cycle, err := cycleAround(eph, anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: locating lunar cycle at %s: %v",
			ErrSampleUnavailable, anchor.Format(time.RFC3339), err)
	}

	for date := start; !date.After(end); date = date.Next() {
		anchor = LocalAnchor(date, MoonAnchorHour, loc)
		for !cycle.contains(anchor) {
			lastNew := cycle.bounds[4]
			nextNew, qerr := eph.QuarterAfter(NewMoon, lastNew.Add(time.Minute))
			if qerr == nil {
				cycle, qerr = cycleFrom(eph, lastNew, nextNew)
			}
			if qerr != nil {
				return nil, fmt.Errorf("%w: advancing lunar cycle past %s: %v",
					ErrSampleUnavailable, anchor.Format(time.RFC3339), qerr)
			}
		}

		illum, err := eph.Illumination(anchor)
		if err != nil {
			return nil, fmt.Errorf("%w: illumination at %s: %v",
				ErrSampleUnavailable, anchor.Format(time.RFC3339), err)
		}

		days = append(days, MoonPhaseDay{
			Date:        date,
			IconIndex:   cycle.iconAt(anchor),
			Illuminated: illum,
		})
	}
	return days, nil
}
