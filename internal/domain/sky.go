package domain

import (
	"fmt"
	"math"
	"time"
)

// SkySample is one point of a body's altitude track. Time is the UTC instant
// the ephemeris was queried at; Local is the same instant as station
// wall-clock time, used only for horizontal placement.
type SkySample struct {
	Time        time.Time
	Local       time.Time
	AltitudeDeg float64

	// AboveHorizon is true when the altitude clears the body's apparent
	// horizon (refraction included). Insolation is sin(altitude) when above,
	// 0 below.
	AboveHorizon bool
	Insolation   float64
}

// SkySampleStep is the fixed resolution of the altitude tracks.
const SkySampleStep = 10 * time.Minute

// Apparent horizon altitudes in degrees: the geometric altitude of the body's
// center when its upper limb sits on the horizon under standard refraction.
const (
	SunApparentHorizonDeg  = -0.833
	MoonApparentHorizonDeg = -0.90
)

// ApparentHorizonDeg returns the apparent horizon altitude for a body.
func ApparentHorizonDeg(body Body) float64 {
	if body == BodyMoon {
		return MoonApparentHorizonDeg
	}
	return SunApparentHorizonDeg
}

// SampleSkyDay samples a body's altitude every SkySampleStep across one local
// calendar day. The grid is built from the date's local midnight boundaries,
// not UTC boundaries, so the rendered day is always fully covered regardless
// of zone offset. A normal day yields 144 samples per body; daylight-saving
// transition days yield 138 or 150 and surface as a compressed or stretched
// local axis, which is accepted, not corrected.
//
// An ephemeris failure aborts the day with ErrSampleUnavailable naming the
// offending instant; the sampler never drops a grid point silently.
func SampleSkyDay(eph Ephemeris, body Body, date Date, loc *time.Location) ([]SkySample, error) {
	start, end := LocalDayBounds(date, loc)
	horizon := ApparentHorizonDeg(body)

	samples := make([]SkySample, 0, int(end.Sub(start)/SkySampleStep))
	for t := start; t.Before(end); t = t.Add(SkySampleStep) {
		alt, err := eph.Altitude(body, t)
		if err != nil {
			return nil, fmt.Errorf("%w: %s altitude at %s: %v",
				ErrSampleUnavailable, body, t.Format(time.RFC3339), err)
		}
		if math.IsNaN(alt) {
			return nil, fmt.Errorf("%w: %s altitude at %s is NaN",
				ErrSampleUnavailable, body, t.Format(time.RFC3339))
		}

		s := SkySample{
			Time:        t,
			Local:       ToLocal(t, loc),
			AltitudeDeg: alt,
		}
		if alt > horizon {
			s.AboveHorizon = true
			s.Insolation = math.Sin(alt * math.Pi / 180)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// RiseSetFromTrack derives the day's first rise and first set instants from
// an altitude track by locating apparent-horizon crossings between adjacent
// samples, refined by linear interpolation. Either result may be nil (body
// up or down all day, or already up at local midnight).
func RiseSetFromTrack(samples []SkySample, horizonDeg float64) (rise, set *time.Time) {
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		wasUp := prev.AltitudeDeg > horizonDeg
		isUp := cur.AltitudeDeg > horizonDeg
		if wasUp == isUp {
			continue
		}
		t := crossingTime(prev, cur, horizonDeg)
		if isUp && rise == nil {
			rise = &t
		} else if !isUp && set == nil {
			set = &t
		}
		if rise != nil && set != nil {
			break
		}
	}
	return rise, set
}

// crossingTime linearly interpolates the instant the altitude crosses the
// horizon between two adjacent samples.
func crossingTime(a, b SkySample, horizonDeg float64) time.Time {
	da := horizonDeg - a.AltitudeDeg
	db := b.AltitudeDeg - a.AltitudeDeg
	if db == 0 {
		return a.Time
	}
	frac := da / db
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	return a.Time.Add(time.Duration(frac * float64(b.Time.Sub(a.Time))))
}
