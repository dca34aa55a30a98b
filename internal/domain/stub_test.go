package domain

import (
	"fmt"
	"math"
	"time"
)

// stubEphemeris is a scripted ephemeris for deterministic tests: a moon
// cycle that is an exact linear ramp from a known epoch, a sun altitude that
// is an exact sinusoid over the UTC day, and season instants taken from a
// fixed table.
type stubEphemeris struct {
	// altitudeFn overrides the default sinusoid when set.
	altitudeFn func(body Body, utc time.Time) (float64, error)

	// epoch is a new moon instant; cycle is the synthetic synodic period.
	epoch time.Time
	cycle time.Duration

	seasons map[SeasonKind]time.Time
}

func newStubEphemeris() *stubEphemeris {
	return &stubEphemeris{
		epoch: time.Date(2015, 1, 10, 22, 0, 0, 0, time.UTC),
		cycle: 28 * 24 * time.Hour,
	}
}

func (s *stubEphemeris) Altitude(body Body, utc time.Time) (float64, error) {
	if s.altitudeFn != nil {
		return s.altitudeFn(body, utc)
	}
	// Peak at 12:00 UTC for the sun; offset the moon by half a day.
	hours := float64(utc.Hour()) + float64(utc.Minute())/60
	shift := 0.0
	if body == BodyMoon {
		shift = 12
	}
	return 60 * math.Sin(2*math.Pi*(hours-shift-6)/24), nil
}

func (s *stubEphemeris) phase(utc time.Time) float64 {
	frac := math.Mod(float64(utc.Sub(s.epoch))/float64(s.cycle), 1)
	if frac < 0 {
		frac++
	}
	return frac
}

func (s *stubEphemeris) PhaseAngle(utc time.Time) (float64, error) {
	return s.phase(utc), nil
}

func (s *stubEphemeris) Illumination(utc time.Time) (float64, error) {
	return 0.5 * (1 - math.Cos(2*math.Pi*s.phase(utc))), nil
}

func (s *stubEphemeris) QuarterAfter(q QuarterPhase, utc time.Time) (time.Time, error) {
	// Solve epoch + (n + angle) * cycle > utc for the smallest integer n.
	cycles := float64(utc.Sub(s.epoch))/float64(s.cycle) - q.Angle()
	n := math.Floor(cycles) + 1
	return s.epoch.Add(time.Duration((n + q.Angle()) * float64(s.cycle))), nil
}

func (s *stubEphemeris) SeasonInstant(kind SeasonKind, year int) (time.Time, error) {
	t, ok := s.seasons[kind]
	if !ok {
		return time.Time{}, fmt.Errorf("no scripted instant for %s %d", kind, year)
	}
	return t, nil
}

func (s *stubEphemeris) SunTimes(date Date, loc *time.Location) (SunTimes, error) {
	rise := time.Date(date.Year, date.Month, date.Day, 6, 0, 0, 0, loc).UTC()
	set := time.Date(date.Year, date.Month, date.Day, 18, 0, 0, 0, loc).UTC()
	return SunTimes{
		Dawn: rise.Add(-30 * time.Minute),
		Rise: rise,
		Noon: rise.Add(6 * time.Hour),
		Set:  set,
		Dusk: set.Add(30 * time.Minute),
	}, nil
}

var _ Ephemeris = (*stubEphemeris)(nil)
