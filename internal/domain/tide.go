package domain

import (
	"fmt"
	"math"
	"time"
)

// TideKind marks a prediction event as a high or low water.
type TideKind string

const (
	TideHigh TideKind = "H"
	TideLow  TideKind = "L"
)

// TideEvent is a single published high/low prediction. Times are UTC.
type TideEvent struct {
	Time   time.Time
	Height float64 // in the unit of the source table (feet for NOAA annual files)
	Kind   TideKind
}

// TideCurveSample is one point of the reconstructed continuous tide curve.
type TideCurveSample struct {
	Time   time.Time // UTC
	Height float64
}

// DefaultTideStep is the sampling step used when the caller does not choose one.
const DefaultTideStep = 6 * time.Minute

// ValidateTideEvents checks the ordering and alternation invariants of a
// prediction sequence: strictly increasing times, strictly alternating
// high/low kinds.
func ValidateTideEvents(events []TideEvent) error {
	if len(events) < 2 {
		return fmt.Errorf("%w: need at least 2 events, got %d", ErrMalformedTideData, len(events))
	}
	for i := range events {
		if k := events[i].Kind; k != TideHigh && k != TideLow {
			return fmt.Errorf("%w: event %d has unknown kind %q", ErrMalformedTideData, i, k)
		}
		if i == 0 {
			continue
		}
		if !events[i].Time.After(events[i-1].Time) {
			return fmt.Errorf("%w: event %d at %s does not follow event %d at %s",
				ErrMalformedTideData, i, events[i].Time.Format(time.RFC3339),
				i-1, events[i-1].Time.Format(time.RFC3339))
		}
		if events[i].Kind == events[i-1].Kind {
			return fmt.Errorf("%w: consecutive %q events at %s and %s",
				ErrMalformedTideData, events[i].Kind,
				events[i-1].Time.Format(time.RFC3339), events[i].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// interpHeight evaluates the half-sine segment between a and b at time t.
// The segment is half a cycle of a sine wave pinned to both extrema:
//
//	h(t) = mid + (ha-hb)/2 * cos(pi * frac),  frac = (t-ta)/(tb-ta)
//
// so h(ta) = ha and h(tb) = hb exactly. Because both endpoints are extrema
// of the wave, evaluating with frac outside [0, 1] continues the same wave
// symmetrically, which is how edge extrapolation works.
func interpHeight(a, b TideEvent, t time.Time) float64 {
	mid := (a.Height + b.Height) / 2
	half := (a.Height - b.Height) / 2
	frac := float64(t.Sub(a.Time)) / float64(b.Time.Sub(a.Time))
	return mid + half*math.Cos(math.Pi*frac)
}

// BuildTideCurve reconstructs a continuous tide curve from the ordered
// high/low sequence, sampled every step across
// [first event - margin, last event + margin]. Each published event height is
// reproduced exactly at its own timestamp; every interior sample lies between
// the heights of its two bounding events. Outside the event range the nearest
// segment's own wave is extended, no events are fabricated.
func BuildTideCurve(events []TideEvent, step, margin time.Duration) ([]TideCurveSample, error) {
	if err := ValidateTideEvents(events); err != nil {
		return nil, err
	}
	if step <= 0 {
		step = DefaultTideStep
	}
	if margin < 0 {
		margin = 0
	}

	start := events[0].Time.Add(-margin)
	end := events[len(events)-1].Time.Add(margin)

	samples := make([]TideCurveSample, 0, int(end.Sub(start)/step)+1)
	seg := 0
	for t := start; !t.After(end); t = t.Add(step) {
		// Advance to the segment bounding t. Times before the first event
		// stay on segment 0, times past the last event stay on the final
		// segment: both extrapolate that segment's own wave.
		for seg < len(events)-2 && t.After(events[seg+1].Time) {
			seg++
		}
		samples = append(samples, TideCurveSample{
			Time:   t,
			Height: interpHeight(events[seg], events[seg+1], t),
		})
	}
	return samples, nil
}

// CurveHeightAt evaluates the reconstructed curve at one instant without
// materializing samples. Same segment selection and extrapolation rules as
// BuildTideCurve.
func CurveHeightAt(events []TideEvent, t time.Time) (float64, error) {
	if err := ValidateTideEvents(events); err != nil {
		return 0, err
	}
	seg := 0
	for seg < len(events)-2 && t.After(events[seg+1].Time) {
		seg++
	}
	return interpHeight(events[seg], events[seg+1], t), nil
}

// EventRange returns the minimum and maximum published heights, for plot
// scaling downstream.
func EventRange(events []TideEvent) (minH, maxH float64) {
	if len(events) == 0 {
		return 0, 0
	}
	minH, maxH = events[0].Height, events[0].Height
	for _, e := range events[1:] {
		if e.Height < minH {
			minH = e.Height
		}
		if e.Height > maxH {
			maxH = e.Height
		}
	}
	return minH, maxH
}

// SliceCurve returns the samples falling in [from, to).
func SliceCurve(samples []TideCurveSample, from, to time.Time) []TideCurveSample {
	lo := 0
	for lo < len(samples) && samples[lo].Time.Before(from) {
		lo++
	}
	hi := lo
	for hi < len(samples) && samples[hi].Time.Before(to) {
		hi++
	}
	return samples[lo:hi]
}
