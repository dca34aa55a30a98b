package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// Quarter-phase instants are located on the continuous phase signal: a coarse
// forward scan brackets the crossing of the target cycle fraction, then
// bisection tightens the bracket to the second.

const (
	quarterScanStep    = 6 * time.Hour
	quarterScanHorizon = 40 * 24 * time.Hour
	quarterTolerance   = time.Second
)

// phaseOffset maps a phase reading onto a signed distance from target in
// cycle fractions, in (-0.5, 0.5]. It is negative approaching the target and
// crosses zero upward as the phase passes it.
func phaseOffset(phase, target float64) float64 {
	d := math.Mod(phase-target, 1)
	if d <= -0.5 {
		d++
	} else if d > 0.5 {
		d--
	}
	return d
}

// QuarterAfter returns the first instant strictly after utc at which the
// given quarter phase occurs.
func (o *Oracle) QuarterAfter(q domain.QuarterPhase, utc time.Time) (time.Time, error) {
	target := q.Angle()

	prev := utc
	prevOff, err := o.phaseOffsetAt(prev, target)
	if err != nil {
		return time.Time{}, err
	}

	for t := utc.Add(quarterScanStep); t.Sub(utc) <= quarterScanHorizon; t = t.Add(quarterScanStep) {
		off, err := o.phaseOffsetAt(t, target)
		if err != nil {
			return time.Time{}, err
		}
		// An upward zero crossing within a small window is the phase passing
		// the target; large jumps are the signed distance wrapping.
		if prevOff < 0 && off >= 0 && off-prevOff < 0.5 {
			return o.bisectQuarter(prev, t, target)
		}
		prev, prevOff = t, off
	}
	return time.Time{}, fmt.Errorf("no %s within %s after %s", q, quarterScanHorizon, utc.Format(time.RFC3339))
}

func (o *Oracle) bisectQuarter(lo, hi time.Time, target float64) (time.Time, error) {
	for hi.Sub(lo) > quarterTolerance {
		mid := lo.Add(hi.Sub(lo) / 2)
		off, err := o.phaseOffsetAt(mid, target)
		if err != nil {
			return time.Time{}, err
		}
		if off < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

func (o *Oracle) phaseOffsetAt(t time.Time, target float64) (float64, error) {
	phase, err := o.PhaseAngle(t)
	if err != nil {
		return 0, err
	}
	return phaseOffset(phase, target), nil
}
