package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func jan1(hour int) time.Time {
	return time.Date(2015, 1, 1, hour, 0, 0, 0, time.UTC)
}

func scenarioEvents() []TideEvent {
	return []TideEvent{
		{Time: jan1(0), Height: 2.0, Kind: TideLow},
		{Time: jan1(6), Height: 8.0, Kind: TideHigh},
		{Time: jan1(12), Height: 1.5, Kind: TideLow},
	}
}

// TestCurveHeightAt_Midpoint verifies the half-sine midpoint value: between
// a 2.0 low and an 8.0 high the curve at the halfway time is exactly the
// mean height 5.0.
func TestCurveHeightAt_Midpoint(t *testing.T) {
	h, err := CurveHeightAt(scenarioEvents(), jan1(3))
	if err != nil {
		t.Fatalf("CurveHeightAt: %v", err)
	}
	if math.Abs(h-5.0) > 1e-9 {
		t.Errorf("Height at midpoint: expected 5.0, got %.12f", h)
	}
}

// TestCurveHeightAt_ReproducesEvents verifies every published extremum is
// reproduced exactly at its own timestamp.
func TestCurveHeightAt_ReproducesEvents(t *testing.T) {
	events := scenarioEvents()
	for _, e := range events {
		h, err := CurveHeightAt(events, e.Time)
		if err != nil {
			t.Fatalf("CurveHeightAt(%v): %v", e.Time, err)
		}
		if math.Abs(h-e.Height) > 1e-9 {
			t.Errorf("Height at %v: expected %.1f, got %.12f", e.Time, e.Height, h)
		}
	}
}

// TestCurveHeightAt_StrictlyBetween verifies interior samples lie strictly
// between the bounding event heights: a single half-wave with no overshoot.
func TestCurveHeightAt_StrictlyBetween(t *testing.T) {
	events := scenarioEvents()
	for minute := 1; minute < 360; minute++ {
		ts := jan1(0).Add(time.Duration(minute) * time.Minute)
		h, err := CurveHeightAt(events, ts)
		if err != nil {
			t.Fatalf("CurveHeightAt(%v): %v", ts, err)
		}
		if h <= 2.0 || h >= 8.0 {
			t.Fatalf("Height at %v: %.6f outside open interval (2.0, 8.0)", ts, h)
		}
	}
}

// TestCurveHeightAt_EdgeExtrapolation verifies the curve outside the event
// range continues the nearest half-wave. Events are extrema, so the wave is
// symmetric around them: the value a given offset before the first low must
// equal the value the same offset after it.
func TestCurveHeightAt_EdgeExtrapolation(t *testing.T) {
	events := scenarioEvents()
	for _, offset := range []time.Duration{10 * time.Minute, time.Hour, 2 * time.Hour} {
		before, err := CurveHeightAt(events, jan1(0).Add(-offset))
		if err != nil {
			t.Fatalf("CurveHeightAt: %v", err)
		}
		after, err := CurveHeightAt(events, jan1(0).Add(offset))
		if err != nil {
			t.Fatalf("CurveHeightAt: %v", err)
		}
		if math.Abs(before-after) > 1e-9 {
			t.Errorf("Extrapolation at -%v: got %.9f, want mirror value %.9f", offset, before, after)
		}
	}
}

func TestValidateTideEvents_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		events []TideEvent
	}{
		{
			name:   "too few events",
			events: []TideEvent{{Time: jan1(0), Height: 2.0, Kind: TideLow}},
		},
		{
			name: "repeated kind",
			events: []TideEvent{
				{Time: jan1(0), Height: 2.0, Kind: TideLow},
				{Time: jan1(6), Height: 1.0, Kind: TideLow},
			},
		},
		{
			name: "non-increasing time",
			events: []TideEvent{
				{Time: jan1(6), Height: 8.0, Kind: TideHigh},
				{Time: jan1(6), Height: 2.0, Kind: TideLow},
			},
		},
		{
			name: "unknown kind",
			events: []TideEvent{
				{Time: jan1(0), Height: 2.0, Kind: "X"},
				{Time: jan1(6), Height: 8.0, Kind: TideHigh},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTideEvents(tt.events)
			if !errors.Is(err, ErrMalformedTideData) {
				t.Errorf("expected ErrMalformedTideData, got %v", err)
			}
		})
	}
}

// TestBuildTideCurve_Spacing verifies the sampled curve covers the margined
// range with evenly spaced, strictly increasing samples.
func TestBuildTideCurve_Spacing(t *testing.T) {
	step := 6 * time.Minute
	margin := time.Hour

	samples, err := BuildTideCurve(scenarioEvents(), step, margin)
	if err != nil {
		t.Fatalf("BuildTideCurve: %v", err)
	}

	wantStart := jan1(0).Add(-margin)
	if !samples[0].Time.Equal(wantStart) {
		t.Errorf("first sample at %v, want %v", samples[0].Time, wantStart)
	}

	for i := 1; i < len(samples); i++ {
		if got := samples[i].Time.Sub(samples[i-1].Time); got != step {
			t.Fatalf("gap of %v between samples %d and %d, want %v", got, i-1, i, step)
		}
	}

	wantEnd := jan1(12).Add(margin)
	last := samples[len(samples)-1].Time
	if last.After(wantEnd) || wantEnd.Sub(last) >= step {
		t.Errorf("last sample at %v, want within one step of %v", last, wantEnd)
	}
}

// TestBuildTideCurve_BoundedByEvents verifies every sample inside the event
// range stays within the bounding event heights.
func TestBuildTideCurve_BoundedByEvents(t *testing.T) {
	events := scenarioEvents()
	samples, err := BuildTideCurve(events, 5*time.Minute, 0)
	if err != nil {
		t.Fatalf("BuildTideCurve: %v", err)
	}
	for _, s := range samples {
		if s.Height < 1.5-1e-9 || s.Height > 8.0+1e-9 {
			t.Fatalf("sample at %v has height %.6f outside [1.5, 8.0]", s.Time, s.Height)
		}
	}
}

func TestSliceCurve(t *testing.T) {
	samples, err := BuildTideCurve(scenarioEvents(), 10*time.Minute, 0)
	if err != nil {
		t.Fatalf("BuildTideCurve: %v", err)
	}

	from, to := jan1(3), jan1(6)
	window := SliceCurve(samples, from, to)
	if len(window) == 0 {
		t.Fatal("expected samples in window")
	}
	for _, s := range window {
		if s.Time.Before(from) || !s.Time.Before(to) {
			t.Errorf("sample at %v outside [%v, %v)", s.Time, from, to)
		}
	}
}

func TestEventRange(t *testing.T) {
	minH, maxH := EventRange(scenarioEvents())
	if minH != 1.5 || maxH != 8.0 {
		t.Errorf("EventRange = (%.1f, %.1f), want (1.5, 8.0)", minH, maxH)
	}
}
