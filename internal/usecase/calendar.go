// Package usecase orchestrates a calendar generation run: validated request
// in, fully populated date-indexed calendar out. All astronomy goes through
// the injected domain.Ephemeris; all computation happens on UTC instants.
package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// CalendarRequest encapsulates one calendar generation run.
type CalendarRequest struct {
	Station domain.Station
	Events  []domain.TideEvent // UTC, ordered, alternating high/low
	Year    int

	// TideStep is the tide curve sampling step; zero selects the default.
	TideStep time.Duration
	// TideMargin extends the curve beyond the first/last event.
	TideMargin time.Duration
}

// CalendarUseCase builds calendars against an ephemeris.
type CalendarUseCase struct {
	eph domain.Ephemeris
}

// NewCalendarUseCase creates a calendar use case.
func NewCalendarUseCase(eph domain.Ephemeris) *CalendarUseCase {
	return &CalendarUseCase{eph: eph}
}

// Validate checks if the request is valid.
func (r *CalendarRequest) Validate() error {
	if r.Station.Latitude < -90 || r.Station.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if r.Station.Longitude < -180 || r.Station.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if _, err := r.Station.Location(); err != nil {
		return err
	}
	if r.Year < 1000 || r.Year > 3000 {
		return fmt.Errorf("year %d out of supported range", r.Year)
	}
	if err := domain.ValidateTideEvents(r.Events); err != nil {
		return err
	}
	if r.TideStep != 0 && (r.TideStep < time.Minute || r.TideStep > time.Hour) {
		return fmt.Errorf("tide step must be between 1 minute and 1 hour")
	}
	if r.TideMargin < 0 || r.TideMargin > 12*time.Hour {
		return fmt.Errorf("tide margin must be between 0 and 12 hours")
	}
	return nil
}

// Build assembles the domain calendar: the reconstructed tide curve sliced
// per local day, sun and moon altitude tracks, moon icons, solar day events
// and seasonal markers. Seasonal lookups are isolated per feature: a missing
// event is returned as a warning, the rest of the calendar still builds.
func (uc *CalendarUseCase) Build(req CalendarRequest) (*domain.Calendar, []string, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid request: %w", err)
	}

	loc, err := req.Station.Location()
	if err != nil {
		return nil, nil, err
	}

	start := domain.Date{Year: req.Year, Month: time.January, Day: 1}
	end := domain.Date{Year: req.Year, Month: time.December, Day: 31}

	curve, err := domain.BuildTideCurve(req.Events, req.TideStep, req.TideMargin)
	if err != nil {
		return nil, nil, err
	}

	phases, err := domain.MapLunarPhases(uc.eph, start, end, loc)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	seasonEvents, err := domain.LocateSeasonEvents(uc.eph, req.Year, loc, start, end)
	if err != nil {
		warnings = append(warnings, err.Error())
	}

	annualMin, annualMax := domain.EventRange(req.Events)

	cal := &domain.Calendar{
		Station:   req.Station,
		Year:      req.Year,
		AnnualMin: annualMin,
		AnnualMax: annualMax,
		Days:      make([]domain.CalendarDay, 0, 366),
	}

	i := 0
	for date := start; !date.After(end); date = date.Next() {
		dayStart, dayEnd := domain.LocalDayBounds(date, loc)

		sun, err := domain.SampleSkyDay(uc.eph, domain.BodySun, date, loc)
		if err != nil {
			return nil, nil, err
		}
		moon, err := domain.SampleSkyDay(uc.eph, domain.BodyMoon, date, loc)
		if err != nil {
			return nil, nil, err
		}

		sunTimes, err := uc.eph.SunTimes(date, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: sun times on %s: %v", domain.ErrSampleUnavailable, date, err)
		}

		moonRise, moonSet := domain.RiseSetFromTrack(moon, domain.MoonApparentHorizonDeg)

		day := domain.CalendarDay{
			Date:            date,
			TideSamples:     domain.SliceCurve(curve, dayStart, dayEnd),
			SunSamples:      sun,
			MoonSamples:     moon,
			MoonIcon:        phases[i].IconIndex,
			MoonIlluminated: phases[i].Illuminated,
			SunTimes:        &sunTimes,
			MoonRise:        moonRise,
			MoonSet:         moonSet,
			Events:          domain.EventsOn(seasonEvents, date),
		}
		cal.Days = append(cal.Days, day)
		i++
	}

	return cal, warnings, nil
}

// Execute performs the run and converts the result to the response format.
func (uc *CalendarUseCase) Execute(req CalendarRequest) (*CalendarResponse, error) {
	cal, warnings, err := uc.Build(req)
	if err != nil {
		return nil, err
	}
	return NewCalendarResponse(cal, warnings), nil
}

// roundToDecimal rounds to the given number of decimal places.
func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}
