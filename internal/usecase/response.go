package usecase

import (
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// CalendarResponse is the date-indexed output handed to renderers and the
// HTTP surface. Every day is fully populated; no further astronomical
// computation is needed downstream.
type CalendarResponse struct {
	Station   StationResponse   `json:"station"`
	Year      int               `json:"year"`
	AnnualMax float64           `json:"annual_max"`
	AnnualMin float64           `json:"annual_min"`
	Days      []DayResponse     `json:"days"`
	Warnings  []string          `json:"warnings,omitempty"`
	Meta      map[string]string `json:"meta"`
}

// StationResponse describes the station a calendar was generated for.
type StationResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	State     string             `json:"state"`
	Type      string             `json:"type"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Timezone  string             `json:"timezone"`
	Reference *ReferenceResponse `json:"reference,omitempty"`
}

// ReferenceResponse carries subordinate-station offset metadata.
type ReferenceResponse struct {
	StationID        string  `json:"station_id"`
	StationName      string  `json:"station_name,omitempty"`
	TimeOffsetLow    int     `json:"time_offset_low_min"`
	TimeOffsetHigh   int     `json:"time_offset_high_min"`
	HeightFactorLow  float64 `json:"height_factor_low"`
	HeightFactorHigh float64 `json:"height_factor_high"`
}

// DayResponse is one calendar day's column.
type DayResponse struct {
	Date            string            `json:"date"`
	Tide            []CurvePoint      `json:"tide"`
	Sun             []SkyPoint        `json:"sun"`
	Moon            []SkyPoint        `json:"moon"`
	MoonIcon        int               `json:"moon_icon"`
	MoonIlluminated float64           `json:"moon_illuminated"`
	SunTimes        *SunTimesResponse `json:"sun_times,omitempty"`
	MoonRise        *string           `json:"moon_rise,omitempty"`
	MoonSet         *string           `json:"moon_set,omitempty"`
	Events          []EventResponse   `json:"events,omitempty"`
}

// CurvePoint is a single tide curve sample.
type CurvePoint struct {
	Time   string  `json:"time"`
	Height float64 `json:"height"`
}

// SkyPoint is a single altitude track sample.
type SkyPoint struct {
	Time       string  `json:"time"`
	Local      string  `json:"local"`
	Altitude   float64 `json:"altitude_deg"`
	Insolation float64 `json:"insolation"`
}

// SunTimesResponse holds the day's solar event instants.
type SunTimesResponse struct {
	Dawn string `json:"dawn"`
	Rise string `json:"rise"`
	Noon string `json:"noon"`
	Set  string `json:"set"`
	Dusk string `json:"dusk"`
}

// EventResponse is a localized solstice/equinox marker.
type EventResponse struct {
	Kind        string  `json:"kind"`
	Time        string  `json:"time"`
	Local       string  `json:"local"`
	DayFraction float64 `json:"day_fraction"`
}

// NewCalendarResponse converts a domain calendar to the response format.
func NewCalendarResponse(cal *domain.Calendar, warnings []string) *CalendarResponse {
	resp := &CalendarResponse{
		Station: StationResponse{
			ID:        cal.Station.ID,
			Name:      cal.Station.Name,
			State:     cal.Station.State,
			Type:      string(cal.Station.Type),
			Latitude:  cal.Station.Latitude,
			Longitude: cal.Station.Longitude,
			Timezone:  cal.Station.Timezone,
		},
		Year:      cal.Year,
		AnnualMax: cal.AnnualMax,
		AnnualMin: cal.AnnualMin,
		Days:      make([]DayResponse, 0, len(cal.Days)),
		Warnings:  warnings,
		Meta: map[string]string{
			"model":       "halfwave_v1",
			"attribution": "NOAA/NOS/CO-OPS annual tide predictions",
		},
	}

	if ref := cal.Station.Reference; ref != nil {
		resp.Station.Reference = &ReferenceResponse{
			StationID:        ref.StationID,
			StationName:      ref.StationName,
			TimeOffsetLow:    ref.TimeOffsetLow,
			TimeOffsetHigh:   ref.TimeOffsetHigh,
			HeightFactorLow:  ref.HeightFactorLow,
			HeightFactorHigh: ref.HeightFactorHigh,
		}
	}

	for _, day := range cal.Days {
		resp.Days = append(resp.Days, newDayResponse(day))
	}
	return resp
}

func newSkyPoint(s domain.SkySample) SkyPoint {
	return SkyPoint{
		Time:       s.Time.Format(time.RFC3339),
		Local:      s.Local.Format(time.RFC3339),
		Altitude:   roundToDecimal(s.AltitudeDeg, 3),
		Insolation: roundToDecimal(s.Insolation, 3),
	}
}

func newDayResponse(day domain.CalendarDay) DayResponse {
	d := DayResponse{
		Date:            day.Date.String(),
		Tide:            make([]CurvePoint, 0, len(day.TideSamples)),
		Sun:             make([]SkyPoint, 0, len(day.SunSamples)),
		Moon:            make([]SkyPoint, 0, len(day.MoonSamples)),
		MoonIcon:        day.MoonIcon,
		MoonIlluminated: roundToDecimal(day.MoonIlluminated, 3),
	}

	for _, s := range day.TideSamples {
		d.Tide = append(d.Tide, CurvePoint{
			Time:   s.Time.Format(time.RFC3339),
			Height: roundToDecimal(s.Height, 3),
		})
	}
	for _, s := range day.SunSamples {
		d.Sun = append(d.Sun, newSkyPoint(s))
	}
	for _, s := range day.MoonSamples {
		d.Moon = append(d.Moon, newSkyPoint(s))
	}

	if st := day.SunTimes; st != nil {
		d.SunTimes = &SunTimesResponse{
			Dawn: st.Dawn.Format(time.RFC3339),
			Rise: st.Rise.Format(time.RFC3339),
			Noon: st.Noon.Format(time.RFC3339),
			Set:  st.Set.Format(time.RFC3339),
			Dusk: st.Dusk.Format(time.RFC3339),
		}
	}
	if day.MoonRise != nil {
		v := day.MoonRise.Format(time.RFC3339)
		d.MoonRise = &v
	}
	if day.MoonSet != nil {
		v := day.MoonSet.Format(time.RFC3339)
		d.MoonSet = &v
	}

	for _, e := range day.Events {
		d.Events = append(d.Events, EventResponse{
			Kind:        string(e.Kind),
			Time:        e.Time.Format(time.RFC3339),
			Local:       e.Local.Format(time.RFC3339),
			DayFraction: roundToDecimal(e.DayFraction, 4),
		})
	}
	return d
}
