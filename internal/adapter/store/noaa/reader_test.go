package noaa

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

const sampleTable = `NOAA/NOS/CO-OPS
Disclaimer: These data are based upon the latest information available.
Product Type: Annual Tide Prediction
StationName: Los Angeles
State: CA
Stationid: 9410660
ReferenceToStationId:
Prediction Type: Harmonic
From: 20150101 00:25 - 20151231 18:47
Units: Feet and Centimeters
Time Zone: LST/LDT
Datum: MLLW
Interval Type: High/Low Tide Predictions

Date       Day  Time  Pred(Ft)  Pred(cm)  High/Low
2015/01/01 Thu 03:07 AM  -0.2  -6  L
2015/01/01 Thu 09:32 AM   6.0  183  H
2015/01/01 Thu 05:03 PM   0.4  12  L
2015/01/01 Thu 11:10 PM   3.9  119  H
2015/01/02 Fri 03:48 AM   0.2  6  L
`

const sampleSubordinate = `NOAA/NOS/CO-OPS
Product Type: Annual Tide Prediction
StationName: Long Beach, Inner Harbor
State: CA
Stationid: 9410686
ReferenceToStationId: 9410660
HeightOffsetLow: * 1.06
HeightOffsetHigh: * 1.03
TimeOffsetLow: 12
TimeOffsetHigh: 8
Prediction Type: Subordinate
Units: Feet and Centimeters
Time Zone: LST/LDT
Datum: MLLW
Interval Type: High/Low Tide Predictions

Date       Day  Time  Pred(Ft)  Pred(cm)  High/Low
2015/01/01 Thu 03:19 AM  -0.2  -6  L
2015/01/01 Thu 09:40 AM   6.2  189  H
`

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	if got := table.StationID(); got != "9410660" {
		t.Errorf("StationID = %q, want 9410660", got)
	}
	if got := table.Year(); got != 2015 {
		t.Errorf("Year = %d, want 2015", got)
	}
	if got := len(table.rows); got != 5 {
		t.Errorf("rows = %d, want 5", got)
	}

	// PM rows must come out on the 24-hour clock.
	r := table.rows[2]
	if r.wall.Hour() != 17 || r.wall.Minute() != 3 {
		t.Errorf("third row wall clock %v, want 17:03", r.wall)
	}
	if r.height != 0.4 || r.kind != domain.TideLow {
		t.Errorf("third row parsed as %+v", r)
	}
}

func TestReadTable_Events(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	events, err := table.Events(loc)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}

	// 03:07 PST on January 1 is 11:07 UTC.
	want := time.Date(2015, 1, 1, 11, 7, 0, 0, time.UTC)
	if !events[0].Time.Equal(want) {
		t.Errorf("first event at %v, want %v", events[0].Time, want)
	}
	for i := 1; i < len(events); i++ {
		if !events[i].Time.After(events[i-1].Time) {
			t.Errorf("events not strictly increasing at index %d", i)
		}
	}
}

func TestReadTable_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		mutil func(string) string
	}{
		{"missing agency line", func(s string) string {
			return strings.Replace(s, "NOAA/NOS/CO-OPS\n", "", 1)
		}},
		{"wrong interval type", func(s string) string {
			return strings.Replace(s, "High/Low Tide Predictions", "6-Minute Predictions", 1)
		}},
		{"wrong time zone", func(s string) string {
			return strings.Replace(s, "Time Zone: LST/LDT", "Time Zone: GMT", 1)
		}},
		{"missing station id", func(s string) string {
			return strings.Replace(s, "Stationid: 9410660\n", "", 1)
		}},
		{"bad column header", func(s string) string {
			return strings.Replace(s, "High/Low", "Type", 1)
		}},
		{"bad timestamp", func(s string) string {
			return strings.Replace(s, "03:07 AM", "25:07 AM", 1)
		}},
		{"bad height", func(s string) string {
			return strings.Replace(s, " -0.2 ", " n/a ", 1)
		}},
		{"bad marker", func(s string) string {
			return strings.Replace(s, "-6  L", "-6  X", 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTable(strings.NewReader(tt.mutil(sampleTable))); err == nil {
				t.Errorf("expected parse error")
			}
		})
	}
}

func TestReadTable_NoRows(t *testing.T) {
	cut := sampleTable[:strings.Index(sampleTable, "2015/01/01")]
	if _, err := ReadTable(strings.NewReader(cut)); err == nil {
		t.Errorf("expected error for table without rows")
	}
}

func TestEvents_AmbiguousPrediction(t *testing.T) {
	// 01:30 on 2015-11-01 falls inside the fall-back hour in Los Angeles.
	ambiguous := strings.Replace(sampleTable,
		"2015/01/02 Fri 03:48 AM   0.2  6  L",
		"2015/11/01 Sun 01:30 AM   0.2  6  L", 1)

	table, err := ReadTable(strings.NewReader(ambiguous))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	if _, err := table.Events(loc); !errors.Is(err, domain.ErrMalformedTideData) {
		t.Errorf("expected ErrMalformedTideData, got %v", err)
	}
}

func TestReferenceOffsets(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleSubordinate))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}

	store, err := ReadStations(strings.NewReader(sampleStations))
	if err != nil {
		t.Fatalf("ReadStations: %v", err)
	}

	ref, err := table.ReferenceOffsets(store)
	if err != nil {
		t.Fatalf("ReferenceOffsets: %v", err)
	}
	if ref == nil {
		t.Fatal("subordinate table returned nil offsets")
	}
	if ref.StationID != "9410660" {
		t.Errorf("reference ID %q, want 9410660", ref.StationID)
	}
	if ref.StationName != "Los Angeles" {
		t.Errorf("reference name %q, want Los Angeles", ref.StationName)
	}
	if ref.TimeOffsetLow != 12 || ref.TimeOffsetHigh != 8 {
		t.Errorf("time offsets %d/%d, want 12/8", ref.TimeOffsetLow, ref.TimeOffsetHigh)
	}
	if ref.HeightFactorLow != 1.06 || ref.HeightFactorHigh != 1.03 {
		t.Errorf("height factors %v/%v, want 1.06/1.03", ref.HeightFactorLow, ref.HeightFactorHigh)
	}
}

func TestReferenceOffsets_Harmonic(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleTable))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	ref, err := table.ReferenceOffsets(nil)
	if err != nil {
		t.Fatalf("ReferenceOffsets: %v", err)
	}
	if ref != nil {
		t.Errorf("harmonic table returned offsets %+v", ref)
	}
}
