package noaa

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saltline/tidecal/internal/domain"
)

// Table is a parsed NOAA Annual Tide Prediction text file: a block of
// "Key: value" header lines, a blank line, a column-name line, then one row
// per predicted high/low. Timestamps in the file are station wall-clock
// (LST/LDT); Events converts them to UTC.
type Table struct {
	Metadata map[string]string
	rows     []tableRow
}

type tableRow struct {
	wall   time.Time // wall-clock fields, location-less
	height float64
	kind   domain.TideKind
}

var expectedColumns = []string{"Date", "Day", "Time", "Pred(Ft)", "Pred(cm)", "High/Low"}

// LoadTable reads and parses an annual prediction file.
func LoadTable(path string) (*Table, error) {
	//nolint:gosec // G304: path comes from the command line.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction file: %w", err)
	}
	defer func() { _ = file.Close() }()

	table, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadTable parses annual prediction file content.
func ReadTable(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	table := &Table{Metadata: make(map[string]string)}

	// Header block: "Key: value" lines up to the first blank line.
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		if k, v, ok := strings.Cut(line, ": "); ok {
			table.Metadata[strings.TrimSpace(k)] = strings.TrimSpace(v)
		} else {
			table.Metadata[strings.TrimSpace(line)] = ""
		}
	}

	if err := table.checkHeader(); err != nil {
		return nil, err
	}

	// Column-name line.
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing column header line")
	}
	cols := strings.Fields(scanner.Text())
	if len(cols) != len(expectedColumns) {
		return nil, fmt.Errorf("unexpected columns %v, want %v", cols, expectedColumns)
	}
	for i, c := range cols {
		if c != expectedColumns[i] {
			return nil, fmt.Errorf("unexpected columns %v, want %v", cols, expectedColumns)
		}
	}

	// Data rows: "2015/01/01 Thu 04:36 AM 2.1 64 L".
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := parseRow(line)
		if err != nil {
			return nil, err
		}
		table.rows = append(table.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading prediction file: %w", err)
	}
	if len(table.rows) == 0 {
		return nil, fmt.Errorf("no prediction rows found")
	}

	return table, nil
}

func (t *Table) checkHeader() error {
	if _, ok := t.Metadata["NOAA/NOS/CO-OPS"]; !ok {
		return fmt.Errorf("not a NOAA/NOS/CO-OPS file")
	}
	if pt := t.Metadata["Product Type"]; pt != "Annual Tide Prediction" {
		return fmt.Errorf("unexpected product type %q", pt)
	}
	if it := t.Metadata["Interval Type"]; it != "High/Low Tide Predictions" {
		return fmt.Errorf("unexpected interval type %q", it)
	}
	if tz := t.Metadata["Time Zone"]; !strings.Contains(tz, "LST") {
		return fmt.Errorf("unexpected time zone %q, want local standard time", tz)
	}
	if t.StationID() == "" {
		return fmt.Errorf("missing Stationid header")
	}
	return nil
}

func parseRow(line string) (tableRow, error) {
	fields := strings.Fields(line)
	if len(fields) != 7 {
		return tableRow{}, fmt.Errorf("malformed row %q: expected 7 fields, got %d", line, len(fields))
	}

	// Date, weekday, time, AM/PM, height ft, height cm, H/L.
	wall, err := time.Parse("2006/01/02 03:04 PM", fields[0]+" "+fields[2]+" "+fields[3])
	if err != nil {
		return tableRow{}, fmt.Errorf("malformed timestamp in row %q: %w", line, err)
	}

	height, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return tableRow{}, fmt.Errorf("malformed height in row %q: %w", line, err)
	}

	var kind domain.TideKind
	switch fields[6] {
	case "H":
		kind = domain.TideHigh
	case "L":
		kind = domain.TideLow
	default:
		return tableRow{}, fmt.Errorf("malformed high/low marker %q in row %q", fields[6], line)
	}

	return tableRow{wall: wall, height: height, kind: kind}, nil
}

// StationID returns the station identifier from the file header.
func (t *Table) StationID() string {
	return t.Metadata["Stationid"]
}

// Year returns the prediction year, taken from the first row.
func (t *Table) Year() int {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[0].wall.Year()
}

// Events converts the parsed rows into UTC tide events for the station's
// zone. The file carries LST/LDT wall clocks, so the zone's daylight-saving
// rules apply during conversion; a prediction landing exactly inside a
// transition hour would be ambiguous and is reported as malformed input
// rather than resolved by guessing.
func (t *Table) Events(loc *time.Location) ([]domain.TideEvent, error) {
	events := make([]domain.TideEvent, 0, len(t.rows))
	for _, row := range t.rows {
		utc, err := domain.ToUTC(row.wall, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: prediction at %s: %v",
				domain.ErrMalformedTideData, row.wall.Format("2006-01-02 15:04"), err)
		}
		events = append(events, domain.TideEvent{Time: utc, Height: row.height, Kind: row.kind})
	}
	if err := domain.ValidateTideEvents(events); err != nil {
		return nil, err
	}
	return events, nil
}

// ReferenceOffsets extracts subordinate-station correction metadata from the
// header, resolving the reference station's name through the store. Returns
// nil when the table is for a harmonic station.
func (t *Table) ReferenceOffsets(stations *StationStore) (*domain.ReferenceOffsets, error) {
	refID, ok := t.Metadata["ReferenceToStationId"]
	if !ok || refID == "" {
		return nil, nil
	}

	ref := &domain.ReferenceOffsets{StationID: refID}
	if stations != nil {
		if s, err := stations.Lookup(refID); err == nil {
			ref.StationName = s.Name
		}
	}

	var err error
	if v, ok := t.Metadata["TimeOffsetLow"]; ok {
		if ref.TimeOffsetLow, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("malformed TimeOffsetLow %q: %w", v, err)
		}
	}
	if v, ok := t.Metadata["TimeOffsetHigh"]; ok {
		if ref.TimeOffsetHigh, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("malformed TimeOffsetHigh %q: %w", v, err)
		}
	}
	// Height offsets are multiplicative factors, written like "*1.06".
	if v, ok := t.Metadata["HeightOffsetLow"]; ok {
		if ref.HeightFactorLow, err = strconv.ParseFloat(strings.Trim(v, "* "), 64); err != nil {
			return nil, fmt.Errorf("malformed HeightOffsetLow %q: %w", v, err)
		}
	}
	if v, ok := t.Metadata["HeightOffsetHigh"]; ok {
		if ref.HeightFactorHigh, err = strconv.ParseFloat(strings.Trim(v, "* "), 64); err != nil {
			return nil, fmt.Errorf("malformed HeightOffsetHigh %q: %w", v, err)
		}
	}
	return ref, nil
}
