// Package noaa ingests NOAA annual tide prediction tables and the station
// metadata CSV that accompanies them, normalizing both into domain records.
package noaa

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/saltline/tidecal/internal/domain"
)

// StationStore provides station metadata lookups from a station_info.csv
// file with columns:
//
//	StationID,StationName,State,Latitude,Longitude,StationType,Timezone
type StationStore struct {
	byID map[string]domain.Station
}

var stationHeaders = []string{"StationID", "StationName", "State", "Latitude", "Longitude", "StationType", "Timezone"}

// LoadStations reads and indexes a station info CSV file.
func LoadStations(path string) (*StationStore, error) {
	//nolint:gosec // G304: path comes from configuration.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open station info file: %w", err)
	}
	defer func() { _ = file.Close() }()

	store, err := ReadStations(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// ReadStations parses station info CSV content.
func ReadStations(r io.Reader) (*StationStore, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(stationHeaders) {
		return nil, fmt.Errorf("invalid CSV header: expected %v, got %v", stationHeaders, header)
	}
	for i, h := range header {
		if h != stationHeaders[i] {
			return nil, fmt.Errorf("invalid CSV header: expected column %d to be %s, got %s", i, stationHeaders[i], h)
		}
	}

	store := &StationStore{byID: make(map[string]domain.Station)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		if len(record) != len(stationHeaders) {
			return nil, fmt.Errorf("invalid CSV record: expected %d columns, got %d", len(stationHeaders), len(record))
		}

		id := strings.TrimSpace(record[0])
		lat, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude for station %s: %w", id, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude for station %s: %w", id, err)
		}

		stype := domain.StationType(strings.ToLower(strings.TrimSpace(record[5])))
		if stype != domain.StationHarmonic && stype != domain.StationSubordinate {
			return nil, fmt.Errorf("invalid station type %q for station %s", record[5], id)
		}

		store.byID[id] = domain.Station{
			ID:        id,
			Name:      strings.TrimSpace(record[1]),
			State:     strings.TrimSpace(record[2]),
			Type:      stype,
			Latitude:  lat,
			Longitude: lon,
			Timezone:  strings.TrimSpace(record[6]),
		}
	}

	if len(store.byID) == 0 {
		return nil, fmt.Errorf("no stations found in CSV")
	}
	return store, nil
}

// Lookup returns the metadata for a station ID.
func (s *StationStore) Lookup(id string) (domain.Station, error) {
	station, ok := s.byID[id]
	if !ok {
		return domain.Station{}, fmt.Errorf("unknown station ID %q", id)
	}
	return station, nil
}

// Len returns the number of indexed stations.
func (s *StationStore) Len() int {
	return len(s.byID)
}
