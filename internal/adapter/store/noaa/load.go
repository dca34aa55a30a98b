package noaa

import (
	"fmt"

	"github.com/saltline/tidecal/internal/domain"
)

// LoadRun resolves everything a generation run needs from a prediction file
// and the station metadata CSV: the station record (with subordinate
// reference offsets when present), the UTC event sequence, and the
// prediction year.
func LoadRun(tablePath, stationInfoPath string) (domain.Station, []domain.TideEvent, int, error) {
	table, err := LoadTable(tablePath)
	if err != nil {
		return domain.Station{}, nil, 0, err
	}

	stations, err := LoadStations(stationInfoPath)
	if err != nil {
		return domain.Station{}, nil, 0, err
	}

	station, err := stations.Lookup(table.StationID())
	if err != nil {
		return domain.Station{}, nil, 0, fmt.Errorf("%s: %w", tablePath, err)
	}

	if station.Type == domain.StationSubordinate {
		ref, err := table.ReferenceOffsets(stations)
		if err != nil {
			return domain.Station{}, nil, 0, err
		}
		station.Reference = ref
	}

	loc, err := station.Location()
	if err != nil {
		return domain.Station{}, nil, 0, err
	}

	events, err := table.Events(loc)
	if err != nil {
		return domain.Station{}, nil, 0, err
	}

	return station, events, table.Year(), nil
}
