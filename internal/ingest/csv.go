// Package ingest parses the four flat CSV input tables (stations, trips,
// footpaths, groups) into the record types timetable.Builder and
// enumerate.Group consume. Grounded on the host project's
// internal/gtfs/parser.go: encoding/csv with TrimLeadingSpace, a
// header-to-column-index map built once per file.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// makeColumnMap builds a header-name -> column-index map from a CSV
// header row, the same helper shape as the host's GTFS parser.
func makeColumnMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, name := range header {
		m[name] = i
	}
	return m
}

func column(colMap map[string]int, row []string, name, file string, line int) (string, error) {
	idx, ok := colMap[name]
	if !ok {
		return "", fmt.Errorf("%s: missing column %q", file, name)
	}
	if idx >= len(row) {
		return "", fmt.Errorf("%s:%d: row too short for column %q", file, line, name)
	}
	return row[idx], nil
}

func intColumn(colMap map[string]int, row []string, name, file string, line int) (int, error) {
	s, err := column(colMap, row, name, file, line)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s:%d: column %q is not an integer: %q", file, line, name, s)
	}
	return n, nil
}

func newReader(path string) (*csv.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	return r, f, nil
}

// LoadStations parses stations.csv (id, name, transfer).
func LoadStations(path string) ([]timetable.StationRecord, error) {
	r, closer, err := newReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	colMap := makeColumnMap(header)

	var out []timetable.StationRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		id, err := column(colMap, row, "id", path, line)
		if err != nil {
			return nil, err
		}
		name, err := column(colMap, row, "name", path, line)
		if err != nil {
			return nil, err
		}
		transfer, err := intColumn(colMap, row, "transfer", path, line)
		if err != nil {
			return nil, err
		}
		out = append(out, timetable.StationRecord{ID: id, Name: name, TransferTime: transfer})
	}
	return out, nil
}

// LoadTrips parses trips.csv (id, from_station, departure, to_station,
// arrival, capacity).
func LoadTrips(path string) ([]timetable.TripRecord, error) {
	r, closer, err := newReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	colMap := makeColumnMap(header)

	var out []timetable.TripRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		id, err := column(colMap, row, "id", path, line)
		if err != nil {
			return nil, err
		}
		from, err := column(colMap, row, "from_station", path, line)
		if err != nil {
			return nil, err
		}
		dep, err := intColumn(colMap, row, "departure", path, line)
		if err != nil {
			return nil, err
		}
		to, err := column(colMap, row, "to_station", path, line)
		if err != nil {
			return nil, err
		}
		arr, err := intColumn(colMap, row, "arrival", path, line)
		if err != nil {
			return nil, err
		}
		cap, err := intColumn(colMap, row, "capacity", path, line)
		if err != nil {
			return nil, err
		}
		if cap < 0 {
			return nil, fmt.Errorf("%s:%d: negative capacity %d", path, line, cap)
		}
		out = append(out, timetable.TripRecord{
			ID: id, FromStation: from, Departure: dep, ToStation: to, Arrival: arr, Capacity: uint64(cap),
		})
	}
	return out, nil
}

// LoadFootpaths parses footpaths.csv (from_station, to_station, duration).
func LoadFootpaths(path string) ([]timetable.FootpathRecord, error) {
	r, closer, err := newReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	colMap := makeColumnMap(header)

	var out []timetable.FootpathRecord
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		from, err := column(colMap, row, "from_station", path, line)
		if err != nil {
			return nil, err
		}
		to, err := column(colMap, row, "to_station", path, line)
		if err != nil {
			return nil, err
		}
		dur, err := intColumn(colMap, row, "duration", path, line)
		if err != nil {
			return nil, err
		}
		out = append(out, timetable.FootpathRecord{FromStation: from, ToStation: to, Duration: dur})
	}
	return out, nil
}

// LoadGroups parses groups.csv (id, start, destination, departure,
// arrival, passengers, in_trip). in_trip may be empty.
func LoadGroups(path string) ([]enumerate.Group, error) {
	r, closer, err := newReader(path)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	colMap := makeColumnMap(header)

	var out []enumerate.Group
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		id, err := column(colMap, row, "id", path, line)
		if err != nil {
			return nil, err
		}
		start, err := column(colMap, row, "start", path, line)
		if err != nil {
			return nil, err
		}
		dest, err := column(colMap, row, "destination", path, line)
		if err != nil {
			return nil, err
		}
		dep, err := intColumn(colMap, row, "departure", path, line)
		if err != nil {
			return nil, err
		}
		arr, err := intColumn(colMap, row, "arrival", path, line)
		if err != nil {
			return nil, err
		}
		passengers, err := intColumn(colMap, row, "passengers", path, line)
		if err != nil {
			return nil, err
		}
		if passengers < 0 {
			return nil, fmt.Errorf("%s:%d: negative passenger count %d", path, line, passengers)
		}
		inTrip, err := column(colMap, row, "in_trip", path, line)
		if err != nil {
			return nil, err
		}
		out = append(out, enumerate.Group{
			ID: id, OriginStation: start, DestStation: dest,
			Departure: dep, PlannedArrival: arr,
			Passengers: uint64(passengers), InTrip: inTrip,
		})
	}
	return out, nil
}
