package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadStations(t *testing.T) {
	path := writeTempCSV(t, "stations.csv", "id,name,transfer\nA,Alpha,2\nB,Beta,3\n")

	got, err := LoadStations(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ID)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 2, got[0].TransferTime)
}

func TestLoadStationsMissingColumn(t *testing.T) {
	path := writeTempCSV(t, "stations.csv", "id,name\nA,Alpha\n")

	_, err := LoadStations(path)
	assert.Error(t, err)
}

func TestLoadStationsMalformedInt(t *testing.T) {
	path := writeTempCSV(t, "stations.csv", "id,name,transfer\nA,Alpha,not-a-number\n")

	_, err := LoadStations(path)
	assert.Error(t, err)
}

func TestLoadTrips(t *testing.T) {
	path := writeTempCSV(t, "trips.csv", "id,from_station,departure,to_station,arrival,capacity\nT1,A,0,B,10,50\n")

	got, err := LoadTrips(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].ID)
	assert.Equal(t, uint64(50), got[0].Capacity)
}

func TestLoadTripsNegativeCapacityRejected(t *testing.T) {
	path := writeTempCSV(t, "trips.csv", "id,from_station,departure,to_station,arrival,capacity\nT1,A,0,B,10,-1\n")

	_, err := LoadTrips(path)
	assert.Error(t, err)
}

func TestLoadFootpaths(t *testing.T) {
	path := writeTempCSV(t, "footpaths.csv", "from_station,to_station,duration\nA,B,5\n")

	got, err := LoadFootpaths(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Duration)
}

func TestLoadGroups(t *testing.T) {
	path := writeTempCSV(t, "groups.csv", "id,start,destination,departure,arrival,passengers,in_trip\ng1,A,B,0,30,10,\ng2,A,B,5,30,2,T1\n")

	got, err := LoadGroups(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, uint64(10), got[0].Passengers)
	assert.Equal(t, "", got[0].InTrip)
	assert.Equal(t, "T1", got[1].InTrip)
}

func TestLoadGroupsNegativePassengersRejected(t *testing.T) {
	path := writeTempCSV(t, "groups.csv", "id,start,destination,departure,arrival,passengers,in_trip\ng1,A,B,0,30,-5,\n")

	_, err := LoadGroups(path)
	assert.Error(t, err)
}

func TestLoadStationsMissingFile(t *testing.T) {
	_, err := LoadStations(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
