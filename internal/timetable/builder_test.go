package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSingleTrip(t *testing.T) {
	stations := []StationRecord{
		{ID: "A", Name: "Alpha", TransferTime: 2},
		{ID: "B", Name: "Beta", TransferTime: 2},
	}
	trips := []TripRecord{
		{ID: "T1", FromStation: "A", Departure: 100, ToStation: "B", Arrival: 130, Capacity: 40},
	}

	g, stats, err := NewBuilder().Build(stations, trips, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ImpossibleFootpaths)
	require.NoError(t, Validate(g))

	terminalA, ok := g.Terminal("A")
	require.True(t, ok)
	assert.Equal(t, MainArrival, g.Node(terminalA).Kind)

	transferA, ok := g.FindEarliestTransfer("A", 0)
	require.True(t, ok)
	neighbors := g.NeighborsOut(transferA)
	require.Len(t, neighbors, 1)
	assert.Equal(t, Board, g.Edge(neighbors[0].EdgeID).Kind)
}

func TestBuildThroughTripWaitInTrain(t *testing.T) {
	stations := []StationRecord{
		{ID: "A", Name: "Alpha", TransferTime: 0},
		{ID: "B", Name: "Beta", TransferTime: 0},
		{ID: "C", Name: "Gamma", TransferTime: 0},
	}
	trips := []TripRecord{
		{ID: "T1", FromStation: "A", Departure: 0, ToStation: "B", Arrival: 10, Capacity: 20},
		{ID: "T1", FromStation: "B", Departure: 12, ToStation: "C", Arrival: 20, Capacity: 20},
	}

	g, _, err := NewBuilder().Build(stations, trips, nil)
	require.NoError(t, err)
	require.NoError(t, Validate(g))

	var waitInTrainCount int
	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Kind == WaitInTrain {
			waitInTrainCount++
			assert.Equal(t, 2, g.Edge(i).Duration) // 12 - 10
		}
	}
	assert.Equal(t, 1, waitInTrainCount)
}

func TestBuildSameTimeDeparturesGetSeparateTransfers(t *testing.T) {
	stations := []StationRecord{
		{ID: "A", Name: "Alpha"},
		{ID: "B", Name: "Beta"},
		{ID: "C", Name: "Gamma"},
	}
	trips := []TripRecord{
		{ID: "T1", FromStation: "A", Departure: 100, ToStation: "B", Arrival: 130, Capacity: 40},
		{ID: "T2", FromStation: "A", Departure: 100, ToStation: "C", Arrival: 140, Capacity: 40},
	}

	g, _, err := NewBuilder().Build(stations, trips, nil)
	require.NoError(t, err)
	require.NoError(t, Validate(g))

	var transferCount, boardCount int
	for i := 0; i < g.NodeCount(); i++ {
		if g.Node(i).Kind == Transfer && g.Node(i).StationID == "A" {
			transferCount++
		}
	}
	for i := 0; i < g.EdgeCount(); i++ {
		if g.Edge(i).Kind == Board {
			boardCount++
		}
	}
	assert.Equal(t, 2, transferCount, "each same-time departure gets its own Transfer node")
	assert.Equal(t, 2, boardCount)
}

func TestBuildUnknownStationIsFatal(t *testing.T) {
	stations := []StationRecord{{ID: "A", Name: "Alpha"}}
	trips := []TripRecord{{ID: "T1", FromStation: "A", ToStation: "missing", Departure: 0, Arrival: 10, Capacity: 10}}

	_, _, err := NewBuilder().Build(stations, trips, nil)
	assert.Error(t, err)
}

func TestBuildImpossibleFootpathIsNonFatal(t *testing.T) {
	stations := []StationRecord{
		{ID: "A", Name: "Alpha"},
		{ID: "B", Name: "Beta"},
	}
	trips := []TripRecord{
		{ID: "T1", FromStation: "A", Departure: 0, ToStation: "B", Arrival: 10, Capacity: 10},
	}
	footpaths := []FootpathRecord{
		{FromStation: "B", ToStation: "A", Duration: 100000}, // no transfer exists that late
	}

	g, stats, err := NewBuilder().Build(stations, trips, footpaths)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ImpossibleFootpaths)
	require.NoError(t, Validate(g))
}
