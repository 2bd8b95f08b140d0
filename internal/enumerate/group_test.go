package enumerate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

func TestSourceNodeStationOrigin(t *testing.T) {
	g := buildLinearGraph(t)
	grp := Group{OriginStation: "A", Departure: 0}

	id, ok := sourceNode(g, grp)
	require.True(t, ok)
	assert.Equal(t, timetable.Transfer, g.Node(id).Kind)
	assert.Equal(t, "A", g.Node(id).StationID)
}

func TestSourceNodeInTripStaysOnTrain(t *testing.T) {
	g := buildLinearGraph(t)
	grp := Group{InTrip: "T1", Departure: 5}

	id, ok := sourceNode(g, grp)
	require.True(t, ok)
	assert.Equal(t, timetable.Arrival, g.Node(id).Kind)
	assert.Equal(t, "T1", g.Node(id).TripID)
	assert.GreaterOrEqual(t, g.Node(id).Time, grp.Departure)
}

func TestSourceNodeUnknownStationFails(t *testing.T) {
	g := buildLinearGraph(t)
	grp := Group{OriginStation: "nowhere", Departure: 0}

	_, ok := sourceNode(g, grp)
	assert.False(t, ok)
}
