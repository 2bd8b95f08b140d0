package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeUtilizationCost(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{Kind: Departure})
	b := g.AddNode(Node{Kind: Arrival})
	edgeID := g.AddEdge(Edge{Kind: Trip, From: a, To: b, Duration: 10, CapacitySoft: 100, CapacityHard: 150})

	t.Run("below soft cap costs zero", func(t *testing.T) {
		g.EdgeUtilizationAdd(edgeID, 50)
		assert.Equal(t, uint64(0), g.EdgeUtilizationCost(edgeID))
		g.EdgeUtilizationSub(edgeID, 50)
	})

	t.Run("between soft and hard is quadratic in the overage", func(t *testing.T) {
		g.EdgeUtilizationAdd(edgeID, 120)
		assert.Equal(t, uint64(400), g.EdgeUtilizationCost(edgeID)) // (120-100)^2
		g.EdgeUtilizationSub(edgeID, 120)
	})

	t.Run("at or beyond hard cap is infinite", func(t *testing.T) {
		g.EdgeUtilizationAdd(edgeID, 150)
		assert.Equal(t, uint64(InfiniteCapacity), g.EdgeUtilizationCost(edgeID))
		g.EdgeUtilizationSub(edgeID, 150)
	})

	t.Run("non-Trip edges always cost zero", func(t *testing.T) {
		walkID := g.AddEdge(Edge{Kind: Walk, From: a, To: b, Duration: 5})
		g.EdgeUtilizationAdd(walkID, 1000) // no-op on non-Trip
		assert.Equal(t, uint64(0), g.EdgeUtilizationCost(walkID))
	})
}

func TestEdgeRemainingCapacity(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(Node{Kind: Departure})
	b := g.AddNode(Node{Kind: Arrival})
	edgeID := g.AddEdge(Edge{Kind: Trip, From: a, To: b, CapacitySoft: 10, CapacityHard: 20})

	assert.Equal(t, uint64(20), g.EdgeRemainingCapacity(edgeID))
	g.EdgeUtilizationAdd(edgeID, 15)
	assert.Equal(t, uint64(5), g.EdgeRemainingCapacity(edgeID))
	g.EdgeUtilizationAdd(edgeID, 10)
	assert.Equal(t, uint64(0), g.EdgeRemainingCapacity(edgeID))

	walkID := g.AddEdge(Edge{Kind: Walk, From: a, To: b})
	assert.Equal(t, uint64(InfiniteCapacity), g.EdgeRemainingCapacity(walkID))
}

func TestFindEarliestTransfer(t *testing.T) {
	g := NewGraph()
	t1 := g.AddNode(Node{Kind: Transfer, StationID: "S", Time: 100})
	t2 := g.AddNode(Node{Kind: Transfer, StationID: "S", Time: 200})
	g.registerTransfer("S", t1)
	g.registerTransfer("S", t2)
	g.sortStationTransfers("S")

	id, ok := g.FindEarliestTransfer("S", 150)
	assert.True(t, ok)
	assert.Equal(t, t2, id)

	id, ok = g.FindEarliestTransfer("S", 50)
	assert.True(t, ok)
	assert.Equal(t, t1, id)

	_, ok = g.FindEarliestTransfer("S", 500)
	assert.False(t, ok)

	_, ok = g.FindEarliestTransfer("unknown", 0)
	assert.False(t, ok)
}

func TestSearchCost(t *testing.T) {
	cases := []struct {
		kind EdgeKind
		want int
	}{
		{Trip, 2},
		{WaitInTrain, 1},
		{Board, 5},
		{Alight, 4},
		{WaitAtStation, 3},
		{Walk, 10},
		{MainArrivalRelation, 0},
	}
	for _, c := range cases {
		e := Edge{Kind: c.kind}
		assert.Equal(t, c.want, e.SearchCost())
	}
}
