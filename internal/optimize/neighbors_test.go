package optimize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

func threeCandidateState() *State {
	groups := []enumerate.Group{
		{ID: "g1", Paths: []timetable.Path{{Duration: 1}, {Duration: 2}, {Duration: 3}}},
		{ID: "g2", Paths: []timetable.Path{{Duration: 1}}},
	}
	return NewState(groups)
}

func TestAllDirectNeighborsStaysInRange(t *testing.T) {
	s := threeCandidateState()
	moves := AllDirectNeighbors(s)

	for _, m := range moves {
		assert.True(t, m.PathIndex >= 0 && m.PathIndex < len(s.Groups[m.Group].Paths))
	}
	// g1 at index 0 only has +1 available; g2 has a single candidate and no moves.
	require.Len(t, moves, 1)
	assert.Equal(t, Move{Group: 0, PathIndex: 1}, moves[0])
}

func TestAllGroupNeighborsExcludesCurrent(t *testing.T) {
	s := threeCandidateState()
	moves := AllGroupNeighbors(s)

	for _, m := range moves {
		assert.NotEqual(t, s.ChosenIndex[m.Group], m.PathIndex)
	}
	// g1 offers 2 alternatives (indices 1,2); g2 offers none.
	assert.Len(t, moves, 2)
}

func TestRandomGroupNeighborSkipsSingleCandidateGroups(t *testing.T) {
	s := threeCandidateState()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		move, ok := RandomGroupNeighbor(s, rng)
		require.True(t, ok)
		assert.Equal(t, 0, move.Group, "only g1 has more than one candidate")
		assert.NotEqual(t, s.ChosenIndex[0], move.PathIndex)
	}
}

func TestRandomGroupNeighborNoCandidatesReturnsFalse(t *testing.T) {
	groups := []enumerate.Group{{ID: "g1", Paths: []timetable.Path{{Duration: 1}}}}
	s := NewState(groups)
	rng := rand.New(rand.NewSource(1))

	_, ok := RandomGroupNeighbor(s, rng)
	assert.False(t, ok)
}

// buildDetourGraph returns a graph with one overcrowded Trip edge
// (utilization strictly above its soft cap once g1's path is strained)
// used by g1's chosen single-edge path, and an alternative two-edge path
// branching from the same Departure that avoids it and has more edges
// remaining from the splice point.
func buildDetourGraph(t *testing.T) (*timetable.Graph, *State) {
	t.Helper()
	g := timetable.NewGraph()

	dep := g.AddNode(timetable.Node{Kind: timetable.Departure})
	arr := g.AddNode(timetable.Node{Kind: timetable.Arrival})
	mid := g.AddNode(timetable.Node{Kind: timetable.Arrival})
	arr2 := g.AddNode(timetable.Node{Kind: timetable.Arrival})

	overcrowded := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: dep, To: arr, Duration: 10, CapacitySoft: 1, CapacityHard: 10})
	altLeg1 := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: dep, To: mid, Duration: 5, CapacitySoft: 10, CapacityHard: 10})
	altLeg2 := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: mid, To: arr2, Duration: 5, CapacitySoft: 10, CapacityHard: 10})

	groups := []enumerate.Group{
		{
			ID: "g1", Passengers: 5,
			Paths: []timetable.Path{
				{Edges: []int{overcrowded}, Passengers: 5, Duration: 10},
				{Edges: []int{altLeg1, altLeg2}, Passengers: 5, Duration: 10},
			},
		},
	}
	s := NewState(groups)
	return g, s
}

func TestOvercrowdedEdgeDetourFindsNothingWhenGraphUnstrained(t *testing.T) {
	g, s := buildDetourGraph(t)
	rng := rand.New(rand.NewSource(1))

	_, ok := OvercrowdedEdgeDetour(g, s, rng)
	assert.False(t, ok, "without strain, utilization is at baseline and no edge reads as overcrowded")
}

func TestOvercrowdedEdgeDetourFindsDetourWhenStrained(t *testing.T) {
	g, s := buildDetourGraph(t)
	rng := rand.New(rand.NewSource(1))

	var move Move
	var ok bool
	s.WithStrained(g, func() {
		move, ok = OvercrowdedEdgeDetour(g, s, rng)
	})

	require.True(t, ok)
	assert.Equal(t, 0, move.Group)
	assert.Equal(t, 1, move.PathIndex)
}

func TestWithStrainedLeavesGraphUnchanged(t *testing.T) {
	g, s := buildDetourGraph(t)

	before := g.UtilizationSnapshot()
	s.WithStrained(g, func() {})
	assert.Equal(t, before, g.UtilizationSnapshot())
}
