package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// buildTwoPathGraph returns a graph and one group with two candidates: a
// two-Trip-edge path and a cheaper single-Trip-edge alternate path, for
// exercising cost and strain/relieve symmetry.
func buildTwoPathGraph(t *testing.T) (*timetable.Graph, []enumerate.Group) {
	t.Helper()
	g := timetable.NewGraph()
	dep := g.AddNode(timetable.Node{Kind: timetable.Departure})
	mid := g.AddNode(timetable.Node{Kind: timetable.Arrival})
	arr := g.AddNode(timetable.Node{Kind: timetable.Arrival})
	tripEdge := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: dep, To: mid, Duration: 10, CapacitySoft: 10, CapacityHard: 20})
	secondLeg := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: mid, To: arr, Duration: 10, CapacitySoft: 10, CapacityHard: 20})

	altDep := g.AddNode(timetable.Node{Kind: timetable.Departure})
	altArr := g.AddNode(timetable.Node{Kind: timetable.Arrival})
	altEdge := g.AddEdge(timetable.Edge{Kind: timetable.Trip, From: altDep, To: altArr, Duration: 5, CapacitySoft: 10, CapacityHard: 20})

	groups := []enumerate.Group{
		{
			ID: "g1", Passengers: 5, PlannedArrival: 0,
			Paths: []timetable.Path{
				{Edges: []int{tripEdge, secondLeg}, Passengers: 5, Duration: 20},
				{Edges: []int{altEdge}, Passengers: 5, Duration: 5},
			},
		},
	}
	return g, groups
}

func TestStrainRelieveSymmetry(t *testing.T) {
	g, groups := buildTwoPathGraph(t)
	s := NewState(groups)

	before := g.UtilizationSnapshot()
	s.strainAll(g)
	s.relieveAll(g)
	after := g.UtilizationSnapshot()

	assert.Equal(t, before, after)
}

func TestStrainIncreasesUtilizationByPassengerCount(t *testing.T) {
	g, groups := buildTwoPathGraph(t)
	s := NewState(groups)

	tripEdge := groups[0].Paths[0].Edges[0]
	before := g.EdgeUtilization(tripEdge)
	s.strainAll(g)
	assert.Equal(t, before+5, g.EdgeUtilization(tripEdge))
	s.relieveAll(g)
}

func TestEvalNeighborLeavesGraphUnchanged(t *testing.T) {
	g, groups := buildTwoPathGraph(t)
	s := NewState(groups)

	before := g.UtilizationSnapshot()
	_ = s.EvalNeighbor(g, 0, 1)
	after := g.UtilizationSnapshot()

	assert.Equal(t, before, after)
	assert.Equal(t, 0, s.ChosenIndex[0], "EvalNeighbor must not mutate the state's own choice")
}

func TestEvalNeighborMatchesApply(t *testing.T) {
	g, groups := buildTwoPathGraph(t)
	s := NewState(groups)

	evalCost := s.EvalNeighbor(g, 0, 1)

	s.Apply(0, 1)
	appliedCost := s.Cost(g)

	assert.Equal(t, evalCost, appliedCost)
}

func TestCostPrefersCheaperTravelPath(t *testing.T) {
	g, groups := buildTwoPathGraph(t)
	s := NewState(groups)

	costAtZero := s.Cost(g)
	s.Apply(0, 1)
	costAtOne := s.Cost(g)

	require.NotEqual(t, costAtZero.Travel, costAtOne.Travel)
	assert.Less(t, costAtOne.Travel, costAtZero.Travel) // alt path has fewer, cheaper edges
}

func TestCloneIsIndependent(t *testing.T) {
	_, groups := buildTwoPathGraph(t)
	s := NewState(groups)
	clone := s.Clone()

	clone.ChosenIndex[0] = 1
	assert.Equal(t, 0, s.ChosenIndex[0])
	assert.Equal(t, 1, clone.ChosenIndex[0])
}
