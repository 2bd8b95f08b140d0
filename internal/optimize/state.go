// Package optimize implements the global selection optimizer: a
// SelectionState over a shared group list, its strain/relieve-disciplined
// cost model, neighbor generators, and the four meta-heuristic optimizer
// loops of SPEC_FULL.md §4.4/§4.5.
package optimize

import (
	"math/rand"
	"sync"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// Cost decomposes a SelectionState's total cost into its three additive
// components, per SPEC_FULL.md §4.4.
type Cost struct {
	StrainedEdges int64
	Travel        int64
	Delay         int64
}

// Total sums the three components.
func (c Cost) Total() int64 { return c.StrainedEdges + c.Travel + c.Delay }

// State is one assignment of a chosen candidate-path index to every
// group. It holds no paths itself — it indexes into the shared Groups
// slice — matching SPEC_FULL.md §3's ownership rule that SelectionStates
// do not own paths.
type State struct {
	Groups      []enumerate.Group
	ChosenIndex []int // per group; -1 if the group has no candidate paths
}

// graphLock serializes every strain/relieve/measure critical section
// across the whole process, per SPEC_FULL.md §5: the graph's utilization
// array is the one shared mutable resource, and strain/relieve are
// globally non-reentrant. Held only for the duration of one cost
// computation, never across an entire optimizer iteration or restart.
var graphLock sync.Mutex

// NewState builds an initial assignment choosing index 0 (the shortest
// enumerated candidate, since Enumerate sorts by duration ascending) for
// every group that has at least one candidate, and -1 for groups with
// none.
func NewState(groups []enumerate.Group) *State {
	idx := make([]int, len(groups))
	for i, g := range groups {
		if len(g.Paths) == 0 {
			idx[i] = -1
		} else {
			idx[i] = 0
		}
	}
	return &State{Groups: groups, ChosenIndex: idx}
}

// RandomState builds an initial assignment choosing a uniformly random
// candidate index per group, for optimizers that want a randomized start
// (randomized-best, randomized hill-climb restarts).
func RandomState(groups []enumerate.Group, rng *rand.Rand) *State {
	idx := make([]int, len(groups))
	for i, g := range groups {
		if len(g.Paths) == 0 {
			idx[i] = -1
		} else {
			idx[i] = rng.Intn(len(g.Paths))
		}
	}
	return &State{Groups: groups, ChosenIndex: idx}
}

// Clone returns an independent copy of s (ChosenIndex copied; Groups
// slice shared, since it is never mutated by the optimizer).
func (s *State) Clone() *State {
	idx := make([]int, len(s.ChosenIndex))
	copy(idx, s.ChosenIndex)
	return &State{Groups: s.Groups, ChosenIndex: idx}
}

// chosenPath returns the Path a group currently has selected, and
// whether it has one at all.
func (s *State) chosenPath(i int) (timetable.Path, bool) {
	if s.ChosenIndex[i] < 0 {
		return timetable.Path{}, false
	}
	return s.Groups[i].Paths[s.ChosenIndex[i]], true
}

// strainAll strains every chosen path into g. Caller must hold graphLock
// and call relieveAll exactly once before releasing it.
func (s *State) strainAll(g *timetable.Graph) {
	for i := range s.Groups {
		if p, ok := s.chosenPath(i); ok {
			p.Strain(g)
		}
	}
}

// relieveAll is strainAll's exact inverse.
func (s *State) relieveAll(g *timetable.Graph) {
	for i := range s.Groups {
		if p, ok := s.chosenPath(i); ok {
			p.Relieve(g)
		}
	}
}

// Cost computes s's cost against g. Strain, measure, relieve is one
// indivisible operation from the caller's viewpoint (SPEC_FULL.md §5):
// no other goroutine observes g's utilization mid-computation.
func (s *State) Cost(g *timetable.Graph) Cost {
	graphLock.Lock()
	defer graphLock.Unlock()

	s.strainAll(g)
	c := s.measureStrained(g)
	s.relieveAll(g)
	return c
}

// measureStrained reads cost components assuming s's paths are currently
// strained into g. Split out from Cost so neighbor evaluation can strain
// once and measure several candidates without re-straining the baseline
// every time (see EvalNeighbor).
func (s *State) measureStrained(g *timetable.Graph) Cost {
	var c Cost

	seen := make(map[int]bool)
	for i := range s.Groups {
		p, ok := s.chosenPath(i)
		if !ok {
			continue
		}
		for _, edgeID := range p.Edges {
			if g.Edge(edgeID).Kind != timetable.Trip {
				continue
			}
			if seen[edgeID] {
				continue
			}
			seen[edgeID] = true
			uc := g.EdgeUtilizationCost(edgeID)
			if uc == timetable.InfiniteCapacity {
				c.StrainedEdges = 1 << 62 // saturate rather than overflow int64
			} else if c.StrainedEdges < 1<<62 {
				c.StrainedEdges += int64(uc)
			}
		}
		c.Travel += int64(p.TravelCostOn(g))

		grp := s.Groups[i]
		delay := p.ArrivalTime(g) - grp.PlannedArrival
		if delay > 0 {
			c.Delay += int64(delay)
		}
	}
	return c
}

// EvalNeighbor computes the cost of s with group gi's choice temporarily
// set to candidate index pi, without disturbing s's own chosen path
// afterward. Implements SPEC_FULL.md §4.4's efficient recomputation
// recipe: pre-strain the baseline once, then for each candidate relieve
// the outgoing choice, strain the candidate, measure, relieve the
// candidate, and re-strain the original — net graph state unchanged on
// return.
func (s *State) EvalNeighbor(g *timetable.Graph, gi, pi int) Cost {
	graphLock.Lock()
	defer graphLock.Unlock()

	s.strainAll(g)

	orig, hadOrig := s.chosenPath(gi)
	if hadOrig {
		orig.Relieve(g)
	}

	cand := s.Groups[gi].Paths[pi]
	cand.Strain(g)

	restoreIdx := s.ChosenIndex[gi]
	s.ChosenIndex[gi] = pi
	c := s.measureStrained(g)
	s.ChosenIndex[gi] = restoreIdx

	cand.Relieve(g)
	if hadOrig {
		orig.Strain(g)
	}

	s.relieveAll(g)
	return c
}

// Apply permanently sets group gi's chosen candidate to pi.
func (s *State) Apply(gi, pi int) { s.ChosenIndex[gi] = pi }

// WithStrained strains s's chosen paths onto g, runs fn against the live
// utilization, then relieves them again — an indivisible critical section
// for callers that need to observe g's utilization outside of Cost's or
// EvalNeighbor's own strain/measure/relieve cycle (e.g. a move generator
// that picks among currently overcrowded edges).
func (s *State) WithStrained(g *timetable.Graph, fn func()) {
	graphLock.Lock()
	defer graphLock.Unlock()

	s.strainAll(g)
	fn()
	s.relieveAll(g)
}
