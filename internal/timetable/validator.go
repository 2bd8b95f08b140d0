package timetable

import "fmt"

// Validate walks every node and edge of g and returns the first violated
// invariant from SPEC_FULL.md §3, naming the offending node or edge. A
// nil return means g is structurally sound. Grounded on the original's
// validate_graph_integrity pass (see DESIGN.md); kept as a standalone,
// re-runnable pass rather than folded into Build so it stays independently
// testable against hand-built graphs.
func Validate(g *Graph) error {
	for id := 0; id < g.NodeCount(); id++ {
		n := g.Node(id)
		switch n.Kind {
		case Departure:
			if err := validateDeparture(g, id); err != nil {
				return err
			}
		case Arrival:
			if err := validateArrival(g, id); err != nil {
				return err
			}
		case Transfer:
			if err := validateTransfer(g, id); err != nil {
				return err
			}
		case MainArrival:
			if len(g.NeighborsOut(id)) != 0 {
				return fmt.Errorf("node %d: MainArrival at station %q has outgoing edges", id, n.StationID)
			}
		}
	}
	return nil
}

func validateDeparture(g *Graph, id int) error {
	tripCount := 0
	for _, a := range g.NeighborsOut(id) {
		if g.Edge(a.EdgeID).Kind != Trip {
			return fmt.Errorf("node %d: Departure has non-Trip outgoing edge kind %d", id, g.Edge(a.EdgeID).Kind)
		}
		tripCount++
		to := g.Node(a.NodeID)
		if to.Kind != Arrival || to.TripID != g.Node(id).TripID || to.Time < g.Node(id).Time {
			return fmt.Errorf("node %d: Trip edge %d does not reach a matching later Arrival", id, a.EdgeID)
		}
	}
	if tripCount != 1 {
		return fmt.Errorf("node %d: Departure has %d outgoing Trip edges, want exactly 1", id, tripCount)
	}
	return nil
}

func validateArrival(g *Graph, id int) error {
	arr := g.Node(id)
	mainArrivalCount, waitInTrainCount := 0, 0
	for _, a := range g.NeighborsOut(id) {
		e := g.Edge(a.EdgeID)
		switch e.Kind {
		case MainArrivalRelation:
			mainArrivalCount++
		case WaitInTrain:
			waitInTrainCount++
			to := g.Node(a.NodeID)
			if to.Kind != Departure || to.TripID != arr.TripID || to.StationID != arr.StationID {
				return fmt.Errorf("node %d: WaitInTrain edge %d does not match same trip/station", id, a.EdgeID)
			}
		case Alight, Walk:
			to := g.Node(a.NodeID)
			if to.Kind != Transfer || to.Time < arr.Time+e.Duration {
				return fmt.Errorf("node %d: %s edge %d does not reach a valid later Transfer", id, edgeKindName(e.Kind), a.EdgeID)
			}
		default:
			return fmt.Errorf("node %d: Arrival has unexpected outgoing edge kind %d", id, e.Kind)
		}
	}
	if mainArrivalCount != 1 {
		return fmt.Errorf("node %d: Arrival has %d outgoing MainArrivalRelation edges, want exactly 1", id, mainArrivalCount)
	}
	if waitInTrainCount > 1 {
		return fmt.Errorf("node %d: Arrival has %d outgoing WaitInTrain edges, want at most 1", id, waitInTrainCount)
	}
	return nil
}

func validateTransfer(g *Graph, id int) error {
	boardCount, waitCount := 0, 0
	for _, a := range g.NeighborsOut(id) {
		e := g.Edge(a.EdgeID)
		switch e.Kind {
		case Board:
			boardCount++
			to := g.Node(a.NodeID)
			if to.Kind != Departure || to.Time != g.Node(id).Time || to.StationID != g.Node(id).StationID {
				return fmt.Errorf("node %d: Board edge %d does not reach a same-time same-station Departure", id, a.EdgeID)
			}
		case WaitAtStation:
			waitCount++
			to := g.Node(a.NodeID)
			if to.Kind != Transfer || to.StationID != g.Node(id).StationID || to.Time < g.Node(id).Time {
				return fmt.Errorf("node %d: WaitAtStation edge %d does not reach a later Transfer at the same station", id, a.EdgeID)
			}
		default:
			return fmt.Errorf("node %d: Transfer has unexpected outgoing edge kind %d", id, e.Kind)
		}
	}
	if boardCount != 1 {
		return fmt.Errorf("node %d: Transfer has %d outgoing Board edges, want exactly 1", id, boardCount)
	}
	if waitCount > 1 {
		return fmt.Errorf("node %d: Transfer has %d outgoing WaitAtStation edges, want at most 1", id, waitCount)
	}
	return nil
}

func edgeKindName(k EdgeKind) string {
	switch k {
	case Trip:
		return "Trip"
	case WaitInTrain:
		return "WaitInTrain"
	case Board:
		return "Board"
	case Alight:
		return "Alight"
	case WaitAtStation:
		return "WaitAtStation"
	case Walk:
		return "Walk"
	case MainArrivalRelation:
		return "MainArrivalRelation"
	default:
		return "Unknown"
	}
}
