// Package enumerate implements the per-group budgeted depth-first search
// over a timetable.Graph and its iterative-deepening driver.
package enumerate

import "github.com/eliaswendt/timetable-optimizer/internal/timetable"

// Group is a travel party to be routed: an origin/destination pair, a
// departure window, the passengers' originally planned arrival, a
// passenger count, and an optional trip the group currently occupies.
// Candidate paths are filled in by Enumerate.
type Group struct {
	ID             string
	OriginStation  string
	DestStation    string
	Departure      int
	PlannedArrival int
	Passengers     uint64
	InTrip         string // empty if the group starts at a station

	Paths []timetable.Path
}

// sourceNode resolves SPEC_FULL.md §4.3's source-node rule: a group with
// no in-trip starts from the earliest Transfer at its origin at or after
// its departure time; a group already aboard a trip starts from that
// trip's Arrival at its next disembarkation station at or after its
// departure time (Open Question 1, decided in DESIGN.md as "stay on the
// train").
func sourceNode(g *timetable.Graph, grp Group) (int, bool) {
	if grp.InTrip == "" {
		return g.FindEarliestTransfer(grp.OriginStation, grp.Departure)
	}
	return findTripArrivalAtOrAfter(g, grp.InTrip, grp.Departure)
}

// findTripArrivalAtOrAfter scans the graph's arena for the Arrival node
// of tripID with time >= t. Groups in transit are rare relative to the
// graph size, so a linear scan here trades a station-indexed trip lookup
// (which nothing else in the graph needs) for simplicity.
func findTripArrivalAtOrAfter(g *timetable.Graph, tripID string, t int) (int, bool) {
	best, found := -1, false
	for id := 0; id < g.NodeCount(); id++ {
		n := g.Node(id)
		if n.Kind != timetable.Arrival || n.TripID != tripID || n.Time < t {
			continue
		}
		if !found || n.Time < g.Node(best).Time {
			best, found = id, true
		}
	}
	return best, found
}
