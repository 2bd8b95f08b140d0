package timetable

// Path is an ordered sequence of edge ids through a Graph, owned by the
// Group that enumerated it. Immutable once created; strain/relieve treat
// the referenced Graph as the only mutable resource (SPEC_FULL.md §5).
type Path struct {
	Edges      []int
	Passengers uint64
	Duration   int // sum of edge durations, cached at enumeration time
}

// TravelCostOn sums the fixed search cost of every edge in the path
// against g. Search cost is a pure function of edge kind, not cached on
// Path, so this needs a graph rather than being a zero-arg method.
func (p Path) TravelCostOn(g *Graph) int {
	total := 0
	for _, id := range p.Edges {
		total += g.Edge(id).SearchCost()
	}
	return total
}

// Fits reports whether every edge in the path currently has enough
// remaining capacity for p.Passengers. The optimizers do not call it; they
// price capacity through EdgeUtilizationCost instead.
func (p Path) Fits(g *Graph) bool {
	for _, id := range p.Edges {
		if g.EdgeRemainingCapacity(id) < p.Passengers {
			return false
		}
	}
	return true
}

// Strain adds p.Passengers to the utilization of every Trip edge in the
// path. Must be paired with exactly one Relieve call per SPEC_FULL.md §5;
// the pairing discipline is enforced by callers (SelectionState), not by
// Path itself, since Path carries no mutation-tracking state of its own.
func (p Path) Strain(g *Graph) {
	for _, id := range p.Edges {
		g.EdgeUtilizationAdd(id, p.Passengers)
	}
}

// Relieve subtracts p.Passengers from the utilization of every Trip edge
// in the path — the exact inverse of Strain.
func (p Path) Relieve(g *Graph) {
	for _, id := range p.Edges {
		g.EdgeUtilizationSub(id, p.Passengers)
	}
}

// ArrivalTime returns the time a group following this path actually
// arrives. A path's last edge is almost always a MainArrivalRelation into
// a terminal sink that carries no time of its own, so the arrival moment
// is the time of that edge's source Arrival node, not its destination.
// Returns -1 for an empty path.
func (p Path) ArrivalTime(g *Graph) int {
	if len(p.Edges) == 0 {
		return -1
	}
	last := g.Edge(p.Edges[len(p.Edges)-1])
	if last.Kind == MainArrivalRelation {
		return g.Node(last.From).Time
	}
	return g.Node(last.To).Time
}
