package enumerate

import (
	"context"
	"sort"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// Budget configures the iterative-deepening driver: the expense budget is
// stepped linearly from Min to Max over Steps steps, and DurationCeiling
// bounds total elapsed time for every candidate regardless of budget.
type Budget struct {
	MinBudget       int
	MaxBudget       int
	Steps           int
	DurationCeiling int
}

// Enumerate runs the iterative-deepening driver for one group: it steps
// the expense budget from b.MinBudget to b.MaxBudget across b.Steps steps,
// running the budgeted DFS at each step, and returns the first non-empty
// candidate set, sorted by duration ascending (ties broken by edge count).
// Returns nil if no path exists within MaxBudget — failure is non-fatal
// per SPEC_FULL.md §9 kind 3.
func Enumerate(ctx context.Context, g *timetable.Graph, grp Group, b Budget) []timetable.Path {
	src, ok := sourceNode(g, grp)
	if !ok {
		return nil
	}
	sink, ok := g.Terminal(grp.DestStation)
	if !ok {
		return nil
	}

	steps := b.Steps
	if steps < 1 {
		steps = 1
	}
	step := (b.MaxBudget - b.MinBudget) / steps

	for i := 0; i <= steps; i++ {
		budget := b.MinBudget + i*step
		if i == steps || budget > b.MaxBudget {
			budget = b.MaxBudget
		}
		paths := dfs(ctx, g, src, sink, grp.Passengers, b.DurationCeiling, budget)
		if len(paths) > 0 {
			sort.Slice(paths, func(i, j int) bool {
				if paths[i].Duration != paths[j].Duration {
					return paths[i].Duration < paths[j].Duration
				}
				return len(paths[i].Edges) < len(paths[j].Edges)
			})
			return paths
		}
		if budget == b.MaxBudget {
			break
		}
	}
	return nil
}

// dfs performs one budgeted recursive depth-first search from src to
// sink, descending an edge only while duration, capacity, and expense
// budget all permit, per SPEC_FULL.md §4.3.
func dfs(ctx context.Context, g *timetable.Graph, src, sink int, passengers uint64, durationCeiling, budget int) []timetable.Path {
	var results []timetable.Path
	var stack []int

	var visit func(node int, remainingDuration, remainingBudget int)
	visit = func(node int, remainingDuration, remainingBudget int) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if node == sink {
			edges := make([]int, len(stack))
			copy(edges, stack)
			results = append(results, timetable.Path{
				Edges:      edges,
				Passengers: passengers,
				Duration:   durationCeiling - remainingDuration,
			})
			return
		}

		for _, a := range g.NeighborsOut(node) {
			edgeID, to := a.EdgeID, a.NodeID
			e := g.Edge(edgeID)
			if e.Duration > remainingDuration {
				continue
			}
			if g.EdgeRemainingCapacity(edgeID) < passengers {
				continue
			}
			cost := e.SearchCost()
			if cost > remainingBudget {
				continue
			}
			stack = append(stack, edgeID)
			visit(to, remainingDuration-e.Duration, remainingBudget-cost)
			stack = stack[:len(stack)-1]
		}
	}

	visit(src, durationCeiling, budget)
	return results
}
