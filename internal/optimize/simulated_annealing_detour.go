package optimize

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// DetourStepRow is one row of the detour polish phase's richer per-step
// record (time, temperature, total cost, edge cost, travel cost, delay
// cost), matching simulated_annealing_on_path.rs's CSV header exactly
// (DESIGN.md, SPEC_FULL.md §8.4).
type DetourStepRow struct {
	Time        int
	Temperature float64
	Cost        Cost
}

// RuntimeSample is one row of the detour phase's second CSV
// (runtime,time), recording how many optimizer steps occurred per unit
// of wall-clock time — a throughput diagnostic carried over from
// simulated_annealing_on_path.rs (SPEC_FULL.md §8.5).
type RuntimeSample struct {
	Runtime time.Duration
	Step    int
}

// SimulatedAnnealingDetour runs the SA loop with OvercrowdedEdgeDetour
// proposals instead of random group moves, and a softened acceptance
// probability exp(Δ/(50·T)), per SPEC_FULL.md §4.5. Intended as a polish
// phase applied after a primary SimulatedAnnealing run. now is a clock
// function rather than time.Now() directly so callers can supply
// deterministic timestamps in tests.
func SimulatedAnnealingDetour(ctx context.Context, g *timetable.Graph, start *State, cfg AnnealingConfig, now func() time.Time) (*State, []DetourStepRow, []RuntimeSample) {
	c := cfg.C
	if c <= 0 {
		c = 25000
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	current := start
	currentCost := current.Cost(g)
	best := current.Clone()
	bestCost := currentCost

	startTime := now()
	rows := []DetourStepRow{{Time: 0, Temperature: c, Cost: currentCost}}
	runtimes := []RuntimeSample{{Runtime: 0, Step: 0}}

	for t := 1; temperature(c, t) >= 1; t++ {
		select {
		case <-ctx.Done():
			return best, rows, runtimes
		default:
		}

		var move Move
		var ok bool
		current.WithStrained(g, func() {
			move, ok = OvercrowdedEdgeDetour(g, current, rng)
		})
		if !ok {
			move, ok = RandomGroupNeighbor(current, rng)
			if !ok {
				break
			}
		}
		temp := temperature(c, t)
		nextCost := current.EvalNeighbor(g, move.Group, move.PathIndex)
		delta := float64(currentCost.Total() - nextCost.Total())

		accept := delta > 0
		if !accept {
			accept = rng.Float64() < math.Exp(delta/(50*temp))
		}
		if accept {
			current.Apply(move.Group, move.PathIndex)
			currentCost = nextCost
			if currentCost.Total() < bestCost.Total() {
				best = current.Clone()
				bestCost = currentCost
			}
		}
		rows = append(rows, DetourStepRow{Time: t, Temperature: temp, Cost: currentCost})
		runtimes = append(runtimes, RuntimeSample{Runtime: now().Sub(startTime), Step: t})
	}
	return best, rows, runtimes
}
