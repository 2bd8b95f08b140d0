package optimize

import (
	"context"
	"math"
	"math/rand"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// AnnealingConfig configures SimulatedAnnealing and
// SimulatedAnnealingDetour. C is the temperature-schedule constant in
// T(t) = C/t, default 25000 per SPEC_FULL.md §4.5.
type AnnealingConfig struct {
	C    float64
	Seed int64
}

// temperature is T(t) = C/t, t starting at 1 so the schedule never
// divides by zero.
func temperature(c float64, t int) float64 { return c / float64(t) }

// SimulatedAnnealing runs the plain SA loop over RandomGroupNeighbor
// proposals: accept any improving move, accept a worsening move with
// probability exp(Δ/T), stop once T<1. Returns the best state ever seen
// (monotonicity property of SPEC_FULL.md §11) and its per-step CSV rows.
func SimulatedAnnealing(ctx context.Context, g *timetable.Graph, start *State, cfg AnnealingConfig) (*State, []StepRow) {
	c := cfg.C
	if c <= 0 {
		c = 25000
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	current := start
	currentCost := current.Cost(g)
	best := current.Clone()
	bestCost := currentCost

	rows := []StepRow{{Time: 0, Temperature: c, Cost: currentCost}}

	for t := 1; temperature(c, t) >= 1; t++ {
		select {
		case <-ctx.Done():
			return best, rows
		default:
		}

		move, ok := RandomGroupNeighbor(current, rng)
		if !ok {
			break
		}
		temp := temperature(c, t)
		nextCost := current.EvalNeighbor(g, move.Group, move.PathIndex)
		delta := float64(currentCost.Total() - nextCost.Total())

		accept := delta > 0
		if !accept {
			accept = rng.Float64() < math.Exp(delta/temp)
		}
		if accept {
			current.Apply(move.Group, move.PathIndex)
			currentCost = nextCost
			if currentCost.Total() < bestCost.Total() {
				best = current.Clone()
				bestCost = currentCost
			}
		}
		rows = append(rows, StepRow{Time: t, Temperature: temp, Cost: currentCost})
	}
	return best, rows
}
