package optimize

import (
	"context"
	"math/rand"

	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// RandomizedBestConfig configures RandomizedBest.
type RandomizedBestConfig struct {
	Iterations int
	Seed       int64
}

// RandomizedBest draws a random neighbor at each of Iterations steps and
// accepts it iff it strictly lowers cost, per SPEC_FULL.md §4.5. Returns
// the best state seen and its per-step CSV rows.
func RandomizedBest(ctx context.Context, g *timetable.Graph, start *State, cfg RandomizedBestConfig) (*State, []StepRow) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	current := start
	currentCost := current.Cost(g)
	best := current.Clone()
	bestCost := currentCost

	rows := []StepRow{{Time: 0, Cost: currentCost}}

	for t := 1; t <= cfg.Iterations; t++ {
		select {
		case <-ctx.Done():
			return best, rows
		default:
		}

		move, ok := RandomGroupNeighbor(current, rng)
		if !ok {
			break
		}
		nextCost := current.EvalNeighbor(g, move.Group, move.PathIndex)
		if nextCost.Total() < currentCost.Total() {
			current.Apply(move.Group, move.PathIndex)
			currentCost = nextCost
			if currentCost.Total() < bestCost.Total() {
				best = current.Clone()
				bestCost = currentCost
			}
		}
		rows = append(rows, StepRow{Time: t, Cost: currentCost})
	}
	return best, rows
}
