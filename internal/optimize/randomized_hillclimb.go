package optimize

import (
	"context"
	"math/rand"
	"sync"

	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// HillClimbConfig configures RandomizedHillClimb.
type HillClimbConfig struct {
	Restarts   int
	Iterations int
	Seed       int64
}

// RandomizedHillClimb runs cfg.Restarts independent restarts, each
// climbing toward a local optimum over AllDirectNeighbors, and returns
// the best state found across all restarts. Restarts run concurrently
// (SPEC_FULL.md §5: each restart is a closed transaction over its own
// State; only the brief strain/measure/relieve critical section inside
// State.EvalNeighbor is shared, via graphLock), grounded on the host's
// goroutine-fan-out-plus-WaitGroup pattern for computing independent
// results in parallel.
func RandomizedHillClimb(ctx context.Context, g *timetable.Graph, groups []enumerate.Group, cfg HillClimbConfig) (*State, []StepRow) {
	type result struct {
		state *State
		cost  Cost
		rows  []StepRow
	}

	results := make([]result, cfg.Restarts)
	var wg sync.WaitGroup
	for r := 0; r < cfg.Restarts; r++ {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.Seed + int64(r)))
			state := RandomState(groups, rng)
			cost := state.Cost(g)
			rows := []StepRow{{Time: 0, Cost: cost}}

			for t := 1; t <= cfg.Iterations; t++ {
				select {
				case <-ctx.Done():
					results[r] = result{state: state, cost: cost, rows: rows}
					return
				default:
				}

				moves := AllDirectNeighbors(state)
				bestMove, bestCost, found := Move{}, cost, false
				for _, m := range moves {
					c := state.EvalNeighbor(g, m.Group, m.PathIndex)
					if !found || c.Total() < bestCost.Total() {
						bestMove, bestCost, found = m, c, true
					}
				}
				if !found || bestCost.Total() >= cost.Total() {
					rows = append(rows, StepRow{Time: t, Cost: cost})
					break
				}
				state.Apply(bestMove.Group, bestMove.PathIndex)
				cost = bestCost
				rows = append(rows, StepRow{Time: t, Cost: cost})
			}
			results[r] = result{state: state, cost: cost, rows: rows}
		}()
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.state != nil && r.cost.Total() < best.cost.Total() {
			best = r
		}
	}
	return best.state, best.rows
}
