// Package runner drives the full pipeline — ingest, build, validate,
// enumerate (cache-aware), optimize, write output — shared by cmd/optimize
// and internal/service so the CLI and the optional HTTP control surface
// never duplicate it. Grounded on the host's cmd/importer/main.go
// runImport: a numbered "Step N/5" log sequence returning a wrapped error
// on the first failure.
package runner

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eliaswendt/timetable-optimizer/internal/archive"
	"github.com/eliaswendt/timetable-optimizer/internal/config"
	"github.com/eliaswendt/timetable-optimizer/internal/diagnostics"
	"github.com/eliaswendt/timetable-optimizer/internal/enumerate"
	"github.com/eliaswendt/timetable-optimizer/internal/graphviz"
	"github.com/eliaswendt/timetable-optimizer/internal/groupcache"
	"github.com/eliaswendt/timetable-optimizer/internal/ingest"
	"github.com/eliaswendt/timetable-optimizer/internal/optimize"
	"github.com/eliaswendt/timetable-optimizer/internal/timetable"
)

// Options parameterizes one end-to-end run.
type Options struct {
	InputDir  string
	Optimizer string // random-best, hill-climb, sa, sa-detour
	Iterations int
	Restarts   int
	Seed       int64
	OutPath    string
	CachePath  string // filesystem path, "redis://host:port" URL, or empty

	Config  config.Config
	Archive *archive.Store // nil disables archival
}

// Result summarizes a completed run for callers (the CLI prints it,
// internal/service serializes it into a run-status response).
type Result struct {
	FinalCost   optimize.Cost
	OutPath     string
	DotPath     string
	Diagnostics diagnostics.Diagnostics
}

// Run executes the full pipeline against ctx, returning once the
// optimizer run and output write complete. Cancelling ctx stops
// enumeration and the optimizer at their next check point.
func Run(ctx context.Context, opts Options) (Result, error) {
	startedAt := time.Now()

	log.Println("Step 1/5: loading input tables")
	stations, trips, footpaths, groups, err := loadInput(opts.InputDir)
	if err != nil {
		return Result{}, fmt.Errorf("loading input: %w", err)
	}
	log.Printf("loaded %d stations, %d trips, %d footpaths, %d groups", len(stations), len(trips), len(footpaths), len(groups))

	log.Println("Step 2/5: building and validating graph")
	builder := timetable.NewBuilder()
	g, stats, err := builder.Build(stations, trips, footpaths)
	if err != nil {
		return Result{}, fmt.Errorf("building graph: %w", err)
	}
	if err := timetable.Validate(g); err != nil {
		return Result{}, fmt.Errorf("validating graph: %w", err)
	}
	log.Printf("graph has %d nodes, %d edges (%d footpaths had no reachable transfer)", g.NodeCount(), g.EdgeCount(), stats.ImpossibleFootpaths)

	log.Println("Step 3/5: enumerating candidate paths")
	fingerprint := groupcache.Fingerprint(stations, trips, footpaths)
	diag := diagnostics.Diagnostics{ImpossibleFootpaths: stats.ImpossibleFootpaths}
	groups, err = enumerateGroups(ctx, g, groups, opts, fingerprint, &diag)
	if err != nil {
		return Result{}, fmt.Errorf("enumerating groups: %w", err)
	}
	log.Println(diag.Report())

	log.Println("Step 4/5: optimizing")
	finalState, steps, detourSteps, runtimeSamples, err := runOptimizer(ctx, g, groups, opts)
	if err != nil {
		return Result{}, fmt.Errorf("optimizing: %w", err)
	}
	finalCost := finalState.Cost(g)
	log.Printf("final cost: total=%d edges=%d travel=%d delay=%d", finalCost.Total(), finalCost.StrainedEdges, finalCost.Travel, finalCost.Delay)

	log.Println("Step 5/5: writing output")
	outPath := opts.OutPath
	if outPath == "" {
		outPath = "optimize-result.csv"
	}
	if detourSteps != nil {
		if err := optimize.WriteDetourStepCSV(outPath, detourSteps); err != nil {
			return Result{}, fmt.Errorf("writing output: %w", err)
		}
		if len(runtimeSamples) > 0 {
			if err := optimize.WriteRuntimeCSV(outPath+".runtime.csv", runtimeSamples); err != nil {
				log.Printf("warning: failed to write runtime samples: %v", err)
			}
		}
	} else {
		if err := optimize.WriteStepCSV(outPath, steps); err != nil {
			return Result{}, fmt.Errorf("writing output: %w", err)
		}
	}

	result := Result{FinalCost: finalCost, OutPath: outPath, Diagnostics: diag}

	if strings.Contains(opts.InputDir, "sample") {
		dotPath := "graph.dot"
		if err := writeDot(dotPath, g); err != nil {
			log.Printf("warning: failed to write graph visualization: %v", err)
		} else {
			result.DotPath = dotPath
		}
	}

	if opts.Archive != nil {
		archivedSteps := steps
		for _, d := range detourSteps {
			archivedSteps = append(archivedSteps, optimize.StepRow{Time: d.Time, Temperature: d.Temperature, Cost: d.Cost})
		}
		record := archive.RunRecord{
			Optimizer:  opts.Optimizer,
			Seed:       opts.Seed,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
			FinalCost:  finalCost,
			Steps:      archivedSteps,
		}
		if err := opts.Archive.SaveRun(ctx, record); err != nil {
			log.Printf("warning: failed to archive run: %v", err)
		}
	}

	return result, nil
}

func loadInput(dir string) ([]timetable.StationRecord, []timetable.TripRecord, []timetable.FootpathRecord, []enumerate.Group, error) {
	stations, err := ingest.LoadStations(filepath.Join(dir, "stations.csv"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	trips, err := ingest.LoadTrips(filepath.Join(dir, "trips.csv"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	footpaths, err := ingest.LoadFootpaths(filepath.Join(dir, "footpaths.csv"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	groups, err := ingest.LoadGroups(filepath.Join(dir, "groups.csv"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return stations, trips, footpaths, groups, nil
}

func enumerateGroups(ctx context.Context, g *timetable.Graph, groups []enumerate.Group, opts Options, fingerprint string, diag *diagnostics.Diagnostics) ([]enumerate.Group, error) {
	budget := enumerate.Budget{
		MinBudget:       opts.Config.MinBudget,
		MaxBudget:       opts.Config.MaxBudget,
		Steps:           opts.Config.BudgetSteps,
		DurationCeiling: opts.Config.DurationCeiling,
	}

	cached, fromCache, err := loadCache(ctx, opts, fingerprint)
	if err != nil {
		log.Printf("warning: cache unavailable, enumerating from scratch: %v", err)
	}

	byID := make(map[string]enumerate.Group, len(cached))
	if fromCache {
		for _, cg := range cached {
			byID[cg.ID] = cg
		}
		log.Printf("loaded %d groups from cache", len(cached))
	}

	for i := range groups {
		if cg, ok := byID[groups[i].ID]; ok {
			groups[i].Paths = cg.Paths
		} else {
			groups[i].Paths = enumerate.Enumerate(ctx, g, groups[i], budget)
		}
		diag.RecordGroup(groups[i].ID, len(groups[i].Paths))
	}

	if !fromCache {
		if err := saveCache(ctx, opts, groups, fingerprint); err != nil {
			log.Printf("warning: failed to write cache: %v", err)
		}
	}

	return groups, nil
}

func loadCache(ctx context.Context, opts Options, fingerprint string) ([]enumerate.Group, bool, error) {
	if opts.CachePath == "" {
		return nil, false, nil
	}
	if strings.HasPrefix(opts.CachePath, "redis://") {
		client, err := groupcache.NewRedisClient(ctx, groupcache.RedisConfig{Addr: strings.TrimPrefix(opts.CachePath, "redis://")})
		if err != nil {
			return nil, false, err
		}
		defer client.Close()
		doc, ok, err := client.Load(ctx, "groups")
		if err != nil || !ok {
			return nil, false, err
		}
		groups, ok := groupcache.Decode(doc, fingerprint)
		return groups, ok, nil
	}

	doc, ok, err := groupcache.LoadFile(opts.CachePath)
	if err != nil || !ok {
		return nil, false, err
	}
	groups, ok := groupcache.Decode(doc, fingerprint)
	return groups, ok, nil
}

func saveCache(ctx context.Context, opts Options, groups []enumerate.Group, fingerprint string) error {
	if opts.CachePath == "" {
		return nil
	}
	doc := groupcache.Encode(fingerprint, groups)

	if strings.HasPrefix(opts.CachePath, "redis://") {
		client, err := groupcache.NewRedisClient(ctx, groupcache.RedisConfig{Addr: strings.TrimPrefix(opts.CachePath, "redis://")})
		if err != nil {
			return err
		}
		defer client.Close()
		return client.Save(ctx, "groups", doc)
	}
	return groupcache.SaveFile(opts.CachePath, doc)
}

func runOptimizer(ctx context.Context, g *timetable.Graph, groups []enumerate.Group, opts Options) (*optimize.State, []optimize.StepRow, []optimize.DetourStepRow, []optimize.RuntimeSample, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	start := optimize.RandomState(groups, rng)

	switch opts.Optimizer {
	case "random-best":
		state, steps := optimize.RandomizedBest(ctx, g, start, optimize.RandomizedBestConfig{Iterations: opts.Iterations, Seed: opts.Seed})
		return state, steps, nil, nil, nil
	case "hill-climb":
		state, steps := optimize.RandomizedHillClimb(ctx, g, groups, optimize.HillClimbConfig{Restarts: opts.Restarts, Iterations: opts.Iterations, Seed: opts.Seed})
		return state, steps, nil, nil, nil
	case "sa-detour":
		state, detourSteps, runtimeSamples := optimize.SimulatedAnnealingDetour(ctx, g, start, optimize.AnnealingConfig{C: opts.Config.AnnealingC, Seed: opts.Seed}, time.Now)
		return state, nil, detourSteps, runtimeSamples, nil
	case "sa", "":
		state, steps := optimize.SimulatedAnnealing(ctx, g, start, optimize.AnnealingConfig{C: opts.Config.AnnealingC, Seed: opts.Seed})
		return state, steps, nil, nil, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown optimizer %q", opts.Optimizer)
	}
}

func writeDot(path string, g *timetable.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graphviz.Write(f, g)
}
