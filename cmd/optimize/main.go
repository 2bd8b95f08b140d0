package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliaswendt/timetable-optimizer/internal/archive"
	"github.com/eliaswendt/timetable-optimizer/internal/config"
	"github.com/eliaswendt/timetable-optimizer/internal/runner"
)

func main() {
	optimizer := flag.String("optimizer", "sa", "optimizer to run: random-best, hill-climb, sa, sa-detour")
	iterations := flag.Int("iterations", 1000, "iteration count (random-best, hill-climb)")
	restarts := flag.Int("restarts", 8, "concurrent restarts (hill-climb only)")
	seed := flag.Int64("seed", 42, "random seed")
	out := flag.String("out", "", "output CSV path (default: optimize-result.csv)")
	cache := flag.String("cache", "", "path to a JSON group/path cache file, or a redis://host:port URL")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: optimize [flags] <csv-folder>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputDir := flag.Arg(0)

	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		log.Fatalf("input folder not found: %s", inputDir)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("received interrupt, cancelling run...")
		cancel()
	}()
	defer cancel()

	var archiveStore *archive.Store
	if cfg.PostgresDSN != "" {
		store, err := archive.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("failed to open archive store: %v", err)
		}
		defer store.Close()
		archiveStore = store
		log.Println("run archival enabled")
	}

	result, err := runner.Run(ctx, runner.Options{
		InputDir:   inputDir,
		Optimizer:  *optimizer,
		Iterations: *iterations,
		Restarts:   *restarts,
		Seed:       *seed,
		OutPath:    *out,
		CachePath:  *cache,
		Config:     cfg,
		Archive:    archiveStore,
	})
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	log.Printf("wrote %s", result.OutPath)
	if result.DotPath != "" {
		log.Printf("wrote %s", result.DotPath)
	}
	log.Printf("final cost: %d (edges=%d travel=%d delay=%d)",
		result.FinalCost.Total(), result.FinalCost.StrainedEdges, result.FinalCost.Travel, result.FinalCost.Delay)
}
