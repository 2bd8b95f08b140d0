package optimize

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// StepRow is one row of the plain-SA/randomized-best/hill-climb per-step
// CSV: time, temperature (0 when not applicable), and the three cost
// components, matching simulated_annealing.rs's CSV header
// "time,temperature,cost,edge_cost,delay_cost" (SPEC_FULL.md §8.4). The
// travel-cost column these optimizers omit is still computed internally
// (it participates in Cost.Total) but is not part of their CSV contract.
type StepRow struct {
	Time        int
	Temperature float64
	Cost        Cost
}

// WriteStepCSV writes rows to path with the plain-SA header shape. If
// path is empty, WriteStepCSV is a no-op (CSV output is optional).
func WriteStepCSV(path string, rows []StepRow) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && filepath.Dir(path) != "." {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "time,temperature,cost,edge_cost,delay_cost")
	for _, r := range rows {
		fmt.Fprintf(f, "%d,%s,%d,%d,%d\n", r.Time, formatTemperature(r.Temperature), r.Cost.Total(), r.Cost.StrainedEdges, r.Cost.Delay)
	}
	return nil
}

// WriteDetourStepCSV writes the detour polish phase's richer per-step
// record, matching simulated_annealing_on_path.rs's six-column header
// (SPEC_FULL.md §8.4).
func WriteDetourStepCSV(path string, rows []DetourStepRow) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "time,temperature,cost,edge_cost,travel_cost,delay_cost")
	for _, r := range rows {
		fmt.Fprintf(f, "%d,%s,%d,%d,%d,%d\n", r.Time, formatTemperature(r.Temperature), r.Cost.Total(), r.Cost.StrainedEdges, r.Cost.Travel, r.Cost.Delay)
	}
	return nil
}

// WriteRuntimeCSV writes the detour phase's throughput diagnostic
// (SPEC_FULL.md §8.5).
func WriteRuntimeCSV(path string, samples []RuntimeSample) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "runtime,time")
	for _, s := range samples {
		fmt.Fprintf(f, "%s,%d\n", s.Runtime, s.Step)
	}
	return nil
}

func formatTemperature(t float64) string {
	if t == 0 {
		return ""
	}
	if math.IsInf(t, 0) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", t)
}

// TimestampedPath suffixes a run-output path with the current time,
// matching the host's WriteCSVReport convention (directory -> timestamped
// file inside it; file -> timestamp spliced before the extension).
func TimestampedPath(outPath string, now time.Time) string {
	if outPath == "" {
		return ""
	}
	ts := now.Format("20060102-150405")
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		return filepath.Join(outPath, fmt.Sprintf("run-%s.csv", ts))
	}
	ext := filepath.Ext(outPath)
	base := outPath[:len(outPath)-len(ext)]
	return fmt.Sprintf("%s-%s%s", base, ts, ext)
}
