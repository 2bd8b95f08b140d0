package optimize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStepCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.csv")
	rows := []StepRow{
		{Time: 0, Temperature: 0, Cost: Cost{StrainedEdges: 1, Travel: 2, Delay: 3}},
		{Time: 1, Temperature: 12.5, Cost: Cost{StrainedEdges: 0, Travel: 0, Delay: 0}},
	}

	require.NoError(t, WriteStepCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(string(data))
	require.Len(t, lines, 3)
	assert.Equal(t, "time,temperature,cost,edge_cost,delay_cost", lines[0])
	assert.Equal(t, "0,,6,1,3", lines[1])
	assert.Equal(t, "1,12.5000,0,0,0", lines[2])
}

func TestWriteStepCSVNoopOnEmptyPath(t *testing.T) {
	assert.NoError(t, WriteStepCSV("", []StepRow{{Time: 0}}))
}

func TestWriteDetourStepCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detour.csv")
	rows := []DetourStepRow{
		{Time: 5, Temperature: 1, Cost: Cost{StrainedEdges: 1, Travel: 2, Delay: 3}},
	}

	require.NoError(t, WriteDetourStepCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(string(data))
	require.Len(t, lines, 2)
	assert.Equal(t, "time,temperature,cost,edge_cost,travel_cost,delay_cost", lines[0])
	assert.Equal(t, "5,1.0000,6,1,2,3", lines[1])
}

func TestWriteRuntimeCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime.csv")
	samples := []RuntimeSample{{Runtime: 2 * time.Second, Step: 10}}

	require.NoError(t, WriteRuntimeCSV(path, samples))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(string(data))
	require.Len(t, lines, 2)
	assert.Equal(t, "runtime,time", lines[0])
	assert.Equal(t, "2s,10", lines[1])
}

func TestTimestampedPathForFile(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := TimestampedPath("out/run.csv", now)
	assert.Equal(t, "out/run-20260102-030405.csv", got)
}

func TestTimestampedPathForDirectory(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	got := TimestampedPath(dir, now)
	assert.Equal(t, filepath.Join(dir, "run-20260102-030405.csv"), got)
}

func TestTimestampedPathEmptyInput(t *testing.T) {
	assert.Equal(t, "", TimestampedPath("", time.Now()))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
