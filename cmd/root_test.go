package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagesim/pagesim/sim"
	"github.com/pagesim/pagesim/sim/trace"
)

// captureStdout runs fn and returns what it printed to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	return captureStdout(t, func() {
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
	})
}

func TestRunCommand_JSONOutputAndExport(t *testing.T) {
	// GIVEN an lz4 export path
	path := filepath.Join(t.TempDir(), "trace.json.lz4")

	// WHEN scenario C is run with json output
	output := execute(t, "run", "--pages", "1 2 3 4 1 2 5", "--frames", "3", "--algo", "optimal",
		"--format", "json", "--export", path, "--import", "", "--log", "error")

	// THEN stdout carries the document
	var doc trace.Document
	require.NoError(t, json.Unmarshal([]byte(output), &doc))
	assert.Equal(t, "optimal", doc.Algo)
	assert.Equal(t, 5, doc.Result.Faults)

	// THEN the exported file decodes to the same document
	exported, err := trace.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, &doc, exported)
}

func TestRunCommand_TableOutput(t *testing.T) {
	output := execute(t, "run", "--pages", "1,2,3,4,1,2,5", "--frames", "3", "--algo", "clock",
		"--format", "table", "--export", "", "--import", "", "--log", "error")

	assert.Contains(t, output, "CLOCK, 3 frames")
	assert.Contains(t, output, "Faults: 7 | Hits: 0")
}

func TestCompareCommand_ScenarioBundle(t *testing.T) {
	// GIVEN a bundle with one scenario restricted to two policies
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	bundle := &sim.ScenarioBundle{Scenarios: []sim.Scenario{{
		Name: "belady", Pages: []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}, Frames: 3, Algos: []string{"fifo", "lru"},
	}}}
	data, err := bundle.Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	// WHEN compared with a fault-curve sweep
	output := execute(t, "compare", "--config", path, "--sweep", "4", "--log", "error")

	// THEN both policies are listed and FIFO's anomaly is flagged
	assert.Contains(t, output, "# belady")
	assert.Contains(t, output, "fifo")
	assert.Contains(t, output, "lru")
	assert.NotContains(t, output, "optimal")
	assert.Contains(t, output, "4 frames: 10 faults  <- Belady's anomaly")
}

func TestGenerateCommand_YAMLIsLoadableBundle(t *testing.T) {
	output := execute(t, "generate", "--kind", "loop", "--length", "6", "--page-range", "3",
		"--frames", "2", "--format", "yaml", "--log", "error")

	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(output), 0o644))
	bundle, err := sim.LoadScenarioBundle(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Validate())
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, bundle.Scenarios[0].Pages)
	assert.Equal(t, 2, bundle.Scenarios[0].Frames)
}

// exitPanics makes logrus.Fatalf panic with the exit code instead of exiting
// the test binary.
func exitPanics(t *testing.T) {
	t.Helper()
	logger := logrus.StandardLogger()
	old := logger.ExitFunc
	logger.ExitFunc = func(code int) { panic(code) }
	t.Cleanup(func() { logger.ExitFunc = old })
}

func TestParseCLIRequest_ReservedPage(t *testing.T) {
	_, _, err := parseCLIRequest("-1 2", 3, "fifo")

	assert.ErrorIs(t, err, sim.ErrReservedPage)
}

func TestParseCLIRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		pages  string
		frames int
		algo   string
		want   error
	}{
		{"zero frames", "1 2", 0, "fifo", sim.ErrFramesNotPositive},
		{"unknown policy", "1 2", 3, "mru", sim.ErrUnknownAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseCLIRequest(tt.pages, tt.frames, tt.algo)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err := parseCLIRequest("1 x", 3, "fifo")
	assert.ErrorContains(t, err, "invalid --pages")
}

func TestRunCommand_ReservedPage_ExitsInsteadOfPanicking(t *testing.T) {
	// GIVEN Fatalf routed to a recoverable panic
	exitPanics(t)

	// WHEN the reference string contains the empty-slot marker
	rootCmd.SetArgs([]string{"run", "--pages=-1 2", "--frames", "3", "--algo", "fifo",
		"--format", "table", "--export", "", "--import", "", "--log", "error"})

	// THEN the command exits with status 1 before reaching the engine
	assert.PanicsWithValue(t, 1, func() { _ = rootCmd.Execute() })
}

func TestCompareCommand_ReservedPage_ExitsInsteadOfPanicking(t *testing.T) {
	exitPanics(t)

	rootCmd.SetArgs([]string{"compare", "--pages=-1 2", "--frames", "3", "--config", "", "--sweep", "0", "--log", "error"})

	assert.PanicsWithValue(t, 1, func() { _ = rootCmd.Execute() })
}

func TestRunCommand_ImportPrintsExportedTrace(t *testing.T) {
	// GIVEN a snappy-compressed export of scenario A under LRU
	path := filepath.Join(t.TempDir(), "trace.json.sz")
	first := execute(t, "run", "--pages", "1 2 3 1 2 4", "--frames", "3", "--algo", "lru",
		"--format", "json", "--export", path, "--import", "", "--log", "error")

	// WHEN the file is imported with conflicting simulation flags
	second := execute(t, "run", "--import", path, "--pages", "9", "--frames", "1", "--algo", "fifo",
		"--format", "json", "--export", "", "--log", "error")

	// THEN the imported document is printed unchanged
	assert.JSONEq(t, first, second)
	var doc trace.Document
	require.NoError(t, json.Unmarshal([]byte(second), &doc))
	assert.Equal(t, "lru", doc.Algo)
	assert.Equal(t, []int{1, 2, 3, 1, 2, 4}, doc.Pages)
}
