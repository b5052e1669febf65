package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pagesim/pagesim/sim"
	"github.com/pagesim/pagesim/sim/workload"
)

var (
	logLevel string // Log verbosity level

	// Shared by run and compare
	pagesArg   string // Reference string, whitespace or comma separated
	frameCount int    // Number of physical frames
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Step-by-step simulator for page-replacement policies",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseCLIRequest turns --pages, --frames and a policy name into a request
// validated by the same rules as the HTTP API, so bad input never reaches the engine.
func parseCLIRequest(pagesText string, frames int, algoName string) (*sim.SimulationRequest, sim.Policy, error) {
	pages, err := workload.ParseReferenceString(pagesText)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid --pages: %w", err)
	}
	req := &sim.SimulationRequest{Pages: pages, Frames: &frames, Algo: algoName}
	policy, err := req.Validate(sim.Limits{})
	if err != nil {
		return nil, 0, err
	}
	return req, policy, nil
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().StringVar(&pagesArg, "pages", "", "Reference string, e.g. \"7 0 1 2 0 3\" or \"7,0,1,2\"")
		c.Flags().IntVar(&frameCount, "frames", 3, "Number of physical frames")
	}

	rootCmd.AddCommand(runCmd, compareCmd, generateCmd, serveCmd)
}
