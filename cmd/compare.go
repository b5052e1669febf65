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
	compareAlgos []string // Policies to compare; empty means all
	scenarioPath string   // YAML scenario bundle
	sweepFrames  int      // Print fault curves for 1..sweepFrames frames
)

// compareCmd runs several policies over the same reference string
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare fault counts and hit rates across replacement policies",
	Run: func(cmd *cobra.Command, args []string) {
		var scenarios []sim.Scenario
		if scenarioPath != "" {
			bundle, err := sim.LoadScenarioBundle(scenarioPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			if err := bundle.Validate(); err != nil {
				logrus.Fatalf("Invalid scenario bundle: %v", err)
			}
			scenarios = bundle.Scenarios
		} else {
			pages, err := workload.ParseReferenceString(pagesArg)
			if err != nil {
				logrus.Fatalf("Invalid --pages: %v", err)
			}
			sc := sim.Scenario{Name: "command line", Pages: pages, Frames: frameCount, Algos: compareAlgos}
			if err := sc.Validate(); err != nil {
				logrus.Fatalf("Invalid input: %v", err)
			}
			scenarios = []sim.Scenario{sc}
		}

		for _, sc := range scenarios {
			policies, err := sc.Policies()
			if err != nil {
				logrus.Fatalf("Scenario %q: %v", sc.Name, err)
			}
			logrus.Infof("Scenario %q: %d references, %d frames, policies %v", sc.Name, len(sc.Pages), sc.Frames, policies)

			fmt.Printf("\n# %s\n", sc.Name)
			sim.PrintComparison(os.Stdout, sc.Frames, sim.Compare(policies, sc.Pages, sc.Frames))
			if sweepFrames > 0 {
				for _, p := range policies {
					sim.PrintFaultCurve(os.Stdout, p, sim.FaultCurve(p, sc.Pages, sweepFrames))
				}
			}
		}
	},
}

func init() {
	compareCmd.Flags().StringSliceVar(&compareAlgos, "algos", nil, "Comma-separated policies to compare (default all)")
	compareCmd.Flags().StringVar(&scenarioPath, "config", "", "YAML scenario bundle; overrides --pages/--frames/--algos")
	compareCmd.Flags().IntVar(&sweepFrames, "sweep", 0, "Also print fault counts for 1..N frames and flag Belady's anomaly")
}
