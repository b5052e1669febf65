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
	genConfig workload.GeneratorConfig
	genKind   string
	genFrames int    // Frames recorded in the emitted scenario (yaml output only)
	genFormat string // text or yaml
)

// generateCmd prints a synthetic reference string
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a seeded synthetic reference string",
	Run: func(cmd *cobra.Command, args []string) {
		genConfig.Kind = workload.Kind(genKind)
		pages, err := workload.Generate(genConfig)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Generated %d references (%s, seed %d)", len(pages), genConfig.Kind, genConfig.Seed)

		switch genFormat {
		case "text":
			fmt.Println(workload.FormatReferenceString(pages))
		case "yaml":
			seed := genConfig.Seed
			bundle := &sim.ScenarioBundle{Scenarios: []sim.Scenario{{
				Name:   fmt.Sprintf("%s-seed-%d", genConfig.Kind, seed),
				Pages:  pages,
				Frames: genFrames,
				Seed:   &seed,
			}}}
			data, err := bundle.Marshal()
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			_, _ = os.Stdout.Write(data)
		default:
			logrus.Fatalf("Unknown --format %q; valid: text, yaml", genFormat)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&genKind, "kind", string(workload.KindLocality), "Generator (uniform, locality, loop)")
	generateCmd.Flags().IntVar(&genConfig.Length, "length", 20, "Number of references")
	generateCmd.Flags().IntVar(&genConfig.PageRange, "page-range", 10, "Page ids are drawn from [0, page-range)")
	generateCmd.Flags().Int64Var(&genConfig.Seed, "seed", 42, "Seed for reproducible generation")
	generateCmd.Flags().IntVar(&genConfig.WorkingSet, "working-set", 3, "Locality: pages in the working set")
	generateCmd.Flags().Float64Var(&genConfig.Locality, "locality", 0.9, "Locality: probability a reference stays in the working set")
	generateCmd.Flags().IntVar(&genConfig.ShiftEvery, "shift-every", 0, "Locality: references per phase (0 = no shift)")
	generateCmd.Flags().IntVar(&genConfig.LoopLength, "loop-length", 0, "Loop: cycle length (0 = page-range)")
	generateCmd.Flags().IntVar(&genFrames, "frames", 3, "Frames recorded in the yaml scenario")
	generateCmd.Flags().StringVar(&genFormat, "format", "text", "Output format (text, yaml)")
}
