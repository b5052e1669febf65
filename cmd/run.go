package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pagesim/pagesim/sim"
	"github.com/pagesim/pagesim/sim/trace"
)

var (
	algo       string // Replacement policy name
	format     string // Output format: table or json
	exportPath string // Optional trace file (.json, .lz4, .sz)
	importPath string // Previously exported trace to print instead of simulating
)

// runCmd simulates one policy and prints the per-reference trace
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one replacement policy over a reference string",
	Run: func(cmd *cobra.Command, args []string) {
		if format != "table" && format != "json" {
			logrus.Fatalf("Unknown --format %q; valid: table, json", format)
		}

		var doc *trace.Document
		if importPath != "" {
			imported, err := trace.ReadFile(importPath)
			if err != nil {
				logrus.Fatalf("Failed to import trace: %v", err)
			}
			if imported.Result == nil {
				logrus.Fatalf("Trace file %s has no result", importPath)
			}
			logrus.Infof("Loaded %s trace with %d steps from %s", imported.Algo, len(imported.Result.Steps), importPath)
			doc = imported
		} else {
			req, policy, err := parseCLIRequest(pagesArg, frameCount, algo)
			if err != nil {
				logrus.Fatalf("Invalid input: %v", err)
			}
			logrus.Infof("Simulating %s with %d frames over %d references", policy, req.FrameCount(), len(req.Pages))
			startTime := time.Now()
			doc = sim.NewDocument(policy, req.Pages, req.FrameCount())
			logrus.Debugf("Simulation took %v", time.Since(startTime))
		}

		if format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(doc); err != nil {
				logrus.Fatalf("Failed to encode trace: %v", err)
			}
		} else {
			sim.PrintTrace(os.Stdout, doc)
		}

		if exportPath != "" {
			if err := trace.WriteFile(exportPath, doc); err != nil {
				logrus.Fatalf("Failed to export trace: %v", err)
			}
			logrus.Infof("Trace written to %s (%s)", exportPath, trace.CompressionForPath(exportPath))
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&algo, "algo", sim.DefaultAlgo, "Replacement policy (fifo, lru, optimal, clock)")
	runCmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")
	runCmd.Flags().StringVar(&importPath, "import", "", "Print a previously exported trace instead of simulating; --pages, --frames and --algo are ignored")
	runCmd.Flags().StringVar(&exportPath, "export", "", "Write the trace to this file; .lz4 and .sz suffixes compress it")
}
