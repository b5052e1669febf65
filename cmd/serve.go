package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pagesim/pagesim/sim"
)

var (
	port      int    // Listen port
	staticDir string // Frontend directory served at /
	maxPages  int    // Reject requests with more references (0 = unlimited)
	maxFrames int    // Reject requests with more frames (0 = unlimited)
)

// serveCmd exposes the simulator over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		if maxPages < 0 || maxFrames < 0 {
			logrus.Fatalf("--max-pages and --max-frames must be non-negative")
		}
		api := NewAPIServer(sim.Limits{MaxPages: maxPages, MaxFrames: maxFrames}, staticDir)
		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(port),
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logrus.Errorf("Shutdown: %v", err)
			}
		}()

		logrus.Infof("Listening on %s (max pages %d, max frames %d)", srv.Addr, maxPages, maxFrames)
		if err := srv.ListenAndServe(); err != nil && !isServerClosed(err) {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Info("Server stopped.")
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 5000, "Port to listen on")
	serveCmd.Flags().StringVar(&staticDir, "static-dir", "", "Directory with frontend files to serve at /")
	serveCmd.Flags().IntVar(&maxPages, "max-pages", 10000, "Maximum references per request (0 = unlimited)")
	serveCmd.Flags().IntVar(&maxFrames, "max-frames", 1024, "Maximum frames per request (0 = unlimited)")
}
