package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pagesim/pagesim/sim"
)

// maxBodyBytes bounds a request body before it is decoded.
const maxBodyBytes = 4 << 20

// APIServer serves the simulation API and, optionally, a static frontend.
type APIServer struct {
	limits    sim.Limits
	staticDir string
}

// NewAPIServer creates a server enforcing limits; staticDir may be empty.
func NewAPIServer(limits sim.Limits, staticDir string) *APIServer {
	return &APIServer{limits: limits, staticDir: staticDir}
}

// Handler returns the routed, logged and CORS-enabled handler.
func (s *APIServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/compare", s.handleCompare)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.staticDir != "" {
		mux.HandleFunc("GET /", s.handleStatic)
	}
	return withCORS(withRequestLog(mux))
}

func (s *APIServer) handleSimulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	req, err := sim.DecodeSimulationRequest(body)
	if err != nil {
		sendFailure(w, err)
		return
	}
	doc, err := req.Execute(s.limits)
	if err != nil {
		sendFailure(w, err)
		return
	}
	logrus.Debugf("simulate %s: %d references, %d frames, %d faults", doc.Algo, len(doc.Pages), doc.Frames, doc.Result.Faults)
	sendJSON(w, http.StatusOK, doc)
}

// CompareResult is one policy's line in a CompareResponse.
type CompareResult struct {
	Algo    string  `json:"algo"`
	Faults  int     `json:"faults"`
	Hits    int     `json:"hits"`
	HitRate float64 `json:"hit_rate"`
}

// CompareResponse lists results in the order the policies were requested.
type CompareResponse struct {
	Frames  int             `json:"frames"`
	Pages   []int           `json:"pages"`
	Results []CompareResult `json:"results"`
}

func (s *APIServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	creq, err := sim.DecodeCompareRequest(body)
	if err != nil {
		sendFailure(w, err)
		return
	}
	policies, err := sim.ParsePolicies(creq.Algos)
	if err != nil {
		sendError(w, http.StatusBadRequest, sim.ErrUnknownAlgorithm.Error())
		return
	}
	// pages and frames are shared by every policy
	req := creq.SimulationRequest()
	if _, err := req.Validate(s.limits); err != nil {
		sendFailure(w, err)
		return
	}

	resp := CompareResponse{Frames: req.FrameCount(), Pages: req.Pages}
	for _, c := range sim.Compare(policies, req.Pages, req.FrameCount()) {
		resp.Results = append(resp.Results, CompareResult{
			Algo:    c.Policy.String(),
			Faults:  c.Summary.Faults,
			Hits:    c.Summary.Hits,
			HitRate: c.Summary.HitRate,
		})
	}
	sendJSON(w, http.StatusOK, resp)
}

// handleStatic serves files from staticDir and falls back to index.html for
// unknown paths so client-side routes resolve.
func (s *APIServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel != "" {
		path := filepath.Join(s.staticDir, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
	}
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}

// sendFailure reports validation errors to the client as 400 with their
// message; anything else is logged and hidden behind a 500.
func sendFailure(w http.ResponseWriter, err error) {
	if sim.IsValidationError(err) {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	logrus.Errorf("request failed: %v", err)
	sendError(w, http.StatusInternalServerError, "internal error")
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request served")
	})
}

// isServerClosed reports the error returned by ListenAndServe after Shutdown.
func isServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
