// Package api serves planned tick marks and rendered graphs over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/axisgrid/internal/axis"
	"github.com/banshee-data/axisgrid/internal/config"
	"github.com/banshee-data/axisgrid/internal/httputil"
	"github.com/banshee-data/axisgrid/internal/monitoring"
	"github.com/banshee-data/axisgrid/internal/version"
)

// ANSI escape codes for the request log
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// plannerErrors maps planner sentinels onto response codes.
var plannerErrors = []httputil.ErrorStatus{
	{Err: axis.ErrInvalidInterval, Status: http.StatusBadRequest},
	{Err: axis.ErrDegenerateDomain, Status: http.StatusBadRequest},
	{Err: axis.ErrComputationOverflow, Status: http.StatusUnprocessableEntity},
}

type Server struct {
	cfg     *config.AxisConfig
	planner axis.Planner
}

func NewServer(cfg *config.AxisConfig) *Server {
	if cfg == nil {
		cfg = &config.AxisConfig{}
	}
	return &Server{cfg: cfg, planner: cfg.Planner()}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/ticks", s.handleTicks)
	mux.HandleFunc("/api/config", s.showConfig)
	mux.HandleFunc("/graph.html", s.handleGraphHTML)
	mux.HandleFunc("/graph.png", s.handleGraphImage("png", "image/png"))
	mux.HandleFunc("/graph.svg", s.handleGraphImage("svg", "image/svg+xml"))
	return mux
}

// Start serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           LoggingMiddleware(s.ServeMux()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		monitoring.Opsf("serving axisgrid on http://%s", ln.Addr())
		errc <- server.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	monitoring.Logf("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			monitoring.Logf("HTTP server force close error: %v", err)
		}
	}
	monitoring.Logf("HTTP server routine stopped")
	return nil
}

// ListenAndServe listens on addr and calls Start.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Start(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":    "ok",
		"version":   version.Version,
		"build":     version.String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	width, height := s.cfg.GetPlotSize()
	eps := s.planner.Tolerance.Epsilon
	if eps == 0 {
		eps = axis.Epsilon
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"partitions":             s.cfg.GetPartitions(),
		"min_fragments_per_tick": s.cfg.GetMinFragmentsPerTick(),
		"tolerance_mode":         s.planner.Tolerance.Mode.String(),
		"epsilon":                eps,
		"max_marks":              s.cfg.GetMaxMarks(),
		"plot_width_pt":          float64(width),
		"plot_height_pt":         float64(height),
		"samples":                s.cfg.GetSamples(),
	})
}
