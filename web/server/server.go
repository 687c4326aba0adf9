package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/df07/go-bvh-pathtracer/pkg/config"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

var logger = log.New("server")

// Request limits
const (
	maxWidth   = 1920
	maxSamples = 1024
	maxDepth   = 100
)

// Server handles web requests for the path tracer
type Server struct {
	port   int
	cfg    config.Config
	router *mux.Router
}

// NewServer creates a new web server. Render defaults not given in a
// request come from cfg.
func NewServer(port int, cfg config.Config) *Server {
	cfg.Width = clampDefault("width", cfg.Width, maxWidth)
	cfg.SamplesPerPixel = clampDefault("spp", cfg.SamplesPerPixel, maxSamples)
	cfg.MaxDepth = clampDefault("depth", cfg.MaxDepth, maxDepth)
	s := &Server{port: port, cfg: cfg}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/scenes", s.handleScenes).Methods(http.MethodGet)
	router.HandleFunc("/api/render", s.handleRender).Methods(http.MethodGet)
	router.HandleFunc("/api/inspect", s.handleInspect).Methods(http.MethodGet)
	s.router = router

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warningf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// clampDefault limits a configured default to the bound a request may ask for
func clampDefault(key string, value, max int) int {
	if value > max {
		logger.Warningf("configured %s %d exceeds the request limit, using %d", key, value, max)
		return max
	}
	return value
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseSeedParam parses the optional seed parameter
func parseSeedParam(values url.Values, defaultValue int64) (int64, error) {
	if value := values.Get("seed"); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seed: %s", value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
