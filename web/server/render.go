package server

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client.
// Zero sampling fields fall back to the server config, then to the scene.
type RenderRequest struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
}

// parseRenderRequest parses and bounds-checks the query parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.cfg.Width, 1, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", s.cfg.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", s.cfg.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(query, s.cfg.Seed); err != nil {
		return nil, err
	}
	return req, nil
}

// buildScene creates the requested scene with the width override applied
func buildScene(name string, width int, seed int64) (*scene.Scene, error) {
	return scene.Create(name, seed, renderer.WidthOverride(width))
}

// handleRender renders a complete frame and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := buildScene(req.Scene, req.Width, req.Seed)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	options := renderer.Options{
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		NumWorkers:      s.cfg.Workers,
		Seed:            req.Seed,
	}
	if options.SamplesPerPixel == 0 {
		options.SamplesPerPixel = sc.SamplingConfig.SamplesPerPixel
	}
	if options.MaxDepth == 0 {
		options.MaxDepth = sc.SamplingConfig.MaxDepth
	}

	rt, err := renderer.NewRaytracer(sc, options)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fb, stats, err := rt.Render()
	if err != nil {
		logger.Errorf("render of %q failed: %v", req.Scene, err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.ToImage()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Infof("render %s: %q %dx%d, %d spp in %s", stats.ID, req.Scene, stats.Width, stats.Height, stats.SamplesPerPixel, stats.RenderTime)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-ID", stats.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("writing render %s: %v", stats.ID, err)
	}
}
