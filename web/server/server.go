package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/renderer"
	"github.com/df07/go-portal-raytracer/pkg/scene"
)

// Server serves scene listings and single-shot renders over HTTP
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string // Scene ID (e.g., "portal")
	Width   int    // Image width; height follows the scene's aspect ratio
	Samples int    // Samples per pixel
	Depth   int    // Maximum bounce depth
	Seed    int64  // Sampling seed
	Flat    bool   // Skip BVH construction
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, scene.ListScenes())
}

// handleRender renders one frame and responds with it as a PNG. The render
// stops early if the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := scene.Lookup(req.Scene, geometry.CameraConfig{Width: req.Width})
	if err != nil {
		status := http.StatusInternalServerError
		if xerrors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	if !req.Flat {
		if err := sceneObj.BuildBVH(core.NewSeededSampler(req.Seed)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	config := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Seed:            req.Seed,
	})
	img, stats, err := renderer.NewRaytracer(sceneObj, config).Render(r.Context())
	if err != nil {
		glog.Warningf("Render of %q failed: %v", req.Scene, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	glog.Infof("Rendered %q %v in %v (%d tiles)", req.Scene, img.Bounds().Size(), stats.Duration, stats.Tiles)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Duration", stats.Duration.String())
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 50, 1, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 1, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if value := values.Get("flat"); value != "" {
		if req.Flat, err = strconv.ParseBool(value); err != nil {
			return nil, xerrors.Errorf("invalid flat value: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.Errorf("invalid %s value: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, xerrors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Errorf("Couldn't encode response: %v", err)
	}
}
