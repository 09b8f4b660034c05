package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"golang.org/x/term"
	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/geometry"
	"github.com/df07/go-portal-raytracer/pkg/renderer"
	"github.com/df07/go-portal-raytracer/pkg/scene"
)

var (
	sceneType  = flag.String("scene", "default", "Scene to render (see -list)")
	width      = flag.Int("width", 0, "Image width in pixels; 0 uses the scene's width")
	samples    = flag.Int("samples", 0, "Samples per pixel; 0 uses the scene's recommendation")
	maxDepth   = flag.Int("depth", 0, "Maximum ray bounce depth; 0 uses the scene's recommendation")
	workers    = flag.Int("workers", 0, "Number of parallel tile workers; 0 uses one per CPU")
	seed       = flag.Int64("seed", 42, "Random seed for sampling and BVH construction")
	gamma      = flag.Float64("gamma", 2.0, "Output gamma; 0 or 1 writes linear values")
	flat       = flag.Bool("flat", false, "Search objects linearly instead of building a BVH")
	outputFile = flag.String("out", "", "Output PNG path; default output/<scene>/render_<timestamp>.png")
	listScenes = flag.Bool("list", false, "List available scenes and exit")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if *listScenes {
		printScenes()
		return
	}

	s, err := createScene(*sceneType, *width)
	if err != nil {
		glog.Exitf("Couldn't create scene: %v", err)
	}

	config, err := samplingConfigFor(s)
	if err != nil {
		glog.Exitf("Invalid sampling flags: %v", err)
	}

	if !*flat {
		if err := s.BuildBVH(core.NewSeededSampler(config.Seed)); err != nil {
			glog.Exitf("Couldn't index scene: %v", err)
		}
	}

	logSceneBounds(s)

	raytracer := renderer.NewRaytracer(s, config)
	raytracer.SetNumWorkers(*workers)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		raytracer.SetProgressCallback(printProgress)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, h := raytracer.Size()
	glog.Infof("Rendering scene %q at %dx%d: %d objects, %d spp, depth %d, BVH %v",
		*sceneType, w, h, s.ObjectCount(), config.SamplesPerPixel, config.MaxDepth, s.UsesBVH())

	img, stats, err := raytracer.Render(ctx)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		glog.Exitf("Render failed: %v", err)
	}

	glog.Infof("Render completed in %v: %d tiles, %.1f samples per pixel, average luminance %.3f",
		stats.Duration, stats.Tiles, stats.AverageSamples, renderer.CalculateAverageLuminance(img))

	filename := outputPath(*sceneType, *outputFile, time.Now())
	if err := savePNG(filename, img); err != nil {
		glog.Exitf("Couldn't save render: %v", err)
	}

	glog.Infof("Render saved as %s", filename)
}

// createScene builds the named scene, overriding its width when width > 0
func createScene(name string, width int) (*scene.Scene, error) {
	if name == "" {
		return nil, xerrors.New("no scene name given")
	}
	return scene.Lookup(name, geometry.CameraConfig{Width: width})
}

// samplingConfigFor combines the scene's recommended quality with command line
// flags. Zero -samples or -depth keeps the scene's value; seed and gamma are
// always taken from their flags, so 0 is a real seed and 0 disables gamma.
func samplingConfigFor(s *scene.Scene) (renderer.SamplingConfig, error) {
	if *samples < 0 {
		return renderer.SamplingConfig{}, xerrors.Errorf("-samples must not be negative, got %d", *samples)
	}
	if *maxDepth < 0 {
		return renderer.SamplingConfig{}, xerrors.Errorf("-depth must not be negative, got %d", *maxDepth)
	}
	if *gamma < 0 {
		return renderer.SamplingConfig{}, xerrors.Errorf("-gamma must not be negative, got %g", *gamma)
	}

	config := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
	})
	config = renderer.MergeSamplingConfig(config, renderer.SamplingConfig{
		SamplesPerPixel: *samples,
		MaxDepth:        *maxDepth,
	})
	config.Seed = *seed
	config.Gamma = *gamma
	return config, nil
}

// logSceneBounds reports the camera and the extent of the scene at -v=1
func logSceneBounds(s *scene.Scene) {
	if !glog.V(1) {
		return
	}

	camera := s.Camera.Config()
	glog.Infof("Camera at %v looking at %v, vfov %.1f", camera.Center, camera.LookAt, camera.VFov)

	box, ok := s.BoundingBox()
	if !ok || !box.IsValid() {
		glog.Infof("Scene has no finite bounds")
		return
	}
	glog.Infof("Scene bounds centered at %v, size %v", box.Center(), box.Size())
}

// outputPath returns out if set, otherwise a timestamped path under output/<scene>
func outputPath(sceneName, out string, now time.Time) string {
	if out != "" {
		return out
	}
	dir := strings.ToLower(strings.TrimSpace(sceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", timestamp))
}

// savePNG writes img to filename, creating parent directories as needed
func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return xerrors.Errorf("while creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("while creating %s: %w", filename, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return xerrors.Errorf("while encoding PNG: %w", err)
	}
	return file.Close()
}

func printProgress(done, total int) {
	fmt.Fprintf(os.Stderr, "\rRendering: %d/%d tiles (%3.0f%%)", done, total, 100*float64(done)/float64(total))
}

func printScenes() {
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Portal Raytracer")
	fmt.Fprintf(out, "Usage: %s [options]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(out, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(out, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output will be saved to output/<scene>/render_<timestamp>.png")
}
