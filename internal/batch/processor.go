package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/logging"
	"mrr-renderer/internal/mrr"
	"mrr-renderer/internal/postprocess"
	"mrr-renderer/internal/preview"
	"mrr-renderer/internal/raster"
	"mrr-renderer/internal/session"
	"mrr-renderer/internal/texture"
	"mrr-renderer/internal/viewmatrix"
)

// Ext is the assembly file extension matched by Discover.
const Ext = ".mrr"

// Result kinds for failures that happen after decoding.
const (
	KindEmpty   = "empty" // decoded, but nothing to draw
	KindTexture = "texture"
	KindWrite   = "write"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      preview.Format
	Textures    texture.Resolver // nil disables texturing
	Texture     string           // name passed to Textures; empty disables texturing
	Geometry    geometry.Options
	Camera      viewmatrix.Camera
	Wireframe   bool
	RenderSize  int
	Supersample int
	FillRatio   float64
	Workers     int
	Log         logging.Logger
}

// Result holds the outcome of processing one file.
type Result struct {
	Path      string
	Name      string
	Joints    int
	Parts     int
	Bodies    int
	Triangles int64
	Image     string // output path relative to OutputDir
	Success   bool
	Error     string
	Kind      string // mrr.Kind of a decode failure, or one of the Kind constants
}

// Discover lists the assembly files directly inside dir, sorted by name.
// The extension match is case-insensitive.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes all files using a worker pool. Results are in input order.
func Run(cfg Config, paths []string) []Result {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					log.Infof("[%d/%d] %.1f files/sec", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	pathChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pathChan {
				results[idx] = processFile(cfg, paths[idx])
				if r := results[idx]; !r.Success {
					log.WithField("path", r.Path).WithField("kind", r.Kind).Warnf("%s: %s", r.Name, r.Error)
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		pathChan <- i
	}
	close(pathChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	res := Result{
		Path: path,
		Name: session.Metadata{FilePath: path}.DisplayName(),
	}

	a, err := mrr.Parse(path)
	if err != nil {
		res.Error = err.Error()
		res.Kind = mrr.Kind(err)
		return res
	}
	res.Joints = len(a.Joints)
	res.Parts = len(a.Parts)
	res.Bodies = a.BodyCount()

	meshes := geometry.Build(a, cfg.Geometry)
	for i := range meshes {
		res.Triangles += int64(meshes[i].Triangles())
	}
	if res.Triangles == 0 {
		res.Error = "no drawable triangles"
		res.Kind = KindEmpty
		return res
	}

	var tex *image.NRGBA
	if cfg.Textures != nil && cfg.Texture != "" {
		tex, err = cfg.Textures.Resolve(cfg.Texture)
		if err != nil {
			res.Error = fmt.Sprintf("texture: %v", err)
			res.Kind = KindTexture
			return res
		}
	}

	img := raster.Render(meshes, raster.Options{
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Camera:      cfg.Camera,
		Texture:     tex,
		Wireframe:   cfg.Wireframe,
	})

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	// Wireframes are all thin strokes; cluster removal would erase them.
	if !cfg.Wireframe {
		img = postprocess.RemoveSmallClusters(img, 0.02)
	}

	img = postprocess.CropAndCenter(img, cfg.RenderSize, cfg.FillRatio)

	rel := res.Name + cfg.Format.Ext()
	if err := preview.WriteFile(filepath.Join(cfg.OutputDir, rel), img, cfg.Format); err != nil {
		res.Error = err.Error()
		res.Kind = KindWrite
		return res
	}

	res.Image = rel
	res.Success = true
	return res
}
