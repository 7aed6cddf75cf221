package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mrr-renderer/internal/batch"
	"mrr-renderer/internal/catalog"
	"mrr-renderer/internal/config"
	"mrr-renderer/internal/logging"
	"mrr-renderer/internal/preview"
	"mrr-renderer/internal/texture"
)

func main() {
	os.Exit(run())
}

func run() int {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json, .yaml or .toml config file")
	testN := flag.Int("test", 0, "Render only first N files for testing")
	inputDir := flag.String("input", "", "Directory holding .mrr files (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/renders)")
	format := flag.String("format", "", "Output format: webp or tga (default: webp)")
	size := flag.Int("size", 0, "Output edge length in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	tex := flag.String("texture", "", "Texture image applied to bodies with UVs, or \"debug\"")
	wireframe := flag.Bool("wireframe", false, "Draw triangle edges only")
	perspective := flag.Bool("perspective", false, "Use a perspective camera")
	fov := flag.Float64("fov", 0, "Perspective field of view in degrees (default: 60)")
	applyPose := flag.Bool("pose", false, "Place each body by its part's pose")
	logDir := flag.String("log-dir", "", "Also write logs to a per-day file in this directory")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default: info)")
	dbPath := flag.String("db", "", "SQLite catalog to record results in")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		LogDir:      *logDir,
		LogLevel:    *logLevel,
		CatalogDB:   *dbPath,
		Texture:     *tex,
		Format:      *format,
		Size:        *size,
		Workers:     *workers,
		Wireframe:   *wireframe,
		Perspective: *perspective,
		FOV:         *fov,
		ApplyPose:   *applyPose,
	})

	log, err := logging.New(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Close()

	outFormat, err := preview.ParseFormat(cfg.Format)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	paths, err := batch.Discover(cfg.InputDir)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}

	// Limit for testing
	mode := ""
	if *testN > 0 && *testN < len(paths) {
		paths = paths[:*testN]
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	if len(paths) == 0 {
		log.Infof("No .mrr files in %s.", cfg.InputDir)
		return 0
	}

	// Resolve the texture once so a bad path fails before any work starts
	texCache := texture.NewCache()
	if _, err := texCache.Resolve(cfg.Texture); err != nil {
		log.Errorf("texture %s: %v", cfg.Texture, err)
		return 1
	}

	var store *catalog.Store
	if cfg.CatalogDB != "" {
		store, err = catalog.Open(cfg.CatalogDB)
		if err != nil {
			log.Errorf("%v", err)
			return 1
		}
		defer store.Close()
	}

	log.Infof("MRR assembly renderer -> %s%s", outFormat, mode)
	log.Infof("Files: %d, Workers: %d", len(paths), cfg.Workers)
	log.Infof("Output: %s", cfg.OutputDir)

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      outFormat,
		Textures:    texCache,
		Texture:     cfg.Texture,
		Geometry:    cfg.Geometry(),
		Camera:      cfg.Camera(),
		Wireframe:   cfg.Wireframe,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		FillRatio:   cfg.FillRatio,
		Workers:     cfg.Workers,
		Log:         log,
	}

	results := batch.Run(batchCfg, paths)

	log.Infof("Done in %.1fs", time.Since(start).Seconds())

	// Count results
	var failures []batch.Result
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r)
		}
	}

	log.Infof("Rendered: %d/%d", len(results)-len(failures), len(results))

	if len(failures) > 0 {
		log.Warnf("Failed (%d):", len(failures))
		limit := min(len(failures), 20)
		for _, e := range failures[:limit] {
			log.Warnf("  %s: %s", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Warnf("manifest: %v", err)
	} else if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Warnf("manifest write failed: %v", err)
	} else {
		log.Infof("Manifest: %s", manifestPath)
	}

	if store != nil {
		if err := store.Record(results, time.Now()); err != nil {
			log.Warnf("%v", err)
		} else {
			log.Infof("Catalog: %s", cfg.CatalogDB)
		}
	}

	if len(failures) > 0 {
		return 1
	}
	return 0
}
