package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/viewmatrix"
)

// Default render settings.
const (
	DefaultRenderSize  = 256
	DefaultSupersample = 2
	DefaultFillRatio   = 0.8
	DefaultFormat      = "webp"
	DefaultLogLevel    = "info"
	DefaultOutputName  = "renders"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir" yaml:"input_dir" toml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	LogDir    string `json:"log_dir" yaml:"log_dir" toml:"log_dir"`
	CatalogDB string `json:"catalog_db" yaml:"catalog_db" toml:"catalog_db"`
	Texture   string `json:"texture" yaml:"texture" toml:"texture"` // image path, "debug", or empty

	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// Render settings
	Format      string   `json:"format" yaml:"format" toml:"format"`
	RenderSize  int      `json:"render_size" yaml:"render_size" toml:"render_size"`
	Supersample int      `json:"supersample" yaml:"supersample" toml:"supersample"`
	FillRatio   float64  `json:"fill_ratio" yaml:"fill_ratio" toml:"fill_ratio"`
	VertexScale float64  `json:"vertex_scale" yaml:"vertex_scale" toml:"vertex_scale"`
	ViewPitch   *float64 `json:"view_pitch" yaml:"view_pitch" toml:"view_pitch"`
	ViewYaw     *float64 `json:"view_yaw" yaml:"view_yaw" toml:"view_yaw"`
	Perspective bool     `json:"view_perspective" yaml:"view_perspective" toml:"view_perspective"`
	ViewFOV     float64  `json:"view_fov" yaml:"view_fov" toml:"view_fov"` // degrees, perspective only
	ApplyPose   bool     `json:"apply_pose" yaml:"apply_pose" toml:"apply_pose"`
	Wireframe   bool     `json:"wireframe" yaml:"wireframe" toml:"wireframe"`
	Workers     int      `json:"workers" yaml:"workers" toml:"workers"`
}

// Load reads a config file, picking the decoder from the extension
// (.json, .yaml/.yml, .toml). Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	LogDir      string
	LogLevel    string
	CatalogDB   string
	Texture     string
	Format      string
	Size        int
	Workers     int
	Wireframe   bool
	Perspective bool
	FOV         float64
	ApplyPose   bool
}

// Resolve applies flags over file values and fills the remaining empty
// fields with defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.LogDir != "" {
		c.LogDir = flags.LogDir
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.CatalogDB != "" {
		c.CatalogDB = flags.CatalogDB
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.Perspective {
		c.Perspective = true
	}
	if flags.FOV > 0 {
		c.ViewFOV = flags.FOV
	}
	if flags.ApplyPose {
		c.ApplyPose = true
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, DefaultOutputName)
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		// Relative paths from a config file are relative to the input dir.
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.RenderSize <= 0 {
		c.RenderSize = DefaultRenderSize
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = DefaultFillRatio
	}
	if c.VertexScale <= 0 {
		c.VertexScale = geometry.DefaultVertexScale
	}
	if c.ViewPitch == nil {
		p := viewmatrix.DefaultPitch
		c.ViewPitch = &p
	}
	if c.ViewYaw == nil {
		y := viewmatrix.DefaultYaw
		c.ViewYaw = &y
	}
	if c.ViewFOV <= 0 || c.ViewFOV >= 180 {
		c.ViewFOV = viewmatrix.DefaultFOV
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Camera returns the orbit camera described by the view settings.
// Call after Resolve.
func (c *Config) Camera() viewmatrix.Camera {
	cam := viewmatrix.DefaultCamera()
	if c.ViewPitch != nil {
		cam.Pitch = *c.ViewPitch
	}
	if c.ViewYaw != nil {
		cam.Yaw = *c.ViewYaw
	}
	cam.Perspective = c.Perspective
	cam.FOV = c.ViewFOV
	return cam
}

// Geometry returns the mesh build options. Call after Resolve.
func (c *Config) Geometry() geometry.Options {
	return geometry.Options{VertexScale: c.VertexScale, ApplyPose: c.ApplyPose}
}
