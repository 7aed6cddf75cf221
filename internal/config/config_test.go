package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/viewmatrix"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "render.json", `{"input_dir": "/robots", "format": "tga", "render_size": 128, "view_pitch": 0, "wireframe": true}`},
		{"yaml", "render.yaml", "input_dir: /robots\nformat: tga\nrender_size: 128\nview_pitch: 0\nwireframe: true\n"},
		{"yml", "render.yml", "input_dir: /robots\nformat: tga\nrender_size: 128\nview_pitch: 0\nwireframe: true\n"},
		{"toml", "render.toml", "input_dir = \"/robots\"\nformat = \"tga\"\nrender_size = 128\nview_pitch = 0.0\nwireframe = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.InputDir != "/robots" || cfg.Format != "tga" || cfg.RenderSize != 128 || !cfg.Wireframe {
				t.Fatalf("cfg = %+v", cfg)
			}
			if cfg.ViewPitch == nil || *cfg.ViewPitch != 0 {
				t.Fatalf("explicit zero pitch lost: %v", cfg.ViewPitch)
			}
			if cfg.ViewYaw != nil {
				t.Fatalf("unset yaw = %v, want nil", *cfg.ViewYaw)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: want error")
	}
	if _, err := Load(writeFile(t, "render.ini", "x=1")); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("ini: err = %v", err)
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("bad json: err = %v", err)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{InputDir: "robots"})

	if cfg.OutputDir != filepath.Join("robots", DefaultOutputName) {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.RenderSize != DefaultRenderSize || cfg.Supersample != DefaultSupersample {
		t.Errorf("size/supersample = %d/%d", cfg.RenderSize, cfg.Supersample)
	}
	if cfg.FillRatio != DefaultFillRatio || cfg.VertexScale != geometry.DefaultVertexScale {
		t.Errorf("fill/scale = %v/%v", cfg.FillRatio, cfg.VertexScale)
	}
	if cfg.Format != DefaultFormat || cfg.LogLevel != DefaultLogLevel {
		t.Errorf("format/level = %q/%q", cfg.Format, cfg.LogLevel)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cam := cfg.Camera(); cam != viewmatrix.DefaultCamera() {
		t.Errorf("Camera = %+v", cam)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	pitch := 10.0
	cfg := Config{
		InputDir:   "/from-file",
		OutputDir:  "out",
		Format:     "tga",
		RenderSize: 64,
		Workers:    3,
		ViewPitch:  &pitch,
	}
	cfg.Resolve(Flags{Format: "webp", Size: 512, Workers: 8})

	if cfg.InputDir != "/from-file" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.OutputDir != filepath.Join("/from-file", "out") {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.Format != "webp" || cfg.RenderSize != 512 || cfg.Workers != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
	cam := cfg.Camera()
	if cam.Pitch != 10 || cam.Yaw != viewmatrix.DefaultYaw {
		t.Errorf("Camera = %+v", cam)
	}
}

func TestResolveClampsFillRatio(t *testing.T) {
	cfg := Config{FillRatio: 1.5}
	cfg.Resolve(Flags{})
	if cfg.FillRatio != DefaultFillRatio {
		t.Fatalf("FillRatio = %v", cfg.FillRatio)
	}
}

func TestPoseAndPerspectiveSettings(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"view.json", `{"apply_pose": true, "view_perspective": true, "view_fov": 45}`},
		{"view.yaml", "apply_pose: true\nview_perspective: true\nview_fov: 45\n"},
		{"view.toml", "apply_pose = true\nview_perspective = true\nview_fov = 45.0\n"},
	}
	for _, tt := range tests {
		cfg, err := Load(writeFile(t, tt.file, tt.content))
		if err != nil {
			t.Fatalf("%s: %v", tt.file, err)
		}
		cfg.Resolve(Flags{})
		if g := cfg.Geometry(); !g.ApplyPose || g.VertexScale != geometry.DefaultVertexScale {
			t.Errorf("%s: Geometry = %+v", tt.file, g)
		}
		if cam := cfg.Camera(); !cam.Perspective || cam.FOV != 45 {
			t.Errorf("%s: Camera = %+v", tt.file, cam)
		}
	}
}

func TestPoseAndPerspectiveFlags(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{ApplyPose: true, Perspective: true, FOV: 30})
	if !cfg.Geometry().ApplyPose {
		t.Error("ApplyPose flag ignored")
	}
	if cam := cfg.Camera(); !cam.Perspective || cam.FOV != 30 {
		t.Errorf("Camera = %+v", cam)
	}

	var plain Config
	plain.Resolve(Flags{FOV: 200})
	if cam := plain.Camera(); cam.Perspective || cam.FOV != viewmatrix.DefaultFOV {
		t.Errorf("default Camera = %+v", cam)
	}
	if plain.Geometry().ApplyPose {
		t.Error("ApplyPose on by default")
	}
}
