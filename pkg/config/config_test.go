package config

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quadcheck/pkg/geom"
	"quadcheck/pkg/quadric"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Surface.Build()
	if err != nil {
		t.Fatal(err)
	}
	if s != (quadric.TaperedCylinder{R1: 0.5, R2: 0, Length: 0.9}) {
		t.Fatalf("default surface %#v", s)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if cfg.Render.Width != 512 || cfg.Shading.TileSize != 10 {
		t.Fatalf("defaults lost: %+v", cfg.Render)
	}
}

func TestLoadConfigOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
render:
  width: 64
  height: 32
  root_policy: near-only
surface:
  kind: cone
  half_angle_deg: 45
  z_max: 2
shading:
  falloff: power
  background: flat
  flat: 20
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Width != 64 || cfg.Render.Height != 32 || cfg.Render.RootPolicy != "near-only" {
		t.Fatalf("render: %+v", cfg.Render)
	}
	if cfg.Render.NumThreads != 4 || len(cfg.Render.Focal) != 3 {
		t.Fatalf("unset render keys should keep defaults: %+v", cfg.Render)
	}
	if cfg.Shading.Falloff != "power" || cfg.Shading.Background != "flat" || cfg.Shading.Flat != 20 {
		t.Fatalf("shading: %+v", cfg.Shading)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	s, err := cfg.Surface.Build()
	if err != nil {
		t.Fatal(err)
	}
	cn, ok := s.(quadric.Cone)
	if !ok {
		t.Fatalf("expected cone, got %T", s)
	}
	if math.Abs(cn.Slope-1) > 1e-15 || cn.ZMin != 0 || cn.ZMax != 2 {
		t.Fatalf("cone %+v", cn)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := 0.3
	cfg := DefaultConfig()
	cfg.Surface = SurfaceConfig{Kind: "sphere", Radius: &r, Center: []float64{0.1, 0, -0.1}}
	cfg.Upload.Bucket = "renders"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}
	back, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Upload.Bucket != "renders" || back.Surface.Radius == nil || *back.Surface.Radius != 0.3 {
		t.Fatalf("round trip lost values: %+v", back.Surface)
	}
	s, err := back.Surface.Build()
	if err != nil {
		t.Fatal(err)
	}
	if s != (quadric.Sphere{Center: geom.V(0.1, 0, -0.1), Radius: 0.3}) {
		t.Fatalf("sphere %#v", s)
	}
}

func TestSurfaceBuildPlacement(t *testing.T) {
	sc := SurfaceConfig{Kind: "tapered", Base: []float64{0, 0, -0.5}, Axis: []float64{0, 2, 0}}
	s, err := sc.Build()
	if err != nil {
		t.Fatal(err)
	}
	p, ok := s.(quadric.Placed)
	if !ok {
		t.Fatalf("expected placed surface, got %T", s)
	}
	if p.Axis() != geom.V(0, 1, 0) || p.Kind() != quadric.KindTaperedCylinder {
		t.Fatalf("placement %+v", p)
	}
}

func TestSurfaceBuildErrors(t *testing.T) {
	neg := -1.0
	one := 1.0
	cases := []SurfaceConfig{
		{Kind: "torus"},
		{Kind: "sphere", Radius: &neg},
		{Kind: "cone", Slope: &one, HalfAngleDeg: &one},
		{Kind: "cylinder", Axis: []float64{1, 0}},
		{Kind: "cylinder", Axis: []float64{0, 0, 0}},
		{Kind: "sphere", Center: []float64{1}},
	}
	for i, sc := range cases {
		if _, err := sc.Build(); !errors.Is(err, quadric.ErrInvalidSurface) {
			t.Fatalf("case %d: expected ErrInvalidSurface, got %v", i, err)
		}
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Render.Width = 0
	cfg.Render.Focal = []float64{0, -1, 0}
	cfg.Shading.Falloff = "cubic"
	cfg.Shading.Light = 300
	cfg.Output.Upscale = 0
	cfg.Upload.Enabled = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"render size", "image plane", "falloff", "light grey", "upscale", "bucket"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %v", want, err)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"QUADCHECK_WIDTH":   "128",
		"QUADCHECK_SURFACE": "cylinder",
		"QUADCHECK_UPLOAD":  "true",
		"S3_BUCKET":         "frames",
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Width != 128 || cfg.Render.Height != 512 {
		t.Fatalf("render %+v", cfg.Render)
	}
	if cfg.Surface.Kind != "cylinder" || !cfg.Upload.Enabled || cfg.Upload.Bucket != "frames" {
		t.Fatalf("env not applied: %+v %+v", cfg.Surface, cfg.Upload)
	}

	env["QUADCHECK_HEIGHT"] = "tall"
	if err := DefaultConfig().ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Fatal("expected error for non-numeric height")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if err := LoadEnvFile(t.TempDir()); err != nil {
		t.Fatalf("a directory should be skipped: %v", err)
	}

	const key = "QUADCHECK_TEST_ENV_FILE"
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(key) })
	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(key); got != "from-file" {
		t.Fatalf("got %q", got)
	}
}

func TestThreads(t *testing.T) {
	if (RenderConfig{NumThreads: 3}).Threads() != 3 {
		t.Fatal("explicit thread count ignored")
	}
	if (RenderConfig{}).Threads() < 1 {
		t.Fatal("auto thread count must be positive")
	}
}
