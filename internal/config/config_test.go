package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points the search path at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var hockey HockeyConfig
	if err := yaml.Unmarshal(defaultHockeyYAML, &hockey); err != nil {
		t.Fatalf("embedded hockey.yaml: %v", err)
	}
	if !reflect.DeepEqual(hockey, DefaultHockeyConfig()) {
		t.Errorf("embedded hockey defaults drifted:\n got %+v\nwant %+v", hockey, DefaultHockeyConfig())
	}

	var bomb BombPassConfig
	if err := yaml.Unmarshal(defaultBombPassYAML, &bomb); err != nil {
		t.Fatalf("embedded bombpass.yaml: %v", err)
	}
	if !reflect.DeepEqual(bomb, DefaultBombPassConfig()) {
		t.Errorf("embedded bombpass defaults drifted: %+v", bomb)
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultHockeyConfig().Validate(); err != nil {
		t.Errorf("DefaultHockeyConfig().Validate() = %v", err)
	}
	if err := DefaultBombPassConfig().Validate(); err != nil {
		t.Errorf("DefaultBombPassConfig().Validate() = %v", err)
	}
}

func TestLoadHockeyEmbeddedFallback(t *testing.T) {
	isolate(t)

	cfg, err := LoadHockey("")
	if err != nil {
		t.Fatalf("LoadHockey() error = %v", err)
	}
	if cfg.Table.Width != 320 || cfg.Round.DefaultTarget != 5 {
		t.Errorf("unexpected defaults: %+v", cfg.Table)
	}
}

func TestLoadHockeyCustomYAMLOverlay(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fast.yaml")
	writeFile(t, path, "physics:\n  max_speed: 24\nround:\n  pause_ms: 500\n")

	cfg, err := LoadHockey(path)
	if err != nil {
		t.Fatalf("LoadHockey(%q) error = %v", path, err)
	}
	if cfg.Physics.MaxSpeed != 24 {
		t.Errorf("MaxSpeed = %v, expected 24", cfg.Physics.MaxSpeed)
	}
	if cfg.Round.Pause() != 500*time.Millisecond {
		t.Errorf("Pause() = %v, expected 500ms", cfg.Round.Pause())
	}
	// Untouched keys keep their defaults.
	if cfg.Physics.Damping != 0.985 || cfg.Table.GoalWidth != 130 {
		t.Errorf("overlay clobbered defaults: %+v %+v", cfg.Physics, cfg.Table)
	}
}

func TestLoadHockeyCustomTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "hockey.toml")
	writeFile(t, path, `
[table]
goal_width = 100.0

[round]
target_scores = [1, 7]
default_target = 7
`)

	cfg, err := LoadHockey(path)
	if err != nil {
		t.Fatalf("LoadHockey(%q) error = %v", path, err)
	}
	if cfg.Table.GoalWidth != 100 {
		t.Errorf("GoalWidth = %v, expected 100", cfg.Table.GoalWidth)
	}
	if got := cfg.Round.TargetScores; !reflect.DeepEqual(got, []int{1, 7}) {
		t.Errorf("TargetScores = %v", got)
	}
	if cfg.Round.TargetIndex() != 1 {
		t.Errorf("TargetIndex() = %d, expected 1", cfg.Round.TargetIndex())
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	unknown := filepath.Join(dir, "hockey.ini")
	writeFile(t, unknown, "width=1")
	if _, err := LoadHockey(unknown); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("unknown extension error = %v, expected ErrUnknownFormat", err)
	}

	invalid := filepath.Join(dir, "bad.yaml")
	writeFile(t, invalid, "physics:\n  damping: 1.5\n")
	if _, err := LoadHockey(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("invalid damping error = %v, expected ErrInvalid", err)
	}

	nanYAML := filepath.Join(dir, "nan.yaml")
	writeFile(t, nanYAML, "physics:\n  max_speed: .nan\n")
	if _, err := LoadHockey(nanYAML); !errors.Is(err, ErrInvalid) {
		t.Errorf("NaN max speed error = %v, expected ErrInvalid", err)
	}

	nanTOML := filepath.Join(dir, "nan.toml")
	writeFile(t, nanTOML, "[table]\nwidth = nan\n")
	if _, err := LoadHockey(nanTOML); !errors.Is(err, ErrInvalid) {
		t.Errorf("NaN width error = %v, expected ErrInvalid", err)
	}

	if _, err := LoadBombPass(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	// Local directory is consulted after the user directory.
	writeFile(t, filepath.Join("configs", "bombpass.yaml"), "fuse:\n  min_ms: 1000\n  max_ms: 2000\n")
	cfg, err := LoadBombPass("")
	if err != nil {
		t.Fatalf("LoadBombPass() error = %v", err)
	}
	if cfg.Fuse.MinMS != 1000 {
		t.Errorf("local config not used, MinMS = %d", cfg.Fuse.MinMS)
	}

	writeFile(t, filepath.Join(home, ".arcade", "configs", "bombpass.toml"), "[fuse]\nmin_ms = 3000\nmax_ms = 4000\n")
	cfg, err = LoadBombPass("")
	if err != nil {
		t.Fatalf("LoadBombPass() error = %v", err)
	}
	if cfg.Fuse.MinMS != 3000 || cfg.Fuse.Max() != 4*time.Second {
		t.Errorf("user config not preferred: %+v", cfg.Fuse)
	}
}

func TestLoadSkipsBrokenSearchedFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "bombpass.yaml"), "fuse:\n  min_ms: 9000\n  max_ms: 10\n")

	cfg, err := LoadBombPass("")
	if err != nil {
		t.Fatalf("LoadBombPass() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBombPassConfig()) {
		t.Errorf("broken user file should fall back to defaults, got %+v", cfg)
	}
}

func TestHockeyValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HockeyConfig)
	}{
		{"zero width", func(c *HockeyConfig) { c.Table.Width = 0 }},
		{"goal wider than table", func(c *HockeyConfig) { c.Table.GoalWidth = 400 }},
		{"restitution one", func(c *HockeyConfig) { c.Physics.Restitution = 1 }},
		{"negative bonus", func(c *HockeyConfig) { c.Physics.ImpulseBonus = -1 }},
		{"no targets", func(c *HockeyConfig) { c.Round.TargetScores = nil }},
		{"paddle too big", func(c *HockeyConfig) { c.Round.PaddleSizes[0].Radius = 200 }},
		{"zero pause", func(c *HockeyConfig) { c.Round.PauseMS = 0 }},
		{"bad progression", func(c *HockeyConfig) { c.Autopilot.Progression.Type = "score" }},
		{"NaN width", func(c *HockeyConfig) { c.Table.Width = math.NaN() }},
		{"NaN damping", func(c *HockeyConfig) { c.Physics.Damping = math.NaN() }},
		{"infinite max speed", func(c *HockeyConfig) { c.Physics.MaxSpeed = math.Inf(1) }},
		{"NaN paddle radius", func(c *HockeyConfig) { c.Round.PaddleSizes[1].Radius = math.NaN() }},
		{"NaN autopilot jitter", func(c *HockeyConfig) { c.Autopilot.Jitter = math.NaN() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultHockeyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestRoundIndexes(t *testing.T) {
	r := DefaultHockeyConfig().Round
	if r.TargetIndex() != 1 {
		t.Errorf("TargetIndex() = %d, expected 1", r.TargetIndex())
	}
	if r.PaddleIndex() != 1 {
		t.Errorf("PaddleIndex() = %d, expected 1", r.PaddleIndex())
	}
	r.DefaultPaddle = "huge"
	if r.PaddleIndex() != 0 {
		t.Errorf("unknown paddle should fall back to index 0")
	}
}

func TestSkillCurve(t *testing.T) {
	cfg := DefaultHockeyConfig().Autopilot
	curve := NewSkillCurve(cfg)

	if got := curve.Level(0, 0); got != 0.35 {
		t.Errorf("Level(0) = %v, expected 0.35", got)
	}
	if got := curve.Level(3, 0); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Level(3) = %v, expected 1.0", got)
	}
	if got := curve.Level(10, 0); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Level should clamp at 1.0, got %v", got)
	}
	if curve.Step(1.0) != cfg.BaseStep*2 {
		t.Errorf("Step(1.0) = %v", curve.Step(1.0))
	}
	if curve.Jitter(0) != cfg.Jitter {
		t.Errorf("Jitter(0) = %v", curve.Jitter(0))
	}

	cfg.Progression.Type = "none"
	flat := NewSkillCurve(cfg)
	if flat.IsEnabled() || flat.Level(3, time.Hour) != 0.35 {
		t.Error("disabled progression should hold the initial level")
	}

	cfg.Progression = ProgressionConfig{Type: "time", MaxAt: 60}
	timed := NewSkillCurve(cfg)
	if got := timed.Level(0, 30*time.Second); got <= 0.35 || got >= 1 {
		t.Errorf("time progression midpoint = %v", got)
	}
}
