// Package config provides typed per-game tuning for the arcade titles.
// Values load from YAML or TOML files with embedded defaults as the fallback.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// HockeyConfig contains all tuning for the air hockey table.
type HockeyConfig struct {
	Table     HockeyTable     `yaml:"table" toml:"table"`
	Physics   HockeyPhysics   `yaml:"physics" toml:"physics"`
	Round     HockeyRound     `yaml:"round" toml:"round"`
	Autopilot AutopilotConfig `yaml:"autopilot" toml:"autopilot"`
}

// HockeyTable defines the logical play-field geometry.
// All lengths are in logical units, independent of the display.
type HockeyTable struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	PuckRadius float64 `yaml:"puck_radius" toml:"puck_radius"`
	GoalWidth  float64 `yaml:"goal_width" toml:"goal_width"`
	CenterGap  float64 `yaml:"center_gap" toml:"center_gap"` // Dead zone each paddle keeps from the centre line
}

// HockeyPhysics defines per-tick kinematics.
type HockeyPhysics struct {
	MaxSpeed     float64 `yaml:"max_speed" toml:"max_speed"`
	Damping      float64 `yaml:"damping" toml:"damping"`
	Restitution  float64 `yaml:"restitution" toml:"restitution"`
	ImpulseBonus float64 `yaml:"impulse_bonus" toml:"impulse_bonus"`
}

// HockeyRound defines scoring rules and the pre-round option sets.
type HockeyRound struct {
	EscalationMS     int          `yaml:"escalation_ms" toml:"escalation_ms"`
	EscalationPoints int          `yaml:"escalation_points" toml:"escalation_points"`
	PauseMS          int          `yaml:"pause_ms" toml:"pause_ms"`
	TargetScores     []int        `yaml:"target_scores" toml:"target_scores"`
	DefaultTarget    int          `yaml:"default_target" toml:"default_target"`
	PaddleSizes      []PaddleSize `yaml:"paddle_sizes" toml:"paddle_sizes"`
	DefaultPaddle    string       `yaml:"default_paddle" toml:"default_paddle"`
}

// PaddleSize is one selectable paddle radius.
type PaddleSize struct {
	Name   string  `yaml:"name" toml:"name"`
	Radius float64 `yaml:"radius" toml:"radius"`
}

// EscalationAfter returns the idle period before fire mode switches on.
func (r HockeyRound) EscalationAfter() time.Duration {
	return time.Duration(r.EscalationMS) * time.Millisecond
}

// Pause returns the length of the post-goal pause.
func (r HockeyRound) Pause() time.Duration {
	return time.Duration(r.PauseMS) * time.Millisecond
}

// TargetIndex returns the index of DefaultTarget in TargetScores, or 0.
func (r HockeyRound) TargetIndex() int {
	for i, t := range r.TargetScores {
		if t == r.DefaultTarget {
			return i
		}
	}
	return 0
}

// PaddleIndex returns the index of DefaultPaddle in PaddleSizes, or 0.
func (r HockeyRound) PaddleIndex() int {
	for i, p := range r.PaddleSizes {
		if p.Name == r.DefaultPaddle {
			return i
		}
	}
	return 0
}

// Validate rejects geometry and coefficients the simulation cannot run with.
func (c HockeyConfig) Validate() error {
	t := c.Table
	p := c.Physics
	if !finite(t.Width, t.Height, t.PuckRadius, t.GoalWidth, t.CenterGap,
		p.MaxSpeed, p.Damping, p.Restitution, p.ImpulseBonus) {
		return fmt.Errorf("%w: table and physics values must be finite", ErrInvalid)
	}
	switch {
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("%w: table size must be positive", ErrInvalid)
	case t.PuckRadius <= 0:
		return fmt.Errorf("%w: puck radius must be positive", ErrInvalid)
	case t.GoalWidth <= 0 || t.GoalWidth >= t.Width:
		return fmt.Errorf("%w: goal width must lie in (0, width)", ErrInvalid)
	case t.CenterGap < 0:
		return fmt.Errorf("%w: centre gap must not be negative", ErrInvalid)
	}

	switch {
	case p.MaxSpeed <= 0:
		return fmt.Errorf("%w: max speed must be positive", ErrInvalid)
	case p.Damping <= 0 || p.Damping >= 1:
		return fmt.Errorf("%w: damping must lie in (0, 1)", ErrInvalid)
	case p.Restitution <= 0 || p.Restitution >= 1:
		return fmt.Errorf("%w: restitution must lie in (0, 1)", ErrInvalid)
	case p.ImpulseBonus < 0:
		return fmt.Errorf("%w: impulse bonus must not be negative", ErrInvalid)
	}

	r := c.Round
	switch {
	case r.EscalationMS <= 0 || r.PauseMS <= 0:
		return fmt.Errorf("%w: escalation and pause durations must be positive", ErrInvalid)
	case r.EscalationPoints < 1:
		return fmt.Errorf("%w: escalation points must be at least 1", ErrInvalid)
	case len(r.TargetScores) == 0:
		return fmt.Errorf("%w: no target scores", ErrInvalid)
	case len(r.PaddleSizes) == 0:
		return fmt.Errorf("%w: no paddle sizes", ErrInvalid)
	}
	for _, target := range r.TargetScores {
		if target < 1 {
			return fmt.Errorf("%w: target score %d must be positive", ErrInvalid, target)
		}
	}
	maxRadius := min(t.Width, t.Height/2-t.CenterGap) / 2
	for _, size := range r.PaddleSizes {
		if !finite(size.Radius) || size.Radius <= 0 || size.Radius >= maxRadius {
			return fmt.Errorf("%w: paddle %q radius %.1f does not fit the table", ErrInvalid, size.Name, size.Radius)
		}
	}

	return c.Autopilot.Validate()
}

// BombPassConfig contains all tuning for Bomb Pass.
type BombPassConfig struct {
	Field BombField `yaml:"field" toml:"field"`
	Fuse  BombFuse  `yaml:"fuse" toml:"fuse"`
}

// BombField is the logical surface pointer events are mapped onto.
type BombField struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// BombFuse bounds the random fuse length.
type BombFuse struct {
	MinMS int `yaml:"min_ms" toml:"min_ms"`
	MaxMS int `yaml:"max_ms" toml:"max_ms"`
}

// Min returns the shortest fuse.
func (f BombFuse) Min() time.Duration { return time.Duration(f.MinMS) * time.Millisecond }

// Max returns the longest fuse.
func (f BombFuse) Max() time.Duration { return time.Duration(f.MaxMS) * time.Millisecond }

// Validate rejects unusable fuse bounds.
func (c BombPassConfig) Validate() error {
	switch {
	case !finite(c.Field.Width, c.Field.Height):
		return fmt.Errorf("%w: field size must be finite", ErrInvalid)
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field size must be positive", ErrInvalid)
	case c.Fuse.MinMS <= 0:
		return fmt.Errorf("%w: fuse minimum must be positive", ErrInvalid)
	case c.Fuse.MaxMS < c.Fuse.MinMS:
		return fmt.Errorf("%w: fuse maximum below minimum", ErrInvalid)
	}
	return nil
}

// AutopilotConfig drives the CPU paddle and how quickly it improves.
type AutopilotConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialSkill float64           `yaml:"initial_skill" toml:"initial_skill"` // 0.0 to 1.0
	BaseStep     float64           `yaml:"base_step" toml:"base_step"`         // Logical units per tick at skill 0
	Jitter       float64           `yaml:"jitter" toml:"jitter"`               // Max random aim error in logical units
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how autopilot skill grows during a match.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "deficit", "time" or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Goals behind, or seconds, at which skill peaks
}

// ScalingConfig defines the magnitude of skill changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	JitterReduction float64 `yaml:"jitter_reduction" toml:"jitter_reduction"` // Fraction of jitter removed at full skill
}

// Validate checks the autopilot ranges.
func (c AutopilotConfig) Validate() error {
	switch {
	case !finite(c.InitialSkill, c.BaseStep, c.Jitter, c.Scaling.SpeedMultiplier, c.Scaling.JitterReduction):
		return fmt.Errorf("%w: autopilot values must be finite", ErrInvalid)
	case c.InitialSkill < 0 || c.InitialSkill > 1:
		return fmt.Errorf("%w: autopilot initial skill must lie in [0, 1]", ErrInvalid)
	case c.BaseStep < 0 || c.Jitter < 0:
		return fmt.Errorf("%w: autopilot step and jitter must not be negative", ErrInvalid)
	case c.Scaling.JitterReduction < 0 || c.Scaling.JitterReduction > 1:
		return fmt.Errorf("%w: autopilot jitter reduction must lie in [0, 1]", ErrInvalid)
	}
	switch c.Progression.Type {
	case "", "none", "deficit", "time":
		return nil
	default:
		return fmt.Errorf("%w: unknown autopilot progression %q", ErrInvalid, c.Progression.Type)
	}
}

// finite reports whether every value is neither NaN nor infinite. NaN fails
// every ordered comparison, so range checks alone let it through.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
