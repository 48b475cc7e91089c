package config

import (
	"math"
	"time"
)

// SkillCurve calculates autopilot strength from the match situation.
type SkillCurve struct {
	cfg          AutopilotConfig
	initialLevel float64
}

// NewSkillCurve creates a skill curve from the autopilot config.
func NewSkillCurve(cfg AutopilotConfig) *SkillCurve {
	return &SkillCurve{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialSkill, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the starting skill (0.0 to 1.0).
func (s *SkillCurve) SetInitialLevel(level float64) {
	s.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether skill progression is active.
func (s *SkillCurve) IsEnabled() bool {
	return s.cfg.Enabled && s.cfg.Progression.Type != "none" && s.cfg.Progression.Type != ""
}

// Level returns the current skill (0.0 to 1.0). deficit is how many goals the
// autopilot trails by; elapsed is the time since the round started.
func (s *SkillCurve) Level(deficit int, elapsed time.Duration) float64 {
	if !s.IsEnabled() {
		return s.initialLevel
	}

	maxAt := float64(s.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch s.cfg.Progression.Type {
	case "deficit":
		progress = float64(deficit) / maxAt
	case "time":
		progress = elapsed.Seconds() / maxAt
	default:
		return s.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return s.initialLevel + progress*(1.0-s.initialLevel)
}

// Step returns the per-tick travel for the given skill level.
func (s *SkillCurve) Step(level float64) float64 {
	return s.cfg.BaseStep * (1.0 + level*s.cfg.Scaling.SpeedMultiplier)
}

// Jitter returns the aim error bound for the given skill level.
func (s *SkillCurve) Jitter(level float64) float64 {
	return s.cfg.Jitter * (1.0 - level*s.cfg.Scaling.JitterReduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
