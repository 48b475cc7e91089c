package config

import (
	_ "embed"
)

//go:embed defaults/hockey.yaml
var defaultHockeyYAML []byte

//go:embed defaults/bombpass.yaml
var defaultBombPassYAML []byte

// DefaultHockeyConfig returns the default air hockey configuration.
func DefaultHockeyConfig() HockeyConfig {
	return HockeyConfig{
		Table: HockeyTable{
			Width:      320,
			Height:     480,
			PuckRadius: 16,
			GoalWidth:  130,
			CenterGap:  5,
		},
		Physics: HockeyPhysics{
			MaxSpeed:     18,
			Damping:      0.985,
			Restitution:  0.8,
			ImpulseBonus: 7,
		},
		Round: HockeyRound{
			EscalationMS:     15000,
			EscalationPoints: 2,
			PauseMS:          1500,
			TargetScores:     []int{3, 5, 10},
			DefaultTarget:    5,
			PaddleSizes: []PaddleSize{
				{Name: "small", Radius: 22},
				{Name: "medium", Radius: 28},
				{Name: "large", Radius: 36},
			},
			DefaultPaddle: "medium",
		},
		Autopilot: AutopilotConfig{
			Enabled:      true,
			InitialSkill: 0.35,
			BaseStep:     3.5,
			Jitter:       18,
			Progression: ProgressionConfig{
				Type:  "deficit",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				JitterReduction: 0.8,
			},
		},
	}
}

// DefaultBombPassConfig returns the default Bomb Pass configuration.
func DefaultBombPassConfig() BombPassConfig {
	return BombPassConfig{
		Field: BombField{Width: 320, Height: 480},
		Fuse:  BombFuse{MinMS: 5000, MaxMS: 15000},
	}
}
