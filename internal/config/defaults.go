package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Animation: T2048Animation{
			SlideMS:   150,
			EffectMS:  100,
			MergePeak: 1.2,
		},
		Input: T2048Input{
			DragThreshold: 3,
		},
	}
}
