// Package config provides YAML-based configuration loading for the 2048 game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Animation T2048Animation `yaml:"animation"`
	Input     T2048Input     `yaml:"input"`
}

// T2048Animation defines turn animation timing.
type T2048Animation struct {
	SlideMS   int     `yaml:"slide_ms"`   // tile travel time
	EffectMS  int     `yaml:"effect_ms"`  // merge pulse and spawn pop
	MergePeak float64 `yaml:"merge_peak"` // scale at the top of a merge pulse
}

// T2048Input defines input parameters.
type T2048Input struct {
	DragThreshold int `yaml:"drag_threshold"` // minimum mouse drag, in cells
}

// SlideDuration returns the slide animation length.
func (c T2048Config) SlideDuration() time.Duration {
	return time.Duration(c.Animation.SlideMS) * time.Millisecond
}

// EffectDuration returns the merge and spawn effect length.
func (c T2048Config) EffectDuration() time.Duration {
	return time.Duration(c.Animation.EffectMS) * time.Millisecond
}

// Validate checks that the config describes a playable game.
func (c T2048Config) Validate() error {
	var errs []error
	if c.Animation.SlideMS < 0 {
		errs = append(errs, fmt.Errorf("animation.slide_ms must not be negative, got %d", c.Animation.SlideMS))
	}
	if c.Animation.EffectMS < 0 {
		errs = append(errs, fmt.Errorf("animation.effect_ms must not be negative, got %d", c.Animation.EffectMS))
	}
	if c.Animation.MergePeak < 1 {
		errs = append(errs, fmt.Errorf("animation.merge_peak must be at least 1, got %g", c.Animation.MergePeak))
	}
	if c.Input.DragThreshold < 0 {
		errs = append(errs, fmt.Errorf("input.drag_threshold must not be negative, got %d", c.Input.DragThreshold))
	}
	return errors.Join(errs...)
}
