package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsMatchEmbeddedYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadT2048("")
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}
	if cfg != DefaultT2048Config() {
		t.Errorf("embedded config = %+v, want %+v", cfg, DefaultT2048Config())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "animation:\n  slide_ms: 80\ninput:\n  drag_threshold: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}
	if cfg.Animation.SlideMS != 80 {
		t.Errorf("slide_ms = %d, want 80", cfg.Animation.SlideMS)
	}
	if cfg.Input.DragThreshold != 5 {
		t.Errorf("drag_threshold = %d, want 5", cfg.Input.DragThreshold)
	}
	// Unset fields keep their defaults.
	if cfg.Animation.EffectMS != 100 {
		t.Errorf("effect_ms = %d, want default 100", cfg.Animation.EffectMS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("animation: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("animation:\n  merge_peak: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), "failed to read config"},
		{"malformed yaml", bad, "failed to parse config"},
		{"invalid values", invalid, "merge_peak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadT2048(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLocalConfigOverridesEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "t2048.yaml"), []byte("animation:\n  effect_ms: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048("")
	if err != nil {
		t.Fatalf("LoadT2048: %v", err)
	}
	if cfg.Animation.EffectMS != 40 {
		t.Errorf("effect_ms = %d, want 40", cfg.Animation.EffectMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*T2048Config)
		wantErr bool
	}{
		{"defaults", func(*T2048Config) {}, false},
		{"instant animations", func(c *T2048Config) { c.Animation.SlideMS = 0; c.Animation.EffectMS = 0 }, false},
		{"negative slide", func(c *T2048Config) { c.Animation.SlideMS = -1 }, true},
		{"negative effect", func(c *T2048Config) { c.Animation.EffectMS = -5 }, true},
		{"peak below one", func(c *T2048Config) { c.Animation.MergePeak = 0.9 }, true},
		{"negative threshold", func(c *T2048Config) { c.Input.DragThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
