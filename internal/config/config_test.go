package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Gesture.CooldownMS != 250 {
		t.Errorf("expected default cooldown, got %d", cfg.Gesture.CooldownMS)
	}
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
camera:
  index: 1
gesture:
  pinch_threshold_px: 30
server:
  addr: ":9090"
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.Index != 1 {
		t.Errorf("expected camera index 1, got %d", cfg.Camera.Index)
	}
	if cfg.Gesture.PinchThresholdPx != 30 {
		t.Errorf("expected pinch threshold 30, got %g", cfg.Gesture.PinchThresholdPx)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %q", cfg.Server.Addr)
	}

	// Untouched sections keep their defaults.
	if cfg.Attention.BufferSize != 10 {
		t.Errorf("expected default attention buffer size, got %d", cfg.Attention.BufferSize)
	}
}

func TestLoad_RejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("camera: [not: a: map"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max hands zero", func(c *Config) { c.Detector.MaxHands = 0 }},
		{"max hands three", func(c *Config) { c.Detector.MaxHands = 3 }},
		{"negative cooldown", func(c *Config) { c.Gesture.CooldownMS = -1 }},
		{"zero pinch threshold", func(c *Config) { c.Gesture.PinchThresholdPx = 0 }},
		{"extension ratio below one", func(c *Config) { c.Gesture.ExtensionRatio = 0.9 }},
		{"release multiplier below one", func(c *Config) { c.Gesture.ReleaseMultiplier = 0.5 }},
		{"vote threshold exceeds buffer", func(c *Config) {
			c.Attention.BufferSize = 2
			c.Attention.VoteThreshold = 5
		}},
		{"zero smoothing", func(c *Config) { c.Cursor.Smoothing = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGestureConfig_RecognizerConversion(t *testing.T) {
	cfg := Default()
	rc := cfg.Gesture.Recognizer()

	if rc.Cooldown != 250*time.Millisecond {
		t.Errorf("expected 250ms cooldown, got %v", rc.Cooldown)
	}
	if rc.MultiClickWindow != 500*time.Millisecond {
		t.Errorf("expected 500ms multi-click window, got %v", rc.MultiClickWindow)
	}
	if rc.PinchThreshold != 20 {
		t.Errorf("expected pinch threshold 20, got %g", rc.PinchThreshold)
	}
}

func TestAttentionConfig_GateConversion(t *testing.T) {
	cfg := Default()
	gc := cfg.Attention.Gate()

	if gc.BufferSize != 10 || gc.MinSamples != 3 || gc.VoteThreshold != 3 {
		t.Errorf("unexpected gate config: %+v", gc)
	}
}
