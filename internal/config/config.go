// Package config loads and validates the gestify configuration file.
//
// The YAML file is the primary configuration surface; flags in main exist
// only for small overrides. Defaults and validation live here so the rest of
// the code can assume a well-formed config.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ranjeetds/gestify/internal/attention"
	"github.com/ranjeetds/gestify/internal/gesture"
)

// Config is the top-level YAML configuration.
type Config struct {
	Camera    CameraConfig    `yaml:"camera"`
	Detector  DetectorConfig  `yaml:"detector"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Attention AttentionConfig `yaml:"attention"`
	Cursor    CursorConfig    `yaml:"cursor"`
	Actions   ActionsConfig   `yaml:"actions"`
	Server    ServerConfig    `yaml:"server"`
}

// CameraConfig configures the capture device and the motion pre-gate.
type CameraConfig struct {
	Index           int     `yaml:"index"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	MotionThreshold float64 `yaml:"motion_threshold"` // percent of changed pixels
}

// DetectorConfig configures the landmark detection collaborator.
type DetectorConfig struct {
	MaxHands      int     `yaml:"max_hands"`
	MinConfidence float64 `yaml:"min_confidence"`
	MinTracking   float64 `yaml:"min_tracking_confidence"`
	TrackFace     bool    `yaml:"track_face"`
}

// GestureConfig carries the recognition thresholds. Pixel thresholds are
// calibrated for the configured camera resolution.
type GestureConfig struct {
	CooldownMS           int     `yaml:"cooldown_ms"`
	PinchThresholdPx     float64 `yaml:"pinch_threshold_px"`
	ExtensionRatio       float64 `yaml:"extension_ratio"`
	MultiClickWindowMS   int     `yaml:"multi_click_window_ms"`
	ScrollMinVelocity    float64 `yaml:"scroll_min_velocity"`
	ZoomThresholdPx      float64 `yaml:"zoom_threshold_px"`
	RotationThresholdRad float64 `yaml:"rotation_threshold_rad"`
	ReleaseMultiplier    float64 `yaml:"release_multiplier"`
}

// AttentionConfig configures the attention gate smoothing.
type AttentionConfig struct {
	Enabled       bool `yaml:"enabled"`
	BufferSize    int  `yaml:"buffer_size"`
	MinSamples    int  `yaml:"min_samples"`
	VoteThreshold int  `yaml:"vote_threshold"`
}

// CursorConfig configures cursor mapping into the target space.
type CursorConfig struct {
	TargetWidth  int  `yaml:"target_width"`
	TargetHeight int  `yaml:"target_height"`
	Mirror       bool `yaml:"mirror"`
	Smoothing    int  `yaml:"smoothing"`
}

// ActionsConfig configures external action dispatch.
type ActionsConfig struct {
	TimeoutMS   int `yaml:"timeout_ms"`
	RateLimitMS int `yaml:"rate_limit_ms"` // applies to continuous gestures only
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// Default returns the configuration with all calibrated default values.
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Index:           0,
			Width:           640,
			Height:          480,
			MotionThreshold: 1.0,
		},
		Detector: DetectorConfig{
			MaxHands:      2,
			MinConfidence: 0.7,
			MinTracking:   0.5,
			TrackFace:     true,
		},
		Gesture: GestureConfig{
			CooldownMS:           250,
			PinchThresholdPx:     20,
			ExtensionRatio:       1.15,
			MultiClickWindowMS:   500,
			ScrollMinVelocity:    5,
			ZoomThresholdPx:      50,
			RotationThresholdRad: 0.3,
			ReleaseMultiplier:    3.0,
		},
		Attention: AttentionConfig{
			Enabled:       true,
			BufferSize:    10,
			MinSamples:    3,
			VoteThreshold: 3,
		},
		Cursor: CursorConfig{
			TargetWidth:  1920,
			TargetHeight: 1080,
			Mirror:       true,
			Smoothing:    5,
		},
		Actions: ActionsConfig{
			TimeoutMS:   5000,
			RateLimitMS: 100,
		},
		Server: ServerConfig{
			Enabled: true,
			Addr:    ":8080",
		},
	}
}

// Load reads the config file at the given path, layered over the defaults.
// A missing file is not an error; the defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Detector.MaxHands < 1 || c.Detector.MaxHands > 2 {
		return fmt.Errorf("detector.max_hands must be 1 or 2, got %d", c.Detector.MaxHands)
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("detector.min_confidence must be in [0,1], got %g", c.Detector.MinConfidence)
	}
	if c.Gesture.CooldownMS < 0 {
		return fmt.Errorf("gesture.cooldown_ms must be >= 0, got %d", c.Gesture.CooldownMS)
	}
	if c.Gesture.PinchThresholdPx <= 0 {
		return fmt.Errorf("gesture.pinch_threshold_px must be > 0, got %g", c.Gesture.PinchThresholdPx)
	}
	if c.Gesture.ExtensionRatio <= 1 {
		return fmt.Errorf("gesture.extension_ratio must be > 1, got %g", c.Gesture.ExtensionRatio)
	}
	if c.Gesture.ReleaseMultiplier < 1 {
		return fmt.Errorf("gesture.release_multiplier must be >= 1, got %g", c.Gesture.ReleaseMultiplier)
	}
	if c.Attention.BufferSize < 1 {
		return fmt.Errorf("attention.buffer_size must be >= 1, got %d", c.Attention.BufferSize)
	}
	if c.Attention.VoteThreshold > c.Attention.BufferSize {
		return fmt.Errorf("attention.vote_threshold %d exceeds buffer_size %d",
			c.Attention.VoteThreshold, c.Attention.BufferSize)
	}
	if c.Cursor.Smoothing < 1 {
		return fmt.Errorf("cursor.smoothing must be >= 1, got %d", c.Cursor.Smoothing)
	}
	return nil
}

// Recognizer converts the gesture section into the recognizer configuration.
func (c *GestureConfig) Recognizer() gesture.Config {
	return gesture.Config{
		Cooldown:          time.Duration(c.CooldownMS) * time.Millisecond,
		PinchThreshold:    c.PinchThresholdPx,
		ExtensionRatio:    c.ExtensionRatio,
		MultiClickWindow:  time.Duration(c.MultiClickWindowMS) * time.Millisecond,
		ScrollMinVelocity: c.ScrollMinVelocity,
		ZoomThreshold:     c.ZoomThresholdPx,
		RotationThreshold: c.RotationThresholdRad,
		ReleaseMultiplier: c.ReleaseMultiplier,
	}
}

// Gate converts the attention section into the gate configuration.
func (c *AttentionConfig) Gate() attention.Config {
	return attention.Config{
		BufferSize:    c.BufferSize,
		MinSamples:    c.MinSamples,
		VoteThreshold: c.VoteThreshold,
	}
}
