package tactile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GestureConfig holds the recognizer thresholds. A Recognizer copies its
// config at construction; later edits to the caller's value have no effect.
type GestureConfig struct {
	LongPressDelay     time.Duration `yaml:"long_press_delay"`     // stillness before LongPress; <= 0 disables
	TapMaxDistance     float64       `yaml:"tap_max_distance"`     // max movement still counted as a tap
	TapMaxDuration     time.Duration `yaml:"tap_max_duration"`     // max press duration still counted as a tap
	DoubleTapWindow    time.Duration `yaml:"double_tap_window"`    // max gap between two taps
	SwipeThreshold     float64       `yaml:"swipe_threshold"`      // min distance for a Swipe
	SwipeMaxDuration   time.Duration `yaml:"swipe_max_duration"`   // max duration for a Swipe
	PanCancelThreshold float64       `yaml:"pan_cancel_threshold"` // movement that cancels LongPress and starts Pan
}

// DefaultGestureConfig returns the stock thresholds.
func DefaultGestureConfig() GestureConfig {
	return GestureConfig{
		LongPressDelay:     500 * time.Millisecond,
		TapMaxDistance:     10,
		TapMaxDuration:     300 * time.Millisecond,
		DoubleTapWindow:    300 * time.Millisecond,
		SwipeThreshold:     50,
		SwipeMaxDuration:   300 * time.Millisecond,
		PanCancelThreshold: 10,
	}
}

// Validate rejects negative thresholds.
func (c GestureConfig) Validate() error {
	switch {
	case c.TapMaxDistance < 0:
		return fmt.Errorf("%w: gesture.tap_max_distance must be >= 0, got %v", ErrInvalidConfig, c.TapMaxDistance)
	case c.TapMaxDuration < 0:
		return fmt.Errorf("%w: gesture.tap_max_duration must be >= 0, got %v", ErrInvalidConfig, c.TapMaxDuration)
	case c.DoubleTapWindow < 0:
		return fmt.Errorf("%w: gesture.double_tap_window must be >= 0, got %v", ErrInvalidConfig, c.DoubleTapWindow)
	case c.SwipeThreshold < 0:
		return fmt.Errorf("%w: gesture.swipe_threshold must be >= 0, got %v", ErrInvalidConfig, c.SwipeThreshold)
	case c.SwipeMaxDuration < 0:
		return fmt.Errorf("%w: gesture.swipe_max_duration must be >= 0, got %v", ErrInvalidConfig, c.SwipeMaxDuration)
	case c.PanCancelThreshold < 0:
		return fmt.Errorf("%w: gesture.pan_cancel_threshold must be >= 0, got %v", ErrInvalidConfig, c.PanCancelThreshold)
	}
	return nil
}

// PullConfig configures a PullToRefreshController.
type PullConfig struct {
	RefreshThreshold float64       `yaml:"refresh_threshold"` // pull distance that triggers a refresh
	Resistance       float64       `yaml:"resistance"`        // visual damping applied by Offset
	MaxPullDistance  float64       `yaml:"max_pull_distance"` // clamp for distance and offset
	ResetDuration    time.Duration `yaml:"reset_duration"`    // 0 snaps back without a Resetting phase
}

// DefaultPullConfig returns the stock pull-to-refresh settings.
func DefaultPullConfig() PullConfig {
	return PullConfig{
		RefreshThreshold: 80,
		Resistance:       0.5,
		MaxPullDistance:  150,
	}
}

// Validate rejects thresholds the controller cannot honor.
func (c PullConfig) Validate() error {
	switch {
	case c.RefreshThreshold <= 0:
		return fmt.Errorf("%w: pull.refresh_threshold must be > 0, got %v", ErrInvalidConfig, c.RefreshThreshold)
	case c.MaxPullDistance < c.RefreshThreshold:
		return fmt.Errorf("%w: pull.max_pull_distance %v is below refresh_threshold %v",
			ErrInvalidConfig, c.MaxPullDistance, c.RefreshThreshold)
	case c.Resistance <= 0:
		return fmt.Errorf("%w: pull.resistance must be > 0, got %v", ErrInvalidConfig, c.Resistance)
	case c.ResetDuration < 0:
		return fmt.Errorf("%w: pull.reset_duration must be >= 0, got %v", ErrInvalidConfig, c.ResetDuration)
	}
	return nil
}

// RevealConfig configures a SwipeRevealController. Actions are not loaded
// from YAML; callers attach them in code.
type RevealConfig struct {
	LeftActions  []Action `yaml:"-"` // revealed by a swipe to the right
	RightActions []Action `yaml:"-"` // revealed by a swipe to the left

	ActionThreshold float64       `yaml:"action_threshold"` // |dx| that triggers the first action
	FeltThreshold   float64       `yaml:"felt_threshold"`   // |dx| that earns a light pulse on cancel
	LockThreshold   float64       `yaml:"lock_threshold"`   // movement needed before the direction is judged
	ResetDuration   time.Duration `yaml:"reset_duration"`   // 0 snaps back without a Resetting phase
}

// DefaultRevealConfig returns the stock row-reveal settings with no actions.
func DefaultRevealConfig() RevealConfig {
	return RevealConfig{
		ActionThreshold: 80,
		FeltThreshold:   20,
		LockThreshold:   10,
		ResetDuration:   200 * time.Millisecond,
	}
}

// Validate rejects thresholds the controller cannot honor.
func (c RevealConfig) Validate() error {
	switch {
	case c.ActionThreshold <= 0:
		return fmt.Errorf("%w: reveal.action_threshold must be > 0, got %v", ErrInvalidConfig, c.ActionThreshold)
	case c.FeltThreshold < 0:
		return fmt.Errorf("%w: reveal.felt_threshold must be >= 0, got %v", ErrInvalidConfig, c.FeltThreshold)
	case c.LockThreshold < 0:
		return fmt.Errorf("%w: reveal.lock_threshold must be >= 0, got %v", ErrInvalidConfig, c.LockThreshold)
	case c.ResetDuration < 0:
		return fmt.Errorf("%w: reveal.reset_duration must be >= 0, got %v", ErrInvalidConfig, c.ResetDuration)
	}
	return nil
}

// Config groups every tunable for a host that uses all three components.
type Config struct {
	Gesture GestureConfig `yaml:"gesture"`
	Pull    PullConfig    `yaml:"pull"`
	Reveal  RevealConfig  `yaml:"reveal"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Gesture: DefaultGestureConfig(),
		Pull:    DefaultPullConfig(),
		Reveal:  DefaultRevealConfig(),
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Gesture.Validate(); err != nil {
		return err
	}
	if err := c.Pull.Validate(); err != nil {
		return err
	}
	return c.Reveal.Validate()
}

// LoadConfig reads a YAML configuration file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %q: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML bytes over DefaultConfig. ${VAR} and
// ${VAR:-default} references are expanded from the environment first.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	expanded := expandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envRefPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults replaces ${VAR} and ${VAR:-default}. Unset
// variables without a default expand to the empty string.
func expandEnvWithDefaults(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envRefPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) > 2 {
			return parts[2]
		}
		return ""
	})
}
