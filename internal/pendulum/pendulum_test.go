package pendulum

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.RopeLength >= cfg.Pivot.Z {
		t.Errorf("default rope %.3f should hang above the table (pivot z %.3f)",
			cfg.RopeLength, cfg.Pivot.Z)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero gravity", func(c *Config) { c.Gravity = 0 }},
		{"negative gravity", func(c *Config) { c.Gravity = -9.8 }},
		{"zero mass", func(c *Config) { c.Mass = 0 }},
		{"negative rope", func(c *Config) { c.RopeLength = -0.3 }},
		{"negative drag", func(c *Config) { c.AirDrag = -0.01 }},
		{"zero micro step", func(c *Config) { c.MicroStep = 0 }},
		{"zero time scale", func(c *Config) { c.TimeScale = 0 }},
		{"zero length scale", func(c *Config) { c.LengthScale = 0 }},
		{"NaN gravity", func(c *Config) { c.Gravity = math.NaN() }},
		{"infinite pivot", func(c *Config) { c.Pivot.Z = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrBadConfig) {
				t.Errorf("error %v does not wrap ErrBadConfig", err)
			}
		})
	}

	if err := base.Validate(); err != nil {
		t.Errorf("unmodified config failed validation: %v", err)
	}
}

func TestConfig_ValidateAllowsRepellingMagnets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MagnetCoeff = -0.0002
	if err := cfg.Validate(); err != nil {
		t.Errorf("negative magnet coefficient should be allowed: %v", err)
	}
}

func TestStepError(t *testing.T) {
	wrapped := &StepError{Step: 3, Time: 0.0003, Wrapped: ErrRopeExceeded}

	expected := "step 3 (t=0.0003): pendulum: position beyond rope reach"
	if wrapped.Error() != expected {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), expected)
	}
	if !errors.Is(wrapped, ErrRopeExceeded) {
		t.Error("StepError does not unwrap to ErrRopeExceeded")
	}

	var se *StepError
	if !errors.As(error(wrapped), &se) || se.Step != 3 {
		t.Error("errors.As failed to recover StepError")
	}
}
