// Package scenario runs scripted batches of drops described in YAML
// files. Each drop picks a preset, overrides the release point, and is
// saved as its own run, so a whole figure's worth of trails can be
// produced in one command.
package scenario

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/magpen/internal/config"
	"github.com/san-kum/magpen/internal/metrics"
	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/storage"
)

// Scenario is a scripted sequence of drops.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Drops       []Drop `yaml:"drops"`
}

// Drop is a single release. Preset names the base configuration (empty
// means the default), X and Y set the release point, Duration overrides
// the run length when positive, and SaveAs names the stored run.
type Drop struct {
	Preset   string  `yaml:"preset"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Duration float64 `yaml:"duration"`
	SaveAs   string  `yaml:"save_as"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Drops) == 0 {
		return nil, fmt.Errorf("scenario %q has no drops", sc.Name)
	}
	return &sc, nil
}

// Run executes every drop in order, saving each trail to st, and
// returns the IDs of the saved runs. The first failing drop stops the
// scenario; runs saved before it are kept.
func Run(ctx context.Context, st *storage.Store, sc *Scenario) ([]string, error) {
	ids := make([]string, 0, len(sc.Drops))

	for i, drop := range sc.Drops {
		cfg := config.DefaultConfig()
		if drop.Preset != "" {
			cfg = config.GetPreset(drop.Preset)
			if cfg == nil {
				return ids, fmt.Errorf("drop %d: unknown preset %q", i+1, drop.Preset)
			}
		}
		cfg.Start.X = drop.X
		cfg.Start.Y = drop.Y
		if drop.Duration > 0 {
			cfg.Run.Duration = drop.Duration
		}
		if err := cfg.Validate(); err != nil {
			return ids, fmt.Errorf("drop %d: %w", i+1, err)
		}

		start, err := cfg.StartState()
		if err != nil {
			return ids, fmt.Errorf("drop %d: %w", i+1, err)
		}

		p := cfg.Pendulum()
		magnets := cfg.MagnetList()

		fmt.Printf("drop %d/%d: (%.3f, %.3f) for %.1fs\n", i+1, len(sc.Drops), drop.X, drop.Y, cfg.Run.Duration)

		result, err := pendulum.Run(ctx, start, p, magnets, cfg.Run.Duration, cfg.Run.SampleEvery, metrics.Default(p, magnets))
		if err != nil {
			return ids, fmt.Errorf("drop %d: %w", i+1, err)
		}

		name := drop.SaveAs
		if name == "" {
			name = fmt.Sprintf("drop-%d", i+1)
		}
		id, err := st.Save(name, p, magnets, result)
		if err != nil {
			return ids, fmt.Errorf("drop %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
