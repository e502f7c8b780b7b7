package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/magpen/internal/pendulum"
	"github.com/san-kum/magpen/internal/vec"
)

// Store persists sampled runs under a base directory, one subdirectory
// per run holding metadata.json and trail.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Duration  float64            `json:"duration"`
	MicroStep float64            `json:"micro_step"`
	TimeScale float64            `json:"time_scale"`
	StartX    float64            `json:"start_x"`
	StartY    float64            `json:"start_y"`
	Magnets   int                `json:"magnets"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Sample is one recorded trajectory point.
type Sample struct {
	T   float64
	Pos vec.Vec2
	Z   float64
	Vel vec.Vec3
}

// Samples converts a sampled run into trail rows, computing the ball
// height for each state.
func Samples(cfg pendulum.Config, result *pendulum.RunResult) ([]Sample, error) {
	out := make([]Sample, len(result.States))
	for i, st := range result.States {
		ball, err := st.BallPosition(cfg)
		if err != nil {
			return nil, err
		}
		out[i] = Sample{T: result.Times[i], Pos: st.Pos, Z: ball.Z, Vel: st.Vel}
	}
	return out, nil
}

func (s *Store) Save(name string, cfg pendulum.Config, magnets []pendulum.Magnet, result *pendulum.RunResult) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		MicroStep: cfg.MicroStep,
		TimeScale: cfg.TimeScale,
		Magnets:   len(magnets),
		Metrics:   result.Metrics,
	}
	if n := len(result.Times); n > 0 {
		meta.Duration = result.Times[n-1]
		meta.StartX = result.States[0].Pos.X
		meta.StartY = result.States[0].Pos.Y
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	samples, err := Samples(cfg, result)
	if err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trail.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	return runID, WriteCSV(csvFile, samples)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrail(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trail.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readTrail(file)
}

func parseRow(record []string) (Sample, bool) {
	if len(record) < 7 {
		return Sample{}, false
	}
	vals := make([]float64, 7)
	for i := range vals {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return Sample{}, false
		}
		vals[i] = v
	}
	return Sample{
		T:   vals[0],
		Pos: vec.Vec2{X: vals[1], Y: vals[2]},
		Z:   vals[3],
		Vel: vec.Vec3{X: vals[4], Y: vals[5], Z: vals[6]},
	}, true
}
