package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"
)

var trailHeader = []string{"time", "x", "y", "z", "vx", "vy", "vz"}

func sampleRow(s Sample) []string {
	vals := []float64{s.T, s.Pos.X, s.Pos.Y, s.Z, s.Vel.X, s.Vel.Y, s.Vel.Z}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

// WriteCSV writes trail samples with a header row.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trailHeader); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write(sampleRow(s)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func readTrail(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(records))
	for i, record := range records {
		if i == 0 {
			continue
		}
		if s, ok := parseRow(record); ok {
			samples = append(samples, s)
		}
	}

	return samples, nil
}

// ExportData is the JSON shape produced by WriteJSON.
type ExportData struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Duration   float64            `json:"duration"`
	MicroStep  float64            `json:"micro_step"`
	TimeScale  float64            `json:"time_scale"`
	Samples    int                `json:"samples"`
	Times      []float64          `json:"times"`
	Positions  [][2]float64       `json:"positions"`
	Heights    []float64          `json:"heights"`
	Velocities [][3]float64       `json:"velocities"`
	Metrics    map[string]float64 `json:"metrics"`
}

// WriteJSON writes a run with its trail as indented JSON.
func WriteJSON(w io.Writer, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		ID:         meta.ID,
		Name:       meta.Name,
		Timestamp:  meta.Timestamp,
		Duration:   meta.Duration,
		MicroStep:  meta.MicroStep,
		TimeScale:  meta.TimeScale,
		Samples:    len(samples),
		Times:      make([]float64, len(samples)),
		Positions:  make([][2]float64, len(samples)),
		Heights:    make([]float64, len(samples)),
		Velocities: make([][3]float64, len(samples)),
		Metrics:    meta.Metrics,
	}

	for i, s := range samples {
		data.Times[i] = s.T
		data.Positions[i] = [2]float64{s.Pos.X, s.Pos.Y}
		data.Heights[i] = s.Z
		data.Velocities[i] = [3]float64{s.Vel.X, s.Vel.Y, s.Vel.Z}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
