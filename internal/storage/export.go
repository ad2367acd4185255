package storage

import (
	"fmt"

	"github.com/san-kum/ballsim/internal/metrics"
)

// ExportData bundles a run for a single-file JSON export.
type ExportData struct {
	Run    RunMetadata      `json:"run"`
	Frames []metrics.Sample `json:"frames"`
}

func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	return writeJSON(path, ExportData{Run: *meta, Frames: frames})
}

// ExportCSV copies a run's frame table to path, optionally keeping only
// every nth row.
func (s *Store) ExportCSV(runID, path string, every int) error {
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	if every > 1 {
		kept := frames[:0]
		for i, f := range frames {
			if i%every == 0 {
				kept = append(kept, f)
			}
		}
		frames = kept
	}

	if err := writeFrames(path, frames); err != nil {
		return fmt.Errorf("exporting %s: %w", runID, err)
	}
	return nil
}

// Column extracts one numeric series from samples by csv column name.
func Column(samples []metrics.Sample, name string) ([]float64, error) {
	pick, ok := columns[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(samples))
	for i := range samples {
		out[i] = pick(&samples[i])
	}
	return out, nil
}

var columns = map[string]func(*metrics.Sample) float64{
	"count":           func(s *metrics.Sample) float64 { return float64(s.Count) },
	"kinetic_energy":  func(s *metrics.Sample) float64 { return s.KineticEnergy },
	"max_overlap":     func(s *metrics.Sample) float64 { return s.MaxOverlap },
	"boundary_excess": func(s *metrics.Sample) float64 { return s.BoundaryExcess },
	"corrections":     func(s *metrics.Sample) float64 { return float64(s.Corrections) },
	"drag":            func(s *metrics.Sample) float64 { return s.Drag },
	"spawn_rate":      func(s *metrics.Sample) float64 { return float64(s.SpawnRate) },
}
