package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"scoutviz/internal/viz"
)

// GeneratorConfig controls the synthetic match data.
type GeneratorConfig struct {
	Count int // points per point-based payload
	Seed  uint64
}

// Fixture is one payload written to <Name>.json.
type Fixture struct {
	Name    string
	Payload viz.Payload
}

var categories = []string{"Open Play", "Set Piece", "Counter", "Penalty", "Own Goal"}

// FeatureNames mimics the column list of the similarity model.
var FeatureNames = []string{
	"current_goals", "current_assists", "current_xg", "current_inter_passes_kpi",
	"current_poly_dribbles", "hist_avg_goals", "hist_sum_minutes", "hist_max_xg",
	"hist_trend_goals", "growth_ratio_xg", "growth_assists", "num_hist_seasons",
	"age", "p90_sqrt_shots", "shots_p90", "inv_kpi_base",
}

// point keeps zero values, so a count of 0 or minute 0 still reaches the file.
type point map[string]any

// Generate builds one fixture per payload shape. The same seed always yields
// the same fixtures.
func Generate(cfg GeneratorConfig) ([]Fixture, error) {
	if cfg.Count <= 0 {
		cfg.Count = 40
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5c0a7))

	shots := make([]point, cfg.Count)
	for i := range shots {
		// Shots cluster in the final third.
		shots[i] = point{
			"x": round1(viz.PitchLength - math.Abs(rng.NormFloat64())*18),
			"y": round1(clamp(viz.PitchWidth/2+rng.NormFloat64()*12, 0, viz.PitchWidth)),
		}
	}

	touches := make([]point, cfg.Count)
	for i := range touches {
		touches[i] = point{
			"x": round1(rng.Float64() * viz.PitchLength),
			"y": round1(rng.Float64() * viz.PitchWidth),
		}
	}

	xg := make([]point, 0, 10)
	cumulative := 0.0
	for minute := 0; minute <= 90; minute += 10 {
		cumulative += rng.Float64() * 0.4
		xg = append(xg, point{"minute": minute, "y": round2(cumulative)})
	}

	goals := make([]point, len(categories))
	passes := make([]point, len(categories))
	for i, c := range categories {
		goals[i] = point{"category": c, "count": rng.IntN(25)}
		passes[i] = point{"x": c, "y": round1(60 + rng.Float64()*35)}
	}

	shapes := []struct {
		name string
		p    viz.Payload
		data any
	}{
		{"shots", viz.Payload{Type: viz.TypeScatter, Title: "Shot Locations"}, shots},
		{"touches", viz.Payload{Type: viz.TypeHeatmap, Title: "Touch Map"}, touches},
		{"xg_timeline", viz.Payload{Type: viz.TypeLine, Title: "Cumulative xG", XLabel: "Minute"}, xg},
		{"goal_types_pie", viz.Payload{Type: viz.TypeBarOrPie, Title: "Goal Types", VizType: "pie"}, goals},
		{"goal_types_bar", viz.Payload{Type: viz.TypeBarOrPie, Title: "Goal Types", VizType: "bar"}, goals},
		{"pass_accuracy", viz.Payload{Type: viz.TypeBar, Title: "Pass Accuracy %"}, passes},
		{"conversion_rate", viz.Payload{Type: viz.TypeNumber, Title: "Conversion Rate", Suffix: "%"}, round2(rng.Float64() * 30)},
	}

	fixtures := make([]Fixture, 0, len(shapes))
	for _, s := range shapes {
		raw, err := json.Marshal(s.data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		s.p.Data = raw
		fixtures = append(fixtures, Fixture{Name: s.name, Payload: s.p})
	}
	return fixtures, nil
}

// Save writes each fixture plus features.json into outDir.
func Save(outDir string, fixtures []Fixture) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, f := range fixtures {
		if err := writeJSON(filepath.Join(outDir, f.Name+".json"), f.Payload); err != nil {
			return err
		}
	}
	return writeJSON(filepath.Join(outDir, "features.json"), FeatureNames)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
