package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"scoutviz/internal/options"
	"scoutviz/internal/viz"
)

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(GeneratorConfig{Count: 20, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(GeneratorConfig{Count: 20, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different fixtures")
	}
}

func TestGenerate_FixturesResolve(t *testing.T) {
	fixtures, err := Generate(GeneratorConfig{Count: 25, Seed: 11})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]viz.ChartKind{
		"shots":           viz.KindScatter,
		"touches":         viz.KindHeatmap,
		"xg_timeline":     viz.KindLine,
		"goal_types_pie":  viz.KindPie,
		"goal_types_bar":  viz.KindBar,
		"pass_accuracy":   viz.KindBar,
		"conversion_rate": viz.KindScalar,
	}
	if len(fixtures) != len(want) {
		t.Fatalf("got %d fixtures, want %d", len(fixtures), len(want))
	}

	for _, f := range fixtures {
		cfg := viz.Resolve(f.Payload)
		if cfg.Kind != want[f.Name] {
			t.Errorf("%s resolved to %s, want %s", f.Name, cfg.Kind, want[f.Name])
		}
		switch cfg.Kind {
		case viz.KindScatter, viz.KindHeatmap:
			if n := len(cfg.Series[0].Points); n != 25 {
				t.Errorf("%s: %d points", f.Name, n)
			}
			for _, p := range cfg.Series[0].Points {
				if p.X < 0 || p.X > viz.PitchLength || p.Y < 0 || p.Y > viz.PitchWidth {
					t.Errorf("%s: point %+v off the pitch", f.Name, p)
				}
			}
		case viz.KindLine:
			if cfg.Labels[0] != "0" {
				t.Errorf("xg timeline starts at %q", cfg.Labels[0])
			}
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fixtures, err := Generate(GeneratorConfig{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, fixtures); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "shots.json"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := viz.ParsePayload(data)
	if err != nil {
		t.Fatal(err)
	}
	if p.Type != viz.TypeScatter {
		t.Errorf("type = %s", p.Type)
	}

	data, err = os.ReadFile(filepath.Join(dir, "features.json"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		t.Fatal(err)
	}
	if groups := options.Classify(names, ""); len(groups) < 5 {
		t.Errorf("features spread over only %d groups", len(groups))
	}
}
