package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProfile_Missing(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing profile should not error: %v", err)
	}
	ws, err := p.WeightSet()
	if err != nil {
		t.Fatalf("WeightSet: %v", err)
	}
	if got := ws.Keys(); len(got) != 3 || got[0] != "attacking" {
		t.Errorf("default keys = %v", got)
	}
}

func TestLoadProfile_KeepsWeightOrder(t *testing.T) {
	path := writeProfile(t, `
palette = ["red", "blue"]

[[weights]]
key = "playmaking"
value = 20

[[weights]]
key = "attacking"
value = 50

[[weights]]
key = "defending"
value = 30
`)

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if len(p.Palette) != 2 || p.Palette[1] != "blue" {
		t.Errorf("palette = %v", p.Palette)
	}

	ws, err := p.WeightSet()
	if err != nil {
		t.Fatalf("WeightSet: %v", err)
	}
	want := []string{"playmaking", "attacking", "defending"}
	for i, k := range ws.Keys() {
		if k != want[i] {
			t.Errorf("key %d = %s, want %s", i, k, want[i])
		}
	}
}

func TestLoadProfile_RejectsBadWeights(t *testing.T) {
	path := writeProfile(t, `
[[weights]]
key = "attacking"
value = 70

[[weights]]
key = "defending"
value = 70
`)
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected error for weights not summing to 100")
	}
}

func TestLoadProfile_Malformed(t *testing.T) {
	path := writeProfile(t, `weights = [`)
	if _, err := LoadProfile(path); err == nil {
		t.Fatal("expected decode error")
	}
}
