package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scoutviz/internal/options"
	"scoutviz/internal/viz"
	"scoutviz/internal/weights"
)

func defaultSet(t *testing.T) weights.WeightSet {
	t.Helper()
	ws, err := weights.NewWeightSet(
		weights.Weight{Key: "attacking", Value: 40},
		weights.Weight{Key: "defending", Value: 30},
		weights.Weight{Key: "playmaking", Value: 30},
	)
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []assignment
		wantErr bool
	}{
		{"Single", []string{"attacking=70"}, []assignment{{"attacking", 70}}, false},
		{"Multiple", []string{"a=1", "b= 2"}, []assignment{{"a", 1}, {"b", 2}}, false},
		{"Negative", []string{"a=-5"}, []assignment{{"a", -5}}, false},
		{"MissingEquals", []string{"attacking"}, nil, true},
		{"EmptyKey", []string{"=4"}, nil, true},
		{"NotANumber", []string{"a=lots"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApplyAssignments(t *testing.T) {
	ws := applyAssignments(defaultSet(t), []assignment{{"attacking", 70}, {"unknown", 10}, {"defending", 0}})

	want := []int{82, 0, 18}
	for i, w := range ws {
		if w.Value != want[i] {
			t.Errorf("%s = %d, want %d", w.Key, w.Value, want[i])
		}
	}
	if ws.Sum() != weights.Total {
		t.Errorf("sum = %d", ws.Sum())
	}
}

func TestPrintWeights_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := printWeights(&buf, defaultSet(t)); err != nil {
		t.Fatal(err)
	}
	var got []weights.Weight
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 3 || got[0].Key != "attacking" {
		t.Errorf("got %+v", got)
	}
}

func TestRenderWeights(t *testing.T) {
	out := renderWeights(defaultSet(t))
	for _, want := range []string{"attacking", "defending", "playmaking", "40%", "total 100"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "█"); n != 40 {
		t.Errorf("filled cells = %d, want 40", n)
	}
}

func writePayload(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePayload(t, dir, "n.json", `{"type":"number","data":3}`),
		writePayload(t, dir, "b.json", `{"type":"bar","title":"Shots","data":[{"x":"A","y":2}]}`),
		"-",
		writePayload(t, dir, "u.json", `{"type":"radar"}`),
	}
	stdin := strings.NewReader(`{"type":"bar_or_pie","viz_type":"pie","data":[{"category":"A","count":1}]}`)

	results, err := resolveFiles(context.Background(), viz.NewResolver(nil), paths, stdin)
	if err != nil {
		t.Fatalf("resolveFiles: %v", err)
	}

	want := []viz.ChartKind{viz.KindScalar, viz.KindBar, viz.KindPie, viz.KindUnsupported}
	for i, r := range results {
		if r.Source != paths[i] {
			t.Errorf("result %d source = %s, want %s", i, r.Source, paths[i])
		}
		if r.Config.Kind != want[i] {
			t.Errorf("result %d kind = %s, want %s", i, r.Config.Kind, want[i])
		}
	}
}

func TestResolveFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writePayload(t, dir, "bad.json", `{not json`)

	if _, err := resolveFiles(context.Background(), viz.NewResolver(nil), []string{bad}, nil); err == nil {
		t.Error("expected decode error")
	}
	if _, err := resolveFiles(context.Background(), viz.NewResolver(nil), []string{filepath.Join(dir, "missing.json")}, nil); err == nil {
		t.Error("expected read error")
	}
}

func TestPrintMermaid(t *testing.T) {
	results := []resolvedFile{
		{Source: "bar.json", Config: viz.Resolve(viz.Payload{Type: viz.TypeBar, Data: []byte(`[{"x":"A","y":2}]`)})},
		{Source: "n.json", Config: viz.Resolve(viz.Payload{Type: viz.TypeNumber, Data: []byte(`7`)})},
	}
	var buf bytes.Buffer
	if err := printMermaid(&buf, results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "xychart-beta") {
		t.Errorf("missing bar diagram:\n%s", out)
	}
	if !strings.Contains(out, "%% n.json: no chart form for scalar") {
		t.Errorf("missing scalar placeholder:\n%s", out)
	}
}

func TestPrintGroups(t *testing.T) {
	var buf bytes.Buffer
	groups := options.Classify([]string{"current_goals", "growth_assists"}, "")
	if err := printGroups(&buf, groups, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Goals") || !strings.Contains(out, "growth_assists") {
		t.Errorf("unexpected listing:\n%s", out)
	}

	buf.Reset()
	if err := printGroups(&buf, nil, "xyz"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `No ML features match "xyz"`) {
		t.Errorf("unexpected empty listing: %q", buf.String())
	}
}

func TestFilterKPIs(t *testing.T) {
	catalogue := `[
		{"metric_base_label": "Goals", "options": [
			{"id": "goals", "full_label": "Goals"},
			{"id": "goals_p90", "full_label": "Goals (per 90)"}
		]},
		{"metric_base_label": "Tackles", "options": [
			{"id": "tackles", "full_label": "Tackles"}
		]}
	]`

	var buf bytes.Buffer
	if err := filterKPIs(&buf, []byte(catalogue), "p90"); err != nil {
		t.Fatalf("filterKPIs: %v", err)
	}
	var got []options.MetricGroup
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].Options) != 1 {
		t.Fatalf("got %+v", got)
	}
	if v := got[0].Options[0].LabelVariant; v != "per 90" {
		t.Errorf("variant = %q, want %q", v, "per 90")
	}

	if err := filterKPIs(&buf, []byte(`{"not": "a list"}`), ""); err == nil {
		t.Error("expected decode error")
	}
}
