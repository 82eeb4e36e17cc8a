package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"scoutviz/internal/config"
	"scoutviz/internal/viz"
	"scoutviz/internal/weights"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(t *testing.T, mermaid bool) *Server {
	t.Helper()
	s, err := NewServer(&config.AppConfig{EnableMermaidCharts: mermaid}, "test")
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func TestHandleSetWeight_FromDefaults(t *testing.T) {
	s := newTestServer(t, false)

	_, out, err := s.handleSetWeight(context.Background(), nil, SetWeightInput{Key: "attacking", Value: 70})
	if err != nil {
		t.Fatalf("handleSetWeight: %v", err)
	}
	if out.Total != weights.Total {
		t.Errorf("total = %d", out.Total)
	}
	want := []weights.Weight{{Key: "attacking", Value: 70}, {Key: "defending", Value: 15}, {Key: "playmaking", Value: 15}}
	for i, w := range out.Weights {
		if w != want[i] {
			t.Errorf("weight %d = %+v, want %+v", i, w, want[i])
		}
	}
	if out.Fractions["attacking"] != 0.7 {
		t.Errorf("fractions = %v", out.Fractions)
	}
}

func TestHandleSetWeight_InvalidWeights(t *testing.T) {
	s := newTestServer(t, false)
	_, _, err := s.handleSetWeight(context.Background(), nil, SetWeightInput{
		Weights: []weights.Weight{{Key: "a", Value: 10}, {Key: "b", Value: 10}},
		Key:     "a",
		Value:   50,
	})
	if err == nil {
		t.Fatal("expected error for weights not summing to 100")
	}
}

func TestHandleResolve(t *testing.T) {
	s := newTestServer(t, true)

	_, out, err := s.handleResolve(context.Background(), nil, ResolveInput{
		Type:  "bar",
		Title: "Pass %",
		Data:  []any{map[string]any{"x": "A", "y": 1}, map[string]any{"x": "B", "y": 2}},
	})
	if err != nil {
		t.Fatalf("handleResolve: %v", err)
	}
	if out.Config.Kind != viz.KindBar || out.Config.YAxis.Title != "Percentage (%)" {
		t.Errorf("config = %+v", out.Config)
	}
	if out.Mermaid == "" {
		t.Errorf("expected mermaid output when enabled")
	}

	_, out, err = s.handleResolve(context.Background(), nil, ResolveInput{Type: "weird"})
	if err != nil {
		t.Fatalf("unsupported type must not error: %v", err)
	}
	if out.Config.Kind != viz.KindUnsupported || out.Mermaid != "" {
		t.Errorf("config = %+v, mermaid = %q", out.Config, out.Mermaid)
	}
}

func TestHandleResolve_MermaidDisabled(t *testing.T) {
	s := newTestServer(t, false)
	_, out, err := s.handleResolve(context.Background(), nil, ResolveInput{Type: "number", Data: 42.126, Suffix: "%"})
	if err != nil {
		t.Fatalf("handleResolve: %v", err)
	}
	if out.Config.Scalar.Display != "42.13%" {
		t.Errorf("display = %q", out.Config.Scalar.Display)
	}
	if out.Mermaid != "" {
		t.Errorf("mermaid should be empty when disabled")
	}
}

func TestHandleClassify(t *testing.T) {
	s := newTestServer(t, false)
	_, out, err := s.handleClassify(context.Background(), nil, ClassifyInput{
		Options: []string{"current_goals", "hist_avg_goals", "growth_assists"},
		Search:  "goal",
	})
	if err != nil {
		t.Fatalf("handleClassify: %v", err)
	}
	if len(out.Groups) != 2 {
		t.Errorf("groups = %+v", out.Groups)
	}
}

func TestServer_ToolsOverSession(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, false)

	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	serverSession, err := s.sdk.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"weights_set", "visualization_resolve", "options_classify"} {
		if !names[want] {
			t.Errorf("tool %s not registered", want)
		}
	}

	res, err := session.CallTool(ctx, &sdk.CallToolParams{
		Name:      "visualization_resolve",
		Arguments: map[string]any{"type": "weird"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}

	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatal(err)
	}
	var out ResolveOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	if out.Config.Kind != viz.KindUnsupported || out.Config.Unsupported.Type != "weird" {
		t.Errorf("structured content = %s", raw)
	}
}
