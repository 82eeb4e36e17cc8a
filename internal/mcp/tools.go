package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"scoutviz/internal/options"
	"scoutviz/internal/visuals"
	"scoutviz/internal/viz"
	"scoutviz/internal/weights"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// SetWeightInput is the argument of weights_set.
type SetWeightInput struct {
	Weights []weights.Weight `json:"weights,omitempty" jsonschema:"Current weight set in display order. Omit to start from the profile defaults."`
	Key     string           `json:"key" jsonschema:"Key of the weight being adjusted"`
	Value   int              `json:"value" jsonschema:"New value for the key, clamped to 0-100"`
}

// SetWeightOutput is the result of weights_set.
type SetWeightOutput struct {
	Weights   []weights.Weight   `json:"weights"`
	Total     int                `json:"total"`
	Fractions map[string]float64 `json:"fractions"`
}

// ResolveInput is the argument of visualization_resolve.
type ResolveInput struct {
	Type    string `json:"type" jsonschema:"Payload tag declared by the analytics backend"`
	Title   string `json:"title,omitempty"`
	Data    any    `json:"data,omitempty" jsonschema:"Scalar for number payloads, otherwise a list of points"`
	XLabel  string `json:"xLabel,omitempty"`
	VizType string `json:"viz_type,omitempty" jsonschema:"pie or bar, for bar_or_pie payloads"`
	Suffix  string `json:"suffix,omitempty"`
}

// ResolveOutput is the result of visualization_resolve.
type ResolveOutput struct {
	Config  viz.RendererConfig `json:"config"`
	Mermaid string             `json:"mermaid,omitempty"`
}

// ClassifyInput is the argument of options_classify.
type ClassifyInput struct {
	Options []string `json:"options" jsonschema:"Raw option ids, e.g. ML feature names"`
	Search  string   `json:"search,omitempty" jsonschema:"Case-insensitive substring filter"`
}

// ClassifyOutput is the result of options_classify.
type ClassifyOutput struct {
	Groups []options.OptionGroup `json:"groups"`
}

func (s *Server) registerTools() error {
	sdk.AddTool(s.sdk, &sdk.Tool{
		Name: "weights_set",
		Description: "Adjust one similarity-search weight. The remaining weights are rebalanced proportionally so the set always sums to 100. " +
			"Send back the returned weights on the next call; the server keeps no state.",
	}, s.handleSetWeight)

	resolveSchema, err := resolveInputSchema()
	if err != nil {
		return err
	}
	sdk.AddTool(s.sdk, &sdk.Tool{
		Name: "visualization_resolve",
		Description: "Turn a tagged analytics payload into a chart configuration (scalar, bar, pie, line, scatter or heatmap). " +
			"Unknown types return an 'unsupported' configuration instead of an error.",
		InputSchema: resolveSchema,
	}, s.handleResolve)

	sdk.AddTool(s.sdk, &sdk.Tool{
		Name:        "options_classify",
		Description: "Group ML feature names into labelled categories with readable labels, optionally filtered by a search term.",
	}, s.handleClassify)

	return nil
}

// resolveInputSchema infers the schema and lists the known tags on "type".
func resolveInputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ResolveInput](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer resolve schema: %w", err)
	}
	typeProp, ok := schema.Properties["type"]
	if !ok {
		return nil, fmt.Errorf("resolve schema has no type property")
	}
	// Examples, not an enum: unknown tags must still reach the resolver.
	typeProp.Examples = make([]any, len(viz.Types))
	for i, t := range viz.Types {
		typeProp.Examples[i] = string(t)
	}
	return schema, nil
}

func (s *Server) handleSetWeight(ctx context.Context, req *sdk.CallToolRequest, in SetWeightInput) (*sdk.CallToolResult, SetWeightOutput, error) {
	current := s.defaults
	if len(in.Weights) > 0 {
		ws, err := weights.NewWeightSet(in.Weights...)
		if err != nil {
			return nil, SetWeightOutput{}, fmt.Errorf("invalid weights: %w", err)
		}
		current = ws
	}

	next := weights.SetWeight(current, in.Key, in.Value)
	log.Debug().Str("key", in.Key).Int("value", in.Value).Interface("weights", next).Msg("Weight updated")

	return nil, SetWeightOutput{
		Weights:   next,
		Total:     next.Sum(),
		Fractions: next.Fractions(),
	}, nil
}

func (s *Server) handleResolve(ctx context.Context, req *sdk.CallToolRequest, in ResolveInput) (*sdk.CallToolResult, ResolveOutput, error) {
	p, err := in.payload()
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	cfg := s.resolver.Resolve(p)
	if cfg.Kind == viz.KindUnsupported {
		log.Warn().Str("type", in.Type).Str("reason", cfg.Unsupported.Reason).Msg("Unsupported visualization payload")
	}

	out := ResolveOutput{Config: cfg}
	if s.cfg.EnableMermaidCharts {
		out.Mermaid = visuals.GenerateMermaid(cfg)
	}
	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *sdk.CallToolRequest, in ClassifyInput) (*sdk.CallToolResult, ClassifyOutput, error) {
	groups := s.classifier.Classify(in.Options, in.Search)
	log.Debug().Int("options", len(in.Options)).Str("search", in.Search).Int("groups", len(groups)).Msg("Options classified")
	return nil, ClassifyOutput{Groups: groups}, nil
}

func (in ResolveInput) payload() (viz.Payload, error) {
	p := viz.Payload{
		Type:    viz.VizType(in.Type),
		Title:   in.Title,
		XLabel:  in.XLabel,
		VizType: in.VizType,
		Suffix:  in.Suffix,
	}
	if in.Data != nil {
		raw, err := json.Marshal(in.Data)
		if err != nil {
			return viz.Payload{}, fmt.Errorf("failed to encode payload data: %w", err)
		}
		p.Data = raw
	}
	return p, nil
}
