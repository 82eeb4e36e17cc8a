// Package viz resolves tagged analytics payloads into renderer-agnostic
// chart configurations.
package viz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VizType is the payload tag declared by the backend.
type VizType string

const (
	TypeNumber   VizType = "number"
	TypeScatter  VizType = "scatter"
	TypeHeatmap  VizType = "heatmap"
	TypeLine     VizType = "line"
	TypeBar      VizType = "bar"
	TypePie      VizType = "pie"
	TypeBarOrPie VizType = "bar_or_pie"
)

// Types lists every tag the resolver understands.
var Types = []VizType{TypeNumber, TypeScatter, TypeHeatmap, TypeLine, TypeBar, TypePie, TypeBarOrPie}

// ChartKind is the resolved renderer variant.
type ChartKind string

const (
	KindScalar      ChartKind = "scalar"
	KindScatter     ChartKind = "scatter"
	KindHeatmap     ChartKind = "heatmap"
	KindLine        ChartKind = "line"
	KindBar         ChartKind = "bar"
	KindPie         ChartKind = "pie"
	KindUnsupported ChartKind = "unsupported"
)

// Payload is a backend analytics result as decoded from JSON. Data stays raw
// until the resolver knows which shape to expect.
type Payload struct {
	Type    VizType         `json:"type"`
	Title   string          `json:"title,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	XLabel  string          `json:"xLabel,omitempty"`
	VizType string          `json:"viz_type,omitempty"`
	Suffix  string          `json:"suffix,omitempty"`
}

// UnmarshalJSON accepts any JSON value as the type tag. Non-string tags keep
// their raw text so the payload still resolves to the unsupported variant.
func (p *Payload) UnmarshalJSON(b []byte) error {
	type plain Payload
	var aux struct {
		plain
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Payload(aux.plain)
	p.Type = typeTag(aux.Type)
	return nil
}

func typeTag(raw json.RawMessage) VizType {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return VizType(s)
	}
	return VizType(raw)
}

// ParsePayload decodes a single payload.
func ParsePayload(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return p, nil
}

// Point is one element of a point-based payload. Every field is optional;
// the resolver picks the first present field for each axis.
type Point struct {
	X        any `json:"x,omitempty"`
	Y        any `json:"y,omitempty"`
	Minute   any `json:"minute,omitempty"`
	Category any `json:"category,omitempty"`
	Value    any `json:"value,omitempty"`
	Count    any `json:"count,omitempty"`
}

// RendererConfig describes what to draw. Only the fields relevant to Kind
// are populated. Treat it as read-only; resolve again on new input.
type RendererConfig struct {
	Kind        ChartKind    `json:"kind"`
	Title       string       `json:"title,omitempty"`
	Scalar      *Scalar      `json:"scalar,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	Series      []Series     `json:"series,omitempty"`
	XAxis       *Axis        `json:"x_axis,omitempty"`
	YAxis       *Axis        `json:"y_axis,omitempty"`
	ShowLegend  bool         `json:"show_legend"`
	Unsupported *Unsupported `json:"unsupported,omitempty"`
}

// Scalar is a single formatted value.
type Scalar struct {
	Raw     any    `json:"raw"`
	Display string `json:"display"`
	Numeric bool   `json:"numeric"`
}

// Series is one dataset. Labelled charts use Values aligned with
// RendererConfig.Labels; pitch charts use Points.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values,omitempty"`
	Points []XY      `json:"points,omitempty"`
	Colors []string  `json:"colors"`
}

// XY is a coordinate pair.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axis carries the title and optional fixed bounds of one axis.
type Axis struct {
	Title string   `json:"title"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Unsupported is the placeholder variant for tags the resolver cannot draw.
type Unsupported struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
