package viz

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pitch-space bounds for scatter and heatmap payloads.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0
)

const (
	pitchXTitle      = "Pitch X (0–120)"
	pitchYTitle      = "Pitch Y (0–80)"
	percentageTitle  = "Percentage (%)"
	countTitle       = "Count"
	pieVizType       = "pie"
	percentageMarker = "%"
)

// DefaultPalette is cycled across categories of pie charts. Bar charts use
// only the first colour.
var DefaultPalette = []string{
	"rgba(75, 192, 192, 0.6)",
	"rgba(255, 99, 132, 0.6)",
	"rgba(255, 205, 86, 0.6)",
	"rgba(54, 162, 235, 0.6)",
	"rgba(153, 102, 255, 0.6)",
}

// Resolver turns payloads into renderer configurations.
type Resolver struct {
	Palette []string
}

// NewResolver returns a Resolver using palette, or DefaultPalette when empty.
func NewResolver(palette []string) *Resolver {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &Resolver{Palette: p}
}

var defaultResolver = NewResolver(nil)

// Resolve resolves p with the default palette.
func Resolve(p Payload) RendererConfig {
	return defaultResolver.Resolve(p)
}

// Resolve never fails: unknown tags and undecodable data produce the
// unsupported variant.
func (r *Resolver) Resolve(p Payload) RendererConfig {
	switch p.Type {
	case TypeNumber:
		return r.resolveNumber(p)
	case TypeScatter, TypeHeatmap:
		return r.resolvePitch(p)
	case TypeLine:
		return r.resolveLine(p)
	case TypeBar, TypeBarOrPie, TypePie:
		return r.resolveCategorical(p)
	default:
		return unsupported(p, fmt.Sprintf("unsupported visualization type %q", p.Type))
	}
}

func (r *Resolver) resolveNumber(p Payload) RendererConfig {
	var raw any
	if len(p.Data) > 0 {
		if err := json.Unmarshal(p.Data, &raw); err != nil {
			raw = string(p.Data)
		}
	}

	scalar := &Scalar{Raw: raw}
	if v, ok := raw.(float64); ok {
		scalar.Numeric = true
		// Ties round away from zero: 0.125 shows as 0.13.
		scalar.Display = strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64) + p.Suffix
	} else if raw != nil {
		scalar.Display = fmt.Sprint(raw)
	}

	return RendererConfig{
		Kind:   KindScalar,
		Title:  p.Title,
		Scalar: scalar,
	}
}

func (r *Resolver) resolvePitch(p Payload) RendererConfig {
	points, err := decodePoints(p.Data)
	if err != nil {
		return unsupported(p, err.Error())
	}

	xy := make([]XY, 0, len(points))
	for _, pt := range points {
		x, _ := toFloat(pt.X)
		y, _ := toFloat(pt.Y)
		xy = append(xy, XY{X: x, Y: y})
	}

	kind := KindScatter
	if p.Type == TypeHeatmap {
		kind = KindHeatmap
	}

	return RendererConfig{
		Kind:  kind,
		Title: p.Title,
		Series: []Series{{
			Label:  p.Title,
			Points: xy,
			Colors: []string{r.color(0)},
		}},
		XAxis:      &Axis{Title: pitchXTitle, Min: ptr(0), Max: ptr(PitchLength)},
		YAxis:      &Axis{Title: pitchYTitle, Min: ptr(0), Max: ptr(PitchWidth)},
		ShowLegend: true,
	}
}

func (r *Resolver) resolveLine(p Payload) RendererConfig {
	points, err := decodePoints(p.Data)
	if err != nil {
		return unsupported(p, err.Error())
	}
	labels, values := labelledValues(points)

	return RendererConfig{
		Kind:   KindLine,
		Title:  p.Title,
		Labels: labels,
		Series: []Series{{
			Label:  p.Title,
			Values: values,
			Colors: []string{r.color(0)},
		}},
		XAxis:      &Axis{Title: p.XLabel},
		YAxis:      &Axis{Min: ptr(0)},
		ShowLegend: true,
	}
}

func (r *Resolver) resolveCategorical(p Payload) RendererConfig {
	points, err := decodePoints(p.Data)
	if err != nil {
		return unsupported(p, err.Error())
	}
	labels, values := labelledValues(points)

	if p.VizType == pieVizType || (p.Type == TypePie && p.VizType == "") {
		colors := make([]string, len(values))
		for i := range values {
			colors[i] = r.color(i)
		}
		return RendererConfig{
			Kind:       KindPie,
			Title:      p.Title,
			Labels:     labels,
			Series:     []Series{{Label: p.Title, Values: values, Colors: colors}},
			ShowLegend: true,
		}
	}

	colors := make([]string, len(values))
	for i := range values {
		colors[i] = r.color(0)
	}

	yTitle := countTitle
	if strings.Contains(p.Title, percentageMarker) {
		yTitle = percentageTitle
	}

	return RendererConfig{
		Kind:   KindBar,
		Title:  p.Title,
		Labels: labels,
		Series: []Series{{Label: p.Title, Values: values, Colors: colors}},
		XAxis:  &Axis{Title: p.XLabel},
		YAxis:  &Axis{Title: yTitle, Min: ptr(0)},
	}
}

func (r *Resolver) color(i int) string {
	if len(r.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return r.Palette[i%len(r.Palette)]
}

func unsupported(p Payload, reason string) RendererConfig {
	return RendererConfig{
		Kind:  KindUnsupported,
		Title: p.Title,
		Unsupported: &Unsupported{
			Type:   string(p.Type),
			Reason: reason,
		},
	}
}

func decodePoints(data json.RawMessage) ([]Point, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("data is not a list of points: %w", err)
	}
	return points, nil
}

// labelledValues takes x, minute, category (first present) as the label and
// y, value, count (first present) as the value of each point.
func labelledValues(points []Point) ([]string, []float64) {
	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, pt := range points {
		labels[i] = toLabel(firstPresent(pt.X, pt.Minute, pt.Category))
		values[i], _ = toFloat(firstPresent(pt.Y, pt.Value, pt.Count))
	}
	return labels, values
}

func firstPresent(vals ...any) any {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func toLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func ptr(v float64) *float64 {
	return &v
}
