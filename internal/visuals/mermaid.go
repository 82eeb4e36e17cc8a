package visuals

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"scoutviz/internal/viz"
)

// Mermaid xychart starts overlapping labels past this many categories.
const maxXYPoints = 60

// GenerateMermaid renders a resolved config as a fenced Mermaid block.
// Scalar and unsupported configs have no chart form and render to "".
func GenerateMermaid(cfg viz.RendererConfig) string {
	switch cfg.Kind {
	case viz.KindBar:
		return generateXYChart(cfg, "bar")
	case viz.KindLine:
		return generateXYChart(cfg, "line")
	case viz.KindPie:
		return generatePie(cfg)
	case viz.KindScatter, viz.KindHeatmap:
		return generatePitchQuadrant(cfg)
	default:
		return ""
	}
}

// PreviewURL returns a mermaid.ink link rendering the diagram, or "" when the
// config has no chart form.
func PreviewURL(cfg viz.RendererConfig) string {
	block := GenerateMermaid(cfg)
	if block == "" {
		return ""
	}
	return "https://mermaid.ink/svg/" + base64.URLEncoding.EncodeToString([]byte(unfence(block)))
}

func generateXYChart(cfg viz.RendererConfig, mark string) string {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Values) == 0 {
		return ""
	}
	series := cfg.Series[0]

	// Subsample when the chart is too wide for the layout engine
	step := 1
	if len(series.Values) > maxXYPoints {
		step = int(math.Ceil(float64(len(series.Values)) / maxXYPoints))
	}

	var labels []string
	var values []string
	maxVal := 0.0
	for i, v := range series.Values {
		if i%step != 0 && i != len(series.Values)-1 {
			continue
		}
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		labels = append(labels, quote(label))
		values = append(values, fmt.Sprintf("%.2f", v))
		if v > maxVal {
			maxVal = v
		}
	}

	yTitle := ""
	if cfg.YAxis != nil {
		yTitle = cfg.YAxis.Title
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(cfg.Title)))
	if cfg.XAxis != nil && cfg.XAxis.Title != "" {
		sb.WriteString(fmt.Sprintf("    x-axis %s [%s]\n", quote(cfg.XAxis.Title), strings.Join(labels, ", ")))
	} else {
		sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	}
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(yTitle), yCeiling(maxVal)))
	sb.WriteString(fmt.Sprintf("    %s [%s]\n", mark, strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func generatePie(cfg viz.RendererConfig) string {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Values) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	if cfg.ShowLegend {
		sb.WriteString("pie showData")
	} else {
		sb.WriteString("pie")
	}
	if cfg.Title != "" {
		sb.WriteString(" title " + sanitize(cfg.Title))
	}
	sb.WriteString("\n")
	for i, v := range cfg.Series[0].Values {
		label := ""
		if i < len(cfg.Labels) {
			label = cfg.Labels[i]
		}
		sb.WriteString(fmt.Sprintf("    %s : %s\n", quote(label), trimFloat(v)))
	}
	sb.WriteString("```")
	return sb.String()
}

// generatePitchQuadrant plots pitch coordinates on a quadrant chart, which
// only accepts points in [0,1], so both axes are normalised by their bounds.
func generatePitchQuadrant(cfg viz.RendererConfig) string {
	if len(cfg.Series) == 0 || len(cfg.Series[0].Points) == 0 {
		return ""
	}
	xMax := axisMax(cfg.XAxis, viz.PitchLength)
	yMax := axisMax(cfg.YAxis, viz.PitchWidth)

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("quadrantChart\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", sanitize(cfg.Title)))
	sb.WriteString("    x-axis Own Goal --> Opponent Goal\n")
	sb.WriteString("    y-axis Left Touchline --> Right Touchline\n")
	for i, p := range cfg.Series[0].Points {
		sb.WriteString(fmt.Sprintf("    P%d: [%.3f, %.3f]\n", i+1, unit(p.X/xMax), unit(p.Y/yMax)))
	}
	sb.WriteString("```")
	return sb.String()
}

func axisMax(a *viz.Axis, fallback float64) float64 {
	if a != nil && a.Max != nil && *a.Max > 0 {
		return *a.Max
	}
	return fallback
}

func yCeiling(maxVal float64) int {
	return int(math.Ceil(math.Max(1, maxVal*1.2)))
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func sanitize(s string) string {
	return strings.NewReplacer("\"", "'", "\n", " ").Replace(s)
}

func quote(s string) string {
	return "\"" + sanitize(s) + "\""
}

func unfence(block string) string {
	block = strings.TrimPrefix(block, "```mermaid\n")
	return strings.TrimSuffix(block, "```")
}
