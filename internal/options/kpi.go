package options

import "strings"

// KPIOption is one variant of a KPI as listed by the backend catalogue.
type KPIOption struct {
	ID           string `json:"id"`
	FullLabel    string `json:"full_label"`
	LabelVariant string `json:"label_variant,omitempty"`
}

// MetricGroup is a KPI base metric and its variants.
type MetricGroup struct {
	MetricBaseLabel string      `json:"metric_base_label"`
	Options         []KPIOption `json:"options"`
}

// VariantLabel is the short label shown next to a checkbox inside its group.
func (g MetricGroup) VariantLabel(o KPIOption) string {
	if o.LabelVariant != "" {
		return o.LabelVariant
	}
	v := strings.TrimSpace(strings.Replace(o.FullLabel, g.MetricBaseLabel, "", 1))
	v = strings.TrimPrefix(v, "(")
	v = strings.TrimSuffix(v, ")")
	if v == "" {
		return "Total/Count"
	}
	return v
}

// FilterMetricGroups keeps options whose full label, group base label or id
// contains searchTerm (case-insensitive) and drops groups left empty. An
// empty term returns the groups unchanged.
func FilterMetricGroups(groups []MetricGroup, searchTerm string) []MetricGroup {
	if searchTerm == "" {
		return groups
	}
	term := strings.ToLower(searchTerm)

	out := make([]MetricGroup, 0, len(groups))
	for _, g := range groups {
		baseMatch := strings.Contains(strings.ToLower(g.MetricBaseLabel), term)
		var kept []KPIOption
		for _, o := range g.Options {
			if baseMatch ||
				strings.Contains(strings.ToLower(o.FullLabel), term) ||
				strings.Contains(strings.ToLower(o.ID), term) {
				kept = append(kept, o)
			}
		}
		if len(kept) > 0 {
			out = append(out, MetricGroup{MetricBaseLabel: g.MetricBaseLabel, Options: kept})
		}
	}
	return out
}
