// Package options groups and filters the selectable option lists the
// scouting page shows (ML feature names, KPI variants).
package options

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Replacement is one step of the label rewrite table.
type Replacement struct {
	Pattern string
	With    string
}

// LabelReplacements rewrite machine-generated feature names. They run in
// order, each over the output of the previous one.
var LabelReplacements = []Replacement{
	{"current_inter_", "Interaction: "},
	{"current_poly_", "Polynomial: "},
	{"current_", "Current: "},
	{"hist_avg_", "Historical Avg: "},
	{"hist_sum_", "Historical Sum: "},
	{"hist_max_", "Historical Max: "},
	{"hist_trend_", "Historical Trend: "},
	{"growth_ratio_", "Growth Ratio: "},
	{"growth_", "Growth: "},
	{"p90_sqrt", " p90 √"},
	{"_p90", " p90"},
	{"sqrt", " √"},
	{"_kpi", " KPI"},
	{"inv_kpi_base", " (Inv. Base)"},
	{"_", " "},
}

// PostTitleReplacements run after title-casing.
var PostTitleReplacements = []Replacement{
	{" X ", " x "},
}

// LabelOverrides replace a finished label outright.
var LabelOverrides = map[string]string{
	"Num Hist Seasons": "Number Of Historical Seasons",
}

const ellipsis = "..."

// FormatLabel turns a raw option id into a display label.
func FormatLabel(raw string) string {
	label := applyReplacements(raw, LabelReplacements)
	label = titleWords(label)
	label = applyReplacements(label, PostTitleReplacements)
	if override, ok := LabelOverrides[label]; ok {
		return override
	}
	return label
}

func applyReplacements(s string, table []Replacement) string {
	for _, r := range table {
		s = strings.ReplaceAll(s, r.Pattern, r.With)
	}
	return s
}

// titleWords upper-cases the first rune of every space-separated word and
// leaves the rest untouched.
func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens labels longer than limit runes to limit-3 runes plus "...".
func Truncate(label string, limit int) string {
	if limit <= len(ellipsis) || utf8.RuneCountInString(label) <= limit {
		return label
	}
	runes := []rune(label)
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
