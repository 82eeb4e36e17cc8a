package options

import (
	"slices"
	"strings"
)

// Entry is one selectable option.
type Entry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// OptionGroup is a labelled bucket of entries.
type OptionGroup struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// SortedByLabel returns a copy of the group with entries ordered by label.
func (g OptionGroup) SortedByLabel() OptionGroup {
	entries := slices.Clone(g.Entries)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label))
	})
	g.Entries = entries
	return g
}

// Category identifies a group and how its entries are labelled.
type Category struct {
	ID    string
	Label string
	// EntryLabel, when set, replaces FormatLabel for entries in this category.
	EntryLabel string
}

// Rule assigns an option to a category when any prefix matches or the option
// equals Exact.
type Rule struct {
	Prefixes []string
	Exact    string
	Category Category
}

func (r Rule) matches(raw string) bool {
	if r.Exact != "" && raw == r.Exact {
		return true
	}
	for _, p := range r.Prefixes {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

var (
	CurrentMetrics = Category{ID: "current_metrics", Label: "Current Season: Metrics"}
	CurrentInter   = Category{ID: "current_interactions", Label: "Current Season: Interactions & Polynomials"}
	HistAggregates = Category{ID: "historical_aggregates", Label: "Historical Performance: Aggregates"}
	HistTrends     = Category{ID: "historical_trends", Label: "Historical Performance: Trends"}
	Growth         = Category{ID: "growth", Label: "Season-over-Season: Growth & Ratios"}
	HistContext    = Category{ID: "historical_context", Label: "Historical Context", EntryLabel: "Number of Historical Seasons"}
	Other          = Category{ID: "other", Label: "Other Contextual"}
)

// FeatureRules classify ML feature names. First match wins; the more specific
// current_inter_/current_poly_ rule must precede current_.
var FeatureRules = []Rule{
	{Prefixes: []string{"current_inter_", "current_poly_"}, Category: CurrentInter},
	{Prefixes: []string{"current_"}, Category: CurrentMetrics},
	{Prefixes: []string{"hist_avg_", "hist_sum_", "hist_max_"}, Category: HistAggregates},
	{Prefixes: []string{"hist_trend_"}, Category: HistTrends},
	{Prefixes: []string{"growth_"}, Category: Growth},
	{Exact: "num_hist_seasons", Category: HistContext},
}

// CanonicalOrder is the display order of feature categories, by ID.
var CanonicalOrder = []string{
	CurrentMetrics.ID,
	CurrentInter.ID,
	HistAggregates.ID,
	HistTrends.ID,
	Growth.ID,
	HistContext.ID,
	Other.ID,
}

// Classifier groups raw options using an ordered rule table.
type Classifier struct {
	Rules    []Rule
	Default  Category
	Order    []string
	FormatFn func(string) string
}

// NewFeatureClassifier returns the classifier for ML feature names.
func NewFeatureClassifier() *Classifier {
	return &Classifier{
		Rules:    FeatureRules,
		Default:  Other,
		Order:    CanonicalOrder,
		FormatFn: FormatLabel,
	}
}

// Classify groups ML feature names with the default feature rules.
func Classify(rawOptions []string, searchTerm string) []OptionGroup {
	return NewFeatureClassifier().Classify(rawOptions, searchTerm)
}

// Classify filters rawOptions by searchTerm (case-insensitive, matched against
// the raw id or its formatted label), buckets the survivors by the first
// matching rule and orders the buckets by c.Order. Categories missing from
// the order come last in first-seen order. No matches yields an empty slice.
func (c *Classifier) Classify(rawOptions []string, searchTerm string) []OptionGroup {
	term := strings.ToLower(searchTerm)
	format := c.FormatFn
	if format == nil {
		format = FormatLabel
	}

	groups := make([]OptionGroup, 0)
	index := make(map[string]int)

	for _, raw := range rawOptions {
		label := format(raw)
		if term != "" &&
			!strings.Contains(strings.ToLower(raw), term) &&
			!strings.Contains(strings.ToLower(label), term) {
			continue
		}

		cat := c.categorize(raw)
		if cat.EntryLabel != "" {
			label = cat.EntryLabel
		}

		i, ok := index[cat.ID]
		if !ok {
			i = len(groups)
			index[cat.ID] = i
			groups = append(groups, OptionGroup{ID: cat.ID, Label: cat.Label})
		}
		groups[i].Entries = append(groups[i].Entries, Entry{ID: raw, Label: label})
	}

	rank := func(id string) int {
		if r := slices.Index(c.Order, id); r >= 0 {
			return r
		}
		return len(c.Order)
	}
	slices.SortStableFunc(groups, func(a, b OptionGroup) int {
		return rank(a.ID) - rank(b.ID)
	})

	return groups
}

func (c *Classifier) categorize(raw string) Category {
	for _, r := range c.Rules {
		if r.matches(raw) {
			return r.Category
		}
	}
	return c.Default
}
