package architect

import "github.com/RipScriptos/Oversight/pkg/compiler"

// CategorizedItem wraps a research item with its importance assessment.
type CategorizedItem struct {
	Item            compiler.ResearchItem `json:"content"`
	ImportanceScore float64               `json:"importance_score"`
	Reasoning       string                `json:"reasoning"`
	KeyIndicators   []string              `json:"key_indicators"`
}

// Distribution holds each bucket's fraction of the total item count. The four
// fractions sum to 1.0 whenever TotalItems > 0.
type Distribution struct {
	HighPriority   float64 `json:"high_priority"`
	MediumPriority float64 `json:"medium_priority"`
	LowPriority    float64 `json:"low_priority"`
	Supplementary  float64 `json:"supplementary"`
}

type Metadata struct {
	TotalItems int    `json:"total_items_processed"`
	Method     string `json:"categorization_method"`

	// OverallConfidence is a distribution heuristic, not a statistically
	// grounded measure: it rewards runs where roughly a quarter of the items
	// land in the high-priority bucket.
	OverallConfidence float64      `json:"overall_confidence"`
	Distribution      Distribution `json:"distribution"`
}

// CategorizedBundle sorts a research bundle into four priority buckets.
type CategorizedBundle struct {
	Topic          string            `json:"topic"`
	HighPriority   []CategorizedItem `json:"high_priority"`
	MediumPriority []CategorizedItem `json:"medium_priority"`
	LowPriority    []CategorizedItem `json:"low_priority"`
	Supplementary  []CategorizedItem `json:"supplementary"`
	Metadata       Metadata          `json:"categorization_metadata"`
}
