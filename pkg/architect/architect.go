package architect

import (
	"fmt"
	"strings"

	"github.com/RipScriptos/Oversight/pkg/compiler"
)

// Scoring policy constants. The weights, divisor, and thresholds are tuning
// values carried over unchanged for output compatibility; change them only
// together with the reasoning strings and the bucket tests.
const (
	keywordWeight  = 0.4
	angleWeight    = 0.4
	lengthWeight   = 0.2
	keywordDivisor = 10.0

	highThreshold   = 0.7
	mediumThreshold = 0.4
	lowThreshold    = 0.2
)

const categorizationMethod = "hybrid_scoring"

// importanceKeywords are the three fixed semantic-importance tiers matched
// against lower-cased content.
var importanceKeywords = map[string][]string{
	"high": {
		"fundamental", "essential", "critical", "key", "primary", "main", "core",
		"significant", "major", "important", "crucial", "vital", "central",
		"principal", "basic", "foundation", "framework", "strategy", "approach",
		"methodology", "system", "process", "implementation", "benefits",
		"advantages", "impact", "results", "outcomes", "effectiveness",
	},
	"medium": {
		"relevant", "useful", "helpful", "applicable", "practical", "common",
		"typical", "standard", "regular", "normal", "general", "broad",
		"wide", "extensive", "comprehensive", "detailed", "specific",
		"particular", "individual", "unique", "special", "notable",
	},
	"low": {
		"minor", "small", "limited", "restricted", "narrow", "simple",
		"basic", "elementary", "preliminary", "initial", "introductory",
		"supplementary", "additional", "extra", "optional", "alternative",
		"secondary", "supporting", "background", "contextual", "historical",
	},
}

// importantAngles mark framing questions that are inherently more important.
var importantAngles = []string{"definition", "key concepts", "principles", "benefits", "applications"}

// fundamentalAngles is the subset that counts as fundamental-concept coverage
// for the key-indicator list.
var fundamentalAngles = []string{"definition", "key concepts", "principles"}

// Categorize scores every item of the bundle and sorts it into one of four
// priority buckets.
func Categorize(bundle compiler.ResearchBundle) CategorizedBundle {
	out := CategorizedBundle{
		Topic:          bundle.Topic,
		HighPriority:   []CategorizedItem{},
		MediumPriority: []CategorizedItem{},
		LowPriority:    []CategorizedItem{},
		Supplementary:  []CategorizedItem{},
	}

	for _, item := range bundle.Items {
		scored := analyzeImportance(item)

		switch {
		case scored.ImportanceScore >= highThreshold:
			out.HighPriority = append(out.HighPriority, scored)
		case scored.ImportanceScore >= mediumThreshold:
			out.MediumPriority = append(out.MediumPriority, scored)
		case scored.ImportanceScore >= lowThreshold:
			out.LowPriority = append(out.LowPriority, scored)
		default:
			out.Supplementary = append(out.Supplementary, scored)
		}
	}

	out.Metadata = buildMetadata(&out, len(bundle.Items))
	return out
}

func analyzeImportance(item compiler.ResearchItem) CategorizedItem {
	text := strings.ToLower(item.Content)
	angle := strings.ToLower(item.Angle)

	highCount := countKeywords(text, importanceKeywords["high"])
	mediumCount := countKeywords(text, importanceKeywords["medium"])
	lowCount := countKeywords(text, importanceKeywords["low"])

	keywordScore := (float64(highCount)*1.0 + float64(mediumCount)*0.6 + float64(lowCount)*0.2) / keywordDivisor

	angleScore := 0.3
	if containsAny(angle, importantAngles) {
		angleScore = 0.8
	}

	var lengthScore float64
	switch {
	case item.WordCount > 100:
		lengthScore = 0.8
	case item.WordCount > 50:
		lengthScore = 0.5
	default:
		lengthScore = 0.2
	}

	score := keywordScore*keywordWeight + angleScore*angleWeight + lengthScore*lengthWeight
	score = clamp(score)

	var indicators []string
	if highCount > 0 {
		indicators = append(indicators, fmt.Sprintf("Contains %d high-importance keywords", highCount))
	}
	if containsAny(angle, fundamentalAngles) {
		indicators = append(indicators, "Covers fundamental concepts")
	}
	if item.WordCount > 100 {
		indicators = append(indicators, "Comprehensive content length")
	}

	return CategorizedItem{
		Item:            item,
		ImportanceScore: score,
		Reasoning:       reasoningFor(score),
		KeyIndicators:   indicators,
	}
}

func reasoningFor(score float64) string {
	switch {
	case score >= highThreshold:
		return "High importance due to strong keyword relevance and fundamental topic coverage."
	case score >= mediumThreshold:
		return "Medium importance with good keyword coverage and relevant content angle."
	case score >= lowThreshold:
		return "Lower importance but still relevant for comprehensive understanding."
	default:
		return "Supplementary information that provides additional context."
	}
}

func buildMetadata(b *CategorizedBundle, total int) Metadata {
	meta := Metadata{
		TotalItems: total,
		Method:     categorizationMethod,
	}
	if total == 0 {
		return meta
	}

	n := float64(total)
	meta.Distribution = Distribution{
		HighPriority:   float64(len(b.HighPriority)) / n,
		MediumPriority: float64(len(b.MediumPriority)) / n,
		LowPriority:    float64(len(b.LowPriority)) / n,
		Supplementary:  float64(len(b.Supplementary)) / n,
	}

	// A run where about a quarter of the items rank high-priority scores the
	// best; confidence falls off linearly either side of that.
	diff := meta.Distribution.HighPriority - 0.25
	if diff < 0 {
		diff = -diff
	}
	meta.OverallConfidence = clamp(1.0 - diff*2)

	return meta
}

// Summary renders a human-readable digest of the categorization results.
func Summary(b CategorizedBundle) string {
	highCount := len(b.HighPriority)
	mediumCount := len(b.MediumPriority)
	lowCount := len(b.LowPriority)
	suppCount := len(b.Supplementary)
	total := highCount + mediumCount + lowCount + suppCount

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\nInformation Categorization Summary for: %s\n\n", b.Topic))
	sb.WriteString("Categorization Results:\n")
	sb.WriteString(fmt.Sprintf("- High Priority Information: %d items\n", highCount))
	sb.WriteString(fmt.Sprintf("- Medium Priority Information: %d items\n", mediumCount))
	sb.WriteString(fmt.Sprintf("- Low Priority Information: %d items\n", lowCount))
	sb.WriteString(fmt.Sprintf("- Supplementary Information: %d items\n\n", suppCount))
	sb.WriteString(fmt.Sprintf("Overall Categorization Confidence: %.2f%%\n", b.Metadata.OverallConfidence*100))

	if total > 0 {
		important := highCount + mediumCount
		minor := lowCount + suppCount
		sb.WriteString("\nDistribution Analysis:\n")
		sb.WriteString(fmt.Sprintf("- Important Information: %d items (%.1f%%)\n", important, float64(important)/float64(total)*100))
		sb.WriteString(fmt.Sprintf("- Minor Information: %d items (%.1f%%)\n", minor, float64(minor)/float64(total)*100))
	}

	return sb.String()
}

func countKeywords(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
