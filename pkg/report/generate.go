package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/RipScriptos/Oversight/pkg/architect"
)

// Generate renders a categorized bundle into the requested report kind. A
// Type value outside the closed set falls back to the detailed report.
func Generate(bundle architect.CategorizedBundle, reportType Type) Report {
	var content Fields
	switch reportType {
	case Executive:
		content = executiveContent(bundle)
	case Detailed:
		content = detailedContent(bundle)
	case Technical:
		content = technicalContent(bundle)
	case Summary:
		content = summaryContent(bundle)
	default:
		reportType = Detailed
		content = detailedContent(bundle)
	}

	return Report{
		Metadata: Metadata{
			Topic:           bundle.Topic,
			Type:            reportType,
			GeneratedAt:     time.Now(),
			SourcesAnalyzed: bundle.Metadata.TotalItems,
			Confidence:      bundle.Metadata.OverallConfidence,
		},
		Content:    content,
		Appendices: appendices(bundle),
	}
}

func executiveContent(b architect.CategorizedBundle) Fields {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\nEXECUTIVE SUMMARY: %s\n\n", strings.ToUpper(b.Topic)))
	sb.WriteString(fmt.Sprintf("This report provides a comprehensive analysis of %s, focusing on the most critical information and strategic insights.\n\n", b.Topic))
	sb.WriteString("KEY FINDINGS:\n")

	var findings []string
	for i, item := range topItems(b.HighPriority, 5) {
		findings = append(findings, fmt.Sprintf("%d. %s: %s", i+1, item.Item.Angle, keyInsight(item.Item.Content)))
	}
	sb.WriteString(strings.Join(findings, "\n"))

	quality := "Medium"
	if b.Metadata.OverallConfidence > 0.7 {
		quality = "High"
	}

	return Fields{
		{"executive_summary", sb.String()},
		{"strategic_recommendations", recommendations()},
		{"critical_insights", criticalInsights(b.HighPriority)},
		{"risk_assessment", Fields{
			{"information_quality", quality},
			{"coverage_completeness", "Comprehensive"},
			{"reliability_score", percent(b.Metadata.OverallConfidence)},
		}},
	}
}

func detailedContent(b architect.CategorizedBundle) Fields {
	introduction := fmt.Sprintf(`
COMPREHENSIVE ANALYSIS: %s

This detailed report presents a thorough analysis of %s, organized by information priority and relevance. The analysis covers fundamental concepts, practical applications, benefits, challenges, and future outlook.

METHODOLOGY:
Our analysis employed a systematic approach to information gathering and categorization, utilizing advanced algorithms to assess the importance and relevance of each piece of information.
`, strings.ToUpper(b.Topic), b.Topic)

	analysis := fmt.Sprintf(`
COMPREHENSIVE ANALYSIS:

Our analysis of %s reveals a multi-faceted subject with %d distinct research angles explored. The information has been systematically categorized to highlight the most critical aspects while ensuring comprehensive coverage.

The analysis indicates strong foundational concepts with practical applications across multiple domains. Key themes emerge around implementation strategies, benefits realization, and future development potential.
`, b.Topic, b.Metadata.TotalItems)

	conclusions := fmt.Sprintf(`
CONCLUSIONS:

Based on our comprehensive analysis of %s, several key conclusions emerge:

1. The topic demonstrates significant relevance and practical applicability
2. Multiple implementation approaches are available with varying complexity levels
3. Benefits outweigh challenges when properly implemented
4. Continued development and innovation are expected in this area
5. Strategic planning and systematic approach are essential for success

This analysis provides a solid foundation for informed decision-making and strategic planning related to %s.
`, b.Topic, b.Topic)

	return Fields{
		{"introduction", introduction},
		{"critical_information", prioritySection(b.HighPriority,
			"CRITICAL INFORMATION",
			"The following information represents the most essential aspects of the topic:")},
		{"important_information", prioritySection(b.MediumPriority,
			"IMPORTANT INFORMATION",
			"This section covers significant information that enhances understanding:")},
		{"supporting_information", prioritySection(b.LowPriority,
			"SUPPORTING INFORMATION",
			"Additional relevant information for comprehensive understanding:")},
		{"comprehensive_analysis", analysis},
		{"conclusions", conclusions},
	}
}

func technicalContent(b architect.CategorizedBundle) Fields {
	overview := fmt.Sprintf(`
TECHNICAL ANALYSIS REPORT: %s

SCOPE AND METHODOLOGY:
This technical report provides an in-depth analysis of %s using systematic information processing and categorization techniques.

DATA PROCESSING PIPELINE:
1. Information Compilation: Multi-angle research approach
2. Content Analysis: Keyword-based importance scoring
3. Categorization: Hybrid scoring algorithm with confidence metrics
4. Report Generation: Structured output with technical appendices
`, strings.ToUpper(b.Topic), b.Topic)

	dist := b.Metadata.Distribution

	return Fields{
		{"technical_overview", overview},
		{"technical_findings", Fields{
			{"data_quality_assessment", "High reliability based on systematic categorization"},
			{"processing_efficiency", fmt.Sprintf("Processed %d information units", b.Metadata.TotalItems)},
			{"categorization_accuracy", percent(b.Metadata.OverallConfidence)},
			{"coverage_analysis", "Comprehensive multi-angle approach ensures thorough coverage"},
		}},
		{"data_analysis", Fields{
			{"information_distribution", Fields{
				{"high_priority", fmt.Sprintf("%.1f%%", dist.HighPriority*100)},
				{"medium_priority", fmt.Sprintf("%.1f%%", dist.MediumPriority*100)},
				{"low_priority", fmt.Sprintf("%.1f%%", dist.LowPriority*100)},
				{"supplementary", fmt.Sprintf("%.1f%%", dist.Supplementary*100)},
			}},
			{"quality_indicators", Fields{
				{"categorization_confidence", percent(b.Metadata.OverallConfidence)},
				{"processing_method", "Hybrid scoring algorithm"},
				{"validation_approach", "Multi-criteria assessment"},
			}},
		}},
		{"methodology_details", Fields{
			{"research_approach", "Multi-angle systematic research"},
			{"categorization_method", "Hybrid scoring with keyword analysis"},
			{"quality_assurance", "Confidence scoring and distribution analysis"},
			{"processing_pipeline", []string{
				"Topic input and validation",
				"Multi-angle information compilation",
				"Content importance analysis",
				"Systematic categorization",
				"Report generation and formatting",
			}},
		}},
		{"quality_metrics", Fields{
			{"overall_confidence", percent(b.Metadata.OverallConfidence)},
			{"processing_completeness", "100%"},
			{"categorization_method", "Validated hybrid scoring"},
			{"information_coverage", "Comprehensive multi-angle analysis"},
		}},
	}
}

func summaryContent(b architect.CategorizedBundle) Fields {
	overview := fmt.Sprintf(`
SUMMARY REPORT: %s

OVERVIEW:
This summary provides the essential information about %s in a concise format.
`, strings.ToUpper(b.Topic), b.Topic)

	var keyPoints []string
	for _, item := range topItems(b.HighPriority, 3) {
		keyPoints = append(keyPoints, "• "+keyPoint(item.Item.Angle, item.Item.Content))
	}
	for _, item := range topItems(b.MediumPriority, 2) {
		keyPoints = append(keyPoints, "• "+keyPoint(item.Item.Angle, item.Item.Content))
	}

	var insights []string
	for _, item := range topItems(b.HighPriority, 3) {
		insights = append(insights, "Quick insight: "+keyInsight(item.Item.Content))
	}

	return Fields{
		{"summary", overview},
		{"key_points", keyPoints},
		{"quick_insights", insights},
		{"action_items", []string{
			"Review high-priority information for immediate implementation",
			"Develop action plan based on key findings",
			"Monitor trends and developments in this area",
			"Consider resource allocation for implementation",
			"Establish metrics for success measurement",
		}},
	}
}

// prioritySection formats one priority bucket for the detailed report.
func prioritySection(items []architect.CategorizedItem, title, description string) Fields {
	formatted := make([]any, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, Fields{
			{"research_angle", item.Item.Angle},
			{"content", item.Item.Content},
			{"importance_score", fmt.Sprintf("%.2f", item.ImportanceScore)},
			{"key_indicators", item.KeyIndicators},
			{"reasoning", item.Reasoning},
		})
	}

	return Fields{
		{"title", title},
		{"description", description},
		{"item_count", len(items)},
		{"items", formatted},
	}
}

func appendices(b architect.CategorizedBundle) Fields {
	supplementary := make([]any, 0, len(b.Supplementary))
	for _, item := range b.Supplementary {
		supplementary = append(supplementary, Fields{
			{"content", Fields{
				{"angle", item.Item.Angle},
				{"content", item.Item.Content},
				{"word_count", item.Item.WordCount},
			}},
			{"importance_score", fmt.Sprintf("%.2f", item.ImportanceScore)},
			{"reasoning", item.Reasoning},
			{"key_indicators", item.KeyIndicators},
		})
	}

	dist := b.Metadata.Distribution

	// Appendices carry the raw numbers; formatting is the exporters' job.
	return Fields{
		{"categorization_metadata", Fields{
			{"total_items_processed", b.Metadata.TotalItems},
			{"categorization_method", b.Metadata.Method},
			{"confidence_scores", Fields{
				{"overall_confidence", b.Metadata.OverallConfidence},
				{"distribution", distributionFields(dist)},
			}},
		}},
		{"supplementary_information", supplementary},
		{"processing_statistics", Fields{
			{"total_items_processed", b.Metadata.TotalItems},
			{"categorization_confidence", b.Metadata.OverallConfidence},
			{"distribution_analysis", distributionFields(dist)},
		}},
	}
}

func distributionFields(d architect.Distribution) Fields {
	return Fields{
		{"high_priority", d.HighPriority},
		{"medium_priority", d.MediumPriority},
		{"low_priority", d.LowPriority},
		{"supplementary", d.Supplementary},
	}
}

func recommendations() []string {
	return []string{
		"Focus on understanding the fundamental principles and core concepts",
		"Prioritize practical applications and implementation strategies",
		"Consider both benefits and potential challenges in planning",
		"Stay informed about current trends and future developments",
		"Develop a comprehensive approach that addresses all key aspects",
	}
}

func criticalInsights(items []architect.CategorizedItem) []string {
	var insights []string
	for _, item := range topItems(items, 3) {
		insights = append(insights, fmt.Sprintf("Critical insight from %s: %s", item.Item.Angle, keyInsight(item.Item.Content)))
	}
	return insights
}

// keyInsight extracts the first substantial sentence of the content, falling
// back to a truncated excerpt.
func keyInsight(content string) string {
	for _, sentence := range strings.Split(content, ".") {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) > 20 {
			return trimmed + "."
		}
	}

	runes := []rune(content)
	if len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return content
}

func keyPoint(angle, content string) string {
	lowered := strings.ToLower(angle)
	switch {
	case strings.Contains(lowered, "definition"):
		return "Definition: " + keyInsight(content)
	case strings.Contains(lowered, "benefit"):
		return "Key Benefit: " + keyInsight(content)
	case strings.Contains(lowered, "application"):
		return "Application: " + keyInsight(content)
	default:
		return angle + ": " + keyInsight(content)
	}
}

func topItems(items []architect.CategorizedItem, n int) []architect.CategorizedItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
