package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

var banner = strings.Repeat("=", 80)

// ExportText serializes a report as formatted plain text. Output is
// deterministic for a given report value.
func ExportText(r Report) string {
	var sb strings.Builder

	sb.WriteString("\n" + banner + "\n")
	sb.WriteString("OVERSIGHT AI SYSTEM - INFORMATIVE REPORT\n")
	sb.WriteString(banner + "\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %s\n", r.Metadata.Topic))
	sb.WriteString(fmt.Sprintf("Report Type: %s\n", titleCase(r.Metadata.Type.String())))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", r.Metadata.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Sources Analyzed: %d\n", r.Metadata.SourcesAnalyzed))
	sb.WriteString(fmt.Sprintf("Confidence Level: %s\n\n", percent(r.Metadata.Confidence)))
	sb.WriteString(banner + "\n")
	sb.WriteString("REPORT CONTENT\n")
	sb.WriteString(banner + "\n\n")

	for _, section := range r.Content {
		sb.WriteString("\n" + strings.ToUpper(strings.ReplaceAll(section.Key, "_", " ")) + "\n")
		sb.WriteString(strings.Repeat("-", len(section.Key)) + "\n")
		writeValueText(&sb, section.Value, 0)
		sb.WriteString("\n")
	}

	if len(r.Appendices) > 0 {
		sb.WriteString("\n" + banner + "\n")
		sb.WriteString("APPENDICES\n")
		sb.WriteString(banner + "\n\n")
		for _, appendix := range r.Appendices {
			sb.WriteString("\n" + strings.ToUpper(strings.ReplaceAll(appendix.Key, "_", " ")) + "\n")
			sb.WriteString(strings.Repeat("-", len(appendix.Key)) + "\n")
			writeValueText(&sb, appendix.Value, 0)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeValueText(sb *strings.Builder, value any, indent int) {
	switch v := value.(type) {
	case string:
		sb.WriteString(v + "\n")
	case Fields:
		writeFieldsText(sb, v, indent)
	case []string:
		for _, item := range v {
			sb.WriteString(fmt.Sprintf("• %s\n", item))
		}
	case []any:
		for _, item := range v {
			if nested, ok := item.(Fields); ok {
				writeFieldsText(sb, nested, indent+1)
			} else {
				sb.WriteString(fmt.Sprintf("• %v\n", item))
			}
		}
	default:
		sb.WriteString(fmt.Sprintf("%v\n", v))
	}
}

func writeFieldsText(sb *strings.Builder, fields Fields, indent int) {
	prefix := strings.Repeat("  ", indent)

	for _, field := range fields {
		key := titleCase(strings.ReplaceAll(field.Key, "_", " "))

		switch v := field.Value.(type) {
		case Fields:
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, key))
			writeFieldsText(sb, v, indent+1)
		case []string:
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, key))
			for _, item := range v {
				sb.WriteString(fmt.Sprintf("%s  • %s\n", prefix, item))
			}
		case []any:
			sb.WriteString(fmt.Sprintf("%s%s:\n", prefix, key))
			for _, item := range v {
				if nested, ok := item.(Fields); ok {
					writeFieldsText(sb, nested, indent+1)
				} else {
					sb.WriteString(fmt.Sprintf("%s  • %v\n", prefix, item))
				}
			}
		default:
			sb.WriteString(fmt.Sprintf("%s%s: %v\n", prefix, key, v))
		}
	}
}

// ExportMarkdown serializes a report as a markdown document with three fixed
// top-level sections: sources, performance metrics, and document content.
func ExportMarkdown(r Report) string {
	timestamp := r.Metadata.GeneratedAt.Format(time.RFC3339)
	typeName := titleCase(r.Metadata.Type.String())

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s - %s Report\n\n", titleCase(r.Metadata.Topic), typeName))
	sb.WriteString(fmt.Sprintf("*Generated on %s*\n\n---\n\n", timestamp))

	sb.WriteString("## 1. Sources Used\n\n")
	sb.WriteString("- **Primary Source**: OpenAI GPT Model\n")
	sb.WriteString(fmt.Sprintf("- **Total Sources Analyzed**: %d\n", r.Metadata.SourcesAnalyzed))
	sb.WriteString("- **Source Type**: AI-Generated Research Content\n")
	sb.WriteString(fmt.Sprintf("- **Confidence Level**: %s\n", percent(r.Metadata.Confidence)))
	sb.WriteString("- **Research Method**: Multi-angle systematic analysis\n")
	sb.WriteString("- **Data Quality**: High reliability with systematic categorization\n\n---\n\n")

	sb.WriteString("## 2. Speed & Performance Metrics\n\n")
	sb.WriteString(fmt.Sprintf("- **Report Type**: %s\n", typeName))
	sb.WriteString(fmt.Sprintf("- **Generation Timestamp**: %s\n", timestamp))
	sb.WriteString("- **Processing Method**: Automated AI analysis\n")
	sb.WriteString("- **Quality Assurance**: Multi-criteria assessment with confidence scoring\n")
	sb.WriteString("- **Coverage**: Comprehensive multi-angle approach\n\n---\n\n")

	sb.WriteString("## 3. Document Content\n\n")
	for _, section := range r.Content {
		sb.WriteString(fmt.Sprintf("### %s\n\n", titleCase(strings.ReplaceAll(section.Key, "_", " "))))
		writeValueMarkdown(&sb, section.Value)
	}

	if len(r.Appendices) > 0 {
		sb.WriteString("---\n\n## Appendices\n\n")
		for _, appendix := range r.Appendices {
			sb.WriteString(fmt.Sprintf("### %s\n\n", titleCase(strings.ReplaceAll(appendix.Key, "_", " "))))
			writeValueMarkdown(&sb, appendix.Value)
		}
	}

	return sb.String()
}

func writeValueMarkdown(sb *strings.Builder, value any) {
	switch v := value.(type) {
	case string:
		sb.WriteString(v + "\n\n")
	case Fields:
		writeFieldsMarkdown(sb, v, 0)
		sb.WriteString("\n")
	case []string:
		for _, item := range v {
			sb.WriteString(fmt.Sprintf("- %s\n", item))
		}
		sb.WriteString("\n")
	case []any:
		for _, item := range v {
			if nested, ok := item.(Fields); ok {
				writeFieldsMarkdown(sb, nested, 1)
			} else {
				sb.WriteString(fmt.Sprintf("- %v\n", item))
			}
		}
		sb.WriteString("\n")
	default:
		sb.WriteString(fmt.Sprintf("%v\n\n", v))
	}
}

func writeFieldsMarkdown(sb *strings.Builder, fields Fields, level int) {
	for _, field := range fields {
		key := titleCase(strings.ReplaceAll(field.Key, "_", " "))

		switch v := field.Value.(type) {
		case Fields:
			if level == 0 {
				sb.WriteString(fmt.Sprintf("#### %s\n\n", key))
			} else {
				sb.WriteString(fmt.Sprintf("**%s:**\n\n", key))
			}
			writeFieldsMarkdown(sb, v, level+1)
		case []string:
			sb.WriteString(fmt.Sprintf("**%s:**\n\n", key))
			for _, item := range v {
				sb.WriteString(fmt.Sprintf("- %s\n", item))
			}
			sb.WriteString("\n")
		case []any:
			sb.WriteString(fmt.Sprintf("**%s:**\n\n", key))
			for _, item := range v {
				if nested, ok := item.(Fields); ok {
					writeFieldsMarkdown(sb, nested, level+1)
				} else {
					sb.WriteString(fmt.Sprintf("- %v\n", item))
				}
			}
			sb.WriteString("\n")
		default:
			sb.WriteString(fmt.Sprintf("**%s:** %v\n\n", key, v))
		}
	}
}

// titleCase capitalizes the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
