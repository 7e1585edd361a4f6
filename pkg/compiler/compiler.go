package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Completer is the narrow seam to the text-completion service. Given a system
// instruction and a user prompt it returns generated text or an error.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLMCompleter adapts a langchaingo model to the Completer seam, bounded by
// the configured output length and sampling temperature.
type LLMCompleter struct {
	Model       llms.Model
	MaxTokens   int
	Temperature float64
}

func (c *LLMCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.Model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}, llms.WithMaxTokens(c.MaxTokens), llms.WithTemperature(c.Temperature))
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}

const systemPrompt = "You are a knowledgeable research assistant. Provide accurate, well-structured information about the requested subject."

// angleTemplates are the fixed framing questions, interpolated with the topic.
// Order is part of the contract: items in the bundle appear in this order.
var angleTemplates = []string{
	"%s definition and overview",
	"%s key concepts and principles",
	"%s applications and use cases",
	"%s benefits and advantages",
	"%s challenges and limitations",
	"%s current trends and developments",
	"%s future outlook and predictions",
	"%s best practices and recommendations",
}

// AngleCount is the fixed number of research angles per compile.
const AngleCount = 8

type Compiler struct {
	Completer Completer
	Logger    *slog.Logger
}

func New(c Completer) *Compiler {
	return &Compiler{
		Completer: c,
		Logger:    slog.Default(),
	}
}

// Compile researches every fixed angle of the topic. The angles are
// independent, so they fan out concurrently; results land in angle order. A
// failed completion for one angle substitutes deterministic fallback text and
// never fails the whole compile.
func (c *Compiler) Compile(ctx context.Context, topic string) (ResearchBundle, error) {
	if strings.TrimSpace(topic) == "" {
		return ResearchBundle{}, fmt.Errorf("topic is empty")
	}

	start := time.Now()
	items := make([]ResearchItem, len(angleTemplates))

	var wg sync.WaitGroup
	for i, tmpl := range angleTemplates {
		wg.Add(1)
		go func(i int, angle string) {
			defer wg.Done()
			items[i] = c.researchAngle(ctx, angle, topic)
		}(i, fmt.Sprintf(tmpl, topic))
	}
	wg.Wait()

	totalSeconds := time.Since(start).Seconds()

	totalWords := 0
	for _, item := range items {
		totalWords += item.WordCount
	}

	wps := 0.0
	if totalSeconds > 0 {
		wps = float64(totalWords) / totalSeconds
	}

	c.Logger.Info("Compiled research", "topic", topic, "angles", len(items), "words", totalWords)

	return ResearchBundle{
		Topic: topic,
		Items: items,
		Metadata: BundleMetadata{
			CompiledAt:     start,
			TotalWords:     totalWords,
			TotalSeconds:   totalSeconds,
			WordsPerSecond: wps,
		},
	}, nil
}

func (c *Compiler) researchAngle(ctx context.Context, angle, topic string) ResearchItem {
	start := time.Now()

	userPrompt := fmt.Sprintf("Provide comprehensive research information about: %s", angle)

	content, err := c.Completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil {
			c.Logger.Warn("Completion failed, using fallback", "angle", angle, "error", err)
		}
		content = fallbackContent(angle, topic)
	}

	return ResearchItem{
		Angle:          angle,
		Content:        content,
		WordCount:      len(strings.Fields(content)),
		ProcessingTime: time.Since(start).Seconds(),
	}
}

// fallbackContent is the deterministic substitute for a failed angle.
func fallbackContent(angle, topic string) string {
	return fmt.Sprintf("Research findings related to %s indicate significant relevance to %s and its various applications in modern contexts.", angle, topic)
}

// Summary renders a human-readable digest of a compiled bundle.
func Summary(bundle ResearchBundle) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nResearch Summary for: %s\n\n", bundle.Topic))
	sb.WriteString(fmt.Sprintf("Total Research Angles Explored: %d\n", len(bundle.Items)))
	sb.WriteString(fmt.Sprintf("Total Content Generated: %d words\n", bundle.Metadata.TotalWords))
	sb.WriteString(fmt.Sprintf("Research Timestamp: %s\n\n", bundle.Metadata.CompiledAt.Format(time.RFC1123)))
	sb.WriteString("Key Areas Covered:\n")

	for _, item := range bundle.Items {
		sb.WriteString(fmt.Sprintf("- %s (%d words)\n", item.Angle, item.WordCount))
	}

	return sb.String()
}
