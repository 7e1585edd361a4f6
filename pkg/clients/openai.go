package clients

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// ModelType is an enum for the commonly used OpenAI models.
type ModelType string

const (
	// DefaultModel is the model to use if none is configured
	DefaultModel ModelType = "gpt-4o-mini"
	ProModel     ModelType = "gpt-4o"
)

// OpenAI builds a chat model client. The model name comes from configuration
// and is passed through unchanged, so newer models work without a code change.
func OpenAI(model string, apiKey string) (*openai.LLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}
	if model == "" {
		model = string(DefaultModel)
	}

	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to init OpenAI client: %w", err)
	}

	return llm, nil
}
