// Package generate produces the final answer text from a composed prompt.
// The upstream model is best-effort: the pipeline always hands the user some
// textual answer, so upstream failures become a descriptive answer string
// instead of an error.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
)

const (
	// DefaultTimeout bounds the round trip to the model.
	DefaultTimeout = 60 * time.Second

	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
)

func New(llm llms.Model, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{
		llm:         llm,
		timeout:     timeout,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
}

type Generator struct {
	llm         llms.Model
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// Generate sends the prompt as a single user message and returns the model's
// completion. On error, timeout or cancellation the returned string describes
// the failure; the caller can rely on always receiving non-empty text. Output
// for identical prompts may vary between calls.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	answer, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithMaxTokens(g.maxTokens),
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return fmt.Sprintf("Error calling LLM: %v", err)
	}
	return answer
}
