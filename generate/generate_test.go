package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	answer string
	err    error
	delay  time.Duration

	prompt string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompt = text.Text
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.answer}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.answer, f.err
}

func TestGenerateReturnsCompletion(t *testing.T) {
	m := &fakeModel{answer: "the answer"}
	g := New(m, time.Second)
	answer := g.Generate(context.Background(), "the prompt")
	if answer != "the answer" {
		t.Errorf("expected %q, got %q", "the answer", answer)
	}
	if m.prompt != "the prompt" {
		t.Errorf("expected prompt to be forwarded, got %q", m.prompt)
	}
}

func TestGenerateFailureReturnsDescriptiveAnswer(t *testing.T) {
	m := &fakeModel{err: errors.New("upstream returned status 502")}
	g := New(m, time.Second)
	answer := g.Generate(context.Background(), "the prompt")
	if answer == "" {
		t.Fatal("expected a non-empty fallback answer")
	}
	if !strings.Contains(answer, "Error calling LLM") {
		t.Errorf("expected an error indicator, got %q", answer)
	}
	if !strings.Contains(answer, "502") {
		t.Errorf("expected the upstream failure to be described, got %q", answer)
	}
}

func TestGenerateTimeoutReturnsDescriptiveAnswer(t *testing.T) {
	m := &fakeModel{answer: "too late", delay: time.Second}
	g := New(m, 10*time.Millisecond)
	answer := g.Generate(context.Background(), "the prompt")
	if !strings.Contains(answer, "Error calling LLM") {
		t.Errorf("expected an error indicator on timeout, got %q", answer)
	}
}

func TestGenerateHonorsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &fakeModel{answer: "unused", delay: time.Second}
	g := New(m, time.Minute)
	start := time.Now()
	answer := g.Generate(ctx, "the prompt")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected a cancelled call to return promptly, took %v", elapsed)
	}
	if !strings.Contains(answer, "Error calling LLM") {
		t.Errorf("expected an error indicator on cancellation, got %q", answer)
	}
}
