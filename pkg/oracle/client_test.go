package oracle

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"project-intake-be/pkg/llm"
)

// scriptedProvider returns canned replies (or an error) and records the
// prompts it received.
type scriptedProvider struct {
	reply   string
	err     error
	prompts []string
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if len(history) > 0 {
		p.prompts = append(p.prompts, history[len(history)-1].Content)
	}
	return p.reply, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func newTestClient(t *testing.T, provider llm.LLMProvider) *Client {
	t.Helper()
	c, err := NewClient(provider, "test-credential", 0, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientRequiresCredential(t *testing.T) {
	_, err := NewClient(&scriptedProvider{}, "", 0, nil)
	if err == nil {
		t.Fatal("NewClient with empty credential must fail")
	}
}

func TestGenerateNextProviderError(t *testing.T) {
	c := newTestClient(t, &scriptedProvider{err: errors.New("connection refused")})
	d := c.GenerateNext(context.Background(), "build a crm", nil)
	if d == nil || d.Outcome != OutcomeUnparsable {
		t.Fatalf("decision = %+v, want unparsable", d)
	}
}

func TestGenerateNextNoBraces(t *testing.T) {
	c := newTestClient(t, &scriptedProvider{reply: "ask about money next"})
	d := c.GenerateNext(context.Background(), "build a crm", nil)
	if d.Outcome != OutcomeUnparsable {
		t.Fatalf("outcome = %s, want unparsable", d.Outcome)
	}
}

func TestGenerateNextPromptContents(t *testing.T) {
	provider := &scriptedProvider{reply: `{"shouldContinue": false, "isValid": true}`}
	c := newTestClient(t, provider)

	history := []AnsweredQuestion{
		{Question: "What is the budget?", Answer: "About 50k."},
		{Question: "When is the deadline?", Answer: "End of Q2."},
	}
	d := c.GenerateNext(context.Background(), "build a booking platform for vets", history)
	if d.Outcome != OutcomeStopped {
		t.Fatalf("outcome = %s, want stopped", d.Outcome)
	}

	if len(provider.prompts) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.prompts))
	}
	prompt := provider.prompts[0]

	for _, fragment := range []string{
		"build a booking platform for vets",
		"What is the budget?",
		"About 50k.",
		"When is the deadline?",
		"End of Q2.",
		"shouldContinue",
		"Budget, Timeline, Requirements, Risks, Scope, Technical, Stakeholders",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}

func TestGenerateNextMinimumSpacing(t *testing.T) {
	provider := &scriptedProvider{reply: `{"shouldContinue": false, "isValid": true}`}
	c, err := NewClient(provider, "cred", 30*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	c.GenerateNext(context.Background(), "desc one two three", nil)
	c.GenerateNext(context.Background(), "desc one two three", nil)
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("second call ran after %v, want at least the 30ms spacing", elapsed)
	}
}

func TestGenerateNextSpacingHonorsCancellation(t *testing.T) {
	provider := &scriptedProvider{reply: `{"shouldContinue": false, "isValid": true}`}
	c, err := NewClient(provider, "cred", time.Minute, nil)
	if err != nil {
		t.Fatal(err)
	}

	c.GenerateNext(context.Background(), "desc one two three", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	d := c.GenerateNext(ctx, "desc one two three", nil)
	if d.Outcome != OutcomeUnparsable {
		t.Errorf("canceled wait should yield unparsable, got %s", d.Outcome)
	}
}
