package oracle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"project-intake-be/pkg/llm"
)

// Client talks to the LLM oracle and turns its free-text replies into
// tagged decisions. It enforces a minimum spacing between its own
// invocations, independent of the per-day session limit.
type Client struct {
	provider    llm.LLMProvider
	minInterval time.Duration
	logger      *log.Logger

	mu       sync.Mutex
	lastCall time.Time
}

var _ Generator = &Client{}

// NewClient creates an oracle client. The credential is required before any
// call can be made: an empty credential is a configuration error, not a
// runtime fallback case.
func NewClient(provider llm.LLMProvider, credential string, minInterval time.Duration, logger *log.Logger) (*Client, error) {
	if credential == "" {
		return nil, fmt.Errorf("oracle: no access credential configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		provider:    provider,
		minInterval: minInterval,
		logger:      logger,
	}, nil
}

// GenerateNext asks the oracle for the next step given the description and
// the answered history. It never fails: an invocation error, a reply with no
// embedded JSON object, or an unrecognized shape all come back as an
// OutcomeUnparsable decision, and the caller falls back.
func (c *Client) GenerateNext(ctx context.Context, description string, history []AnsweredQuestion) *Decision {
	if err := c.waitForSlot(ctx); err != nil {
		c.logger.Printf("[ORACLE] aborted while waiting for call slot: %v", err)
		return &Decision{Outcome: OutcomeUnparsable}
	}

	prompt := buildPrompt(description, history)

	// Low temperature: we want a decision, not creativity.
	reply, err := c.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		c.logger.Printf("[ORACLE] generation failed: %v", err)
		return &Decision{Outcome: OutcomeUnparsable}
	}

	decision := parseDecision(reply)
	if decision.Outcome == OutcomeUnparsable {
		c.logger.Printf("[ORACLE] unparsable reply (%d bytes)", len(reply))
	} else {
		c.logger.Printf("[ORACLE] decision: %s (history: %d)", decision.Outcome, len(history))
	}
	return decision
}

// waitForSlot sleeps until minInterval has passed since the previous call,
// honoring context cancellation. The timestamp is claimed up front so
// overlapping callers space out instead of dog-piling.
func (c *Client) waitForSlot(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	wait := c.minInterval - now.Sub(c.lastCall)
	if wait < 0 {
		wait = 0
	}
	c.lastCall = now.Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
