package oracle

import (
	"context"

	"project-intake-be/pkg/store"
)

// Outcome tags the closed set of results an oracle invocation can produce.
// Controller logic switches on this tag and never touches raw reply text.
const (
	OutcomeNextQuestion = "NEXT_QUESTION"
	OutcomeStopped      = "STOPPED"
	OutcomeRejected     = "REJECTED"
	OutcomeUnparsable   = "UNPARSABLE"
)

// Decision is the parsed result of one oracle invocation.
type Decision struct {
	Outcome string

	// Question is set only for OutcomeNextQuestion. Sequence is left at
	// zero; the controller assigns it on append.
	Question *store.Question

	// Message and ReasonType carry the oracle's rejection for
	// OutcomeRejected ("not a real project" verdicts).
	Message    string
	ReasonType string

	// Reasoning is the oracle's free-text justification, when present.
	Reasoning string

	// Raw is the extracted JSON object the decision was parsed from.
	// Empty for OutcomeUnparsable.
	Raw string
}

// AnsweredQuestion is one prior question/answer pair fed back into the
// prompt. Skipped questions are never included.
type AnsweredQuestion struct {
	Question string
	Answer   string
}

// Generator is the port the questioning controller depends on; the real
// Client implements it, tests substitute fakes.
type Generator interface {
	GenerateNext(ctx context.Context, description string, history []AnsweredQuestion) *Decision
}
