package store

import "time"

// MaxQuestions is the hard ceiling on questions per intake session.
const MaxQuestions = 20

// Lifecycle phases of an intake session.
const (
	PhaseCollecting  = "COLLECTING"
	PhaseQuestioning = "QUESTIONING"
	PhaseSummarizing = "SUMMARIZING"
)

// Question kinds as classified by the oracle.
const (
	KindStandard = "standard"
	KindEdgeCase = "edge_case"
)

// Question is one entry in a session's ordered question history.
// Immutable once appended; Sequence is its 1-based position at creation.
type Question struct {
	Sequence int    `json:"sequence"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Icon     string `json:"icon"`
	Kind     string `json:"kind"`
	Fallback bool   `json:"fallback"` // served by the fallback source, not the oracle
	RawReply string `json:"-"`        // raw oracle JSON, retained for persistence
}

// Session is the live intake session state held in memory while the
// questioning loop runs.
//
// Questions is append-only and never exceeds MaxQuestions. Answers is keyed
// by 0-based position in Questions; a missing key means the question was
// skipped. Once Phase reaches PhaseSummarizing neither may change again.
type Session struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Phase       string         `json:"phase"`
	Questions   []Question     `json:"questions"`
	Answers     map[int]string `json:"answers"`

	// Position is the index of the question currently shown to the user.
	Position int `json:"position"`

	// Busy marks an in-flight oracle call; no second action may start
	// while it is set.
	Busy bool `json:"busy"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AnsweredCount returns the number of recorded answers.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}
