package fallback

import (
	"project-intake-be/pkg/store"
)

// questions is the fixed, ordered list served when the oracle is unusable.
// Order matters: the sequence walks from vision down to stakeholders so that
// even a fully offline session still covers the basics.
var questions = []store.Question{
	{Category: "Vision", Text: "What is the main goal or vision for this project?", Icon: "🎯", Kind: store.KindStandard},
	{Category: "Audience", Text: "Who are the primary users or customers of this project?", Icon: "👥", Kind: store.KindStandard},
	{Category: "Timeline", Text: "What is your expected timeline or deadline for delivery?", Icon: "📅", Kind: store.KindStandard},
	{Category: "Budget", Text: "What budget range do you have in mind for this project?", Icon: "💰", Kind: store.KindStandard},
	{Category: "Metrics", Text: "How will you measure whether the project has succeeded?", Icon: "📊", Kind: store.KindStandard},
	{Category: "Features", Text: "Which features are absolutely essential for the first version?", Icon: "⭐", Kind: store.KindStandard},
	{Category: "Resources", Text: "What team members or resources are already available?", Icon: "🧰", Kind: store.KindStandard},
	{Category: "Dependencies", Text: "Does this project depend on any external systems or vendors?", Icon: "🔗", Kind: store.KindStandard},
	{Category: "Risks", Text: "What do you see as the biggest risk that could derail this project?", Icon: "⚠️", Kind: store.KindEdgeCase},
	{Category: "Stakeholders", Text: "Who needs to sign off on decisions, and who else has a stake in the outcome?", Icon: "🤝", Kind: store.KindStandard},
}

// For returns the generic question for a project description and
// answered-question count. Selection is purely positional, clamped to the
// last entry, and total: any input yields a question, so a session can
// always progress with the oracle fully unavailable.
func For(description string, answeredCount int) store.Question {
	idx := answeredCount
	if idx < 0 {
		idx = 0
	}
	if idx >= len(questions) {
		idx = len(questions) - 1
	}
	q := questions[idx]
	q.Fallback = true
	return q
}

// Len reports how many distinct fallback questions exist.
func Len() int {
	return len(questions)
}
