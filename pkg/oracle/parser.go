package oracle

import (
	"encoding/json"
	"strings"

	"project-intake-be/pkg/store"
)

// rawDecision mirrors the union of the three documented reply shapes. Only
// shouldContinue is strictly required; parsing stays lenient on the rest
// because models routinely drop or rename optional fields.
type rawDecision struct {
	ShouldContinue    *bool  `json:"shouldContinue"`
	IsValid           *bool  `json:"isValid"`
	ValidationType    string `json:"validationType"`
	ValidationMessage string `json:"validationMessage"`
	Category          string `json:"category"`
	Question          string `json:"question"`
	Icon              string `json:"icon"`
	Type              string `json:"type"`
	Reasoning         string `json:"reasoning"`
}

// extractJSON returns the first top-level brace-delimited substring of the
// reply, or "" when there is none.
func extractJSON(reply string) string {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return reply[start : end+1]
}

// parseDecision turns a free-text oracle reply into a tagged Decision.
// Anything that cannot be mapped onto one of the three shapes comes back as
// OutcomeUnparsable, which callers treat the same as an unavailable oracle.
func parseDecision(reply string) *Decision {
	raw := extractJSON(reply)
	if raw == "" {
		return &Decision{Outcome: OutcomeUnparsable}
	}

	var rd rawDecision
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		return &Decision{Outcome: OutcomeUnparsable}
	}
	if rd.ShouldContinue == nil {
		return &Decision{Outcome: OutcomeUnparsable}
	}

	if !*rd.ShouldContinue {
		if rd.IsValid != nil && !*rd.IsValid {
			msg := rd.ValidationMessage
			if msg == "" {
				msg = "This doesn't look like a project we can plan. Please describe a real project."
			}
			return &Decision{
				Outcome:    OutcomeRejected,
				Message:    msg,
				ReasonType: rd.ValidationType,
				Reasoning:  rd.Reasoning,
				Raw:        raw,
			}
		}
		return &Decision{Outcome: OutcomeStopped, Reasoning: rd.Reasoning, Raw: raw}
	}

	question := strings.TrimSpace(rd.Question)
	if question == "" {
		// A continue decision without a question is useless.
		return &Decision{Outcome: OutcomeUnparsable}
	}

	category := strings.TrimSpace(rd.Category)
	if category == "" {
		category = "Requirements"
	}
	icon := strings.TrimSpace(rd.Icon)
	if icon == "" {
		icon = "❓"
	}
	kind := store.KindStandard
	if strings.EqualFold(strings.TrimSpace(rd.Type), store.KindEdgeCase) {
		kind = store.KindEdgeCase
	}

	return &Decision{
		Outcome: OutcomeNextQuestion,
		Question: &store.Question{
			Category: category,
			Text:     question,
			Icon:     icon,
			Kind:     kind,
			RawReply: raw,
		},
		Reasoning: rd.Reasoning,
		Raw:       raw,
	}
}
