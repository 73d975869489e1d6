package analytics

import (
	"math"
	"strings"

	"project-intake-be/pkg/store"
)

// Scope risk classification derived from completeness.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Analytics is the completeness/risk summary of a finished (or in-flight)
// answer set.
type Analytics struct {
	TotalQuestions        int    `json:"total_questions"`
	AnsweredCount         int    `json:"answered_count"`
	Completeness          int    `json:"completeness"` // rounded percent, 0-100
	ScopeRisk             string `json:"scope_risk"`
	HasBudgetInfo         bool   `json:"has_budget_info"`
	HasTimelineInfo       bool   `json:"has_timeline_info"`
	EdgeCaseAnsweredCount int    `json:"edge_case_answered_count"`
}

// Summarize computes the analytics for a question history and its answer
// map. Pure and idempotent, so it is safe to call on every answer for live
// dashboards as well as once at the end.
//
// Category flags use case-insensitive substring matching on purpose: the
// oracle's category labels are free-ish text, so "Budget & Costs" still
// counts as budget coverage.
func Summarize(questions []store.Question, answers map[int]string) Analytics {
	a := Analytics{
		TotalQuestions: len(questions),
		AnsweredCount:  len(answers),
		ScopeRisk:      RiskHigh,
	}

	if a.TotalQuestions > 0 {
		a.Completeness = int(math.Round(100 * float64(a.AnsweredCount) / float64(a.TotalQuestions)))
	}

	switch {
	case a.Completeness >= 80:
		a.ScopeRisk = RiskLow
	case a.Completeness >= 60:
		a.ScopeRisk = RiskMedium
	}

	for pos := range answers {
		if pos < 0 || pos >= len(questions) {
			continue
		}
		q := questions[pos]
		category := strings.ToLower(q.Category)
		if strings.Contains(category, "budget") {
			a.HasBudgetInfo = true
		}
		if strings.Contains(category, "timeline") {
			a.HasTimelineInfo = true
		}
		if q.Kind == store.KindEdgeCase {
			a.EdgeCaseAnsweredCount++
		}
	}

	return a
}
