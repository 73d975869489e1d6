package analytics

import (
	"reflect"
	"testing"

	"project-intake-be/pkg/store"
)

func question(seq int, category, kind string) store.Question {
	return store.Question{Sequence: seq, Category: category, Text: "q", Icon: "❓", Kind: kind}
}

func TestSummarizeEmpty(t *testing.T) {
	a := Summarize(nil, nil)
	if a.Completeness != 0 {
		t.Errorf("completeness = %d, want 0", a.Completeness)
	}
	if a.ScopeRisk != RiskHigh {
		t.Errorf("scope risk = %s, want %s", a.ScopeRisk, RiskHigh)
	}
}

func TestSummarizeFullyAnswered(t *testing.T) {
	var questions []store.Question
	answers := map[int]string{}
	for i := 0; i < 10; i++ {
		questions = append(questions, question(i+1, "Requirements", store.KindStandard))
		answers[i] = "answered"
	}

	a := Summarize(questions, answers)
	if a.Completeness != 100 {
		t.Errorf("completeness = %d, want 100", a.Completeness)
	}
	if a.ScopeRisk != RiskLow {
		t.Errorf("scope risk = %s, want %s", a.ScopeRisk, RiskLow)
	}
	if a.HasBudgetInfo || a.HasTimelineInfo {
		t.Errorf("budget/timeline flags should be false without such categories")
	}
}

func TestSummarizeRiskBoundaries(t *testing.T) {
	tests := []struct {
		answered int
		total    int
		wantPct  int
		wantRisk string
	}{
		{0, 10, 0, RiskHigh},
		{5, 10, 50, RiskHigh},
		{6, 10, 60, RiskMedium},
		{7, 10, 70, RiskMedium},
		{8, 10, 80, RiskLow},
		{10, 10, 100, RiskLow},
		{2, 3, 67, RiskMedium}, // rounding: 66.67 -> 67
		{1, 3, 33, RiskHigh},
	}

	for _, tt := range tests {
		var questions []store.Question
		answers := map[int]string{}
		for i := 0; i < tt.total; i++ {
			questions = append(questions, question(i+1, "Scope", store.KindStandard))
		}
		for i := 0; i < tt.answered; i++ {
			answers[i] = "x"
		}

		a := Summarize(questions, answers)
		if a.Completeness != tt.wantPct {
			t.Errorf("%d/%d completeness = %d, want %d", tt.answered, tt.total, a.Completeness, tt.wantPct)
		}
		if a.ScopeRisk != tt.wantRisk {
			t.Errorf("%d/%d risk = %s, want %s", tt.answered, tt.total, a.ScopeRisk, tt.wantRisk)
		}
	}
}

func TestSummarizeCategoryFlags(t *testing.T) {
	questions := []store.Question{
		question(1, "Budget & Costs", store.KindStandard),
		question(2, "Project Timeline", store.KindStandard),
		question(3, "Risks", store.KindEdgeCase),
		question(4, "budget", store.KindStandard),
	}

	// Only the answered budget question counts; the unanswered timeline one
	// does not.
	a := Summarize(questions, map[int]string{0: "50k", 2: "vendor lock-in"})
	if !a.HasBudgetInfo {
		t.Errorf("HasBudgetInfo = false, want true (substring match)")
	}
	if a.HasTimelineInfo {
		t.Errorf("HasTimelineInfo = true, want false (timeline question skipped)")
	}
	if a.EdgeCaseAnsweredCount != 1 {
		t.Errorf("EdgeCaseAnsweredCount = %d, want 1", a.EdgeCaseAnsweredCount)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	questions := []store.Question{
		question(1, "Budget", store.KindStandard),
		question(2, "Timeline", store.KindStandard),
	}
	answers := map[int]string{0: "a", 1: "b"}

	first := Summarize(questions, answers)
	second := Summarize(questions, answers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Summarize not idempotent: %+v vs %+v", first, second)
	}
}

func TestSummarizeIgnoresStrayAnswerKeys(t *testing.T) {
	questions := []store.Question{question(1, "Budget", store.KindStandard)}
	a := Summarize(questions, map[int]string{0: "x", 7: "stray"})
	if a.EdgeCaseAnsweredCount != 0 {
		t.Errorf("stray keys must not count toward edge cases")
	}
	if !a.HasBudgetInfo {
		t.Errorf("valid key should still be counted")
	}
}
