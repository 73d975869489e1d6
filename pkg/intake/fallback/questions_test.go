package fallback

import (
	"testing"

	"project-intake-be/pkg/store"
)

const description = "build a booking platform for dog walkers"

func TestForClampsToRange(t *testing.T) {
	first := For(description, 0)
	if first.Category != "Vision" {
		t.Errorf("For(0) category = %q, want Vision", first.Category)
	}

	last := For(description, 999)
	if last.Category != "Stakeholders" {
		t.Errorf("For(999) category = %q, want Stakeholders", last.Category)
	}
	if last.Text != For(description, Len()-1).Text {
		t.Errorf("For(999) should clamp to the last entry")
	}

	if got := For(description, -1); got.Text != first.Text {
		t.Errorf("For(-1) should clamp to the first entry")
	}
}

func TestForIsDeterministic(t *testing.T) {
	for i := 0; i < Len(); i++ {
		a := For(description, i)
		b := For("a completely different project", i)
		if a != b {
			t.Fatalf("For(%d) not deterministic: %+v vs %+v", i, a, b)
		}
		if a.Text == "" || a.Category == "" || a.Icon == "" {
			t.Errorf("For(%d) has empty fields: %+v", i, a)
		}
		if !a.Fallback {
			t.Errorf("For(%d) not marked as fallback", i)
		}
	}
}

func TestFallbackCoversBudgetAndTimeline(t *testing.T) {
	var hasBudget, hasTimeline, hasEdgeCase bool
	for i := 0; i < Len(); i++ {
		q := For(description, i)
		switch q.Category {
		case "Budget":
			hasBudget = true
		case "Timeline":
			hasTimeline = true
		}
		if q.Kind == store.KindEdgeCase {
			hasEdgeCase = true
		}
	}
	if !hasBudget || !hasTimeline {
		t.Errorf("fallback list must cover budget and timeline, got budget=%v timeline=%v", hasBudget, hasTimeline)
	}
	if !hasEdgeCase {
		t.Errorf("fallback list should include at least one edge-case question")
	}
}
