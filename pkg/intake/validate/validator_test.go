package validate

import (
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantOk     bool
		wantReason string
	}{
		{
			name:       "empty",
			text:       "",
			wantOk:     false,
			wantReason: ReasonTooShort,
		},
		{
			name:       "too short after trim",
			text:       "   hi app   ",
			wantOk:     false,
			wantReason: ReasonTooShort,
		},
		{
			name:       "two words padded past length check",
			text:       "ab cd                 ",
			wantOk:     false,
			wantReason: ReasonTooShort,
		},
		{
			name:       "long but no vowels",
			text:       "xzr pqst wrtk lmnb xzr pqst",
			wantOk:     false,
			wantReason: ReasonNotWordLike,
		},
		{
			name:       "long but only two meaningful words",
			text:       "banana x y z q apple k",
			wantOk:     false,
			wantReason: ReasonNotWordLike,
		},
		{
			name:   "valid project description",
			text:   "build a mobile app for dog walkers",
			wantOk: true,
		},
		{
			name:   "punctuation stripped before vowel check",
			text:   "re-design the (old) billing portal!",
			wantOk: true,
		},
		{
			name:   "exactly three meaningful words",
			text:   "make trading bots",
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Check(tt.text)
			if ok != tt.wantOk {
				t.Errorf("Check(%q) ok = %v, want %v", tt.text, ok, tt.wantOk)
			}
			if !tt.wantOk && reason != tt.wantReason {
				t.Errorf("Check(%q) reason = %q, want %q", tt.text, reason, tt.wantReason)
			}
			if tt.wantOk && reason != "" {
				t.Errorf("Check(%q) reason = %q, want empty", tt.text, reason)
			}
		})
	}
}
