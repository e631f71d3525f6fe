package mode

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Mode
		wantOK bool
	}{
		{"", ModeAuto, true},
		{"auto", ModeAuto, true},
		{"lite", ModeLite, true},
		{"standard", ModeStandard, true},
		{"hardcore", ModeHardcore, true},
		{"turbo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveExplicitModesWin(t *testing.T) {
	r := NewResolver(DefaultPolicy())

	// Explicit selection bypasses classification entirely, even when the
	// input would classify differently.
	longAnalytical := strings.Repeat("시스템 아키텍처를 분석해줘. ", 20)

	tests := []struct {
		name      string
		input     string
		requested Mode
		want      Mode
	}{
		{"explicit lite on long input", longAnalytical, ModeLite, ModeLite},
		{"explicit standard on short input", "뭐야?", ModeStandard, ModeStandard},
		{"explicit hardcore always allowed", "hi", ModeHardcore, ModeHardcore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.input, tt.requested); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveAutoClassification(t *testing.T) {
	tests := []struct {
		name              string
		input             string
		allowAutoHardcore bool
		want              Mode
	}{
		{"empty input", "", false, ModeStandard},
		{"short definition question korean", "DeepSea란 뭐야?", false, ModeLite},
		{"short definition question english", "api 의미?", false, ModeLite},
		{"short but no lite keyword", "도와줘", false, ModeStandard},
		{"lite keyword but long input", strings.Repeat("가", 40) + " 뭐야?", false, ModeStandard},
		{"escalation keyword capped", "아키텍처 설계해줘", false, ModeStandard},
		{"escalation keyword allowed", "아키텍처 설계해줘", true, ModeHardcore},
		{"long input capped", strings.Repeat("이 문제를 좀 더 자세히 보자. ", 20), false, ModeStandard},
		{"long input allowed", strings.Repeat("이 문제를 좀 더 자세히 보자. ", 20), true, ModeHardcore},
		{"why question allowed", "왜 고루틴이 스레드보다 가벼운가요", true, ModeHardcore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := DefaultPolicy()
			policy.AllowAutoHardcore = tt.allowAutoHardcore
			r := NewResolver(policy)

			if got := r.Resolve(tt.input, ModeAuto); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveCountsRunesNotBytes(t *testing.T) {
	// 29 hangul runes is 87 bytes; still under the lite length cut.
	input := strings.Repeat("가", 25) + " 뭐야?"
	r := NewResolver(DefaultPolicy())

	if got := r.Resolve(input, ModeAuto); got != ModeLite {
		t.Errorf("Resolve = %q, want %q", got, ModeLite)
	}
}
