package mode

import (
	"strings"
	"unicode/utf8"
)

// Keywords that flag a short definitional query.
var liteKeywords = []string{"뭐야", "무엇", "정의", "의미"}

// Keywords that signal analytical, design or strategic intent.
var escalationKeywords = []string{
	"왜", "분석", "비교", "설계", "구조", "전략", "최적화",
	"아키텍처", "구조적", "비판", "설계해줘",
}

// Policy fixes the classification thresholds and the auto-escalation rule.
// Whether auto may ever reach hardcore changed between deployments, so it
// is an explicit flag rather than a hardcoded choice.
type Policy struct {
	AllowAutoHardcore bool
	LiteMaxRunes      int
	HardcoreMinRunes  int
}

func DefaultPolicy() Policy {
	return Policy{
		AllowAutoHardcore: false,
		LiteMaxRunes:      30,
		HardcoreMinRunes:  150,
	}
}

// Resolver classifies auto-mode requests. Pure, no I/O, no state beyond
// the immutable policy.
type Resolver struct {
	policy Policy
}

func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy}
}

// Resolve maps (latest user input, requested mode) to an effective mode.
// An explicit user choice always wins. Total for any input including "".
func (r *Resolver) Resolve(input string, requested Mode) Mode {
	if requested != ModeAuto && requested.Effective() {
		return requested
	}

	lower := strings.ToLower(input)
	length := utf8.RuneCountInString(input)

	if length < r.policy.LiteMaxRunes && containsAny(lower, liteKeywords) {
		return ModeLite
	}

	if containsAny(lower, escalationKeywords) || length >= r.policy.HardcoreMinRunes {
		if r.policy.AllowAutoHardcore {
			return ModeHardcore
		}
		return ModeStandard
	}

	return ModeStandard
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
