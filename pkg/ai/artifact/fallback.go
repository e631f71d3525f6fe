package artifact

import "strings"

// Risk flags severe enough to force a fallback on their own.
var highSeverityFlags = map[string]bool{
	"numeric_unverified": true,
	"time_sensitive":     true,
	"logical_gap":        true,
}

// Thresholds for the fallback decision.
type Thresholds struct {
	MinConfidence         float64
	MinFactualReliability float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinConfidence:         0.65,
		MinFactualReliability: 0.6,
	}
}

// ShouldFallback decides whether the draft must be replaced by the
// secondary provider's rewrite. All conditions are evaluated so the caller
// can log every reason that fired, not just the first.
func ShouldFallback(review Review, plan Plan, t Thresholds) (bool, []string) {
	var reasons []string

	if review.NeedsFallback {
		reason := "review requested fallback"
		if review.FallbackReason != "" {
			reason += ": " + review.FallbackReason
		}
		reasons = append(reasons, reason)
	}

	if review.ConfidenceScore < t.MinConfidence {
		reasons = append(reasons, "confidence below threshold")
	}

	for _, flag := range review.RiskFlags {
		if highSeverityFlags[normalizeFlag(flag)] {
			reasons = append(reasons, "high-severity risk flag: "+flag)
		}
	}

	if plan.TimeSensitive() && review.FactualReliability < t.MinFactualReliability {
		reasons = append(reasons, "time-sensitive task with low factual reliability")
	}

	return len(reasons) > 0, reasons
}

func normalizeFlag(flag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(flag)), "-", "_")
}
