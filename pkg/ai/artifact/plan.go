package artifact

import (
	"encoding/json"
	"strings"
)

// Plan is the structured output of the PLAN step. It guides the draft and
// never outlives the request.
type Plan struct {
	TaskType           string   `json:"task_type"`
	ComplexityLevel    string   `json:"complexity_level"`
	RequiredElements   []string `json:"required_elements"`
	AnswerOutline      []string `json:"answer_outline"`
	RiskAreas          []string `json:"risk_areas"`
	MissingInformation []string `json:"missing_information"`
}

// FallbackPlan is the canonical substitute when the model returns an
// unparseable plan. Planning is advisory, never fatal.
func FallbackPlan() Plan {
	return Plan{
		TaskType:        "explanation",
		ComplexityLevel: "medium",
		RequiredElements: []string{
			"Direct answer to the user's question",
		},
		AnswerOutline: []string{"Conclusion", "Explanation", "Caveats"},
	}
}

// ParsePlan extracts the plan JSON from model output. It never fails:
// malformed output yields FallbackPlan.
func ParsePlan(text string) Plan {
	raw := extractJSON(text)
	if raw == "" {
		return FallbackPlan()
	}
	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return FallbackPlan()
	}
	if plan.TaskType == "" {
		return FallbackPlan()
	}
	return plan
}

// TimeSensitive reports whether the plan flagged a need for current data.
func (p Plan) TimeSensitive() bool {
	if p.TaskType == "time_sensitive" {
		return true
	}
	for _, risk := range p.RiskAreas {
		if strings.Contains(strings.ToLower(risk), "time") {
			return true
		}
	}
	return false
}

// extractJSON returns the first balanced top-level JSON object in text,
// tolerating markdown code fences around it.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
