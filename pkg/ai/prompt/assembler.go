package prompt

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"deepsea-be/pkg/ai/artifact"
	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/llm"
)

// Config bounds the upstream request size. Compaction is lossy and one-way.
type Config struct {
	MaxHistoryMessages int
	MaxMessageChars    int
}

func DefaultConfig() Config {
	return Config{
		MaxHistoryMessages: 20,
		MaxMessageChars:    4000,
	}
}

// Assembler builds the ordered message list sent upstream. Pure function of
// mode + history; holds only immutable configuration.
type Assembler struct {
	cfg Config
}

func NewAssembler(cfg Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Build strips any caller-supplied system messages, compacts the history
// and prepends exactly one canonical system message for the mode. The
// result always starts with a system message and contains no other one.
func (a *Assembler) Build(m mode.Mode, history []llm.Message) []llm.Message {
	compacted := a.compact(history)

	system := SystemPrompt(m)
	if hint := TaskHint(latestUserContent(compacted)); hint != "" {
		system += "\nTask focus: " + hint
	}

	messages := make([]llm.Message, 0, len(compacted)+1)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	return append(messages, compacted...)
}

// compact keeps the most recent messages, drops caller system messages and
// truncates oversized content.
func (a *Assembler) compact(history []llm.Message) []llm.Message {
	filtered := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		if msg.Role == "system" {
			continue
		}
		filtered = append(filtered, msg)
	}

	if len(filtered) > a.cfg.MaxHistoryMessages {
		filtered = filtered[len(filtered)-a.cfg.MaxHistoryMessages:]
	}

	out := make([]llm.Message, len(filtered))
	for i, msg := range filtered {
		out[i] = llm.Message{Role: msg.Role, Content: truncate(msg.Content, a.cfg.MaxMessageChars)}
	}
	return out
}

// truncate cuts content at a rune boundary at or below max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func latestUserContent(history []llm.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	return ""
}

var taskHints = []struct {
	hint     string
	keywords []string
}{
	{"engineering", []string{"코드", "구현", "버그", "에러", "api", "함수", "배포", "code", "implement", "debug"}},
	{"planning", []string{"계획", "전략", "로드맵", "일정", "plan", "roadmap", "strategy"}},
	{"writing", []string{"글", "작성", "문장", "요약", "번역", "write", "summarize", "translate"}},
}

// TaskHint classifies the latest user message into a coarse task bucket.
func TaskHint(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, t := range taskHints {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return t.hint
			}
		}
	}
	return "general"
}

// ==================== Hardcore step prompts ====================

// PlanPrompt builds the PLAN step prompt for the user's query.
func PlanPrompt(userInput string) string {
	return strings.NewReplacer("{user_input}", userInput).Replace(planTemplate)
}

// DraftPrompt builds the DRAFT step prompt from the query and plan.
func DraftPrompt(userInput string, plan artifact.Plan) string {
	return strings.NewReplacer(
		"{user_input}", userInput,
		"{plan_output}", mustJSON(plan),
	).Replace(draftTemplate)
}

// ReviewPrompt builds the REVIEW step prompt from the query, plan and draft.
func ReviewPrompt(userInput string, plan artifact.Plan, draft string) string {
	return strings.NewReplacer(
		"{user_input}", userInput,
		"{plan_output}", mustJSON(plan),
		"{draft_output}", draft,
	).Replace(reviewTemplate)
}

// FallbackPrompt builds the cross-provider rewrite prompt from the query,
// draft and review.
func FallbackPrompt(userInput, draft string, review artifact.Review) string {
	return strings.NewReplacer(
		"{user_input}", userInput,
		"{draft_output}", draft,
		"{review_output}", mustJSON(review),
	).Replace(fallbackTemplate)
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
