package markdown

import (
	"strings"
	"testing"

	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/llm"
)

func TestSerialize(t *testing.T) {
	conv := Conversation{
		Mode: mode.ModeHardcore,
		Date: "2026-08-29T10:00:00Z",
		Messages: []llm.Message{
			{Role: "user", Content: "Design a cache."},
			{Role: "assistant", Content: "Use an LRU with TTL."},
		},
	}

	out := Serialize(conv)

	if !strings.HasPrefix(out, "---\nmode: hardcore\ndate: 2026-08-29T10:00:00Z\n---\n") {
		t.Errorf("unexpected frontmatter:\n%s", out)
	}
	if !strings.Contains(out, "## User\n\nDesign a cache.") {
		t.Errorf("missing user section:\n%s", out)
	}
	if !strings.Contains(out, "## Assistant\n\nUse an LRU with TTL.") {
		t.Errorf("missing assistant section:\n%s", out)
	}
}

func TestRoundTrip(t *testing.T) {
	conv := Conversation{
		Mode: mode.ModeLite,
		Date: "2026-01-15T09:30:00Z",
		Messages: []llm.Message{
			{Role: "system", Content: "You are concise."},
			{Role: "user", Content: "고루틴이 뭐야?"},
			{Role: "assistant", Content: "Lightweight threads managed by the Go runtime.\n\nThey multiplex onto OS threads."},
			{Role: "user", Content: "Thanks!"},
		},
	}

	got := Deserialize(Serialize(conv))

	if got.Mode != conv.Mode {
		t.Errorf("Mode = %q, want %q", got.Mode, conv.Mode)
	}
	if got.Date != conv.Date {
		t.Errorf("Date = %q, want %q", got.Date, conv.Date)
	}
	if len(got.Messages) != len(conv.Messages) {
		t.Fatalf("message count = %d, want %d", len(got.Messages), len(conv.Messages))
	}
	for i := range conv.Messages {
		if got.Messages[i].Role != conv.Messages[i].Role {
			t.Errorf("message %d role = %q, want %q", i, got.Messages[i].Role, conv.Messages[i].Role)
		}
		if got.Messages[i].Content != conv.Messages[i].Content {
			t.Errorf("message %d content = %q, want %q", i, got.Messages[i].Content, conv.Messages[i].Content)
		}
	}
}

func TestDeserializeDefaults(t *testing.T) {
	got := Deserialize("## User\n\nNo frontmatter here.\n")

	if got.Mode != mode.ModeStandard {
		t.Errorf("Mode = %q, want standard default", got.Mode)
	}
	if got.Date == "" {
		t.Error("Date default missing")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "No frontmatter here." {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestDeserializeIgnoresUnknownHeaderLines(t *testing.T) {
	text := "---\nmode: standard\ntitle: My Chat\ndate: 2026-02-01T00:00:00Z\n---\n\n## User\n\nhi\n"

	got := Deserialize(text)

	if got.Mode != mode.ModeStandard {
		t.Errorf("Mode = %q, want standard", got.Mode)
	}
	if got.Date != "2026-02-01T00:00:00Z" {
		t.Errorf("Date = %q", got.Date)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("message count = %d, want 1", len(got.Messages))
	}
}

func TestSerializeUnknownRoleFallsBackToAssistant(t *testing.T) {
	out := Serialize(Conversation{
		Mode:     mode.ModeStandard,
		Date:     "2026-01-01T00:00:00Z",
		Messages: []llm.Message{{Role: "tool", Content: "result"}},
	})

	if !strings.Contains(out, "## Assistant\n\nresult") {
		t.Errorf("unknown role not mapped to assistant:\n%s", out)
	}
}
