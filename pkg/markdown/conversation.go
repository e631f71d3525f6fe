package markdown

import (
	"strings"
	"time"

	"deepsea-be/pkg/ai/mode"
	"deepsea-be/pkg/llm"
)

// Conversation is the exchange format for conversation export/import:
// a frontmatter header (mode, date) followed by "## Role" sections.
type Conversation struct {
	Messages []llm.Message
	Mode     mode.Mode
	Date     string
}

var roleHeadings = map[string]string{
	"user":      "## User",
	"assistant": "## Assistant",
	"system":    "## System",
}

var headingRoles = map[string]string{
	"## User":      "user",
	"## Assistant": "assistant",
	"## System":    "system",
}

// Serialize renders the conversation as markdown with a frontmatter header.
func Serialize(c Conversation) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("mode: " + string(c.Mode) + "\n")
	b.WriteString("date: " + c.Date + "\n")
	b.WriteString("---\n\n")

	sections := make([]string, 0, len(c.Messages))
	for _, m := range c.Messages {
		heading, ok := roleHeadings[m.Role]
		if !ok {
			heading = "## Assistant"
		}
		sections = append(sections, heading+"\n\n"+m.Content+"\n")
	}
	b.WriteString(strings.Join(sections, "\n"))

	return b.String()
}

// Deserialize parses markdown produced by Serialize back into a
// conversation. Unknown header lines are ignored; content between role
// headings is attached to the preceding role.
func Deserialize(text string) Conversation {
	lines := strings.Split(text, "\n")

	conv := Conversation{
		Mode: mode.ModeStandard,
		Date: time.Now().UTC().Format(time.RFC3339),
	}

	i := 0
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		i = 1
		for i < len(lines) && strings.TrimSpace(lines[i]) != "---" {
			line := lines[i]
			if strings.HasPrefix(line, "mode:") {
				if m, ok := mode.Parse(strings.TrimSpace(strings.TrimPrefix(line, "mode:"))); ok {
					conv.Mode = m
				}
			}
			if strings.HasPrefix(line, "date:") {
				conv.Date = strings.TrimSpace(strings.TrimPrefix(line, "date:"))
			}
			i++
		}
		i++ // closing ---
	}

	var currentRole string
	var currentContent []string

	push := func() {
		if currentRole != "" && len(currentContent) > 0 {
			conv.Messages = append(conv.Messages, llm.Message{
				Role:    currentRole,
				Content: strings.TrimSpace(strings.Join(currentContent, "\n")),
			})
		}
		currentContent = nil
	}

	for ; i < len(lines); i++ {
		line := lines[i]
		if role, ok := headingRoles[strings.TrimSpace(line)]; ok {
			push()
			currentRole = role
			continue
		}
		if currentRole != "" {
			currentContent = append(currentContent, line)
		}
	}
	push()

	return conv
}
