package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The output frame format is the OpenAI-compatible SSE shape, so the
// pass-through path can relay provider bytes unchanged and the synthesized
// path produces indistinguishable frames.

const doneFrame = "data: [DONE]\n\n"

type chunk struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Delta delta `json:"delta"`
}

type delta struct {
	Content string `json:"content"`
}

// WriteText emits a single synthesized content frame followed by the
// completion sentinel. Used for pipeline results and error messages.
func WriteText(w *bufio.Writer, text string) error {
	payload, err := json.Marshal(chunk{Choices: []choice{{Delta: delta{Content: text}}}})
	if err != nil {
		return fmt.Errorf("marshal sse chunk: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if _, err := w.WriteString(doneFrame); err != nil {
		return err
	}
	return w.Flush()
}

// Relay copies a provider-native event stream through to the client,
// flushing per line so tokens appear as they arrive. If the upstream closed
// without its own sentinel, one is appended so every path terminates the
// same way.
func Relay(w *bufio.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sawDone := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "data: [DONE]" {
			sawDone = true
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	// A failed upstream read still terminates the client stream with a
	// frame and the sentinel, never a silent truncation.
	if err := scanner.Err(); err != nil {
		WriteText(w, "\n[stream interrupted]")
		return err
	}

	if !sawDone {
		if _, err := w.WriteString(doneFrame); err != nil {
			return err
		}
	}
	return w.Flush()
}
