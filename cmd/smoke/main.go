package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, hardcore mode can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// Streams an SSE chat response and prints the assembled text.
func sendChat(token, mode, content string) error {
	reqBody := map[string]interface{}{
		"mode": mode,
		"messages": []map[string]string{
			{"role": "user", "content": content},
		},
	}
	jsonBody, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", baseURL+"/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	color.Green("Status: %s (mode: %s)", resp.Status, resp.Header.Get("X-Chat-Mode"))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		color.Red("Error body: %s", string(body))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			fmt.Println()
			break
		}
		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		for _, choice := range chunk.Choices {
			fmt.Print(choice.Delta.Content)
		}
	}
	return scanner.Err()
}

func main() {
	color.Cyan("🚀 Starting DeepSea Chat API Smoke Test\n")

	username := os.Getenv("SMOKE_USERNAME")
	password := os.Getenv("SMOKE_PASSWORD")
	if username == "" || password == "" {
		color.Red("SMOKE_USERNAME and SMOKE_PASSWORD must be set")
		os.Exit(1)
	}

	// 1. Login
	color.Yellow("\n[AUTH] 1. Login")
	resp, body, err := sendRequest("POST", "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var loginResp map[string]interface{}
	json.Unmarshal(body, &loginResp)
	prettyPrint(loginResp)

	var token string
	if data, ok := loginResp["data"].(map[string]interface{}); ok {
		if t, ok := data["token"].(string); ok {
			token = t
		}
	}
	if token == "" {
		color.Red("No token in login response")
		os.Exit(1)
	}

	// 2. Lite chat (short definition question, auto mode)
	color.Yellow("\n[CHAT] 2. Auto Mode (expects lite)")
	if err := sendChat(token, "auto", "DeepSea란 뭐야?"); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	// 3. Standard chat
	color.Yellow("\n[CHAT] 3. Standard Mode")
	if err := sendChat(token, "standard", "Explain the difference between goroutines and OS threads."); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	// 4. Hardcore chat
	color.Yellow("\n[CHAT] 4. Hardcore Mode")
	if err := sendChat(token, "hardcore", "Design a rate limiter for a multi-tenant API gateway. Compare token bucket and sliding window approaches."); err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}

	// 5. Export conversation
	color.Yellow("\n[CONV] 5. Export Conversation")
	resp, body, err = sendRequest("POST", "/conversations/export", token, map[string]interface{}{
		"mode": "standard",
		"messages": []map[string]string{
			{"role": "user", "content": "Hello"},
			{"role": "assistant", "content": "Hi there!"},
		},
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var exportResp map[string]interface{}
	json.Unmarshal(body, &exportResp)
	prettyPrint(exportResp)

	color.Cyan("\n✅ Smoke test completed")
}
