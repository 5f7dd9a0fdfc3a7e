package Gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	textModel       = "gemini-2.5-flash-lite"
	multimodalModel = "gemini-2.5-flash"
	endpointFormat  = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"
)

// SystemInstruction scopes the assistant to medical questions only.
const SystemInstruction = "You are MediBot, a helpful AI medical assistant. " +
	"Your primary role is to answer only medical, health, and wellness-related questions. " +
	"You must strictly and politely refuse to answer any questions that are not related to these topics. " +
	"If asked a non-medical question, you must decline by stating your purpose, for example: " +
	"'As a medical assistant, I can only answer questions about health and medicine.'"

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// GenerateContent sends a text prompt, optionally with base64-encoded PNG
// images, and returns the generated text. The endpoint is treated as an
// opaque, possibly slow, possibly failing dependency.
func GenerateContent(prompt string, base64Images []string) (string, error) {

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return "", errors.New("GOOGLE_API_KEY is not configured")
	}

	model := textModel
	parts := []Part{{Text: SystemInstruction}}
	if prompt != "" {
		parts = append(parts, Part{Text: fmt.Sprintf("User Question: %s", prompt)})
	}
	if len(base64Images) > 0 {
		model = multimodalModel
		for _, image := range base64Images {
			parts = append(parts, Part{InlineData: &InlineData{MimeType: "image/png", Data: image}})
		}
	}

	body, err := json.Marshal(GeminiRequest{Contents: []Content{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(endpointFormat, model, apiKey)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", res.StatusCode)
	}

	var output GeminiResponse
	if err := json.Unmarshal(raw, &output); err != nil {
		return "", err
	}
	if len(output.Candidates) == 0 || len(output.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	return output.Candidates[0].Content.Parts[0].Text, nil
}
