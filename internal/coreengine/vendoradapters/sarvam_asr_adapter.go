package vendoradapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"crop-asr-qa/backend/internal/datastore"
)

const sarvamBaseURL = "https://api.sarvam.ai/speech-to-text"

// SarvamASRAdapter talks to Sarvam AI's hosted speech-to-text API, the
// primary vendor for the Indian-language crop names this service tests.
type SarvamASRAdapter struct {
	HTTPClient *http.Client
}

// NewSarvamASRAdapter creates a Sarvam adapter with a bounded HTTP client.
func NewSarvamASRAdapter() *SarvamASRAdapter {
	return &SarvamASRAdapter{
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// sarvamResponse is the subset of Sarvam's response this service consumes.
type sarvamResponse struct {
	RequestID    string `json:"request_id"`
	Transcript   string `json:"transcript"`
	LanguageCode string `json:"language_code"`
}

// Transcribe posts the audio as multipart form data and returns the
// transcript. Sarvam expects BCP-47 style codes ("hi-IN"); bare ISO-639
// codes are widened with the -IN region the original CSV data uses.
func (a *SarvamASRAdapter) Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (string, string, error) {
	if !cfg.APIKey.Valid || cfg.APIKey.String == "" {
		return "", "", fmt.Errorf("sarvam API subscription key is missing in provider configuration")
	}

	endpoint := sarvamBaseURL
	if cfg.APIEndpoint.Valid && cfg.APIEndpoint.String != "" {
		endpoint = cfg.APIEndpoint.String
	}

	model := "saarika:v2"
	if cfg.OtherConfigs != nil {
		var other map[string]interface{}
		if err := json.Unmarshal(cfg.OtherConfigs, &other); err == nil {
			if m, ok := other["model"].(string); ok && m != "" {
				model = m
			}
		}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "attempt.wav")
	if err != nil {
		return "", "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", "", fmt.Errorf("failed to write audio into multipart body: %w", err)
	}
	if err := writer.WriteField("language_code", widenLanguageCode(languageCode)); err != nil {
		return "", "", fmt.Errorf("failed to write language_code field: %w", err)
	}
	if err := writer.WriteField("model", model); err != nil {
		return "", "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", "", fmt.Errorf("failed to build Sarvam request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("api-subscription-key", cfg.APIKey.String)

	start := time.Now()
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("sarvam request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read Sarvam response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", string(respBody), fmt.Errorf("sarvam returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed sarvamResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", string(respBody), fmt.Errorf("failed to parse Sarvam response: %w", err)
	}

	log.Printf("SarvamASRAdapter: transcribed %d bytes in %s (%s)", len(audio), time.Since(start), languageCode)
	return parsed.Transcript, string(respBody), nil
}

// widenLanguageCode turns a bare code like "hi" into "hi-IN". Codes that
// already carry a region pass through unchanged.
func widenLanguageCode(code string) string {
	if len(code) == 2 {
		return code + "-IN"
	}
	return code
}
