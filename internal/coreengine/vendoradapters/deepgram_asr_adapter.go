package vendoradapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"crop-asr-qa/backend/internal/datastore"
)

const deepgramBaseURL = "https://api.deepgram.com/v1/listen"

// DeepgramASRAdapter sends raw audio to Deepgram's pre-recorded
// transcription endpoint.
type DeepgramASRAdapter struct {
	HTTPClient *http.Client
}

func NewDeepgramASRAdapter() *DeepgramASRAdapter {
	return &DeepgramASRAdapter{
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// deepgramResponse is the subset of Deepgram's response this service reads.
type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (a *DeepgramASRAdapter) Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (string, string, error) {
	if !cfg.APIKey.Valid || cfg.APIKey.String == "" {
		return "", "", fmt.Errorf("deepgram API key is missing in provider configuration")
	}

	base := deepgramBaseURL
	if cfg.APIEndpoint.Valid && cfg.APIEndpoint.String != "" {
		base = cfg.APIEndpoint.String
	}
	reqURL, err := url.Parse(base)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse Deepgram URL: %w", err)
	}
	query := reqURL.Query()
	if languageCode != "" {
		query.Set("language", languageCode)
	}
	// Pass through extra query parameters from the provider config,
	// e.g. {"model": "nova-2", "punctuate": "true"}.
	if cfg.OtherConfigs != nil {
		var other map[string]interface{}
		if err := json.Unmarshal(cfg.OtherConfigs, &other); err == nil {
			for k, v := range other {
				query.Set(k, fmt.Sprintf("%v", v))
			}
		}
	}
	reqURL.RawQuery = query.Encode()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(audio))
	if err != nil {
		return "", "", fmt.Errorf("failed to build Deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+cfg.APIKey.String)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("deepgram request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read Deepgram response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", string(respBody), fmt.Errorf("deepgram returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", string(respBody), fmt.Errorf("failed to parse Deepgram response: %w", err)
	}
	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", string(respBody), nil
	}
	return parsed.Results.Channels[0].Alternatives[0].Transcript, string(respBody), nil
}
