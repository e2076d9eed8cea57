package vendoradapters

import (
	"context"
	"encoding/json"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/protojson"

	"crop-asr-qa/backend/internal/datastore"
)

// GoogleASRAdapter transcribes short clips through Google Cloud
// Speech-to-Text synchronous recognition.
type GoogleASRAdapter struct{}

func NewGoogleASRAdapter() *GoogleASRAdapter {
	return &GoogleASRAdapter{}
}

func (a *GoogleASRAdapter) Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	// Credentials come from a path in the provider config, falling back to
	// GOOGLE_APPLICATION_CREDENTIALS which the client library reads itself.
	var opts []option.ClientOption
	encoding := speechpb.RecognitionConfig_LINEAR16
	sampleRateHertz := int32(16000)
	model := ""

	if cfg.OtherConfigs != nil {
		var other map[string]interface{}
		if err := json.Unmarshal(cfg.OtherConfigs, &other); err == nil {
			if path, ok := other["google_credentials_path"].(string); ok && path != "" {
				opts = append(opts, option.WithCredentialsFile(path))
			}
			if rate, ok := other["sample_rate_hertz"].(float64); ok {
				sampleRateHertz = int32(rate)
			}
			if m, ok := other["model"].(string); ok {
				model = m
			}
		}
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return "", "", fmt.Errorf("failed to create Google Speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        encoding,
			SampleRateHertz: sampleRateHertz,
			LanguageCode:    languageCode,
			Model:           model,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("google speech recognition failed: %w", err)
	}

	raw, err := protojson.Marshal(resp)
	if err != nil {
		raw = []byte("{}")
	}

	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			return result.Alternatives[0].Transcript, string(raw), nil
		}
	}
	return "", string(raw), nil
}
