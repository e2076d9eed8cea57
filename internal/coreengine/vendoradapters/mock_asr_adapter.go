package vendoradapters

import (
	"context"
	"fmt"

	"crop-asr-qa/backend/internal/datastore"
)

// MockASRAdapter is a canned implementation for local development and tests.
// When the provider config is named MockASR-Error it fails every call, which
// exercises the same path a real vendor timeout does.
type MockASRAdapter struct {
	// Transcript overrides the canned text when set.
	Transcript string
}

func (m *MockASRAdapter) Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (string, string, error) {
	if cfg != nil && cfg.Name == ProviderMockError {
		raw := `{"error": "simulated vendor failure"}`
		return "", raw, fmt.Errorf("simulated ASR failure for language %s", languageCode)
	}

	text := m.Transcript
	if text == "" {
		text = fmt.Sprintf("mock transcription of %d audio bytes in %s", len(audio), languageCode)
	}
	raw := fmt.Sprintf(`{"transcript": %q, "simulated": true}`, text)
	return text, raw, nil
}
