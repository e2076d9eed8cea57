package vendoradapters

import (
	"fmt"
	"log"

	"crop-asr-qa/backend/internal/datastore"
)

// Provider names recognized by the registry. They match the `name` column of
// provider_configs rows.
const (
	ProviderSarvam   = "Sarvam"
	ProviderDeepgram = "Deepgram"
	ProviderGoogle   = "GoogleCloudASR"
	ProviderTencent  = "TencentASR"
	ProviderMock     = "MockASR"
	// ProviderMockError is a mock configured to fail every call, for
	// exercising the no-transcript path end to end.
	ProviderMockError = "MockASR-Error"
)

// KnownProviders lists every provider name the registry can serve.
func KnownProviders() []string {
	return []string{
		ProviderSarvam,
		ProviderDeepgram,
		ProviderGoogle,
		ProviderTencent,
		ProviderMock,
	}
}

// GetASRAdapter selects the adapter for a provider config by name.
func GetASRAdapter(cfg *datastore.ProviderConfig) (ASRAdapter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider config cannot be nil")
	}

	switch cfg.Name {
	case ProviderSarvam:
		return NewSarvamASRAdapter(), nil
	case ProviderDeepgram:
		return NewDeepgramASRAdapter(), nil
	case ProviderGoogle:
		return NewGoogleASRAdapter(), nil
	case ProviderTencent:
		return NewTencentASRAdapter(), nil
	case ProviderMock, ProviderMockError:
		return &MockASRAdapter{}, nil
	default:
		log.Printf("No ASR adapter registered for provider %q", cfg.Name)
		return nil, fmt.Errorf("no ASR adapter available for provider: %s", cfg.Name)
	}
}
