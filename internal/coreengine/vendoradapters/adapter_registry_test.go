package vendoradapters

import (
	"context"
	"strings"
	"testing"

	"crop-asr-qa/backend/internal/datastore"
)

func TestGetASRAdapterSelection(t *testing.T) {
	for _, name := range []string{ProviderSarvam, ProviderDeepgram, ProviderGoogle, ProviderTencent, ProviderMock, ProviderMockError} {
		adapter, err := GetASRAdapter(&datastore.ProviderConfig{Name: name})
		if err != nil {
			t.Errorf("GetASRAdapter(%q): %v", name, err)
		}
		if adapter == nil {
			t.Errorf("GetASRAdapter(%q) returned nil adapter", name)
		}
	}
}

func TestGetASRAdapterUnknown(t *testing.T) {
	if _, err := GetASRAdapter(&datastore.ProviderConfig{Name: "NoSuchVendor"}); err == nil {
		t.Error("expected an error for an unknown provider")
	}
	if _, err := GetASRAdapter(nil); err == nil {
		t.Error("expected an error for a nil provider config")
	}
}

func TestMockAdapterTranscribe(t *testing.T) {
	adapter := &MockASRAdapter{Transcript: "basmati rice"}
	text, raw, err := adapter.Transcribe(context.Background(), []byte("audio"), "hi", &datastore.ProviderConfig{Name: ProviderMock})
	if err != nil {
		t.Fatal(err)
	}
	if text != "basmati rice" {
		t.Errorf("transcript = %q", text)
	}
	if !strings.Contains(raw, "basmati rice") {
		t.Errorf("raw response does not echo the transcript: %s", raw)
	}
}

func TestMockAdapterSimulatedFailure(t *testing.T) {
	adapter := &MockASRAdapter{}
	text, _, err := adapter.Transcribe(context.Background(), nil, "hi", &datastore.ProviderConfig{Name: ProviderMockError})
	if err == nil {
		t.Fatal("expected simulated failure")
	}
	if text != "" {
		t.Errorf("transcript on failure = %q, want empty", text)
	}
}
