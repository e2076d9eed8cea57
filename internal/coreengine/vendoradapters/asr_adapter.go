package vendoradapters

import (
	"context"
	"time"

	"crop-asr-qa/backend/internal/datastore"
)

// requestTimeout bounds every vendor call. A timed-out call is a terminal
// failure for that attempt; the session layer records it as "no transcript".
const requestTimeout = 30 * time.Second

// ASRAdapter is the boundary to an external speech-to-text vendor. The core
// only ever consumes the transcript string or the absence of one; how audio
// was captured or encoded is not its concern.
type ASRAdapter interface {
	// Transcribe sends the audio bytes to the vendor and returns the
	// recognized text plus the vendor's raw response body for diagnostics.
	// cfg carries the vendor's credentials, endpoint and other knobs.
	Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (transcript string, rawResponse string, err error)
}
