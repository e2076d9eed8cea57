package sessionengine

import (
	"database/sql"
	"time"

	"crop-asr-qa/backend/internal/coreengine/matchscorer"
	"crop-asr-qa/backend/internal/coreengine/metricscalculator"
)

// MaxAttempts is the fixed attempt budget per test item.
const MaxAttempts = 5

// AttemptTracker governs the recording-attempt loop for a single test item.
// The attempt number starts at 1, only ever increases, and resets to 1 only by
// constructing a new tracker for the next item.
type AttemptTracker struct {
	sessionID     string
	item          TestItem
	attemptNumber int
}

func newAttemptTracker(sessionID string, item TestItem) *AttemptTracker {
	return &AttemptTracker{
		sessionID:     sessionID,
		item:          item,
		attemptNumber: 1,
	}
}

// BeginAttempt returns the current attempt number. Callers may query it
// repeatedly while waiting for the tester to produce audio.
func (t *AttemptTracker) BeginAttempt() int {
	return t.attemptNumber
}

// HasMoreAttempts reports whether the attempt budget allows another attempt.
func (t *AttemptTracker) HasMoreAttempts() bool {
	return t.attemptNumber < MaxAttempts
}

// Advance consumes one attempt from the budget. It returns false, leaving the
// tracker unchanged, when the budget is exhausted; the caller must then move
// on to the next item.
func (t *AttemptTracker) Advance() bool {
	if !t.HasMoreAttempts() {
		return false
	}
	t.attemptNumber++
	return true
}

// RecordOutcome scores the transcript against the item label and builds the
// result record for the current attempt, stamped with the current time.
// An empty transcript means the ASR produced nothing (timeout, network error,
// empty response); the record then carries a NULL transcript and matched=false.
// Advancement is a separate caller decision and not performed here.
func (t *AttemptTracker) RecordOutcome(transcript string) ResultRecord {
	rec := ResultRecord{
		SessionID:     t.sessionID,
		ItemLabel:     t.item.Label,
		ItemCode:      t.item.Code,
		Language:      t.item.Language,
		AttemptNumber: t.attemptNumber,
		Matched:       matchscorer.Match(t.item.Label, transcript),
		Timestamp:     time.Now().UTC(),
	}

	if transcript != "" {
		rec.Transcript = sql.NullString{String: transcript, Valid: true}
		if wer, err := metricscalculator.CalculateWER(t.item.Label, transcript); err == nil {
			rec.WER = sql.NullFloat64{Float64: wer, Valid: true}
		}
		if cer, err := metricscalculator.CalculateCER(t.item.Label, transcript); err == nil {
			rec.CER = sql.NullFloat64{Float64: cer, Valid: true}
		}
	}

	return rec
}
