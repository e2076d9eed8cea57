package sessionengine

import "testing"

func TestAttemptMonotonicity(t *testing.T) {
	tracker := newAttemptTracker("s1", TestItem{SerialNumber: 1, Label: "Wheat", Language: "en"})

	if got := tracker.BeginAttempt(); got != 1 {
		t.Fatalf("fresh tracker attempt number = %d, want 1", got)
	}

	for i := 1; i < MaxAttempts; i++ {
		if !tracker.HasMoreAttempts() {
			t.Fatalf("HasMoreAttempts() = false at attempt %d", i)
		}
		if !tracker.Advance() {
			t.Fatalf("Advance() = false at attempt %d", i)
		}
		if got := tracker.BeginAttempt(); got != i+1 {
			t.Fatalf("after advance %d, attempt number = %d, want %d", i, got, i+1)
		}
	}

	// Budget exhausted: Advance must refuse and leave state unchanged.
	if tracker.HasMoreAttempts() {
		t.Error("HasMoreAttempts() = true after final attempt")
	}
	if tracker.Advance() {
		t.Error("Advance() = true after budget exhausted")
	}
	if got := tracker.BeginAttempt(); got != MaxAttempts {
		t.Errorf("attempt number changed after refused advance: %d", got)
	}
}

func TestBeginAttemptIdempotent(t *testing.T) {
	tracker := newAttemptTracker("s1", TestItem{Label: "Corn", Language: "en"})
	for i := 0; i < 3; i++ {
		if got := tracker.BeginAttempt(); got != 1 {
			t.Fatalf("BeginAttempt() call %d = %d, want 1", i+1, got)
		}
	}
}

func TestRecordOutcomeMatched(t *testing.T) {
	tracker := newAttemptTracker("s1", TestItem{Code: "WHEAT001", Label: "Wheat", Language: "en"})

	rec := tracker.RecordOutcome("I am saying wheat now")
	if !rec.Matched {
		t.Error("expected matched=true for transcript containing the label")
	}
	if !rec.Transcript.Valid || rec.Transcript.String != "I am saying wheat now" {
		t.Errorf("transcript not recorded: %+v", rec.Transcript)
	}
	if rec.AttemptNumber != 1 {
		t.Errorf("attempt number = %d, want 1", rec.AttemptNumber)
	}
	if rec.SessionID != "s1" || rec.ItemLabel != "Wheat" || rec.ItemCode != "WHEAT001" {
		t.Errorf("record identity fields wrong: %+v", rec)
	}
	if !rec.WER.Valid || !rec.CER.Valid {
		t.Error("expected WER/CER to be computed for a non-empty transcript")
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestRecordOutcomeNoTranscript(t *testing.T) {
	tracker := newAttemptTracker("s1", TestItem{Label: "Wheat", Language: "en"})

	rec := tracker.RecordOutcome("")
	if rec.Matched {
		t.Error("expected matched=false when ASR produced nothing")
	}
	if rec.Transcript.Valid {
		t.Error("expected NULL transcript when ASR produced nothing")
	}
	if rec.WER.Valid || rec.CER.Valid {
		t.Error("expected no WER/CER without a transcript")
	}
}
