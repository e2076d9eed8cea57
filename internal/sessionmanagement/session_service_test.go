package sessionmanagement

import (
	"context"
	"errors"
	"testing"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
	"crop-asr-qa/backend/internal/coreengine/vendoradapters"
)

// These tests run against the mock provider: no database, no object store.
// Uploads and archiving degrade to log lines, which is exactly what a dev
// laptop without docker-compose sees.

func newTestService(t *testing.T) (*SessionService, string) {
	t.Helper()
	svc := NewSessionService(NewSessionRegistry())
	items := []sessionengine.TestItem{
		{SerialNumber: 1, Code: "RICE001", Label: "Basmati Rice", Language: "en"},
		{SerialNumber: 2, Code: "WHEAT001", Label: "Wheat", Language: "en"},
	}
	session, err := svc.StartSession(items, "en", "Asha", "", vendoradapters.ProviderMock)
	if err != nil {
		t.Fatalf("StartSession returned error: %v", err)
	}
	return svc, session.ID
}

func TestStartSessionValidation(t *testing.T) {
	svc := NewSessionService(NewSessionRegistry())
	_, err := svc.StartSession(nil, "en", "Asha", "", "")
	var verr *sessionengine.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestTranscriptAttemptFlow(t *testing.T) {
	svc, id := newTestService(t)

	rec, err := svc.SubmitTranscriptAttempt(id, "basmati rice please")
	if err != nil {
		t.Fatalf("SubmitTranscriptAttempt returned error: %v", err)
	}
	if !rec.Matched {
		t.Errorf("attempt with matching transcript not marked matched")
	}
	if rec.AttemptNumber != 1 {
		t.Errorf("AttemptNumber = %d, want 1", rec.AttemptNumber)
	}

	action, err := svc.Advance(id)
	if err != nil {
		t.Fatalf("Advance returned error: %v", err)
	}
	if action.Action != sessionengine.ActionContinueSameItem || action.AttemptNumber != 2 {
		t.Errorf("advance action = %+v, want CONTINUE_SAME_ITEM attempt 2", action)
	}

	// On a match the tester moves on rather than burning the budget.
	action, err = svc.Skip(id)
	if err != nil {
		t.Fatalf("Skip returned error: %v", err)
	}
	if action.Action != sessionengine.ActionMoveToNextItem {
		t.Errorf("skip action = %q, want %q", action.Action, sessionengine.ActionMoveToNextItem)
	}

	item, attempt, err := svc.CurrentItem(id)
	if err != nil {
		t.Fatalf("CurrentItem returned error: %v", err)
	}
	if item.Label != "Wheat" || attempt != 1 {
		t.Errorf("current item = %q attempt %d, want Wheat attempt 1", item.Label, attempt)
	}
}

func TestAudioAttemptWithMockProvider(t *testing.T) {
	svc, id := newTestService(t)

	rec, err := svc.SubmitAudioAttempt(context.Background(), id, []byte("pcm-bytes"), "clip.wav", "audio/wav")
	if err != nil {
		t.Fatalf("SubmitAudioAttempt returned error: %v", err)
	}
	// The canned mock transcript never contains a crop label.
	if rec.Matched {
		t.Errorf("mock transcript unexpectedly matched %q", rec.ItemLabel)
	}
	if !rec.Transcript.Valid || rec.Transcript.String == "" {
		t.Errorf("mock attempt should carry a transcript, got %+v", rec.Transcript)
	}
}

func TestSkipEndAndFinalize(t *testing.T) {
	svc, id := newTestService(t)

	if _, err := svc.SubmitTranscriptAttempt(id, ""); err != nil {
		t.Fatalf("SubmitTranscriptAttempt returned error: %v", err)
	}

	action, err := svc.Skip(id)
	if err != nil {
		t.Fatalf("Skip returned error: %v", err)
	}
	if action.Action != sessionengine.ActionMoveToNextItem {
		t.Errorf("skip action = %q, want %q", action.Action, sessionengine.ActionMoveToNextItem)
	}

	if err := svc.End(id); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	if _, _, err := svc.CurrentItem(id); !errors.Is(err, sessionengine.ErrOutOfRange) {
		t.Errorf("CurrentItem after end: err = %v, want ErrOutOfRange", err)
	}

	report, err := svc.Finalize(context.Background(), id)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if report.TotalAttempts != 1 {
		t.Errorf("TotalAttempts = %d, want 1", report.TotalAttempts)
	}
	if report.Matches != 0 {
		t.Errorf("Matches = %d, want 0", report.Matches)
	}

	// Finalized sessions leave the registry.
	if _, err := svc.Snapshot(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot after finalize: err = %v, want ErrSessionNotFound", err)
	}
}

func TestFinalizeUnknownSession(t *testing.T) {
	svc := NewSessionService(NewSessionRegistry())
	if _, err := svc.Finalize(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
