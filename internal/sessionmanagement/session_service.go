package sessionmanagement

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
	"crop-asr-qa/backend/internal/coreengine/vendoradapters"
	"crop-asr-qa/backend/internal/datastore"
	"crop-asr-qa/backend/internal/objectstore"
	"crop-asr-qa/backend/internal/reportexport"
)

// SessionService drives live sessions: starting them, shuttling attempt audio
// through the ASR provider into the core, and archiving finalized reports.
type SessionService struct {
	registry *SessionRegistry
}

// NewSessionService creates a service over the given registry.
func NewSessionService(registry *SessionRegistry) *SessionService {
	return &SessionService{registry: registry}
}

// DefaultProvider returns the ASR provider used when a session does not name
// one. Configured via ASR_PROVIDER; the mock keeps local development working
// without any vendor credentials.
func DefaultProvider() string {
	if p := os.Getenv("ASR_PROVIDER"); p != "" {
		return p
	}
	return vendoradapters.ProviderMock
}

// StartSession validates the items, creates the runner and registers the live
// session. provider may be empty, in which case the default applies.
func (s *SessionService) StartSession(items []sessionengine.TestItem, language, testerName, testerEmail, provider string) (*sessionengine.Session, error) {
	runner, err := sessionengine.Start(items, language, testerName, testerEmail)
	if err != nil {
		return nil, err
	}
	if provider == "" {
		provider = DefaultProvider()
	}
	s.registry.add(runner, provider)
	log.Printf("Started session %s for %s (%d items, language %s, provider %s).",
		runner.Session().ID, testerName, len(items), language, provider)
	return runner.Session(), nil
}

// withSession runs fn while holding the session's lock, keeping each
// tester's strictly sequential interaction serialized even under a confused
// double-submitting client.
func (s *SessionService) withSession(sessionID string, fn func(*liveSession) error) error {
	ls, err := s.registry.get(sessionID)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.touch()
	return fn(ls)
}

// SubmitAudioAttempt uploads the clip, sends it to the session's ASR
// provider, and records the outcome. All transcription failures (timeout,
// vendor error, empty response) collapse to "no transcript": the attempt is
// still recorded, with matched=false, and the session continues.
func (s *SessionService) SubmitAudioAttempt(ctx context.Context, sessionID string, audio []byte, filename, contentType string) (sessionengine.ResultRecord, error) {
	var rec sessionengine.ResultRecord
	err := s.withSession(sessionID, func(ls *liveSession) error {
		item, err := ls.runner.CurrentItem()
		if err != nil {
			return err
		}

		audioKey := ""
		if mc, mcErr := objectstore.GetGlobalMinioClient(); mcErr == nil {
			key, upErr := mc.UploadAudioClip(ctx, sessionID, ls.runner.CurrentAttemptNumber(), filename, audio, contentType)
			if upErr != nil {
				log.Printf("Session %s: audio upload failed, attempt continues without a stored clip: %v", sessionID, upErr)
			} else {
				audioKey = key
			}
		}

		transcript := s.transcribe(ctx, ls.provider, audio, item.Language)

		rec, err = ls.runner.SubmitAttempt(transcript)
		if err != nil {
			return err
		}
		ls.runner.AttachAudioObjectKey(audioKey)
		return nil
	})
	return rec, err
}

// SubmitTranscriptAttempt records an attempt whose transcription happened
// elsewhere (a pre-transcribed clip, or no audio at all).
func (s *SessionService) SubmitTranscriptAttempt(sessionID, transcript string) (sessionengine.ResultRecord, error) {
	var rec sessionengine.ResultRecord
	err := s.withSession(sessionID, func(ls *liveSession) error {
		var err error
		rec, err = ls.runner.SubmitAttempt(transcript)
		return err
	})
	return rec, err
}

// transcribe calls the provider adapter and normalizes every failure mode to
// an empty transcript.
func (s *SessionService) transcribe(ctx context.Context, provider string, audio []byte, languageCode string) string {
	cfg, err := datastore.GetProviderConfigByName(provider)
	if err != nil {
		log.Printf("No stored config for provider %q (%v), using name-only config.", provider, err)
		cfg = &datastore.ProviderConfig{Name: provider}
	}

	adapter, err := vendoradapters.GetASRAdapter(cfg)
	if err != nil {
		log.Printf("ASR adapter unavailable for provider %q: %v", provider, err)
		return ""
	}

	transcript, _, err := adapter.Transcribe(ctx, audio, languageCode, cfg)
	if err != nil {
		log.Printf("ASR transcription failed (provider %s): %v", provider, err)
		return ""
	}
	return transcript
}

// Advance applies the attempt-budget decision for the current item.
func (s *SessionService) Advance(sessionID string) (sessionengine.NextAction, error) {
	var action sessionengine.NextAction
	err := s.withSession(sessionID, func(ls *liveSession) error {
		action = ls.runner.AdvanceOrNextItem()
		return nil
	})
	return action, err
}

// Skip moves past the current item's remaining attempts.
func (s *SessionService) Skip(sessionID string) (sessionengine.NextAction, error) {
	var action sessionengine.NextAction
	err := s.withSession(sessionID, func(ls *liveSession) error {
		action = ls.runner.SkipToNextItem()
		return nil
	})
	return action, err
}

// End forces the session into the finished state, keeping all results.
func (s *SessionService) End(sessionID string) error {
	return s.withSession(sessionID, func(ls *liveSession) error {
		ls.runner.EndSessionEarly()
		return nil
	})
}

// Snapshot returns the session state for status displays.
func (s *SessionService) Snapshot(sessionID string) (*sessionengine.Session, error) {
	var session *sessionengine.Session
	err := s.withSession(sessionID, func(ls *liveSession) error {
		session = ls.runner.Session()
		return nil
	})
	return session, err
}

// CurrentItem returns the item under test along with its attempt number.
func (s *SessionService) CurrentItem(sessionID string) (sessionengine.TestItem, int, error) {
	var item sessionengine.TestItem
	attempt := 0
	err := s.withSession(sessionID, func(ls *liveSession) error {
		var err error
		item, err = ls.runner.CurrentItem()
		if err != nil {
			return err
		}
		attempt = ls.runner.CurrentAttemptNumber()
		return nil
	})
	return item, attempt, err
}

// Finalize produces the report, uploads the CSV export to the object store,
// archives everything to Postgres and removes the live session. Archive and
// upload failures are logged but do not void the report; the tester always
// gets their results back.
func (s *SessionService) Finalize(ctx context.Context, sessionID string) (*sessionengine.Report, error) {
	var report *sessionengine.Report
	var startedAt time.Time
	itemCount := 0
	err := s.withSession(sessionID, func(ls *liveSession) error {
		var err error
		report, err = ls.runner.Finalize()
		if err != nil {
			return err
		}
		startedAt = ls.runner.Session().CreatedAt
		itemCount = len(ls.runner.Session().Items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	reportKey := s.uploadReport(ctx, report)
	s.archive(report, startedAt, itemCount, reportKey)
	s.registry.remove(sessionID)
	log.Printf("Finalized session %s: %d attempts, %d matches.", sessionID, report.TotalAttempts, report.Matches)
	return report, nil
}

func (s *SessionService) uploadReport(ctx context.Context, report *sessionengine.Report) string {
	mc, err := objectstore.GetGlobalMinioClient()
	if err != nil {
		return ""
	}
	data, err := reportexport.ExportCSV(report)
	if err != nil {
		log.Printf("Session %s: report CSV rendering failed: %v", report.SessionID, err)
		return ""
	}
	filename := report.SessionID + "-" + reportexport.ReportFilename("csv", report.GeneratedAt)
	key, err := mc.UploadReport(ctx, filename, data, "text/csv")
	if err != nil {
		log.Printf("Session %s: report upload failed: %v", report.SessionID, err)
		return ""
	}
	return key
}

func (s *SessionService) archive(report *sessionengine.Report, startedAt time.Time, itemCount int, reportKey string) {
	archive := &datastore.SessionArchive{
		SessionID:     report.SessionID,
		TesterName:    report.TesterName,
		Language:      report.Language,
		TotalAttempts: report.TotalAttempts,
		Matches:       report.Matches,
		StartedAt:     startedAt,
		FinalizedAt:   report.GeneratedAt,
	}
	if report.TesterEmail != "" {
		archive.TesterEmail = sql.NullString{String: report.TesterEmail, Valid: true}
	}
	if reportKey != "" {
		archive.ReportObjectKey = sql.NullString{String: reportKey, Valid: true}
	}

	archive.ItemCount = itemCount

	rows := make([]datastore.AttemptResult, len(report.Results))
	for i, r := range report.Results {
		rows[i] = datastore.AttemptResult{
			SessionID:      r.SessionID,
			ItemLabel:      r.ItemLabel,
			ItemCode:       r.ItemCode,
			Language:       r.Language,
			AttemptNumber:  r.AttemptNumber,
			Transcript:     r.Transcript,
			Matched:        r.Matched,
			WER:            r.WER,
			CER:            r.CER,
			AudioObjectKey: r.AudioObjectKey,
			CreatedAt:      r.Timestamp,
		}
	}

	if err := datastore.ArchiveSession(archive, rows); err != nil {
		log.Printf("Session %s: archive to database failed: %v", report.SessionID, err)
	}
}
