package sessionengine

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionRunner drives the ordered traversal of a session's test items. It
// owns one AttemptTracker for the item under test and assembles the final
// report. One runner serves exactly one tester; runners are not safe for
// concurrent use and must not be shared.
type SessionRunner struct {
	session *Session
	tracker *AttemptTracker
}

// Start validates the item list, creates the session and returns a runner
// positioned on the first item. Every item must carry a non-empty label after
// trimming; the first offending index is reported in the ValidationError.
func Start(items []TestItem, language, testerName, testerEmail string) (*SessionRunner, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Index: -1, Reason: "item list is empty"}
	}
	if strings.TrimSpace(testerName) == "" {
		return nil, &ValidationError{Index: -1, Reason: "tester name is empty"}
	}
	for i, item := range items {
		if strings.TrimSpace(item.Label) == "" {
			return nil, &ValidationError{Index: i, Reason: "label is empty"}
		}
	}

	now := time.Now().UTC()
	session := &Session{
		ID:                  fmt.Sprintf("%s-%s", now.Format("20060102T150405"), uuid.New().String()),
		TesterName:          strings.TrimSpace(testerName),
		TesterEmail:         strings.TrimSpace(testerEmail),
		Language:            language,
		Items:               items,
		CurrentItemIndex:    0,
		AttemptsByItemIndex: make(map[int]int),
		Results:             []ResultRecord{},
		CreatedAt:           now,
	}

	return &SessionRunner{
		session: session,
		tracker: newAttemptTracker(session.ID, items[0]),
	}, nil
}

// Session exposes the session owned by this runner.
func (r *SessionRunner) Session() *Session {
	return r.session
}

// Finished reports whether every item has been passed.
func (r *SessionRunner) Finished() bool {
	return r.session.State() == SessionStateFinished
}

// CurrentItem returns the item under test, or ErrOutOfRange once the session
// is finished.
func (r *SessionRunner) CurrentItem() (TestItem, error) {
	if r.Finished() {
		return TestItem{}, ErrOutOfRange
	}
	return r.session.Items[r.session.CurrentItemIndex], nil
}

// CurrentAttemptNumber returns the attempt number for the item under test.
// It is 1 for an item that has not been attempted yet.
func (r *SessionRunner) CurrentAttemptNumber() int {
	if r.tracker == nil {
		return 0
	}
	return r.tracker.BeginAttempt()
}

// SubmitAttempt scores one transcript for the current item and appends the
// resulting record. An empty transcript is the "ASR produced nothing" outcome
// and yields a matched=false record rather than an error; transcription
// failure must never abort a session.
func (r *SessionRunner) SubmitAttempt(transcript string) (ResultRecord, error) {
	if r.Finished() {
		return ResultRecord{}, fmt.Errorf("submit attempt: %w", ErrInvalidState)
	}

	rec := r.tracker.RecordOutcome(transcript)
	r.session.AttemptsByItemIndex[r.session.CurrentItemIndex] = rec.AttemptNumber
	r.session.Results = append(r.session.Results, rec)
	return rec, nil
}

// AttachAudioObjectKey stamps the most recently appended result with the
// object-store key of its audio clip. Part of record creation: it only fills
// a key that is still unset and never overwrites one.
func (r *SessionRunner) AttachAudioObjectKey(key string) {
	if key == "" || len(r.session.Results) == 0 {
		return
	}
	last := &r.session.Results[len(r.session.Results)-1]
	if !last.AudioObjectKey.Valid {
		last.AudioObjectKey = sql.NullString{String: key, Valid: true}
	}
}

// AdvanceOrNextItem consumes one attempt from the current item's budget, or
// moves to the next item when the budget is exhausted. The returned action
// tells the caller whether to stay on the item, load the next one, or treat
// the session as finished.
func (r *SessionRunner) AdvanceOrNextItem() NextAction {
	if r.Finished() {
		return NextAction{Action: ActionSessionFinished}
	}

	if r.tracker.Advance() {
		return NextAction{Action: ActionContinueSameItem, AttemptNumber: r.tracker.BeginAttempt()}
	}
	return r.moveToNextItem()
}

// SkipToNextItem is the tester-initiated early exit from the current item's
// remaining attempts. Always legal; on a finished session it is a no-op that
// reports SESSION_FINISHED.
func (r *SessionRunner) SkipToNextItem() NextAction {
	if r.Finished() {
		return NextAction{Action: ActionSessionFinished}
	}
	return r.moveToNextItem()
}

func (r *SessionRunner) moveToNextItem() NextAction {
	r.session.CurrentItemIndex++
	if r.Finished() {
		r.tracker = nil
		return NextAction{Action: ActionSessionFinished}
	}
	r.tracker = newAttemptTracker(r.session.ID, r.session.Items[r.session.CurrentItemIndex])
	return NextAction{Action: ActionMoveToNextItem}
}

// EndSessionEarly forces the session into the finished state from any point.
// Recorded results are kept as-is.
func (r *SessionRunner) EndSessionEarly() {
	r.session.CurrentItemIndex = len(r.session.Items)
	r.tracker = nil
}

// Finalize produces the report for a finished session: the ordered result
// records plus summary counters. Calling it on a running session is a usage
// error.
func (r *SessionRunner) Finalize() (*Report, error) {
	if !r.Finished() {
		return nil, fmt.Errorf("finalize: %w", ErrInvalidState)
	}

	matches := 0
	for _, rec := range r.session.Results {
		if rec.Matched {
			matches++
		}
	}

	return &Report{
		SessionID:     r.session.ID,
		TesterName:    r.session.TesterName,
		TesterEmail:   r.session.TesterEmail,
		Language:      r.session.Language,
		Results:       r.session.Results,
		TotalAttempts: len(r.session.Results),
		Matches:       matches,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
