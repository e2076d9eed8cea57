package sessionengine

import (
	"database/sql"
	"time"
)

// Session states.
const (
	SessionStateRunning  = "RUNNING"
	SessionStateFinished = "FINISHED"
)

// Next-action outcomes returned by AdvanceOrNextItem.
const (
	ActionContinueSameItem = "CONTINUE_SAME_ITEM"
	ActionMoveToNextItem   = "MOVE_TO_NEXT_ITEM"
	ActionSessionFinished  = "SESSION_FINISHED"
)

// TestItem is one label a tester must pronounce, normalized at ingestion.
type TestItem struct {
	SerialNumber int    `json:"serial_number"`
	Code         string `json:"code,omitempty"`
	Label        string `json:"label"`
	Language     string `json:"language"`
}

// ResultRecord is the immutable outcome of one recording attempt. Matched is
// always computed by the match scorer from Transcript and ItemLabel, never set
// by hand. WER and CER are informational rates; they do not influence Matched.
type ResultRecord struct {
	SessionID      string          `json:"session_id"`
	ItemLabel      string          `json:"item_label"`
	ItemCode       string          `json:"item_code,omitempty"`
	Language       string          `json:"language"`
	AttemptNumber  int             `json:"attempt_number"`
	Transcript     sql.NullString  `json:"transcript,omitempty"`
	Matched        bool            `json:"matched"`
	WER            sql.NullFloat64 `json:"wer,omitempty"`
	CER            sql.NullFloat64 `json:"cer,omitempty"`
	AudioObjectKey sql.NullString  `json:"audio_object_key,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Session is one tester's run through an ordered list of test items. It is
// mutated only by the SessionRunner and AttemptTracker that own it, and must
// never be shared between testers.
type Session struct {
	ID                  string         `json:"session_id"`
	TesterName          string         `json:"tester_name"`
	TesterEmail         string         `json:"tester_email,omitempty"`
	Language            string         `json:"language"`
	Items               []TestItem     `json:"items"`
	CurrentItemIndex    int            `json:"current_item_index"`
	AttemptsByItemIndex map[int]int    `json:"attempts_by_item_index"`
	Results             []ResultRecord `json:"results"`
	CreatedAt           time.Time      `json:"created_at"`
}

// State reports the per-session state derived from the item cursor.
func (s *Session) State() string {
	if s.CurrentItemIndex >= len(s.Items) {
		return SessionStateFinished
	}
	return SessionStateRunning
}

// NextAction tells the caller what to do after an advance decision.
// AttemptNumber is set only for CONTINUE_SAME_ITEM.
type NextAction struct {
	Action        string `json:"action"`
	AttemptNumber int    `json:"attempt_number,omitempty"`
}

// Report is the final, flat dataset produced by Finalize: the ordered result
// records plus summary counters, ready for any report sink.
type Report struct {
	SessionID     string         `json:"session_id"`
	TesterName    string         `json:"tester_name"`
	TesterEmail   string         `json:"tester_email,omitempty"`
	Language      string         `json:"language"`
	Results       []ResultRecord `json:"results"`
	TotalAttempts int            `json:"total_attempts"`
	Matches       int            `json:"matches"`
	GeneratedAt   time.Time      `json:"generated_at"`
}
