package datastore

import (
	"database/sql"
	"time"
)

// SessionArchive maps to the sessions table: the durable header of a
// finalized test session. Live session state is held in memory by the session
// registry; a row appears here only once the session has been finalized.
type SessionArchive struct {
	SessionID       string         `json:"session_id"`
	TesterName      string         `json:"tester_name"`
	TesterEmail     sql.NullString `json:"tester_email,omitempty"`
	Language        string         `json:"language"`
	ItemCount       int            `json:"item_count"`
	TotalAttempts   int            `json:"total_attempts"`
	Matches         int            `json:"matches"`
	StartedAt       time.Time      `json:"started_at"`
	FinalizedAt     time.Time      `json:"finalized_at"`
	ReportObjectKey sql.NullString `json:"report_object_key,omitempty"`
}

// AttemptResult maps to the attempt_results table: one recording attempt of a
// finalized session. Rows are append-only and never mutated.
type AttemptResult struct {
	ID             int             `json:"id"`
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
	CreatedAt      time.Time       `json:"created_at"`
}
