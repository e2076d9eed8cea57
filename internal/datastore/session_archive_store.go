package datastore

import (
	"database/sql"
	"errors"
	"fmt"
)

// ArchiveSession stores a finalized session header and its attempt results in
// one transaction. The attempt rows keep their submission order.
func ArchiveSession(archive *SessionArchive, results []AttemptResult) error {
	if DB == nil {
		return errors.New("database connection not initialized")
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, tester_name, tester_email, language, item_count,
		                       total_attempts, matches, started_at, finalized_at, report_object_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		archive.SessionID,
		archive.TesterName,
		archive.TesterEmail,
		archive.Language,
		archive.ItemCount,
		archive.TotalAttempts,
		archive.Matches,
		archive.StartedAt,
		archive.FinalizedAt,
		archive.ReportObjectKey,
	)
	if err != nil {
		return fmt.Errorf("failed to archive session %s: %w", archive.SessionID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO attempt_results (session_id, item_label, item_code, language, attempt_number,
		                              transcript, matched, wer, cer, audio_object_key, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		return fmt.Errorf("failed to prepare attempt result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.Exec(
			r.SessionID,
			r.ItemLabel,
			r.ItemCode,
			r.Language,
			r.AttemptNumber,
			r.Transcript,
			r.Matched,
			r.WER,
			r.CER,
			r.AudioObjectKey,
			r.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert attempt result %d for session %s: %w", i, r.SessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session archive: %w", err)
	}
	return nil
}

// GetSessionArchive retrieves a finalized session header.
func GetSessionArchive(sessionID string) (*SessionArchive, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	archive := &SessionArchive{}
	err := DB.QueryRow(
		`SELECT session_id, tester_name, tester_email, language, item_count,
		        total_attempts, matches, started_at, finalized_at, report_object_key
		 FROM sessions
		 WHERE session_id = $1`, sessionID).Scan(
		&archive.SessionID,
		&archive.TesterName,
		&archive.TesterEmail,
		&archive.Language,
		&archive.ItemCount,
		&archive.TotalAttempts,
		&archive.Matches,
		&archive.StartedAt,
		&archive.FinalizedAt,
		&archive.ReportObjectKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("failed to get session archive: %w", err)
	}
	return archive, nil
}

// ListSessionArchives lists finalized session headers, newest first.
func ListSessionArchives() ([]*SessionArchive, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	rows, err := DB.Query(
		`SELECT session_id, tester_name, tester_email, language, item_count,
		        total_attempts, matches, started_at, finalized_at, report_object_key
		 FROM sessions
		 ORDER BY finalized_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list session archives: %w", err)
	}
	defer rows.Close()

	archives := []*SessionArchive{}
	for rows.Next() {
		archive := &SessionArchive{}
		if err := rows.Scan(
			&archive.SessionID,
			&archive.TesterName,
			&archive.TesterEmail,
			&archive.Language,
			&archive.ItemCount,
			&archive.TotalAttempts,
			&archive.Matches,
			&archive.StartedAt,
			&archive.FinalizedAt,
			&archive.ReportObjectKey,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session archive row: %w", err)
		}
		archives = append(archives, archive)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for session archives: %w", err)
	}
	return archives, nil
}

// GetAttemptResultsForSession retrieves a session's attempt results in
// submission order.
func GetAttemptResultsForSession(sessionID string) ([]*AttemptResult, error) {
	if DB == nil {
		return nil, errors.New("database connection not initialized")
	}

	rows, err := DB.Query(
		`SELECT id, session_id, item_label, item_code, language, attempt_number,
		        transcript, matched, wer, cer, audio_object_key, created_at
		 FROM attempt_results
		 WHERE session_id = $1
		 ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt results for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	results := []*AttemptResult{}
	for rows.Next() {
		r := &AttemptResult{}
		if err := rows.Scan(
			&r.ID,
			&r.SessionID,
			&r.ItemLabel,
			&r.ItemCode,
			&r.Language,
			&r.AttemptNumber,
			&r.Transcript,
			&r.Matched,
			&r.WER,
			&r.CER,
			&r.AudioObjectKey,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt result row: %w", err)
		}
		results = append(results, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration for attempt results: %w", err)
	}
	return results, nil
}
