package sessionmanagement

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"crop-asr-qa/backend/internal/coreengine/sessionengine"
	"crop-asr-qa/backend/internal/datastore"
	"crop-asr-qa/backend/internal/itemcatalog"
	"crop-asr-qa/backend/internal/reportexport"

	"github.com/gin-gonic/gin"
)

// maxAudioUploadBytes caps a single attempt clip. Crop names are a few
// seconds of speech; anything bigger is a client bug.
const maxAudioUploadBytes = 10 << 20

// StartSessionRequest is the payload for POST /sessions. Items come from
// exactly one of three sources: inline items, a stored catalog, or the
// built-in sample list.
type StartSessionRequest struct {
	TesterName  string                   `json:"tester_name"`
	TesterEmail string                   `json:"tester_email"`
	Language    string                   `json:"language"`
	Provider    string                   `json:"provider"`
	Items       []sessionengine.TestItem `json:"items"`
	CatalogID   int                      `json:"catalog_id"`
	UseSample   bool                     `json:"use_sample"`
}

// writeSessionError maps the core error taxonomy onto HTTP statuses.
func writeSessionError(c *gin.Context, err error) {
	var verr *sessionengine.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Error()}
		if verr.Index >= 0 {
			body["item_index"] = verr.Index
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, sessionengine.ErrInvalidState), errors.Is(err, sessionengine.ErrOutOfRange):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func resolveItems(req *StartSessionRequest, language string) ([]sessionengine.TestItem, error) {
	switch {
	case len(req.Items) > 0:
		for i := range req.Items {
			if req.Items[i].Language == "" {
				req.Items[i].Language = language
			}
			if req.Items[i].SerialNumber == 0 {
				req.Items[i].SerialNumber = i + 1
			}
		}
		return req.Items, nil
	case req.CatalogID > 0:
		rows, err := datastore.GetCatalogItems(req.CatalogID)
		if err != nil {
			return nil, err
		}
		items := make([]sessionengine.TestItem, len(rows))
		for i, row := range rows {
			items[i] = sessionengine.TestItem{
				SerialNumber: row.SerialNumber,
				Code:         row.Code,
				Label:        row.Label,
				Language:     row.Language,
			}
		}
		return items, nil
	case req.UseSample:
		return itemcatalog.SampleItems(language), nil
	default:
		return nil, nil
	}
}

// StartSessionHandler creates a live session. POST /sessions.
func (s *SessionService) StartSessionHandler(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	language, err := itemcatalog.NormalizeLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := resolveItems(&req, language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load items: " + err.Error()})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items to test: provide items, a catalog_id, or use_sample"})
		return
	}

	session, err := s.StartSession(items, language, req.TesterName, req.TesterEmail, req.Provider)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSessionHandler returns the full session snapshot. GET /sessions/:id.
func (s *SessionService) GetSessionHandler(c *gin.Context) {
	session, err := s.Snapshot(c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// CurrentItemHandler returns the item under test and its next attempt
// number. GET /sessions/:id/current-item. Finished sessions answer 409.
func (s *SessionService) CurrentItemHandler(c *gin.Context) {
	item, attempt, err := s.CurrentItem(c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "attempt_number": attempt})
}

// SubmitAttemptHandler records one attempt. POST /sessions/:id/attempts.
// The body is multipart with an "audio" file to run through the ASR
// provider, or a "transcript" form field when transcription already
// happened client-side.
func (s *SessionService) SubmitAttemptHandler(c *gin.Context) {
	sessionID := c.Param("id")

	if file, err := c.FormFile("audio"); err == nil {
		if file.Size > maxAudioUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Audio clip too large"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded audio: " + err.Error()})
			return
		}
		defer f.Close()
		audio, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded audio: " + err.Error()})
			return
		}

		rec, err := s.SubmitAudioAttempt(c.Request.Context(), sessionID, audio, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			writeSessionError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
		return
	}

	transcript, ok := c.GetPostForm("transcript")
	if !ok {
		var body struct {
			Transcript string `json:"transcript"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide an audio file or a transcript field"})
			return
		}
		transcript = body.Transcript
	}

	rec, err := s.SubmitTranscriptAttempt(sessionID, transcript)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// AdvanceHandler applies the attempt-budget decision for the current item.
// POST /sessions/:id/advance.
func (s *SessionService) AdvanceHandler(c *gin.Context) {
	action, err := s.Advance(c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

// SkipHandler abandons the current item's remaining attempts.
// POST /sessions/:id/skip.
func (s *SessionService) SkipHandler(c *gin.Context) {
	action, err := s.Skip(c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

// EndSessionHandler ends the session early, keeping recorded results.
// POST /sessions/:id/end.
func (s *SessionService) EndSessionHandler(c *gin.Context) {
	if err := s.End(c.Param("id")); err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

// FinalizeHandler finalizes the session and returns the report.
// POST /sessions/:id/finalize.
func (s *SessionService) FinalizeHandler(c *gin.Context) {
	report, err := s.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ReportDownloadHandler streams an archived session's report as CSV or
// Excel. GET /sessions/:id/report?format=csv|xlsx. Works only after
// finalize, since that is when the session reaches the archive.
func (s *SessionService) ReportDownloadHandler(c *gin.Context) {
	sessionID := c.Param("id")
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	report, err := loadArchivedReport(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No archived report for session " + sessionID + ": " + err.Error()})
		return
	}

	var data []byte
	contentType := "text/csv"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = reportexport.ExportExcel(report)
	} else {
		data, err = reportexport.ExportCSV(report)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report: " + err.Error()})
		return
	}

	filename := reportexport.ReportFilename(format, report.GeneratedAt)
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}

// ListArchivedSessionsHandler lists finalized sessions. GET /sessions.
func ListArchivedSessionsHandler(c *gin.Context) {
	archives, err := datastore.ListSessionArchives()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions: " + err.Error()})
		return
	}
	if archives == nil {
		archives = []*datastore.SessionArchive{}
	}
	c.JSON(http.StatusOK, archives)
}

// loadArchivedReport rebuilds a report from the archive tables.
func loadArchivedReport(sessionID string) (*sessionengine.Report, error) {
	archive, err := datastore.GetSessionArchive(sessionID)
	if err != nil {
		return nil, err
	}
	rows, err := datastore.GetAttemptResultsForSession(sessionID)
	if err != nil {
		return nil, err
	}

	results := make([]sessionengine.ResultRecord, len(rows))
	for i, row := range rows {
		results[i] = sessionengine.ResultRecord{
			SessionID:      row.SessionID,
			ItemLabel:      row.ItemLabel,
			ItemCode:       row.ItemCode,
			Language:       row.Language,
			AttemptNumber:  row.AttemptNumber,
			Transcript:     row.Transcript,
			Matched:        row.Matched,
			WER:            row.WER,
			CER:            row.CER,
			AudioObjectKey: row.AudioObjectKey,
			Timestamp:      row.CreatedAt,
		}
	}

	return &sessionengine.Report{
		SessionID:     archive.SessionID,
		TesterName:    archive.TesterName,
		TesterEmail:   archive.TesterEmail.String,
		Language:      archive.Language,
		Results:       results,
		TotalAttempts: archive.TotalAttempts,
		Matches:       archive.Matches,
		GeneratedAt:   archive.FinalizedAt,
	}, nil
}
