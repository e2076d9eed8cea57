package sessionengine

import (
	"errors"
	"testing"
)

func testItems(labels ...string) []TestItem {
	items := make([]TestItem, len(labels))
	for i, label := range labels {
		items[i] = TestItem{SerialNumber: i + 1, Label: label, Language: "en"}
	}
	return items
}

func TestStartValidation(t *testing.T) {
	var vErr *ValidationError

	_, err := Start(nil, "en", "Asha", "")
	if !errors.As(err, &vErr) {
		t.Fatalf("empty item list: got %v, want ValidationError", err)
	}
	if vErr.Index != -1 {
		t.Errorf("empty item list index = %d, want -1", vErr.Index)
	}

	_, err = Start(testItems("Wheat", "  ", "Corn"), "en", "Asha", "")
	if !errors.As(err, &vErr) {
		t.Fatalf("blank label: got %v, want ValidationError", err)
	}
	if vErr.Index != 1 {
		t.Errorf("blank label index = %d, want 1", vErr.Index)
	}

	_, err = Start(testItems("Wheat"), "en", "  ", "")
	if !errors.As(err, &vErr) {
		t.Fatalf("blank tester name: got %v, want ValidationError", err)
	}
}

func TestStartInitialState(t *testing.T) {
	r, err := Start(testItems("Wheat", "Corn"), "en", "Asha", "asha@example.com")
	if err != nil {
		t.Fatal(err)
	}
	s := r.Session()
	if s.ID == "" {
		t.Error("session ID not assigned")
	}
	if s.CurrentItemIndex != 0 {
		t.Errorf("current item index = %d, want 0", s.CurrentItemIndex)
	}
	if s.State() != SessionStateRunning {
		t.Errorf("state = %s, want RUNNING", s.State())
	}
	item, err := r.CurrentItem()
	if err != nil {
		t.Fatal(err)
	}
	if item.Label != "Wheat" {
		t.Errorf("current item = %q, want Wheat", item.Label)
	}
	if got := r.CurrentAttemptNumber(); got != 1 {
		t.Errorf("initial attempt number = %d, want 1", got)
	}
}

// Scenario: first attempt matches, second times out, budget still open.
func TestAttemptThenTimeout(t *testing.T) {
	r, err := Start(testItems("Wheat"), "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}

	rec1, err := r.SubmitAttempt("I am saying wheat now")
	if err != nil {
		t.Fatal(err)
	}
	if !rec1.Matched {
		t.Error("attempt 1: expected matched=true")
	}

	action := r.AdvanceOrNextItem()
	if action.Action != ActionContinueSameItem || action.AttemptNumber != 2 {
		t.Fatalf("advance after attempt 1: %+v", action)
	}

	rec2, err := r.SubmitAttempt("")
	if err != nil {
		t.Fatal(err)
	}
	if rec2.Matched || rec2.Transcript.Valid {
		t.Error("attempt 2: expected unmatched NULL-transcript record")
	}
	if rec2.AttemptNumber != 2 {
		t.Errorf("attempt 2 number = %d", rec2.AttemptNumber)
	}

	// Two of five attempts consumed; the budget must still be open.
	action = r.AdvanceOrNextItem()
	if action.Action != ActionContinueSameItem || action.AttemptNumber != 3 {
		t.Fatalf("advance after attempt 2: %+v", action)
	}

	results := r.Session().Results
	if len(results) != 2 {
		t.Fatalf("results = %d records, want 2", len(results))
	}
	if results[0].AttemptNumber != 1 || results[1].AttemptNumber != 2 {
		t.Error("results are out of chronological order")
	}
}

// Every item driven through the full attempt budget accumulates
// items * MaxAttempts records.
func TestResultAccumulationFullBudget(t *testing.T) {
	items := testItems("Wheat", "Corn", "Basmati Rice")
	r, err := Start(items, "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}

	for !r.Finished() {
		if _, err := r.SubmitAttempt("nothing relevant"); err != nil {
			t.Fatal(err)
		}
		r.AdvanceOrNextItem()
	}

	want := len(items) * MaxAttempts
	if got := len(r.Session().Results); got != want {
		t.Fatalf("results = %d records, want %d", got, want)
	}

	report, err := r.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalAttempts != want {
		t.Errorf("TotalAttempts = %d, want %d", report.TotalAttempts, want)
	}
	if report.Matches != 0 {
		t.Errorf("Matches = %d, want 0", report.Matches)
	}
}

// Skipping after one attempt moves the cursor and keeps the single record.
func TestSkipToNextItem(t *testing.T) {
	r, err := Start(testItems("Wheat", "Corn"), "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.SubmitAttempt("wheat"); err != nil {
		t.Fatal(err)
	}
	action := r.SkipToNextItem()
	if action.Action != ActionMoveToNextItem {
		t.Fatalf("skip: %+v", action)
	}

	s := r.Session()
	if s.CurrentItemIndex != 1 {
		t.Errorf("current item index = %d, want 1", s.CurrentItemIndex)
	}
	item, err := r.CurrentItem()
	if err != nil {
		t.Fatal(err)
	}
	if item.Label != "Corn" {
		t.Errorf("current item = %q, want Corn", item.Label)
	}
	if got := r.CurrentAttemptNumber(); got != 1 {
		t.Errorf("attempt number after skip = %d, want 1", got)
	}
	if len(s.Results) != 1 || s.Results[0].ItemLabel != "Wheat" {
		t.Errorf("expected exactly one Wheat record, got %+v", s.Results)
	}
}

func TestEndSessionEarly(t *testing.T) {
	r, err := Start(testItems("Wheat", "Corn", "Rice"), "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.SubmitAttempt("wheat"); err != nil {
		t.Fatal(err)
	}
	r.EndSessionEarly()

	if !r.Finished() {
		t.Fatal("session not finished after EndSessionEarly")
	}
	if _, err := r.CurrentItem(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("CurrentItem on finished session: %v, want ErrOutOfRange", err)
	}
	if _, err := r.SubmitAttempt("anything"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("SubmitAttempt on finished session: %v, want ErrInvalidState", err)
	}

	report, err := r.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalAttempts != 1 || report.Matches != 1 {
		t.Errorf("report counters = %d/%d, want 1/1", report.TotalAttempts, report.Matches)
	}
	if len(report.Results) != 1 {
		t.Errorf("report results = %d, want exactly the records submitted so far", len(report.Results))
	}
}

func TestFinalizeBeforeFinished(t *testing.T) {
	r, err := Start(testItems("Wheat"), "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Finalize(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Finalize on running session: %v, want ErrInvalidState", err)
	}
}

func TestExhaustedBudgetMovesToNextItem(t *testing.T) {
	r, err := Start(testItems("Wheat", "Corn"), "en", "Asha", "")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < MaxAttempts; i++ {
		if _, err := r.SubmitAttempt(""); err != nil {
			t.Fatal(err)
		}
		action := r.AdvanceOrNextItem()
		if i < MaxAttempts-1 {
			if action.Action != ActionContinueSameItem {
				t.Fatalf("attempt %d: %+v", i+1, action)
			}
		} else if action.Action != ActionMoveToNextItem {
			t.Fatalf("final attempt: %+v, want MOVE_TO_NEXT_ITEM", action)
		}
	}

	if got := r.Session().AttemptsByItemIndex[0]; got != MaxAttempts {
		t.Errorf("attempts recorded for item 0 = %d, want %d", got, MaxAttempts)
	}
}
