package stage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/oxhq/sgrep/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "stage.db")
	db, err := Connect(dsn, "", false)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return NewStore(db, time.Hour)
}

func TestRecordAndGetRoundTrips(t *testing.T) {
	s := newTestStore(t)
	sessionID, err := s.NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	edits := []plan.Edit{{File: "a.go", Start: 0, End: 3, Replacement: "new"}}
	stageID, err := s.Record(sessionID, "go", "old()", "new()", "a.go", edits)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	st, got, err := s.Get(stageID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.Status != "pending" {
		t.Errorf("expected pending status, got %s", st.Status)
	}
	if len(got) != 1 || got[0].Replacement != "new" {
		t.Errorf("expected decoded edits to round-trip, got %+v", got)
	}
}

func TestCommitMarksApplied(t *testing.T) {
	s := newTestStore(t)
	sessionID, _ := s.NewSession()
	stageID, err := s.Record(sessionID, "go", "old()", "new()", "a.go", nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, err := s.Commit(stageID, 1); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	st, _, err := s.Get(stageID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.Status != "applied" {
		t.Errorf("expected applied status, got %s", st.Status)
	}

	if _, err := s.Commit(stageID, 1); err == nil {
		t.Error("expected committing an already-applied stage to fail")
	}
}

func TestGetUnknownStageReturnsErrNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.Get("does-not-exist"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
