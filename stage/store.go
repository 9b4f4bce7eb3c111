package stage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/sgrep/plan"
)

// Store is the staging database handle the CLI drives.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewStore wraps an already-connected *gorm.DB (see Connect).
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// NewSession starts a Session row and returns its ID.
func (s *Store) NewSession() (string, error) {
	sess := Session{ID: uuid.NewString(), StartedAt: time.Now()}
	if err := s.db.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("stage: create session: %w", err)
	}
	return sess.ID, nil
}

// Record persists one file's planned edits as a pending Stage and returns
// its ID.
func (s *Store) Record(sessionID, language, patternText, replacementText, file string, edits []plan.Edit) (string, error) {
	encoded, err := json.Marshal(edits)
	if err != nil {
		return "", fmt.Errorf("stage: encode edits: %w", err)
	}

	st := Stage{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		Language:        language,
		PatternText:     patternText,
		ReplacementText: replacementText,
		Edits:           datatypes.JSON(encoded),
		MatchCount:      len(edits),
		Status:          "pending",
		CreatedAt:       time.Now(),
		ExpiresAt:       time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&st).Error; err != nil {
		return "", fmt.Errorf("stage: create stage: %w", err)
	}
	if err := s.db.Model(&Session{}).Where("id = ?", sessionID).
		UpdateColumn("stages_count", gorm.Expr("stages_count + 1")).Error; err != nil {
		return "", fmt.Errorf("stage: update session: %w", err)
	}
	return st.ID, nil
}

// ErrNotFound is returned by Get/Commit/Revert when a stage ID doesn't
// resolve to a row.
var ErrNotFound = fmt.Errorf("stage: not found")

// Get loads a Stage and decodes its edits.
func (s *Store) Get(stageID string) (*Stage, []plan.Edit, error) {
	var st Stage
	if err := s.db.First(&st, "id = ?", stageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("stage: get: %w", err)
	}
	var edits []plan.Edit
	if err := json.Unmarshal(st.Edits, &edits); err != nil {
		return nil, nil, fmt.Errorf("stage: decode edits: %w", err)
	}
	return &st, edits, nil
}

// Commit marks a Stage applied and records an Apply row. The caller is
// responsible for actually writing the file(s) via plan.Apply before
// calling Commit.
func (s *Store) Commit(stageID string, filesChanged int) (string, error) {
	st, _, err := s.Get(stageID)
	if err != nil {
		return "", err
	}
	if st.Status == "expired" || time.Now().After(st.ExpiresAt) {
		return "", fmt.Errorf("stage: %s has expired", stageID)
	}
	if st.Status == "applied" {
		return "", fmt.Errorf("stage: %s was already applied", stageID)
	}

	ap := Apply{ID: uuid.NewString(), StageID: stageID, FilesChanged: filesChanged, AppliedAt: time.Now()}
	return ap.ID, s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ap).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&Stage{}).Where("id = ?", stageID).
			Updates(map[string]any{"status": "applied", "applied_at": &now}).Error
	})
}

// Revert marks a Stage's Apply as reverted, so the caller knows to restore
// the original text (stage itself never holds pre-edit file content; that
// lives in the file system's own history).
func (s *Store) Revert(stageID string) error {
	now := time.Now()
	res := s.db.Model(&Apply{}).Where("stage_id = ?", stageID).
		Updates(map[string]any{"reverted": true, "reverted_at": &now})
	if res.Error != nil {
		return fmt.Errorf("stage: revert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpirePending marks every pending Stage past its ExpiresAt as expired,
// so a stale `sgrep apply <stage-id>` fails fast instead of applying against
// possibly-drifted source.
func (s *Store) ExpirePending() (int64, error) {
	res := s.db.Model(&Stage{}).
		Where("status = ? AND expires_at < ?", "pending", time.Now()).
		Update("status", "expired")
	return res.RowsAffected, res.Error
}
