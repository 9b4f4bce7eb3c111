package stage

import (
	"time"

	"gorm.io/datatypes"
)

// Stage is one file's planned edits from a search/replace run, recorded
// under --apply --stage before `sgrep apply <stage-id>` commits it. Edits is the JSON-encoded []plan.Edit the run produced; sgrep never
// needs to query into it, so it's stored opaque rather than normalized
// into its own table.
type Stage struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	SessionID string `gorm:"type:varchar(36);index"`

	Language        string `gorm:"type:varchar(50);not null"`
	PatternText     string `gorm:"type:text;not null"`
	ReplacementText string `gorm:"type:text"`

	Edits      datatypes.JSON `gorm:"type:jsonb"`
	MatchCount int            `gorm:"default:0"`

	Status    string     `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	ExpiresAt time.Time  `gorm:"index"`
	AppliedAt *time.Time

	Apply *Apply `gorm:"foreignKey:StageID"`
}

// Apply is a committed Stage: the moment its edits were actually written
// to disk.
type Apply struct {
	ID      string `gorm:"primaryKey;type:varchar(36)"`
	StageID string `gorm:"type:varchar(36);uniqueIndex"`

	FilesChanged int       `gorm:"default:0"`
	AppliedAt    time.Time `gorm:"autoCreateTime"`

	Reverted   bool `gorm:"default:false"`
	RevertedAt *time.Time

	Stage Stage `gorm:"foreignKey:StageID"`
}

// Session groups every Stage produced by one sgrep invocation (a run
// stages one Stage per file that has edits).
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	EndedAt   *time.Time

	StagesCount  int `gorm:"default:0"`
	AppliesCount int `gorm:"default:0"`
}

func (Stage) TableName() string   { return "stages" }
func (Apply) TableName() string   { return "applies" }
func (Session) TableName() string { return "sessions" }
