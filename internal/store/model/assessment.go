package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Assessment struct {
	ID         uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  *time.Time
	Name       string     `gorm:"not null;uniqueIndex:assessments_org_id_name"`
	OrgID      string     `gorm:"not null;uniqueIndex:assessments_org_id_name;index:assessments_org_id_idx"`
	Username   string     `gorm:"type:VARCHAR(255)"`
	JobID      *string    `gorm:"type:VARCHAR(255)"`
	PropertyID *string    `gorm:"type:VARCHAR(255)"`
	Snapshots  []Snapshot `gorm:"foreignKey:AssessmentID;references:ID;constraint:OnDelete:CASCADE;"`
}

// Snapshot is one saved report state of an assessment, newest first when
// preloaded.
type Snapshot struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt    time.Time `gorm:"not null"`
	Report       []byte    `gorm:"type:jsonb;not null"`
	AssessmentID uuid.UUID `gorm:"not null;type:VARCHAR(255);"`
}

type AssessmentList []Assessment

func (a Assessment) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}

func (s Snapshot) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}
