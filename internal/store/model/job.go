package model

import (
	"encoding/json"
	"time"
)

// Job is one valuation job record. FileName is the derived storage key
// (Job_<number>_<sanitized address>) the UI lists jobs by.
type Job struct {
	ID              string `gorm:"primaryKey;column:id;type:VARCHAR(255)"`
	JobNumber       int    `gorm:"not null;uniqueIndex:jobs_org_id_number"`
	OrgID           string `gorm:"not null;uniqueIndex:jobs_org_id_number"`
	Username        string `gorm:"type:VARCHAR(255)"`
	FileName        string `gorm:"not null"`
	PropertyAddress string
	Status          string `gorm:"not null;type:VARCHAR(50)"`
	Data            []byte `gorm:"type:jsonb"`
	Reports         []byte `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
