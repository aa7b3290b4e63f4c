package v1alpha1

import "time"

// User is the identity resolved by the valuation service for the caller.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Organization string `json:"organization"`
}

// Address is the property address under assessment. The composed street
// address (number + name + type) identifies the property for change
// detection; the remaining fields are descriptive.
type Address struct {
	UnitNumber   string `json:"unitNumber,omitempty"`
	StreetNumber string `json:"streetNumber,omitempty"`
	StreetName   string `json:"streetName,omitempty"`
	StreetType   string `json:"streetType,omitempty"`
	Suburb       string `json:"suburb,omitempty"`
	State        string `json:"state,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country,omitempty"`
	PropertyID   string `json:"propertyId,omitempty"`
}

// AssessmentProgress tracks the wizard position of the assessment form.
type AssessmentProgress struct {
	CurrentStep    int    `json:"currentStep"`
	CompletedSteps []bool `json:"completedSteps"`
}

// AssessmentForm is the payload used to create or update an assessment.
type AssessmentForm struct {
	Name       string                    `json:"name"`
	JobID      *string                   `json:"jobId,omitempty"`
	PropertyID *string                   `json:"propertyId,omitempty"`
	Address    *Address                  `json:"address,omitempty"`
	ReportData map[string]map[string]any `json:"reportData,omitempty"`
	Progress   *AssessmentProgress       `json:"progress,omitempty"`
}

type Assessment struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	OrgID     string     `json:"orgId"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

func StringToJobStatus(s string) JobStatus {
	switch s {
	case string(JobStatusInProgress):
		return JobStatusInProgress
	case string(JobStatusCompleted):
		return JobStatusCompleted
	case string(JobStatusFailed):
		return JobStatusFailed
	default:
		return JobStatusPending
	}
}

// JobForm is the payload used to create a job record.
type JobForm struct {
	ID              string         `json:"id"`
	JobNumber       int            `json:"jobNumber"`
	FileName        string         `json:"fileName"`
	PropertyAddress string         `json:"propertyAddress"`
	Status          JobStatus      `json:"status"`
	Data            map[string]any `json:"data,omitempty"`
	Reports         []string       `json:"reports,omitempty"`
}

// JobUpdate carries the status/data/reports envelope pushed on progress saves.
type JobUpdate struct {
	Status  *JobStatus     `json:"status,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Reports []string       `json:"reports,omitempty"`
}

type Job struct {
	ID              string         `json:"id"`
	JobNumber       int            `json:"jobNumber"`
	FileName        string         `json:"fileName"`
	PropertyAddress string         `json:"propertyAddress"`
	Status          JobStatus      `json:"status"`
	Data            map[string]any `json:"data,omitempty"`
	Reports         []string       `json:"reports,omitempty"`
	Username        string         `json:"username,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
