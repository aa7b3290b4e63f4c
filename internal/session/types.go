package session

import (
	"time"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
)

const (
	// DemoUserID is the sentinel identity used when no authenticated user
	// could be resolved. Demo sessions never sync to the remote service.
	DemoUserID = "demo_user"

	// DemoAssessmentPrefix marks a client-only synthetic assessment id.
	DemoAssessmentPrefix = "demo_"
)

// ComponentEntry is one persisted component slot. The payload keeps the
// component's own shape; savedAt and component are reserved keys stamped on
// every save.
type ComponentEntry map[string]any

const (
	componentKey = "component"
	savedAtKey   = "savedAt"
)

func NewComponentEntry(name string, payload map[string]any, now time.Time) ComponentEntry {
	entry := make(ComponentEntry, len(payload)+2)
	for k, v := range payload {
		entry[k] = v
	}
	entry[savedAtKey] = now.UTC().Format(time.RFC3339Nano)
	entry[componentKey] = name
	return entry
}

func (e ComponentEntry) Component() string {
	name, _ := e[componentKey].(string)
	return name
}

// Data is the persisted session unit, one per user identity.
type Data struct {
	ReportData         map[string]map[string]any `json:"reportData"`
	AddressData        api.Address               `json:"addressData"`
	AssessmentProgress api.AssessmentProgress    `json:"assessmentProgress"`
	ComponentData      map[string]ComponentEntry `json:"componentData"`
	LastUpdated        time.Time                 `json:"lastUpdated"`
	UserID             string                    `json:"userId"`
	IsDemo             bool                      `json:"isDemo"`
	AssessmentID       string                    `json:"assessmentId,omitempty"`
	JobID              string                    `json:"jobId,omitempty"`
	PropertyID         string                    `json:"propertyId,omitempty"`
}

func NewData(userID string) *Data {
	return &Data{
		ReportData:         map[string]map[string]any{},
		ComponentData:      map[string]ComponentEntry{},
		AssessmentProgress: api.AssessmentProgress{CurrentStep: 0, CompletedSteps: []bool{}},
		UserID:             userID,
		IsDemo:             userID == DemoUserID,
	}
}

// Clone returns a copy safe to merge into while the original stays cached.
// Section maps are copied one level deep; section contents are replaced
// wholesale on update, never mutated in place.
func (d *Data) Clone() *Data {
	if d == nil {
		return nil
	}
	out := *d
	out.ReportData = make(map[string]map[string]any, len(d.ReportData))
	for k, v := range d.ReportData {
		out.ReportData[k] = v
	}
	out.ComponentData = make(map[string]ComponentEntry, len(d.ComponentData))
	for k, v := range d.ComponentData {
		out.ComponentData[k] = v
	}
	out.AssessmentProgress.CompletedSteps = append([]bool(nil), d.AssessmentProgress.CompletedSteps...)
	return &out
}

// HasMeaningfulContent reports whether the session carries anything worth
// archiving: report or component data, or a set address.
func (d *Data) HasMeaningfulContent() bool {
	if d == nil {
		return false
	}
	return len(d.ReportData) > 0 || len(d.ComponentData) > 0 || ComposedAddress(d.AddressData) != ""
}

// Job is the ephemeral in-progress valuation job, one active at a time.
type Job struct {
	ID              string         `json:"id"`
	JobNumber       int            `json:"jobNumber"`
	PropertyAddress string         `json:"propertyAddress"`
	Status          api.JobStatus  `json:"status"`
	Data            map[string]any `json:"data,omitempty"`
	Reports         []string       `json:"reports,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	UserID          string         `json:"userId,omitempty"`
}
