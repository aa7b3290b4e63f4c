package mappers

import (
	"encoding/json"

	"github.com/google/uuid"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
)

// AssessmentCreateForm carries a validated create request into the service
// layer. Report holds the JSON-encoded report snapshot.
type AssessmentCreateForm struct {
	Name       string
	OrgID      string
	Username   string
	JobID      *string
	PropertyID *string
	Report     []byte
}

func (f AssessmentCreateForm) ToModel() model.Assessment {
	return model.Assessment{
		ID:         uuid.New(),
		Name:       f.Name,
		OrgID:      f.OrgID,
		Username:   f.Username,
		JobID:      f.JobID,
		PropertyID: f.PropertyID,
	}
}

// AssessmentFormToCreateForm binds the API payload to the caller's identity.
// The report snapshot packs address, report data and progress together so one
// snapshot restores the whole session state.
func AssessmentFormToCreateForm(form api.AssessmentForm, username, orgID string) (AssessmentCreateForm, error) {
	report, err := json.Marshal(map[string]any{
		"address":    form.Address,
		"reportData": form.ReportData,
		"progress":   form.Progress,
	})
	if err != nil {
		return AssessmentCreateForm{}, err
	}

	return AssessmentCreateForm{
		Name:       form.Name,
		OrgID:      orgID,
		Username:   username,
		JobID:      form.JobID,
		PropertyID: form.PropertyID,
		Report:     report,
	}, nil
}

// JobCreateForm carries a validated job create request into the service layer.
type JobCreateForm struct {
	ID              string
	JobNumber       int
	OrgID           string
	Username        string
	FileName        string
	PropertyAddress string
	Data            []byte
	Reports         []byte
}

func (f JobCreateForm) ToModel() model.Job {
	id := f.ID
	if id == "" {
		id = uuid.NewString()
	}
	return model.Job{
		ID:              id,
		JobNumber:       f.JobNumber,
		OrgID:           f.OrgID,
		Username:        f.Username,
		FileName:        f.FileName,
		PropertyAddress: f.PropertyAddress,
		Status:          string(api.JobStatusPending),
		Data:            f.Data,
		Reports:         f.Reports,
	}
}

// JobFormToCreateForm binds the API payload to the caller's identity.
func JobFormToCreateForm(form api.JobForm, username, orgID string) (JobCreateForm, error) {
	create := JobCreateForm{
		ID:              form.ID,
		JobNumber:       form.JobNumber,
		OrgID:           orgID,
		Username:        username,
		FileName:        form.FileName,
		PropertyAddress: form.PropertyAddress,
	}

	if form.Data != nil {
		data, err := json.Marshal(form.Data)
		if err != nil {
			return JobCreateForm{}, err
		}
		create.Data = data
	}
	if form.Reports != nil {
		reports, err := json.Marshal(form.Reports)
		if err != nil {
			return JobCreateForm{}, err
		}
		create.Reports = reports
	}
	return create, nil
}
