package mappers

import (
	"encoding/json"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
)

func AssessmentToAPI(a model.Assessment) api.Assessment {
	return api.Assessment{
		ID:        a.ID.String(),
		Name:      a.Name,
		OrgID:     a.OrgID,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func AssessmentListToAPI(list model.AssessmentList) []api.Assessment {
	out := make([]api.Assessment, 0, len(list))
	for _, a := range list {
		out = append(out, AssessmentToAPI(a))
	}
	return out
}

func JobToAPI(j model.Job) api.Job {
	out := api.Job{
		ID:              j.ID,
		JobNumber:       j.JobNumber,
		FileName:        j.FileName,
		PropertyAddress: j.PropertyAddress,
		Status:          api.StringToJobStatus(j.Status),
		Username:        j.Username,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
	if len(j.Data) > 0 {
		_ = json.Unmarshal(j.Data, &out.Data)
	}
	if len(j.Reports) > 0 {
		_ = json.Unmarshal(j.Reports, &out.Reports)
	}
	return out
}

func JobListToAPI(list model.JobList) []api.Job {
	out := make([]api.Job, 0, len(list))
	for _, j := range list {
		out = append(out, JobToAPI(j))
	}
	return out
}
