package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/pkg/requestid"
)

var (
	ErrEmptyResponse = errors.New("empty response")
)

// Remote is the client interface to the valuation service consumed by the
// workspace. Identity resolution, assessment sync and the job store all go
// through it.
//
//go:generate moq -fmt=goimports -out zz_generated_remote.go . Remote
type Remote interface {
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (api.User, error)
	CreateAssessment(ctx context.Context, form api.AssessmentForm) (string, error)
	UpdateAssessment(ctx context.Context, id string, form api.AssessmentForm) error
	CreateJob(ctx context.Context, form api.JobForm) error
	UpdateJob(ctx context.Context, id string, update api.JobUpdate) error
	GetJob(ctx context.Context, id string) (*api.Job, error)
}

var _ Remote = (*remote)(nil)

type remote struct {
	server string
	token  string
	client *http.Client
}

// NewRemote returns a Remote talking to the valuation service at server.
// An empty token means the caller is unauthenticated: identity resolution
// fails and the workspace degrades to demo mode.
func NewRemote(server, token string) Remote {
	return &remote{
		server: server,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *remote) IsAuthenticated(_ context.Context) bool {
	return r.token != ""
}

func (r *remote) CurrentUser(ctx context.Context) (api.User, error) {
	var user api.User
	if err := r.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return api.User{}, err
	}
	if user.ID == "" {
		return api.User{}, ErrEmptyResponse
	}
	return user, nil
}

func (r *remote) CreateAssessment(ctx context.Context, form api.AssessmentForm) (string, error) {
	var created api.Assessment
	if err := r.do(ctx, http.MethodPost, "/api/v1/assessments", form, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", ErrEmptyResponse
	}
	return created.ID, nil
}

func (r *remote) UpdateAssessment(ctx context.Context, id string, form api.AssessmentForm) error {
	return r.do(ctx, http.MethodPut, "/api/v1/assessments/"+id, form, nil)
}

func (r *remote) CreateJob(ctx context.Context, form api.JobForm) error {
	return r.do(ctx, http.MethodPost, "/api/v1/jobs", form, nil)
}

func (r *remote) UpdateJob(ctx context.Context, id string, update api.JobUpdate) error {
	return r.do(ctx, http.MethodPut, "/api/v1/jobs/"+id, update, nil)
}

func (r *remote) GetJob(ctx context.Context, id string) (*api.Job, error) {
	var job api.Job
	if err := r.do(ctx, http.MethodGet, "/api/v1/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *remote) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.server+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestid.Header, requestid.FromContext(ctx))
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s %s failed: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
