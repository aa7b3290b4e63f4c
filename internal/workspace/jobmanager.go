package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/jitterbug/v2"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/client"
	"github.com/hammad983ae/sustaino-sub007/internal/events"
	"github.com/hammad983ae/sustaino-sub007/internal/session"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
	"github.com/hammad983ae/sustaino-sub007/pkg/metrics"
)

const (
	defaultAutoSaveInterval = 30 * time.Second
	defaultJobNumberBase    = 10000

	sessionPayloadKey = "session"
)

var (
	ErrNoActiveJob = errors.New("no active job")
	ErrJobTerminal = errors.New("job is in a terminal state")
	ErrNoJobData   = errors.New("job has no data")
	ErrJobNotFound = errors.New("job not found")
)

// JobProgress is a partial job snapshot merged into the current job by
// SaveJobProgress.
type JobProgress struct {
	Data    map[string]any
	Reports []string
}

// JobManager issues human-facing job numbers, keeps a best-effort periodic
// snapshot of the current job, and archives finished sessions. Unlike the
// session save path, job creation fails outward: a job the user believes
// exists but does not would mean silent data loss later.
type JobManager struct {
	log      *log.StructuredLogger
	remote   client.Remote
	kv       store.KV
	events   *events.EventProducer
	clock    Clock
	interval time.Duration

	mu           sync.Mutex
	current      *session.Job
	nextNumber   int
	lastAutoSave time.Time
	stopCh       chan struct{}
}

type JobManagerOption func(*JobManager)

func WithAutoSaveInterval(d time.Duration) JobManagerOption {
	return func(j *JobManager) {
		j.interval = d
	}
}

func WithJobNumberBase(base int) JobManagerOption {
	return func(j *JobManager) {
		j.nextNumber = base
	}
}

func WithJobClock(c Clock) JobManagerOption {
	return func(j *JobManager) {
		j.clock = c
	}
}

func NewJobManager(remote client.Remote, kv store.KV, ep *events.EventProducer, opts ...JobManagerOption) *JobManager {
	j := &JobManager{
		log:        log.NewDebugLogger("jobs"),
		remote:     remote,
		kv:         kv,
		events:     ep,
		clock:      NewClock(),
		interval:   defaultAutoSaveInterval,
		nextNumber: defaultJobNumberBase,
	}
	for _, o := range opts {
		o(j)
	}
	return j
}

// CurrentJob returns the active job, or nil.
func (j *JobManager) CurrentJob() *session.Job {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current
}

// CreateJob allocates the next job number, persists an initial pending record
// to the remote job store and caches it as the current job. Remote failure
// fails the operation; the number is not consumed.
func (j *JobManager) CreateJob(ctx context.Context, address string) (*session.Job, error) {
	j.mu.Lock()
	number := j.nextNumber
	j.mu.Unlock()

	now := j.clock.Now()
	job := &session.Job{
		ID:              uuid.NewString(),
		JobNumber:       number,
		PropertyAddress: address,
		Status:          api.JobStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if user, err := j.remote.CurrentUser(ctx); err == nil {
		job.UserID = user.ID
	}

	tracer := j.log.WithContext(ctx).Operation("create_job").
		WithInt("job_number", number).
		WithString("address", address).
		Build()

	form := api.JobForm{
		ID:              job.ID,
		JobNumber:       job.JobNumber,
		FileName:        JobFileName(job.JobNumber, address),
		PropertyAddress: address,
		Status:          api.JobStatusPending,
	}
	if err := j.remote.CreateJob(ctx, form); err != nil {
		tracer.Error(err).Log()
		j.publish(ctx, events.NotificationEvent{
			Level:     "error",
			Message:   "failed to create job",
			JobNumber: number,
		})
		return nil, fmt.Errorf("creating job %d: %w", number, err)
	}

	j.mu.Lock()
	j.nextNumber = number + 1
	j.current = job
	j.lastAutoSave = time.Time{}
	j.mu.Unlock()

	tracer.Success().WithString("job_id", job.ID).Log()
	j.publish(ctx, events.NotificationEvent{
		Level:     "success",
		Message:   "job created",
		JobNumber: number,
	})
	return job, nil
}

// SaveJobProgress merges the partial snapshot into the current job and pushes
// it to the remote job store. Failures are logged and swallowed; this runs
// from the autosave timer. The pushed envelope is copied under the lock so
// the remote never observes a map a concurrent merge is writing to.
func (j *JobManager) SaveJobProgress(ctx context.Context, progress JobProgress) {
	now := j.clock.Now()

	j.mu.Lock()
	job := j.current
	if job == nil || job.Status.IsTerminal() {
		j.mu.Unlock()
		return
	}
	if progress.Data != nil {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		for k, v := range progress.Data {
			job.Data[k] = v
		}
	}
	if progress.Reports != nil {
		job.Reports = progress.Reports
	}
	job.UpdatedAt = now
	status := job.Status
	update := api.JobUpdate{
		Status:  &status,
		Data:    copyPayload(job.Data),
		Reports: append([]string(nil), job.Reports...),
	}
	jobID := job.ID
	jobNumber := job.JobNumber
	j.mu.Unlock()

	if err := j.remote.UpdateJob(ctx, jobID, update); err != nil {
		j.log.WithContext(ctx).Operation("save_job_progress").
			WithInt("job_number", jobNumber).
			Build().Error(err).Log()
		return
	}

	j.mu.Lock()
	j.lastAutoSave = now
	j.mu.Unlock()
}

// StartAutoSave starts the periodic snapshot loop. Calling it while a loop is
// already running restarts the loop cleanly.
func (j *JobManager) StartAutoSave(ctx context.Context) {
	j.mu.Lock()
	if j.stopCh != nil {
		close(j.stopCh)
	}
	stop := make(chan struct{})
	j.stopCh = stop
	j.mu.Unlock()

	go j.autoSaveLoop(ctx, stop)
}

// StopAutoSave cancels the snapshot loop. Safe to call when not running.
func (j *JobManager) StopAutoSave() {
	j.mu.Lock()
	if j.stopCh != nil {
		close(j.stopCh)
		j.stopCh = nil
	}
	j.mu.Unlock()
}

func (j *JobManager) autoSaveLoop(ctx context.Context, stop chan struct{}) {
	ticker := jitterbug.New(j.interval, &jitterbug.Norm{Stdev: 30 * time.Millisecond, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			j.autoSaveTick(ctx)
		}
	}
}

// autoSaveTick saves at most once per interval regardless of tick frequency.
func (j *JobManager) autoSaveTick(ctx context.Context) {
	metrics.IncAutoSaveTick()

	j.mu.Lock()
	job := j.current
	active := job != nil && !job.Status.IsTerminal()
	last := j.lastAutoSave
	j.mu.Unlock()

	if !active {
		return
	}
	if !last.IsZero() && j.clock.Now().Sub(last) < j.interval {
		return
	}
	j.SaveJobProgress(ctx, JobProgress{})
}

// UpdateJobStatus persists a status transition. Terminal states accept no
// further transitions; reaching one tears down autosave.
func (j *JobManager) UpdateJobStatus(ctx context.Context, status api.JobStatus) error {
	j.mu.Lock()
	job := j.current
	if job == nil {
		j.mu.Unlock()
		return ErrNoActiveJob
	}
	if job.Status.IsTerminal() {
		current := job.Status
		j.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrJobTerminal, current)
	}
	jobID := job.ID
	jobNumber := job.JobNumber
	j.mu.Unlock()

	if err := j.remote.UpdateJob(ctx, jobID, api.JobUpdate{Status: &status}); err != nil {
		return fmt.Errorf("updating job %d status: %w", jobNumber, err)
	}

	j.mu.Lock()
	job.Status = status
	job.UpdatedAt = j.clock.Now()
	j.mu.Unlock()

	if status.IsTerminal() {
		j.StopAutoSave()
	}
	if status == api.JobStatusCompleted {
		j.publish(ctx, events.NotificationEvent{
			Level:     "success",
			Message:   "job completed",
			JobNumber: jobNumber,
		})
	}
	return nil
}

// UpdateJobData persists a data payload. Any data write on a pending job
// promotes it to in_progress.
func (j *JobManager) UpdateJobData(ctx context.Context, data map[string]any) error {
	j.mu.Lock()
	job := j.current
	if job == nil {
		j.mu.Unlock()
		return ErrNoActiveJob
	}
	if job.Status.IsTerminal() {
		current := job.Status
		j.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrJobTerminal, current)
	}

	status := job.Status
	if status == api.JobStatusPending {
		status = api.JobStatusInProgress
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for k, v := range data {
		job.Data[k] = v
	}
	merged := copyPayload(job.Data)
	jobID := job.ID
	jobNumber := job.JobNumber
	j.mu.Unlock()

	if err := j.remote.UpdateJob(ctx, jobID, api.JobUpdate{Status: &status, Data: merged}); err != nil {
		return fmt.Errorf("updating job %d data: %w", jobNumber, err)
	}

	j.mu.Lock()
	job.Status = status
	job.UpdatedAt = j.clock.Now()
	j.mu.Unlock()
	return nil
}

// FinalizeJob marks the current job completed and tears down autosave.
func (j *JobManager) FinalizeJob(ctx context.Context) error {
	return j.UpdateJobStatus(ctx, api.JobStatusCompleted)
}

// GenerateReports records deterministic artifact names for the current job.
// It does not render anything; an external renderer resolves the names.
func (j *JobManager) GenerateReports(ctx context.Context) ([]string, error) {
	j.mu.Lock()
	job := j.current
	if job == nil {
		j.mu.Unlock()
		return nil, ErrNoActiveJob
	}
	if len(job.Data) == 0 {
		j.mu.Unlock()
		return nil, ErrNoJobData
	}
	jobID := job.ID
	jobNumber := job.JobNumber
	j.mu.Unlock()

	reports := []string{
		fmt.Sprintf("Job_%d_valuation_report.pdf", jobNumber),
		fmt.Sprintf("Job_%d_assessment_summary.pdf", jobNumber),
	}
	if err := j.remote.UpdateJob(ctx, jobID, api.JobUpdate{Reports: reports}); err != nil {
		return nil, fmt.Errorf("recording reports for job %d: %w", jobNumber, err)
	}

	j.mu.Lock()
	job.Reports = reports
	job.UpdatedAt = j.clock.Now()
	j.mu.Unlock()
	return reports, nil
}

// ArchiveSession snapshots a finished session onto a completed job record.
// The local archive entry is authoritative; the remote job store is updated
// best-effort so demo sessions archive too.
func (j *JobManager) ArchiveSession(ctx context.Context, data *session.Data) error {
	now := j.clock.Now()

	j.mu.Lock()
	job := j.current
	if job == nil {
		job = &session.Job{
			ID:              uuid.NewString(),
			JobNumber:       j.nextNumber,
			PropertyAddress: session.ComposedAddress(data.AddressData),
			CreatedAt:       now,
			UserID:          data.UserID,
		}
		j.nextNumber++
	}
	job.Status = api.JobStatusCompleted
	job.Data = map[string]any{sessionPayloadKey: data}
	job.UpdatedAt = now
	snapshot := *job
	snapshot.Data = copyPayload(job.Data)
	snapshot.Reports = append([]string(nil), job.Reports...)
	j.mu.Unlock()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err := j.kv.Put(ctx, archiveKey(snapshot.ID), raw); err != nil {
		return fmt.Errorf("archiving job %d: %w", snapshot.JobNumber, err)
	}

	if !data.IsDemo && j.remote.IsAuthenticated(ctx) {
		status := api.JobStatusCompleted
		update := api.JobUpdate{Status: &status, Data: snapshot.Data, Reports: snapshot.Reports}
		if err := j.remote.UpdateJob(ctx, snapshot.ID, update); err != nil {
			j.log.WithContext(ctx).Operation("archive_session").
				WithInt("job_number", snapshot.JobNumber).
				Build().Error(err).Log()
		}
	}

	j.StopAutoSave()
	j.mu.Lock()
	j.current = nil
	j.mu.Unlock()

	j.publish(ctx, events.NotificationEvent{
		Level:     "success",
		Message:   "assessment archived",
		JobNumber: snapshot.JobNumber,
	})
	return nil
}

// HydrateSession rebuilds a session from an archived or remote job record.
// The local archive wins over the remote copy.
func (j *JobManager) HydrateSession(ctx context.Context, jobID string) (*session.Data, error) {
	if raw, err := j.kv.Get(ctx, archiveKey(jobID)); err == nil {
		var job session.Job
		if err := json.Unmarshal(raw, &job); err == nil {
			if data, err := sessionFromPayload(job.Data); err == nil {
				return data, nil
			}
		}
	}

	job, err := j.remote.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	data, err := sessionFromPayload(job.Data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// copyPayload snapshots the top level of a job data map. Merges replace
// values wholesale, so one level is enough to decouple a remote push from
// concurrent writers.
func copyPayload(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func sessionFromPayload(payload map[string]any) (*session.Data, error) {
	snapshot, ok := payload[sessionPayloadKey]
	if !ok {
		return nil, errors.New("job carries no session snapshot")
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	var data session.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	if data.ReportData == nil {
		data.ReportData = map[string]map[string]any{}
	}
	if data.ComponentData == nil {
		data.ComponentData = map[string]session.ComponentEntry{}
	}
	return &data, nil
}

func (j *JobManager) publish(ctx context.Context, payload events.NotificationEvent) {
	if j.events == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := j.events.Write(ctx, events.NotificationKind, bytes.NewReader(raw)); err != nil {
		j.log.WithContext(ctx).Operation("publish_notification").Build().Error(err).Log()
	}
}
