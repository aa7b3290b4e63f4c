package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/client"
	"github.com/hammad983ae/sustaino-sub007/internal/events"
	"github.com/hammad983ae/sustaino-sub007/internal/session"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
	"github.com/hammad983ae/sustaino-sub007/pkg/metrics"
)

const defaultDebounce = 2000 * time.Millisecond

// Jobs is the job-manager collaborator consumed by the session lifecycle
// operations.
type Jobs interface {
	ArchiveSession(ctx context.Context, data *session.Data) error
	HydrateSession(ctx context.Context, jobID string) (*session.Data, error)
}

// Manager is the single source of truth for reading and durably writing the
// workspace session. Local storage is authoritative; the remote assessment
// service is a best-effort mirror. Every public operation degrades to a
// usable demo or local state instead of propagating remote failures.
type Manager struct {
	log      *log.StructuredLogger
	kv       store.KV
	remote   client.Remote
	jobs     Jobs
	events   *events.EventProducer
	clock    Clock
	sched    Scheduler
	debounce time.Duration

	mu          sync.Mutex
	current     *session.Data
	degradation Degradation
	lastSaved   time.Time
	saving      bool

	// single pending-update slot for debounce coalescing
	pending       session.Update
	hasPending    bool
	pendingTimer  Timer
	pendingWindow time.Duration
}

type ManagerOption func(*Manager)

func WithDebounceWindow(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.debounce = d
	}
}

func WithClock(c Clock) ManagerOption {
	return func(m *Manager) {
		m.clock = c
	}
}

func WithManagerScheduler(s Scheduler) ManagerOption {
	return func(m *Manager) {
		m.sched = s
	}
}

func NewManager(kv store.KV, remote client.Remote, jobs Jobs, ep *events.EventProducer, opts ...ManagerOption) *Manager {
	m := &Manager{
		log:      log.NewDebugLogger("workspace"),
		kv:       kv,
		remote:   remote,
		jobs:     jobs,
		events:   ep,
		clock:    NewClock(),
		sched:    NewScheduler(),
		debounce: defaultDebounce,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// CurrentData returns the cached session, loading or initializing it on first
// use. It never fails outward: unresolvable identity or unreadable storage
// yields a fresh demo session with the matching degradation tag.
func (m *Manager) CurrentData(ctx context.Context) (*session.Data, Degradation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked(ctx)
}

func (m *Manager) currentLocked(ctx context.Context) (*session.Data, Degradation) {
	if m.current != nil {
		return m.current, m.degradation
	}

	userID, deg := m.resolveIdentity(ctx)
	data, loadDeg := m.loadSession(ctx, userID)
	if deg == DegradationNone {
		deg = loadDeg
	}

	m.current = data
	m.degradation = deg
	return data, deg
}

func (m *Manager) resolveIdentity(ctx context.Context) (string, Degradation) {
	if !m.remote.IsAuthenticated(ctx) {
		return session.DemoUserID, DegradationNone
	}
	user, err := m.remote.CurrentUser(ctx)
	if err != nil {
		m.log.WithContext(ctx).Operation("resolve_identity").Build().Error(err).Log()
		return session.DemoUserID, DegradationAuth
	}
	return user.ID, DegradationNone
}

func (m *Manager) loadSession(ctx context.Context, userID string) (*session.Data, Degradation) {
	raw, err := m.kv.Get(ctx, primaryKey(userID))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return session.NewData(userID), DegradationNone
		}
		m.log.WithContext(ctx).Operation("load_session").WithString("user_id", userID).Build().Error(err).Log()
		return session.NewData(userID), DegradationStorage
	}

	data := session.NewData(userID)
	if err := json.Unmarshal(raw, data); err != nil {
		m.log.WithContext(ctx).Operation("load_session").WithString("user_id", userID).Build().Error(err).Log()
		return session.NewData(userID), DegradationStorage
	}

	// identity is re-resolved on every load, never trusted from the blob
	data.UserID = userID
	data.IsDemo = userID == session.DemoUserID
	return data, DegradationNone
}

type saveOptions struct {
	debounce time.Duration
}

type SaveOption func(*saveOptions)

// WithDebounce overrides the debounce window for one call. Zero forces an
// immediate flush.
func WithDebounce(d time.Duration) SaveOption {
	return func(o *saveOptions) {
		o.debounce = d
	}
}

// SaveData merges a partial update into the session and persists it. With a
// positive debounce window the update is coalesced into the single pending
// slot and the call returns immediately; only the last window in a burst
// performs the physical write. An immediate save colliding with an in-flight
// flush returns SaveStatusBusy rather than queueing.
func (m *Manager) SaveData(ctx context.Context, update session.Update, opts ...SaveOption) SaveResult {
	o := saveOptions{debounce: m.debounce}
	for _, opt := range opts {
		opt(&o)
	}

	if o.debounce > 0 {
		m.schedule(update, o.debounce)
		return SaveResult{Status: SaveStatusScheduled}
	}
	return m.flush(ctx, update)
}

func (m *Manager) schedule(update session.Update, window time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pendingTimer != nil {
		m.pendingTimer.Stop()
	}
	m.pending = session.Coalesce(m.pending, update)
	m.hasPending = true
	m.pendingWindow = window
	m.pendingTimer = m.sched.AfterFunc(window, m.flushPending)
}

func (m *Manager) flushPending() {
	m.mu.Lock()
	update := m.pending
	hasPending := m.hasPending
	m.pending = session.Update{}
	m.hasPending = false
	m.pendingTimer = nil
	window := m.pendingWindow
	m.mu.Unlock()

	if !hasPending {
		return
	}

	res := m.flush(context.Background(), update)
	if res.Status != SaveStatusBusy {
		return
	}

	// a flush was in flight; push the update back through the queue so it is
	// not lost
	m.mu.Lock()
	m.pending = session.Coalesce(update, m.pending)
	m.hasPending = true
	if m.pendingTimer == nil {
		m.pendingWindow = window
		m.pendingTimer = m.sched.AfterFunc(window, m.flushPending)
	}
	m.mu.Unlock()
}

func (m *Manager) flush(ctx context.Context, update session.Update) SaveResult {
	m.mu.Lock()
	if m.saving {
		m.mu.Unlock()
		metrics.IncWorkspaceSave("busy")
		return SaveResult{Status: SaveStatusBusy}
	}
	m.saving = true
	cached, _ := m.currentLocked(ctx)
	data := cached.Clone()
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.saving = false
		m.mu.Unlock()
	}()

	// identity is re-resolved on every flush: a login or logout mid-session
	// re-stamps the session and moves it under the matching key scope
	userID, deg := m.resolveIdentity(ctx)
	data.UserID = userID
	data.IsDemo = userID == session.DemoUserID

	now := m.clock.Now()
	session.Apply(data, update, now)

	tracer := m.log.WithContext(ctx).Operation("save_session").
		WithString("user_id", data.UserID).
		WithBool("demo", data.IsDemo).
		Build()

	raw, err := json.Marshal(data)
	if err != nil {
		return m.failSave(ctx, tracer, err)
	}

	if err := m.kv.Put(ctx, primaryKey(data.UserID), raw); err != nil {
		return m.failSave(ctx, tracer, err)
	}
	if err := m.kv.Put(ctx, backupKey(data.UserID), raw); err != nil {
		return m.failSave(ctx, tracer, err)
	}
	tracer.Step("persisted_local").WithInt("size", len(raw)).Log()

	m.updateFileIndex(ctx, len(raw), now)
	m.syncRemote(ctx, data)

	m.mu.Lock()
	m.current = data
	m.degradation = deg
	m.lastSaved = now
	m.mu.Unlock()

	metrics.IncWorkspaceSave("saved")
	tracer.Success().Log()
	return SaveResult{Status: SaveStatusSaved, Data: data}
}

func (m *Manager) failSave(ctx context.Context, tracer *log.OperationTracer, err error) SaveResult {
	metrics.IncWorkspaceSave("failed")
	tracer.Error(err).Log()
	m.publish(ctx, events.NotificationKind, events.NotificationEvent{
		Level:   "error",
		Message: "failed to save assessment data",
	})
	return SaveResult{Status: SaveStatusFailed, Err: err}
}

// updateFileIndex upserts the single file-listing row this workspace owns.
// The index is a convenience projection; failures are logged only.
func (m *Manager) updateFileIndex(ctx context.Context, size int, now time.Time) {
	var index []model.FileIndexEntry
	if raw, err := m.kv.Get(ctx, FileIndexKey); err == nil {
		_ = json.Unmarshal(raw, &index)
	}

	entry := model.FileIndexEntry{
		Name:         IndexEntryName,
		Type:         "assessment",
		LastModified: now,
		Size:         size,
		Status:       "active",
	}

	found := false
	for i := range index {
		if index[i].Name == IndexEntryName {
			index[i] = entry
			found = true
			break
		}
	}
	if !found {
		index = append(index, entry)
	}

	raw, err := json.Marshal(index)
	if err == nil {
		err = m.kv.Put(ctx, FileIndexKey, raw)
	}
	if err != nil {
		m.log.WithContext(ctx).Operation("update_file_index").Build().Error(err).Log()
	}
}

// syncRemote mirrors the session to the assessment service when an authentic
// remote assessment exists. Failures are logged and counted, never surfaced.
func (m *Manager) syncRemote(ctx context.Context, data *session.Data) {
	if data.AssessmentID == "" || strings.HasPrefix(data.AssessmentID, session.DemoAssessmentPrefix) {
		return
	}
	if data.IsDemo || !m.remote.IsAuthenticated(ctx) {
		return
	}

	form := assessmentForm(data)
	if err := m.remote.UpdateAssessment(ctx, data.AssessmentID, form); err != nil {
		metrics.IncRemoteSyncFailure()
		m.log.WithContext(ctx).Operation("sync_assessment").
			WithString("assessment_id", data.AssessmentID).
			Build().Error(err).Log()
	}
}

func assessmentForm(data *session.Data) api.AssessmentForm {
	name := session.ComposedAddress(data.AddressData)
	if name == "" {
		name = IndexEntryName
	}
	addr := data.AddressData
	progress := data.AssessmentProgress
	form := api.AssessmentForm{
		Name:       name,
		Address:    &addr,
		ReportData: data.ReportData,
		Progress:   &progress,
	}
	if data.JobID != "" {
		jobID := data.JobID
		form.JobID = &jobID
	}
	if data.PropertyID != "" {
		propertyID := data.PropertyID
		form.PropertyID = &propertyID
	}
	return form
}

// SaveComponentData persists one component's payload under its own slot,
// stamping the component name and save time.
func (m *Manager) SaveComponentData(ctx context.Context, name string, payload map[string]any, opts ...SaveOption) SaveResult {
	entry := session.NewComponentEntry(name, payload, m.clock.Now())
	return m.SaveData(ctx, session.Update{
		ComponentData: map[string]session.ComponentEntry{name: entry},
	}, opts...)
}

// LoadComponentData returns the persisted slot for the component, or nil.
func (m *Manager) LoadComponentData(ctx context.Context, name string) session.ComponentEntry {
	data, _ := m.CurrentData(ctx)
	return data.ComponentData[name]
}

func (m *Manager) UpdateReportSection(ctx context.Context, section string, content map[string]any, opts ...SaveOption) SaveResult {
	return m.SaveData(ctx, session.Update{
		ReportData: map[string]map[string]any{section: content},
	}, opts...)
}

// UpdateAddressData merges a partial address. A change to the composed street
// address resets report and component data as part of the same flush.
func (m *Manager) UpdateAddressData(ctx context.Context, addr api.Address, opts ...SaveOption) SaveResult {
	return m.SaveData(ctx, session.Update{AddressData: &addr}, opts...)
}

func (m *Manager) UpdateProgress(ctx context.Context, progress api.AssessmentProgress, opts ...SaveOption) SaveResult {
	return m.SaveData(ctx, session.Update{AssessmentProgress: &progress}, opts...)
}

// ClearAllData erases the primary, backup and legacy entries for the current
// identity, drops the cache and broadcasts a session-cleared signal.
func (m *Manager) ClearAllData(ctx context.Context) error {
	m.mu.Lock()
	if m.pendingTimer != nil {
		m.pendingTimer.Stop()
		m.pendingTimer = nil
	}
	m.pending = session.Update{}
	m.hasPending = false
	data, _ := m.currentLocked(ctx)
	userID := data.UserID
	m.mu.Unlock()

	keys := append([]string{primaryKey(userID), backupKey(userID)}, legacyKeysFor(userID)...)
	if err := m.kv.Delete(ctx, keys...); err != nil {
		m.log.WithContext(ctx).Operation("clear_session").WithString("user_id", userID).Build().Error(err).Log()
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.degradation = DegradationNone
	m.lastSaved = time.Time{}
	m.mu.Unlock()

	m.publish(ctx, events.SessionClearedKind, events.SessionClearedEvent{
		UserID:      userID,
		ClearedKeys: keys,
	})
	return nil
}

// CreatedAssessment is the outcome of CreateAssessment. IsDemo marks a
// client-only synthetic assessment that never syncs remotely.
type CreatedAssessment struct {
	AssessmentID string
	JobID        string
	IsDemo       bool
}

// CreateAssessment registers the current session with the assessment service.
// Unauthenticated callers, and any remote failure, fall back to a synthetic
// demo assessment stored locally only.
func (m *Manager) CreateAssessment(ctx context.Context, jobID, propertyID string) (CreatedAssessment, error) {
	data, _ := m.CurrentData(ctx)

	tracer := m.log.WithContext(ctx).Operation("create_assessment").
		WithString("user_id", data.UserID).
		WithString("job_id", jobID).
		Build()

	if !data.IsDemo && m.remote.IsAuthenticated(ctx) {
		form := assessmentForm(data)
		if jobID != "" {
			form.JobID = &jobID
		}
		if propertyID != "" {
			form.PropertyID = &propertyID
		}

		id, err := m.remote.CreateAssessment(ctx, form)
		if err == nil {
			if err := m.storeAssessmentRefs(ctx, id, jobID, propertyID); err != nil {
				return CreatedAssessment{}, err
			}
			tracer.Success().WithString("assessment_id", id).Log()
			m.publish(ctx, events.NotificationKind, events.NotificationEvent{
				Level:   "success",
				Message: "assessment created",
			})
			return CreatedAssessment{AssessmentID: id, JobID: jobID, IsDemo: false}, nil
		}
		tracer.Error(err).Log()
		metrics.IncRemoteSyncFailure()
	}

	id := session.DemoAssessmentPrefix + uuid.NewString()
	if err := m.storeAssessmentRefs(ctx, id, jobID, propertyID); err != nil {
		return CreatedAssessment{}, err
	}
	tracer.Success().WithString("assessment_id", id).WithBool("demo", true).Log()
	return CreatedAssessment{AssessmentID: id, JobID: jobID, IsDemo: true}, nil
}

func (m *Manager) storeAssessmentRefs(ctx context.Context, assessmentID, jobID, propertyID string) error {
	update := session.Update{AssessmentID: &assessmentID}
	if jobID != "" {
		update.JobID = &jobID
	}
	if propertyID != "" {
		update.PropertyID = &propertyID
	}

	res := m.flush(ctx, update)
	if res.Status == SaveStatusBusy {
		// piggyback on the debounce queue instead of failing the caller
		m.schedule(update, m.debounce)
		return nil
	}
	return res.Err
}

// CompleteAndStartFresh archives a session holding meaningful content through
// the job manager, then clears everything. An empty session just clears.
func (m *Manager) CompleteAndStartFresh(ctx context.Context) error {
	data, _ := m.CurrentData(ctx)
	if data.HasMeaningfulContent() && m.jobs != nil {
		if err := m.jobs.ArchiveSession(ctx, data); err != nil {
			return err
		}
	}
	return m.ClearAllData(ctx)
}

// LoadExistingJob hydrates a prior job into the current session, persists it
// under the current identity and broadcasts a data-refreshed signal.
func (m *Manager) LoadExistingJob(ctx context.Context, jobID string) (*session.Data, error) {
	if m.jobs == nil {
		return nil, errors.New("no job manager attached")
	}

	hydrated, err := m.jobs.HydrateSession(ctx, jobID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	userID, deg := m.resolveIdentity(ctx)
	hydrated.UserID = userID
	hydrated.IsDemo = userID == session.DemoUserID
	hydrated.JobID = jobID
	now := m.clock.Now()
	if now.After(hydrated.LastUpdated) {
		hydrated.LastUpdated = now
	}

	raw, err := json.Marshal(hydrated)
	if err != nil {
		return nil, err
	}
	if err := m.kv.Put(ctx, primaryKey(userID), raw); err != nil {
		return nil, err
	}
	if err := m.kv.Put(ctx, backupKey(userID), raw); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = hydrated
	m.degradation = deg
	m.lastSaved = now
	m.mu.Unlock()

	m.publish(ctx, events.DataRefreshedKind, events.DataRefreshedEvent{
		JobID:   jobID,
		Session: hydrated,
	})
	return hydrated, nil
}

// LastSaved reports when the last successful flush completed.
func (m *Manager) LastSaved() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSaved
}

func (m *Manager) publish(ctx context.Context, kind string, payload any) {
	if m.events == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := m.events.Write(ctx, kind, bytes.NewReader(raw)); err != nil {
		m.log.WithContext(ctx).Operation("publish_event").WithString("kind", kind).Build().Error(err).Log()
	}
}
