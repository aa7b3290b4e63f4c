package workspace

import "github.com/hammad983ae/sustaino-sub007/internal/session"

// SaveStatus classifies the outcome of a save request.
type SaveStatus string

const (
	// SaveStatusSaved means the flush ran and the session was persisted.
	SaveStatusSaved SaveStatus = "saved"
	// SaveStatusScheduled means the update was coalesced into the pending
	// debounce slot; the physical write happens when the window closes.
	SaveStatusScheduled SaveStatus = "scheduled"
	// SaveStatusBusy means a flush was already in flight and the request was
	// rejected rather than queued.
	SaveStatusBusy SaveStatus = "busy"
	// SaveStatusFailed means the flush ran and local persistence failed.
	SaveStatusFailed SaveStatus = "failed"
)

// SaveResult is returned by every save-path operation. Err is set only for
// SaveStatusFailed; Data is the merged session for saved outcomes.
type SaveResult struct {
	Status SaveStatus
	Data   *session.Data
	Err    error
}

func (r SaveResult) Success() bool {
	return r.Status == SaveStatusSaved || r.Status == SaveStatusScheduled
}

// Degradation tags why the workspace is running below full capability.
// Sessions stay usable in every degraded state; the tag exists so callers can
// tell demo-by-choice apart from demo-by-failure.
type Degradation string

const (
	DegradationNone Degradation = ""
	// DegradationAuth means remote identity resolution failed and the
	// workspace fell back to the demo identity.
	DegradationAuth Degradation = "auth"
	// DegradationStorage means the persisted session blob was unreadable and
	// a fresh empty session replaced it.
	DegradationStorage Degradation = "storage"
)
