package session

import (
	"time"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
)

// Update is a partial session change. Nil fields are left untouched; the
// three structured maps are merged key-by-key so a partial update to one
// section never erases its siblings.
type Update struct {
	ReportData         map[string]map[string]any
	AddressData        *api.Address
	AssessmentProgress *api.AssessmentProgress
	ComponentData      map[string]ComponentEntry
	AssessmentID       *string
	JobID              *string
	PropertyID         *string
}

func (u Update) IsZero() bool {
	return u.ReportData == nil &&
		u.AddressData == nil &&
		u.AssessmentProgress == nil &&
		u.ComponentData == nil &&
		u.AssessmentID == nil &&
		u.JobID == nil &&
		u.PropertyID == nil
}

// Apply merges the update into d. A significant address change (the composed
// street address differs from the stored one) atomically resets report and
// component data; progress and the address itself survive the reset.
// LastUpdated is stamped monotonically: a clock running behind the stored
// timestamp never moves it backwards.
func Apply(d *Data, u Update, now time.Time) {
	if u.AddressData != nil {
		merged := MergeAddress(d.AddressData, *u.AddressData)
		if IsSignificantChange(d.AddressData, merged) {
			d.ReportData = map[string]map[string]any{}
			d.ComponentData = map[string]ComponentEntry{}
		}
		d.AddressData = merged
		if merged.PropertyID != "" {
			d.PropertyID = merged.PropertyID
		}
	}

	if u.ReportData != nil {
		if d.ReportData == nil {
			d.ReportData = map[string]map[string]any{}
		}
		for section, content := range u.ReportData {
			d.ReportData[section] = content
		}
	}

	if u.ComponentData != nil {
		if d.ComponentData == nil {
			d.ComponentData = map[string]ComponentEntry{}
		}
		for name, entry := range u.ComponentData {
			d.ComponentData[name] = entry
		}
	}

	if u.AssessmentProgress != nil {
		d.AssessmentProgress = *u.AssessmentProgress
	}
	if u.AssessmentID != nil {
		d.AssessmentID = *u.AssessmentID
	}
	if u.JobID != nil {
		d.JobID = *u.JobID
	}
	if u.PropertyID != nil {
		d.PropertyID = *u.PropertyID
	}

	if now.After(d.LastUpdated) {
		d.LastUpdated = now
	}
}

// Coalesce folds next into prev, producing the update a single flush should
// apply. Section maps accumulate key-by-key; scalar fields take the latest
// non-nil value. Address updates are folded field-wise so a burst of partial
// address edits behaves like one combined edit.
func Coalesce(prev, next Update) Update {
	out := prev

	if next.ReportData != nil {
		if out.ReportData == nil {
			out.ReportData = map[string]map[string]any{}
		}
		for section, content := range next.ReportData {
			out.ReportData[section] = content
		}
	}
	if next.ComponentData != nil {
		if out.ComponentData == nil {
			out.ComponentData = map[string]ComponentEntry{}
		}
		for name, entry := range next.ComponentData {
			out.ComponentData[name] = entry
		}
	}
	if next.AddressData != nil {
		if out.AddressData == nil {
			addr := *next.AddressData
			out.AddressData = &addr
		} else {
			merged := MergeAddress(*out.AddressData, *next.AddressData)
			out.AddressData = &merged
		}
	}
	if next.AssessmentProgress != nil {
		out.AssessmentProgress = next.AssessmentProgress
	}
	if next.AssessmentID != nil {
		out.AssessmentID = next.AssessmentID
	}
	if next.JobID != nil {
		out.JobID = next.JobID
	}
	if next.PropertyID != nil {
		out.PropertyID = next.PropertyID
	}

	return out
}
