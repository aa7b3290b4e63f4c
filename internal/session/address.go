package session

import (
	"strings"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
)

// ComposedAddress builds the street address used for property change
// detection. Unit number is deliberately excluded: moving the assessment to
// a different unit of the same building is not a different property.
func ComposedAddress(a api.Address) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.StreetNumber, a.StreetName, a.StreetType} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// MergeAddress overlays the non-empty fields of src onto dst.
func MergeAddress(dst, src api.Address) api.Address {
	out := dst
	if src.UnitNumber != "" {
		out.UnitNumber = src.UnitNumber
	}
	if src.StreetNumber != "" {
		out.StreetNumber = src.StreetNumber
	}
	if src.StreetName != "" {
		out.StreetName = src.StreetName
	}
	if src.StreetType != "" {
		out.StreetType = src.StreetType
	}
	if src.Suburb != "" {
		out.Suburb = src.Suburb
	}
	if src.State != "" {
		out.State = src.State
	}
	if src.Postcode != "" {
		out.Postcode = src.Postcode
	}
	if src.Country != "" {
		out.Country = src.Country
	}
	if src.PropertyID != "" {
		out.PropertyID = src.PropertyID
	}
	return out
}

// IsSignificantChange reports whether moving from old to new switches the
// property under assessment. The first ever address is not a change.
func IsSignificantChange(old, new api.Address) bool {
	oldComposed := ComposedAddress(old)
	if oldComposed == "" {
		return false
	}
	return oldComposed != ComposedAddress(new)
}
