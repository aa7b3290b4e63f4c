package workspace

import (
	"fmt"
	"strings"
)

const (
	primaryKeyPrefix = "sustaino_unified_data_"
	backupKeySuffix  = "_backup"
	archiveKeyPrefix = "sustaino_archived_job_"

	// FileIndexKey holds the lightweight file-listing projection updated on
	// every save. Non-authoritative.
	FileIndexKey = "sustaino_file_index"

	// IndexEntryName is the single row of the file index this workspace owns.
	IndexEntryName = "Property Assessment"
)

// legacyKeys are pre-unification storage keys. They are only ever deleted.
var legacyKeys = []string{
	"sustaino_report_data",
	"sustaino_address_data",
	"sustaino_assessment_progress",
}

func primaryKey(userID string) string {
	return primaryKeyPrefix + userID
}

func backupKey(userID string) string {
	return primaryKey(userID) + backupKeySuffix
}

func archiveKey(jobID string) string {
	return archiveKeyPrefix + jobID
}

func legacyKeysFor(userID string) []string {
	keys := make([]string, 0, len(legacyKeys)+1)
	keys = append(keys, legacyKeys...)
	keys = append(keys, "sustaino_user_tracking_"+userID)
	return keys
}

// JobFileName derives the remote job store's record name from the job number
// and the property address.
func JobFileName(jobNumber int, address string) string {
	return fmt.Sprintf("Job_%d_%s", jobNumber, sanitizeAddress(address))
}

// sanitizeAddress keeps letters and digits and folds everything else into
// single underscores.
func sanitizeAddress(address string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range address {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
