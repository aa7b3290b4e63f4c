package model

import "time"

// KVEntry is one namespaced key-value row. Session blobs, their backup
// mirrors and the file-index projection all live here, one JSON value per
// well-known key.
type KVEntry struct {
	Key       string `gorm:"primaryKey;column:key;type:VARCHAR(512)"`
	Value     []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// FileIndexEntry is one row of the lightweight file-listing projection kept
// under the index key. Non-authoritative; rebuilt on every save.
type FileIndexEntry struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	LastModified time.Time `json:"lastModified"`
	Size         int       `json:"size"`
	Status       string    `json:"status"`
}
