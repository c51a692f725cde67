package entity

import "time"

// StoredObject is one blob as reported by a prefix listing.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}
