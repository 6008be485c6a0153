package database

import (
	"time"
)

// Identity represents an enrolled person. The id is assigned by the database
// on enrollment and is the only stable handle used across components.
type Identity struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// EnrolledFace is one (identity, descriptor) pair as persisted in the store.
type EnrolledFace struct {
	IdentityID int64
	Name       string
	Descriptor []float32
	Dim        int
	CreatedAt  time.Time
}

// AttendanceEntry is one append-only attendance log row.
type AttendanceEntry struct {
	ID         int64
	IdentityID int64
	Name       string
	RecordedAt time.Time
}
