package database

import (
	"context"
)

// EnrollmentStore persists identities and their face descriptors.
//
// CreateIdentity and SaveDescriptor are deliberately two separate writes: a
// descriptor-write failure leaves an identity row without a descriptor. That
// row is invisible to LoadAll (which joins on descriptors) and is accepted as
// a known gap rather than silently retried or rolled back.
type EnrollmentStore interface {
	// CreateIdentity inserts a new identity row and returns its id.
	CreateIdentity(ctx context.Context, name string) (int64, error)
	// SaveDescriptor attaches a face descriptor to an existing identity.
	SaveDescriptor(ctx context.Context, identityID int64, descriptor []float32) error
	// LoadAll returns every enrolled (identity, descriptor) pair, in insertion order.
	LoadAll(ctx context.Context) ([]EnrolledFace, error)
	// CountIdentities returns the number of identity rows.
	CountIdentities(ctx context.Context) (int, error)
	// FindIdentitiesByName returns identities whose normalized name matches.
	FindIdentitiesByName(ctx context.Context, name string) ([]Identity, error)
}

// AttendanceStore appends and reads the attendance log. Rows are never
// mutated or deleted.
type AttendanceStore interface {
	// Record appends one attendance row for the identity; the timestamp is
	// assigned by the store.
	Record(ctx context.Context, identityID int64) error
	// List returns attendance rows joined with identity names, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]AttendanceEntry, error)
	// Count returns the total number of attendance rows.
	Count(ctx context.Context) (int, error)
}
