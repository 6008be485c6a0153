// Package mock provides in-memory store implementations for tests.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// EnrollmentStore is an in-memory EnrollmentStore with error injection.
type EnrollmentStore struct {
	mu     sync.Mutex
	nextID int64

	Identities  []database.Identity
	Descriptors map[int64][]float32

	// Error injection for testing failure paths.
	CreateIdentityError error
	SaveDescriptorError error
	LoadAllError        error

	CreateIdentityCalls int
	SaveDescriptorCalls int
}

// NewEnrollmentStore creates an empty in-memory enrollment store.
func NewEnrollmentStore() *EnrollmentStore {
	return &EnrollmentStore{
		nextID:      1,
		Descriptors: make(map[int64][]float32),
	}
}

func (m *EnrollmentStore) CreateIdentity(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateIdentityCalls++
	if m.CreateIdentityError != nil {
		return 0, m.CreateIdentityError
	}

	id := m.nextID
	m.nextID++
	m.Identities = append(m.Identities, database.Identity{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
	})
	return id, nil
}

func (m *EnrollmentStore) SaveDescriptor(_ context.Context, identityID int64, descriptor []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveDescriptorCalls++
	if m.SaveDescriptorError != nil {
		return m.SaveDescriptorError
	}

	m.Descriptors[identityID] = append([]float32(nil), descriptor...)
	return nil
}

func (m *EnrollmentStore) LoadAll(_ context.Context) ([]database.EnrolledFace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadAllError != nil {
		return nil, m.LoadAllError
	}

	var faces []database.EnrolledFace
	for _, ident := range m.Identities {
		descriptor, ok := m.Descriptors[ident.ID]
		if !ok {
			continue // orphaned identity, no descriptor saved
		}
		faces = append(faces, database.EnrolledFace{
			IdentityID: ident.ID,
			Name:       ident.Name,
			Descriptor: descriptor,
			Dim:        len(descriptor),
			CreatedAt:  ident.CreatedAt,
		})
	}
	return faces, nil
}

func (m *EnrollmentStore) CountIdentities(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Identities), nil
}

func (m *EnrollmentStore) FindIdentitiesByName(_ context.Context, name string) ([]database.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := database.NormalizeName(name)
	var out []database.Identity
	for _, ident := range m.Identities {
		if database.NormalizeName(ident.Name) == want {
			out = append(out, ident)
		}
	}
	return out, nil
}

// AttendanceStore is an in-memory AttendanceStore with error injection.
type AttendanceStore struct {
	mu     sync.Mutex
	nextID int64

	Entries []database.AttendanceEntry

	// Names resolves identity ids to display names for List. Tests that only
	// assert on Record calls can leave it nil.
	Names map[int64]string

	RecordError error
	RecordCalls int
}

// NewAttendanceStore creates an empty in-memory attendance store.
func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{nextID: 1}
}

func (m *AttendanceStore) Record(_ context.Context, identityID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordCalls++
	if m.RecordError != nil {
		return m.RecordError
	}

	m.Entries = append(m.Entries, database.AttendanceEntry{
		ID:         m.nextID,
		IdentityID: identityID,
		Name:       m.Names[identityID],
		RecordedAt: time.Now(),
	})
	m.nextID++
	return nil
}

func (m *AttendanceStore) List(_ context.Context, limit int) ([]database.AttendanceEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Newest first, matching the SQL backends.
	out := make([]database.AttendanceEntry, 0, len(m.Entries))
	for i := len(m.Entries) - 1; i >= 0; i-- {
		out = append(out, m.Entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *AttendanceStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Entries), nil
}

// Verify interface compliance.
var (
	_ database.EnrollmentStore = (*EnrollmentStore)(nil)
	_ database.AttendanceStore = (*AttendanceStore)(nil)
)
