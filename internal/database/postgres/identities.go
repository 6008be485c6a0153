package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/pgvector/pgvector-go"
)

// CreateIdentity inserts a new identity row and returns its id.
func (r *Repository) CreateIdentity(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO identities (name) VALUES ($1) RETURNING id", name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting identity: %w", err)
	}
	return id, nil
}

// SaveDescriptor attaches a face descriptor to an existing identity. The
// descriptor goes into an untyped pgvector column so the store never pins a
// model dimensionality.
func (r *Repository) SaveDescriptor(ctx context.Context, identityID int64, descriptor []float32) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO descriptors (identity_id, descriptor, dim)
		VALUES ($1, $2, $3)
	`, identityID, pgvector.NewVector(descriptor), len(descriptor))
	if err != nil {
		return fmt.Errorf("inserting descriptor for identity %d: %w", identityID, err)
	}
	return nil
}

// LoadAll returns every enrolled (identity, descriptor) pair in insertion
// order. Identity rows without a descriptor (orphans from a failed
// enrollment) are not returned.
func (r *Repository) LoadAll(ctx context.Context) ([]database.EnrolledFace, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.name, d.descriptor, d.dim, d.created_at
		FROM identities i
		JOIN descriptors d ON d.identity_id = i.id
		ORDER BY d.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying enrolled faces: %w", err)
	}
	defer rows.Close()

	var faces []database.EnrolledFace
	for rows.Next() {
		var face database.EnrolledFace
		var vec pgvector.Vector
		if err := rows.Scan(&face.IdentityID, &face.Name, &vec, &face.Dim, &face.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning enrolled face: %w", err)
		}
		face.Descriptor = vec.Slice()
		faces = append(faces, face)
	}
	return faces, rows.Err()
}

// CountIdentities returns the number of identity rows.
func (r *Repository) CountIdentities(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM identities").Scan(&count)
	return count, err
}

// FindIdentitiesByName returns identities whose normalized display name
// matches the given name. Normalization happens in Go so that "jan-novak"
// matches "Jan Novák" regardless of collation.
func (r *Repository) FindIdentitiesByName(ctx context.Context, name string) ([]database.Identity, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, created_at FROM identities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying identities: %w", err)
	}
	defer rows.Close()

	want := database.NormalizeName(name)
	var identities []database.Identity
	for rows.Next() {
		var ident database.Identity
		if err := rows.Scan(&ident.ID, &ident.Name, &ident.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning identity: %w", err)
		}
		if database.NormalizeName(ident.Name) == want {
			identities = append(identities, ident)
		}
	}
	return identities, rows.Err()
}
