// Package recognizer implements face enrollment and recognition on top of
// the extractor, the in-memory gallery and the persistent stores.
package recognizer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"

	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/extractor"
	"github.com/kozaktomas/face-attendance/internal/gallery"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// UnknownLabel is the name reported for faces that match no enrolled entry.
const UnknownLabel = "unknown"

// Detector finds faces in an image and computes their descriptors.
type Detector interface {
	Detect(ctx context.Context, imageData []byte) (*extractor.DetectResult, error)
}

// Recognition is the outcome for one detected face.
type Recognition struct {
	FaceIndex  int       `json:"face_index"`
	Name       string    `json:"name"`
	IdentityID int64     `json:"identity_id,omitempty"`
	Distance   float64   `json:"distance"`
	Matched    bool      `json:"matched"`
	BBox       []float64 `json:"bbox,omitempty"`
}

// Enrollment is the outcome of a successful Register call.
type Enrollment struct {
	IdentityID int64  `json:"identity_id"`
	Name       string `json:"name"`
	Dim        int    `json:"dim"`
}

// Engine ties the detector, the gallery and the stores together.
type Engine struct {
	detector    Detector
	gallery     *gallery.Gallery
	enrollments database.EnrollmentStore
	attendance  database.AttendanceStore
	tolerance   float64
}

// New creates an engine. Tolerance is the maximum Euclidean distance for a
// descriptor to count as a match.
func New(detector Detector, g *gallery.Gallery, enrollments database.EnrollmentStore, attendance database.AttendanceStore, tolerance float64) *Engine {
	return &Engine{
		detector:    detector,
		gallery:     g,
		enrollments: enrollments,
		attendance:  attendance,
		tolerance:   tolerance,
	}
}

// Gallery exposes the engine's gallery for stats reporting.
func (e *Engine) Gallery() *gallery.Gallery {
	return e.gallery
}

// Tolerance returns the configured match tolerance.
func (e *Engine) Tolerance() float64 {
	return e.tolerance
}

// LoadGallery replaces the in-memory gallery with the persisted enrollment
// set. Safe to call again at runtime to pick up external changes.
func (e *Engine) LoadGallery(ctx context.Context) (int, error) {
	faces, err := e.enrollments.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading enrolled faces: %w", err)
	}

	entries := make([]gallery.Entry, 0, len(faces))
	for _, f := range faces {
		entries = append(entries, gallery.Entry{
			IdentityID: f.IdentityID,
			Name:       f.Name,
			Descriptor: f.Descriptor,
		})
	}
	e.gallery.Replace(entries)
	return len(entries), nil
}

// Register enrolls one person from an image containing exactly one face.
//
// Writes happen store first, memory second: the identity row, then the
// descriptor row, then the gallery append. A failure between the two store
// writes leaves an identity row without a descriptor; that row never reaches
// the gallery and is left in place.
func (e *Engine) Register(ctx context.Context, name string, imageData []byte) (*Enrollment, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(imageData)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	result, err := e.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("detecting faces: %w", err)
	}

	switch {
	case len(result.Faces) == 0:
		return nil, ErrNoFaceDetected
	case len(result.Faces) > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleFacesDetected, len(result.Faces))
	}

	descriptor := result.Faces[0].Descriptor
	if dim := e.gallery.Dim(); dim != 0 && dim != len(descriptor) {
		return nil, fmt.Errorf("%w: gallery has %d, descriptor has %d", ErrDimensionMismatch, dim, len(descriptor))
	}

	id, err := e.enrollments.CreateIdentity(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: creating identity: %v", ErrPersistence, err)
	}

	if err := e.enrollments.SaveDescriptor(ctx, id, descriptor); err != nil {
		// The identity row stays behind without a descriptor. It never
		// reaches the gallery, so recognition is unaffected.
		return nil, fmt.Errorf("%w: saving descriptor for identity %d: %v", ErrPersistence, id, err)
	}

	e.gallery.Append(gallery.Entry{
		IdentityID: id,
		Name:       name,
		Descriptor: descriptor,
	})

	return &Enrollment{IdentityID: id, Name: name, Dim: len(descriptor)}, nil
}

// Recognize matches every face in the image against the gallery using the
// engine's tolerance. Each matched face gets one attendance row.
func (e *Engine) Recognize(ctx context.Context, imageData []byte) ([]Recognition, error) {
	return e.RecognizeWithTolerance(ctx, imageData, e.tolerance)
}

// RecognizeWithTolerance is Recognize with a per-call tolerance, used by
// camera watchers that override the global value.
//
// Attendance write failures are logged and swallowed: recognition results
// must reach the caller even when the log write does not.
func (e *Engine) RecognizeWithTolerance(ctx context.Context, imageData []byte, tolerance float64) ([]Recognition, error) {
	result, err := e.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("detecting faces: %w", err)
	}

	recognitions := make([]Recognition, 0, len(result.Faces))
	for _, face := range result.Faces {
		rec := Recognition{
			FaceIndex: face.FaceIndex,
			Name:      UnknownLabel,
			BBox:      face.BBox,
		}

		if m, ok := e.gallery.BestMatch(face.Descriptor, tolerance); ok {
			rec.Name = m.Entry.Name
			rec.IdentityID = m.Entry.IdentityID
			rec.Distance = m.Distance
			rec.Matched = true

			if err := e.attendance.Record(ctx, m.Entry.IdentityID); err != nil {
				log.Printf("attendance write failed for identity %d (%s): %v", m.Entry.IdentityID, m.Entry.Name, err)
			}
		}

		recognitions = append(recognitions, rec)
	}

	return recognitions, nil
}
