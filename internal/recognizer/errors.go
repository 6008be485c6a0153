package recognizer

import "errors"

// Sentinel errors for enrollment and recognition failures. Callers branch on
// these with errors.Is to map them onto exit codes or HTTP statuses.
var (
	// ErrNoFaceDetected means the extractor found no face in the image.
	ErrNoFaceDetected = errors.New("no face detected in image")

	// ErrMultipleFacesDetected means enrollment got an image with more than
	// one face. Enrollment requires exactly one.
	ErrMultipleFacesDetected = errors.New("multiple faces detected in image")

	// ErrInvalidImage means the payload could not be decoded as an image.
	ErrInvalidImage = errors.New("invalid image data")

	// ErrPersistence wraps a store write failure during enrollment.
	ErrPersistence = errors.New("persistence failure")

	// ErrDimensionMismatch means a descriptor's dimensionality differs from
	// the gallery's.
	ErrDimensionMismatch = errors.New("descriptor dimension mismatch")
)
