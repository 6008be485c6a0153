package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

// RegisterHandler handles face enrollment over HTTP.
type RegisterHandler struct {
	engine *recognizer.Engine
}

// NewRegisterHandler creates a new register handler.
func NewRegisterHandler(engine *recognizer.Engine) *RegisterHandler {
	return &RegisterHandler{engine: engine}
}

// Register enrolls one person from a multipart upload with a "name" field
// and an "image" file containing exactly one face.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	data := readImageUpload(w, r)
	if data == nil {
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	enrollment, err := h.engine.Register(r.Context(), name, data)
	if err != nil {
		status, msg := enrollmentErrorStatus(err)
		respondError(w, status, msg)
		return
	}

	log.Printf("enrolled %s as identity %d", sanitizeForLog(name), enrollment.IdentityID)
	respondJSON(w, http.StatusCreated, enrollment)
}

// enrollmentErrorStatus maps enrollment failures onto HTTP statuses. Face
// detection outcomes are client errors; store failures are server errors.
func enrollmentErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, recognizer.ErrInvalidImage):
		return http.StatusBadRequest, recognizer.ErrInvalidImage.Error()
	case errors.Is(err, recognizer.ErrNoFaceDetected):
		return http.StatusUnprocessableEntity, recognizer.ErrNoFaceDetected.Error()
	case errors.Is(err, recognizer.ErrMultipleFacesDetected):
		return http.StatusUnprocessableEntity, recognizer.ErrMultipleFacesDetected.Error()
	case errors.Is(err, recognizer.ErrDimensionMismatch):
		return http.StatusUnprocessableEntity, recognizer.ErrDimensionMismatch.Error()
	case errors.Is(err, recognizer.ErrPersistence):
		return http.StatusInternalServerError, "failed to persist enrollment"
	default:
		return http.StatusBadGateway, "face detection failed"
	}
}
