package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/config"
)

const defaultCaptureInterval = time.Second

// CaptureHandler manages camera capture sessions over the API.
type CaptureHandler struct {
	config  *config.Config
	manager *capture.Manager
}

// NewCaptureHandler creates a new capture handler.
func NewCaptureHandler(cfg *config.Config, manager *capture.Manager) *CaptureHandler {
	return &CaptureHandler{config: cfg, manager: manager}
}

type startCaptureRequest struct {
	Camera string `json:"camera"`
}

// Start launches a capture session against a configured camera.
func (h *CaptureHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startCaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Camera == "" {
		respondError(w, http.StatusBadRequest, "camera is required")
		return
	}

	cam := h.config.Camera(req.Camera)
	if cam == nil {
		respondError(w, http.StatusNotFound, "unknown camera")
		return
	}

	interval := defaultCaptureInterval
	if cam.IntervalMS > 0 {
		interval = time.Duration(cam.IntervalMS) * time.Millisecond
	}

	source := capture.NewSnapshotSource(cam.URL)
	id := h.manager.Start(cam.Name, source, interval, cam.Tolerance)

	log.Printf("started capture session %s for camera %s", id, sanitizeForLog(cam.Name))
	respondJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

// List returns every capture session, running or stopped.
func (h *CaptureHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.List())
}

// Status returns the status of one capture session.
func (h *CaptureHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status, ok := h.manager.Status(id)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown capture session")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

// Stop requests a cooperative stop and waits for the session to finish its
// frame in flight.
func (h *CaptureHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Stop(id); err != nil {
		respondError(w, http.StatusNotFound, "unknown capture session")
		return
	}

	status, _ := h.manager.Status(id)
	respondJSON(w, http.StatusOK, status)
}
