package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

// StatsHandler reports enrollment and attendance statistics.
type StatsHandler struct {
	engine      *recognizer.Engine
	enrollments database.EnrollmentStore
	attendance  database.AttendanceStore
	model       string
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(engine *recognizer.Engine, enrollments database.EnrollmentStore, attendance database.AttendanceStore, model string) *StatsHandler {
	return &StatsHandler{
		engine:      engine,
		enrollments: enrollments,
		attendance:  attendance,
		model:       model,
	}
}

// StatsResponse represents the statistics response.
type StatsResponse struct {
	Identities        int     `json:"identities"`
	EnrolledFaces     int     `json:"enrolled_faces"`
	DescriptorDim     int     `json:"descriptor_dim"`
	AttendanceRecords int     `json:"attendance_records"`
	Tolerance         float64 `json:"tolerance"`
	Model             string  `json:"model"`
}

// Get returns current statistics. Identity rows without descriptors count
// toward identities but not toward enrolled faces.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identities, err := h.enrollments.CountIdentities(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count identities")
		return
	}

	attendanceCount, err := h.attendance.Count(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to count attendance")
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{
		Identities:        identities,
		EnrolledFaces:     h.engine.Gallery().Count(),
		DescriptorDim:     h.engine.Gallery().Dim(),
		AttendanceRecords: attendanceCount,
		Tolerance:         h.engine.Tolerance(),
		Model:             h.model,
	})
}
