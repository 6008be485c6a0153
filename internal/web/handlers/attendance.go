package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// AttendanceHandler serves the attendance log.
type AttendanceHandler struct {
	store database.AttendanceStore
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(store database.AttendanceStore) *AttendanceHandler {
	return &AttendanceHandler{store: store}
}

// AttendanceResponse is the JSON shape for the attendance listing.
type AttendanceResponse struct {
	Count   int                        `json:"count"`
	Entries []database.AttendanceEntry `json:"entries"`
}

// List returns attendance rows, newest first. ?limit=N caps the result.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	if entries == nil {
		entries = []database.AttendanceEntry{}
	}

	respondJSON(w, http.StatusOK, AttendanceResponse{
		Count:   len(entries),
		Entries: entries,
	})
}

// Export streams the full attendance log as CSV.
func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.List(r.Context(), 0)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load attendance")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "identity_id", "name", "recorded_at"})
	for _, e := range entries {
		cw.Write([]string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.IdentityID, 10),
			e.Name,
			e.RecordedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("writing attendance CSV: %v", err)
	}
}
