package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/annotate"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

// RecognizeHandler handles recognition requests over HTTP.
type RecognizeHandler struct {
	engine *recognizer.Engine
}

// NewRecognizeHandler creates a new recognize handler.
func NewRecognizeHandler(engine *recognizer.Engine) *RecognizeHandler {
	return &RecognizeHandler{engine: engine}
}

// RecognizeResponse is the JSON shape for a recognition request.
type RecognizeResponse struct {
	FacesCount int                      `json:"faces_count"`
	Results    []recognizer.Recognition `json:"results"`
}

// Recognize matches every face in the uploaded image against the gallery.
// With ?annotate=1 the response is the input image re-encoded as JPEG with
// boxes and labels drawn in, instead of JSON.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	data := readImageUpload(w, r)
	if data == nil {
		return
	}

	results, err := h.engine.Recognize(r.Context(), data)
	if err != nil {
		respondError(w, http.StatusBadGateway, "face detection failed")
		return
	}

	if r.URL.Query().Get("annotate") == "1" {
		annotated, err := annotate.Render(data, results)
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to annotate image")
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusOK)
		w.Write(annotated)
		return
	}

	respondJSON(w, http.StatusOK, RecognizeResponse{
		FacesCount: len(results),
		Results:    results,
	})
}
