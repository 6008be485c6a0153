package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/config"
)

// cameraServer serves a static JPEG like an IP camera snapshot endpoint.
func cameraServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.Gray{Y: 100})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode frame: %v", err)
	}
	frame := buf.Bytes()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(frame)
	}))
}

func newCaptureHandler(t *testing.T, cameraURL string) (*CaptureHandler, *capture.Manager) {
	t.Helper()
	te := newEngine(&fakeDetector{})
	manager := capture.NewManager(te.engine)
	cfg := &config.Config{
		Cameras: []config.CameraConfig{
			{Name: "lobby", URL: cameraURL, IntervalMS: 10},
		},
	}
	return NewCaptureHandler(cfg, manager), manager
}

func startSession(t *testing.T, handler *CaptureHandler, camera string) string {
	t.Helper()
	body, _ := json.Marshal(startCaptureRequest{Camera: camera})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Start(recorder, req)

	assertStatusCode(t, recorder, http.StatusAccepted)
	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["id"] == "" {
		t.Fatal("expected a session id")
	}
	return resp["id"]
}

func TestCapture_StartStatusStop(t *testing.T) {
	server := cameraServer(t)
	defer server.Close()

	handler, _ := newCaptureHandler(t, server.URL)
	id := startSession(t, handler, "lobby")

	// Status
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/capture/"+id, nil),
		map[string]string{"id": id})
	recorder := httptest.NewRecorder()
	handler.Status(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	var status capture.SessionStatus
	parseJSONResponse(t, recorder, &status)
	if status.Camera != "lobby" {
		t.Errorf("expected camera 'lobby', got '%s'", status.Camera)
	}

	// Stop
	req = requestWithChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/capture/"+id, nil),
		map[string]string{"id": id})
	recorder = httptest.NewRecorder()
	handler.Stop(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	parseJSONResponse(t, recorder, &status)
	if status.Stats.State != "stopped" {
		t.Errorf("expected state 'stopped', got '%s'", status.Stats.State)
	}
}

func TestCapture_UnknownCamera(t *testing.T) {
	handler, _ := newCaptureHandler(t, "http://localhost:1")

	body, _ := json.Marshal(startCaptureRequest{Camera: "roof"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Start(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, "unknown camera")
}

func TestCapture_MissingCameraName(t *testing.T) {
	handler, _ := newCaptureHandler(t, "http://localhost:1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/capture", bytes.NewReader([]byte(`{}`)))
	recorder := httptest.NewRecorder()
	handler.Start(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
}

func TestCapture_StatusUnknownSession(t *testing.T) {
	handler, _ := newCaptureHandler(t, "http://localhost:1")

	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/capture/nope", nil),
		map[string]string{"id": "nope"})
	recorder := httptest.NewRecorder()
	handler.Status(recorder, req)

	assertStatusCode(t, recorder, http.StatusNotFound)
}

func TestCapture_List(t *testing.T) {
	server := cameraServer(t)
	defer server.Close()

	handler, manager := newCaptureHandler(t, server.URL)
	id := startSession(t, handler, "lobby")
	defer manager.Stop(id)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/capture", nil)
	recorder := httptest.NewRecorder()
	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	var sessions []capture.SessionStatus
	parseJSONResponse(t, recorder, &sessions)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
}
