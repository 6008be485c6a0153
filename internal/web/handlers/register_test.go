package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/extractor"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
)

func oneFace(descriptor ...float32) []extractor.Face {
	return []extractor.Face{{FaceIndex: 0, Dim: len(descriptor), Descriptor: descriptor, DetScore: 0.9}}
}

func TestRegister_Success(t *testing.T) {
	te := newEngine(&fakeDetector{faces: oneFace(0.1, 0.2)})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusCreated)

	var enrollment recognizer.Enrollment
	parseJSONResponse(t, recorder, &enrollment)
	if enrollment.Name != "Alice" {
		t.Errorf("expected name 'Alice', got '%s'", enrollment.Name)
	}
	if enrollment.Dim != 2 {
		t.Errorf("expected dim 2, got %d", enrollment.Dim)
	}
	if te.engine.Gallery().Count() != 1 {
		t.Error("gallery should hold the new enrollment")
	}
}

func TestRegister_MissingName(t *testing.T) {
	te := newEngine(&fakeDetector{faces: oneFace(1)})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), nil)
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "name is required")
}

func TestRegister_MissingImage(t *testing.T) {
	te := newEngine(&fakeDetector{faces: oneFace(1)})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", nil, map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "image file is required")
}

func TestRegister_NoFace(t *testing.T) {
	te := newEngine(&fakeDetector{})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)
	assertJSONError(t, recorder, recognizer.ErrNoFaceDetected.Error())
}

func TestRegister_MultipleFaces(t *testing.T) {
	faces := append(oneFace(1, 0), oneFace(0, 1)...)
	faces[1].FaceIndex = 1
	te := newEngine(&fakeDetector{faces: faces})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusUnprocessableEntity)
	assertJSONError(t, recorder, recognizer.ErrMultipleFacesDetected.Error())
}

func TestRegister_InvalidImage(t *testing.T) {
	te := newEngine(&fakeDetector{faces: oneFace(1)})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", []byte("not an image"), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, recognizer.ErrInvalidImage.Error())
}

func TestRegister_PersistenceFailure(t *testing.T) {
	te := newEngine(&fakeDetector{faces: oneFace(1)})
	te.enrollments.CreateIdentityError = errors.New("db down")
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}

func TestRegister_DetectorUnavailable(t *testing.T) {
	te := newEngine(&fakeDetector{err: errors.New("connection refused")})
	handler := NewRegisterHandler(te.engine)

	req := multipartRequest(t, "/api/v1/register", encodePNG(t), map[string]string{"name": "Alice"})
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadGateway)
}
