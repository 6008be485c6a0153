package extractor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed/face" {
			t.Errorf("Expected path /embed/face, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Missing file part: %v", err)
		}
		defer file.Close()
		if got := header.Header.Get("Content-Type"); got != "image/jpeg" {
			t.Errorf("Expected Content-Type image/jpeg, got %s", got)
		}

		resp := DetectResult{
			FacesCount: 1,
			Faces: []Face{
				{FaceIndex: 0, Dim: 4, Descriptor: []float32{0.1, 0.2, 0.3, 0.4}, BBox: []float64{10, 20, 110, 140}, DetScore: 0.97},
			},
			Model: "buffalo_l",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "buffalo_l")

	// Minimal JPEG magic bytes so MIME detection kicks in.
	imageData := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)

	result, err := client.Detect(context.Background(), imageData)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.FacesCount != 1 {
		t.Errorf("Expected 1 face, got %d", result.FacesCount)
	}
	if len(result.Faces) != 1 {
		t.Fatalf("Expected 1 face entry, got %d", len(result.Faces))
	}
	if len(result.Faces[0].Descriptor) != 4 {
		t.Errorf("Expected 4-dim descriptor, got %d", len(result.Faces[0].Descriptor))
	}
	if result.Faces[0].DetScore != 0.97 {
		t.Errorf("Expected det score 0.97, got %v", result.Faces[0].DetScore)
	}
}

func TestDetect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Detect(context.Background(), []byte{0xFF, 0xD8, 0xFF})
	if err == nil {
		t.Fatal("Expected error on server failure")
	}
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}, "image/jpeg"},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"},
		{"gif", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0, 0}, "image/gif"},
		{"too short", []byte{0xFF}, "application/octet-stream"},
		{"unknown", make([]byte, 16), "application/octet-stream"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectMIMEType(tc.data); got != tc.want {
				t.Errorf("detectMIMEType() = %s; want %s", got, tc.want)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "")
	if c.baseURL != defaultBaseURL {
		t.Errorf("Expected default base URL, got %s", c.baseURL)
	}
	if c.Model() != defaultModel {
		t.Errorf("Expected default model, got %s", c.Model())
	}

	c = NewClient("http://example.com/", "clip")
	if c.baseURL != "http://example.com" {
		t.Errorf("Expected trailing slash trimmed, got %s", c.baseURL)
	}
}
