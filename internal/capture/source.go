// Package capture runs continuous recognition loops against camera frame
// sources.
package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FrameSource delivers camera frames one at a time.
type FrameSource interface {
	// Grab returns the next frame as encoded image bytes.
	Grab(ctx context.Context) ([]byte, error)
	// Close releases the source. Grab must not be called afterwards.
	Close() error
}

// SnapshotSource polls an HTTP endpoint that returns one still image per
// request, the common interface of IP cameras.
type SnapshotSource struct {
	url    string
	client *http.Client
}

// NewSnapshotSource creates a source for a camera snapshot URL.
func NewSnapshotSource(url string) *SnapshotSource {
	return &SnapshotSource{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Grab fetches one frame from the snapshot endpoint.
func (s *SnapshotSource) Grab(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	frame, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading frame: %w", err)
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("camera returned an empty frame")
	}
	return frame, nil
}

// Close is a no-op; the HTTP client holds no per-source resources.
func (s *SnapshotSource) Close() error {
	return nil
}

var _ FrameSource = (*SnapshotSource)(nil)
