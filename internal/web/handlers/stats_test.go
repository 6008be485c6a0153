package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/gallery"
)

func TestStats(t *testing.T) {
	te := newEngine(&fakeDetector{})

	// Two enrolled faces plus one orphaned identity row.
	for _, name := range []string{"Alice", "Bob"} {
		id, err := te.enrollments.CreateIdentity(context.Background(), name)
		if err != nil {
			t.Fatal(err)
		}
		if err := te.enrollments.SaveDescriptor(context.Background(), id, []float32{1, 2, 3}); err != nil {
			t.Fatal(err)
		}
		te.engine.Gallery().Append(gallery.Entry{IdentityID: id, Name: name, Descriptor: []float32{1, 2, 3}})
	}
	if _, err := te.enrollments.CreateIdentity(context.Background(), "Ghost"); err != nil {
		t.Fatal(err)
	}
	if err := te.attendance.Record(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	handler := NewStatsHandler(te.engine, te.enrollments, te.attendance, "buffalo_l")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	handler.Get(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp StatsResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Identities != 3 {
		t.Errorf("expected 3 identities, got %d", resp.Identities)
	}
	if resp.EnrolledFaces != 2 {
		t.Errorf("expected 2 enrolled faces, got %d", resp.EnrolledFaces)
	}
	if resp.DescriptorDim != 3 {
		t.Errorf("expected dim 3, got %d", resp.DescriptorDim)
	}
	if resp.AttendanceRecords != 1 {
		t.Errorf("expected 1 attendance record, got %d", resp.AttendanceRecords)
	}
	if resp.Model != "buffalo_l" {
		t.Errorf("expected model 'buffalo_l', got '%s'", resp.Model)
	}
	if resp.Tolerance != 0.6 {
		t.Errorf("expected tolerance 0.6, got %v", resp.Tolerance)
	}
}
