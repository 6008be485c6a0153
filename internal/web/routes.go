package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/database"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
	"github.com/kozaktomas/face-attendance/internal/web/handlers"
)

func (s *Server) setupRoutes(engine *recognizer.Engine, enrollments database.EnrollmentStore, attendance database.AttendanceStore) {
	registerHandler := handlers.NewRegisterHandler(engine)
	recognizeHandler := handlers.NewRecognizeHandler(engine)
	attendanceHandler := handlers.NewAttendanceHandler(attendance)
	captureHandler := handlers.NewCaptureHandler(s.config, s.manager)
	statsHandler := handlers.NewStatsHandler(engine, enrollments, attendance, s.config.Extractor.Model)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Enrollment and recognition
		r.Post("/register", registerHandler.Register)
		r.Post("/recognize", recognizeHandler.Recognize)

		// Attendance log
		r.Get("/attendance", attendanceHandler.List)
		r.Get("/attendance/export", attendanceHandler.Export)

		// Camera capture sessions
		r.Post("/capture", captureHandler.Start)
		r.Get("/capture", captureHandler.List)
		r.Get("/capture/{id}", captureHandler.Status)
		r.Delete("/capture/{id}", captureHandler.Stop)

		// Stats
		r.Get("/stats", statsHandler.Get)
	})
}
