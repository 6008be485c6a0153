package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/extractor"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
	"github.com/kozaktomas/face-attendance/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the attendance web server. It exposes enrollment, recognition,
attendance and camera capture endpoints under /api/v1.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (string, int) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return host, port
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	detector := extractor.NewClient(cfg.Extractor.URL, cfg.Extractor.Model)
	engine := recognizer.New(detector, gallery.New(), st, st, cfg.Matcher.Tolerance)

	// The server starts even when the gallery load fails; recognition just
	// reports unknown until a reload succeeds.
	if n, err := engine.LoadGallery(context.Background()); err != nil {
		fmt.Printf("Warning: failed to load enrolled faces: %v\n", err)
		fmt.Println("Starting with an empty gallery")
	} else {
		fmt.Printf("Loaded %d enrolled faces\n", n)
	}
	if dim := engine.Gallery().Dim(); dim != 0 && cfg.Extractor.Dim != 0 && dim != cfg.Extractor.Dim {
		fmt.Printf("Warning: gallery descriptors are %d-dim but EXTRACTOR_DIM is %d\n", dim, cfg.Extractor.Dim)
	}

	host, port := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, host, port, engine, st, st)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Attendance API on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
