package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/face-attendance/internal/capture"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a camera and record attendance continuously",
	Long: `Poll a camera snapshot URL and run recognition on every frame until
interrupted. Cameras come from the cameras file (--camera) or directly
from a snapshot URL (--url).`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("camera", "", "Name of a configured camera")
	watchCmd.Flags().String("url", "", "Camera snapshot URL (overrides --camera)")
	watchCmd.Flags().Int("interval", 1000, "Milliseconds between frames")
	watchCmd.Flags().Float64("tolerance", 0, "Match tolerance for this camera (0 = global default)")
}

// resolveWatchCamera turns the flags into a camera definition.
func resolveWatchCamera(cmd *cobra.Command, cfg *config.Config) (config.CameraConfig, error) {
	if url := mustGetString(cmd, "url"); url != "" {
		return config.CameraConfig{
			Name:       "cli",
			URL:        url,
			IntervalMS: mustGetInt(cmd, "interval"),
			Tolerance:  mustGetFloat64(cmd, "tolerance"),
		}, nil
	}

	name := mustGetString(cmd, "camera")
	if name == "" {
		return config.CameraConfig{}, errors.New("either --camera or --url is required")
	}

	cam := cfg.Camera(name)
	if cam == nil {
		return config.CameraConfig{}, fmt.Errorf("unknown camera %q", name)
	}

	resolved := *cam
	if cmd.Flags().Changed("interval") {
		resolved.IntervalMS = mustGetInt(cmd, "interval")
	}
	if cmd.Flags().Changed("tolerance") {
		resolved.Tolerance = mustGetFloat64(cmd, "tolerance")
	}
	return resolved, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	cam, err := resolveWatchCamera(cmd, cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := newEngineFromStore(cfg, st)
	if err != nil {
		return err
	}

	interval := time.Second
	if cam.IntervalMS > 0 {
		interval = time.Duration(cam.IntervalMS) * time.Millisecond
	}

	source := capture.NewSnapshotSource(cam.URL)
	runner := capture.NewRunner(source, engine, interval, cam.Tolerance)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nStopping after the current frame...")
		runner.Stop()
	}()

	fmt.Printf("Watching camera %s every %s (Ctrl+C to stop)\n", cam.Name, interval)
	runner.Run(ctx)

	stats := runner.Stats()
	fmt.Printf("Processed %d frames, %d matches\n", stats.Frames, stats.Matches)
	if stats.LastError != "" {
		fmt.Printf("Last error: %s\n", stats.LastError)
	}
	return nil
}
