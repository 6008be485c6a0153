package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/extractor"
	"github.com/kozaktomas/face-attendance/internal/gallery"
	"github.com/kozaktomas/face-attendance/internal/recognizer"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <name> <image>",
	Short: "Enroll a person from a photo",
	Long: `Enroll one person into the face gallery. The photo must contain
exactly one face; enrollment fails otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

// newEngineFromStore builds a recognition engine with a loaded gallery.
// One-shot commands need the gallery to match against, so a load failure is
// fatal here, unlike in serve.
func newEngineFromStore(cfg *config.Config, st store) (*recognizer.Engine, error) {
	detector := extractor.NewClient(cfg.Extractor.URL, cfg.Extractor.Model)
	engine := recognizer.New(detector, gallery.New(), st, st, cfg.Matcher.Tolerance)

	if _, err := engine.LoadGallery(context.Background()); err != nil {
		return nil, fmt.Errorf("loading enrolled faces: %w", err)
	}
	return engine, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, imagePath := args[0], args[1]

	cfg := config.Load()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	engine, err := newEngineFromStore(cfg, st)
	if err != nil {
		return err
	}

	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	// Duplicate enrollments are allowed; just make them visible.
	if existing, err := st.FindIdentitiesByName(context.Background(), name); err == nil && len(existing) > 0 {
		fmt.Printf("Note: %q is already enrolled %d time(s); adding another entry\n", name, len(existing))
	}

	enrollment, err := engine.Register(context.Background(), name, imageData)
	if err != nil {
		return fmt.Errorf("enrolling %s: %w", name, err)
	}

	fmt.Printf("Enrolled %s as identity %d (%d-dim descriptor)\n",
		enrollment.Name, enrollment.IdentityID, enrollment.Dim)
	return nil
}
