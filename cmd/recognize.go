package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/annotate"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Recognize faces in a photo",
	Long: `Match every face in the photo against the enrolled gallery. Each
recognized person gets one attendance record. Faces with no close enough
enrollment are reported as unknown.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().String("annotate", "", "Write an annotated copy of the image to this path")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	annotatePath := mustGetString(cmd, "annotate")

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

	results, err := engine.Recognize(context.Background(), imageData)
	if err != nil {
		return fmt.Errorf("recognizing faces: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No faces found")
		return nil
	}

	fmt.Printf("Found %d face(s):\n", len(results))
	for _, r := range results {
		if r.Matched {
			fmt.Printf("  face %d: %s (distance %.3f)\n", r.FaceIndex, r.Name, r.Distance)
		} else {
			fmt.Printf("  face %d: %s\n", r.FaceIndex, r.Name)
		}
	}

	if annotatePath != "" {
		annotated, err := annotate.Render(imageData, results)
		if err != nil {
			return fmt.Errorf("annotating image: %w", err)
		}
		if err := os.WriteFile(annotatePath, annotated, 0o644); err != nil {
			return fmt.Errorf("writing annotated image: %w", err)
		}
		fmt.Printf("Annotated image written to %s\n", annotatePath)
	}

	return nil
}
