package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-attendance/internal/config"
)

var registerDirCmd = &cobra.Command{
	Use:   "register-dir <directory>",
	Short: "Enroll everyone from a directory of photos",
	Long: `Enroll one person per image file in the directory. The person's name
is derived from the file name: "jan_novak.jpg" enrolls "jan novak".
Images that fail (no face, several faces, unreadable) are reported and
skipped; the rest of the directory is still processed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegisterDir,
}

func init() {
	rootCmd.AddCommand(registerDirCmd)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// nameFromFile derives a person's name from an image file name.
func nameFromFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
}

func runRegisterDir(cmd *cobra.Command, args []string) error {
	dir := args[0]

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		fmt.Println("No image files found")
		return nil
	}

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

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Enrolling faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)

	var enrolled, failed int
	var failures []string
	for _, file := range files {
		name := nameFromFile(file)

		imageData, err := os.ReadFile(file)
		if err != nil {
			failed++
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(file), err))
			bar.Add(1)
			continue
		}

		if _, err := engine.Register(context.Background(), name, imageData); err != nil {
			failed++
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(file), err))
			bar.Add(1)
			continue
		}

		enrolled++
		bar.Add(1)
	}

	fmt.Printf("\nEnrolled %d, failed %d of %d photos\n", enrolled, failed, len(files))
	for _, f := range failures {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
