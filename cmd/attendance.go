package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/spf13/cobra"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Inspect the attendance log",
}

var attendanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attendance records, newest first",
	RunE:  runAttendanceList,
}

var attendanceExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the attendance log as CSV",
	RunE:  runAttendanceExport,
}

func init() {
	rootCmd.AddCommand(attendanceCmd)
	attendanceCmd.AddCommand(attendanceListCmd)
	attendanceCmd.AddCommand(attendanceExportCmd)

	attendanceListCmd.Flags().Int("limit", 50, "Maximum records to show (0 = all)")
	attendanceExportCmd.Flags().String("output", "", "Write CSV to this file instead of stdout")
}

func runAttendanceList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(context.Background(), mustGetInt(cmd, "limit"))
	if err != nil {
		return fmt.Errorf("loading attendance: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No attendance records")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-30s (identity %d)\n",
			e.RecordedAt.Format("2006-01-02 15:04:05"), e.Name, e.IdentityID)
	}
	fmt.Printf("%d record(s)\n", len(entries))
	return nil
}

func runAttendanceExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(context.Background(), 0)
	if err != nil {
		return fmt.Errorf("loading attendance: %w", err)
	}

	out := os.Stdout
	if path := mustGetString(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	cw := csv.NewWriter(out)
	cw.Write([]string{"id", "identity_id", "name", "recorded_at"})
	for _, e := range entries {
		cw.Write([]string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.IdentityID, 10),
			e.Name,
			e.RecordedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	return cw.Error()
}
