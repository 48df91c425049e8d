package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heftdev/heft/internal/store"
)

var (
	flagReportList bool
	flagReportID   int64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "list snapshots or show one snapshot's full entry list",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportList, "list", false, "list every stored snapshot")
	reportCmd.Flags().Int64Var(&flagReportID, "id", 0, "show the snapshot with this ID")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Platform.DatabasePath())
	if err != nil {
		return runtimeError("opening snapshot store: %w", err)
	}
	defer st.Close()

	if flagReportID != 0 {
		return printSnapshotDetail(cmd, st, flagReportID)
	}

	summaries, err := st.ListSnapshots()
	if err != nil {
		return runtimeError("listing snapshots: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snapshots yet. Run `heft scan` first.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCANNED AT\tTOTAL\tRECLAIMABLE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, time.Unix(s.ScannedAt, 0).Format(time.RFC3339), formatSize(s.TotalBytes), formatSize(s.ReclaimableBytes))
	}
	return tw.Flush()
}

func printSnapshotDetail(cmd *cobra.Command, st *store.Store, id int64) error {
	snap, err := st.GetSnapshot(id)
	if err != nil {
		return runtimeError("%s", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Snapshot #%d — %s\n", snap.ID, time.Unix(snap.ScannedAt, 0).Format(time.RFC3339))
	fmt.Fprintf(cmd.OutOrStdout(), "Total: %s (%s reclaimable)\n\n", formatSize(snap.TotalBytes), formatSize(snap.ReclaimableBytes))

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, e := range snap.Entries {
		fmt.Fprintf(tw, "%s\t%s\t  %s\t\n", e.Category.String(), e.Name, formatSize(e.SizeBytes))
	}
	return tw.Flush()
}
