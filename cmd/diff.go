package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heftdev/heft/internal/diff"
	"github.com/heftdev/heft/internal/store"
)

var (
	flagDiffFrom int64
	flagDiffTo   int64
)

var diffCmd = &cobra.Command{
	Use:     "diff",
	Short:   "compare two snapshots, or the two most recent if neither is given",
	PreRunE: preRunDiff,
	RunE:    runDiff,
}

func init() {
	diffCmd.Flags().Int64Var(&flagDiffFrom, "from", 0, "older snapshot ID")
	diffCmd.Flags().Int64Var(&flagDiffTo, "to", 0, "newer snapshot ID")
	rootCmd.AddCommand(diffCmd)
}

// preRunDiff rejects a partially-specified --from/--to pair before any
// store access happens: both or neither, never one alone.
func preRunDiff(cmd *cobra.Command, args []string) error {
	fromSet := flagDiffFrom != 0
	toSet := flagDiffTo != 0
	if fromSet != toSet {
		return userError("diff: --from and --to must both be given, or neither")
	}
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.Platform.DatabasePath())
	if err != nil {
		return runtimeError("opening snapshot store: %w", err)
	}
	defer st.Close()

	var result diff.Result
	if flagDiffFrom != 0 {
		olderSnap, gerr := st.GetSnapshot(flagDiffFrom)
		if gerr != nil {
			return runtimeError("%s", gerr)
		}
		newerSnap, gerr := st.GetSnapshot(flagDiffTo)
		if gerr != nil {
			return runtimeError("%s", gerr)
		}
		result = diff.Compute(olderSnap, newerSnap)
	} else {
		olderSnap, newerSnap, gerr := st.LatestTwo()
		if gerr != nil {
			return runtimeError("%s", gerr)
		}
		result = diff.Compute(olderSnap, newerSnap)
	}

	if len(result.Changes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes between the two snapshots.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tSTATUS\tDELTA\t")
	for _, c := range result.Changes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", c.Category.String(), c.Name, c.Status.String(), signedSize(c.DeltaBytes))
	}
	if err := tw.Flush(); err != nil {
		return runtimeError("rendering diff: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nNet change: %s\n", signedSize(result.NetChange))
	return nil
}

func signedSize(v int64) string {
	if v < 0 {
		return "-" + formatSize(uint64(-v))
	}
	return "+" + formatSize(uint64(v))
}
