package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/heftdev/heft/internal/bloat"
	"github.com/heftdev/heft/internal/cleanup"
	"github.com/heftdev/heft/internal/orchestrator"
)

var (
	flagCleanRoots    []string
	flagCleanTimeout  int
	flagCleanNoDocker bool
	flagCleanCategory string
	flagCleanDryRun   bool
	flagCleanYes      bool
)

var cleanMode cleanup.Mode

var cleanCmd = &cobra.Command{
	Use:     "clean",
	Short:   "scan, then delete approved reclaimable entries",
	PreRunE: preRunClean,
	RunE:    runClean,
}

func init() {
	cleanCmd.Flags().StringSliceVar(&flagCleanRoots, "roots", nil, "scan roots (defaults to the home directory)")
	cleanCmd.Flags().IntVar(&flagCleanTimeout, "timeout", 0, "subprocess timeout in seconds (default from config, else 30)")
	cleanCmd.Flags().BoolVar(&flagCleanNoDocker, "no-docker", false, "disable the container/Docker detector")
	cleanCmd.Flags().StringVar(&flagCleanCategory, "category", "", "only clean entries in this category")
	cleanCmd.Flags().BoolVar(&flagCleanDryRun, "dry-run", false, "print what would be deleted without deleting")
	cleanCmd.Flags().BoolVar(&flagCleanYes, "yes", false, "delete every filtered entry without prompting")
	rootCmd.AddCommand(cleanCmd)
}

// preRunClean validates the dry-run/yes combination before any scan or
// deletion work happens, matching the teacher's PreRun-time validation
// pattern.
func preRunClean(cmd *cobra.Command, args []string) error {
	mode, err := cleanup.ResolveMode(flagCleanDryRun, flagCleanYes)
	if err != nil {
		return userError("%s", err)
	}
	cleanMode = mode
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	applyCleanFlags()

	if cleanMode == cleanup.Interactive {
		if err := cleanup.RequireTTY(os.Stdin); err != nil {
			return userError("%s", err)
		}
	}

	cat, err := cleanup.ParseCategoryFilter(flagCleanCategory)
	if err != nil {
		return userError("%s", err)
	}
	filterSet := flagCleanCategory != ""

	orch := orchestrator.New(logger, registeredDetectors()...)
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	progress := make(chan orchestrator.Progress)
	go func() {
		for range progress {
		}
	}()
	res := orch.Run(ctx, cfg, progress)
	close(progress)

	entries := cleanup.FilterByCategory(res.Entries, cat, filterSet)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean.")
		return nil
	}

	byCategory := make(map[bloat.Category][]bloat.BloatEntry)
	for _, e := range entries {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	var approved []bloat.BloatEntry
	for _, category := range cleanup.GroupByCategory(entries) {
		group := byCategory[category]
		switch cleanMode {
		case cleanup.DryRun:
			printDryRunCategory(cmd, category, group)
		case cleanup.Yes:
			approved = append(approved, group...)
		case cleanup.Interactive:
			if cleanup.ConfirmCategory(os.Stdin, cmd.OutOrStdout(), category, group) {
				approved = append(approved, group...)
			}
		}
	}

	if cleanMode == cleanup.DryRun {
		return nil
	}
	if len(approved) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing approved for deletion.")
		return nil
	}

	timeoutSeconds := int64(cfg.SubprocessTimeout / time.Second)
	result := cleanup.Execute(ctx, approved, cfg.Platform, timeoutSeconds, logger, nil)

	fmt.Fprintf(cmd.OutOrStdout(), "\nFreed %s across %d entries", formatSize(result.BytesFreed), len(result.Removed))
	if len(result.Failed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d failed)", len(result.Failed))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	for _, err := range result.Errors {
		logger.Debug("clean: entry failed", "error", err)
	}
	if len(result.Failed) > 0 {
		return runtimeError("some entries failed to delete; see --verbose for details")
	}
	return nil
}

func printDryRunCategory(cmd *cobra.Command, category bloat.Category, entries []bloat.BloatEntry) {
	var total uint64
	for _, e := range entries {
		total += e.ReclaimableBytes
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s — %d item(s), %s reclaimable (dry run, nothing deleted)\n", category.String(), len(entries), formatSize(total))
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "    %s\t%s\n", e.Name, formatSize(e.ReclaimableBytes))
	}
}

func applyCleanFlags() {
	if len(flagCleanRoots) > 0 {
		cfg.Roots = flagCleanRoots
	}
	cfg.NoDocker = cfg.NoDocker || flagCleanNoDocker
	if flagCleanTimeout > 0 {
		cfg.SubprocessTimeout = time.Duration(flagCleanTimeout) * time.Second
	}
}
