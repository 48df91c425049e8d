package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heftdev/heft/internal/orchestrator"
	"github.com/heftdev/heft/internal/spinner"
	"github.com/heftdev/heft/internal/store"
)

var (
	flagScanRoots       []string
	flagScanJSON        bool
	flagScanProgressive bool
	flagScanTimeout     int
	flagScanDisable     []string
	flagScanNoDocker    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "run detectors, print a report, and persist a snapshot",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&flagScanRoots, "roots", nil, "scan roots (defaults to the home directory)")
	scanCmd.Flags().BoolVar(&flagScanJSON, "json", false, "print results as JSON instead of a table")
	scanCmd.Flags().BoolVar(&flagScanProgressive, "progressive", false, "stream per-detector completion as the scan runs")
	scanCmd.Flags().IntVar(&flagScanTimeout, "timeout", 0, "subprocess timeout in seconds (default from config, else 30)")
	scanCmd.Flags().StringSliceVar(&flagScanDisable, "disable", nil, "comma-separated list of detector names to disable")
	scanCmd.Flags().BoolVar(&flagScanNoDocker, "no-docker", false, "disable the container/Docker detector")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	applyScanFlags()

	orch := orchestrator.New(logger, registeredDetectors()...)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	sp := spinner.New("scanning", !cfg.Progressive && !cfg.JSON)
	sp.Start()

	progress := make(chan orchestrator.Progress)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for p := range progress {
			if !cfg.Progressive {
				continue
			}
			diag := ""
			if p.Diagnostic {
				diag = " (diagnostics reported)"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %d entries, %s, %dms%s\n", p.Detector, p.Entries, formatSize(p.SizeBytes), p.ElapsedMs, diag)
		}
	}()

	res := orch.Run(ctx, cfg, progress)
	close(progress)
	<-drained

	sp.Stop()

	if cfg.JSON {
		if err := printScanJSON(cmd.OutOrStdout(), res); err != nil {
			return runtimeError("encoding scan JSON: %w", err)
		}
	} else {
		printScanResult(cmd.OutOrStdout(), res)
	}

	st, err := store.Open(cfg.Platform.DatabasePath())
	if err != nil {
		return runtimeError("opening snapshot store: %w", err)
	}
	defer st.Close()

	saved, err := st.SaveSnapshot(res)
	if err != nil {
		return runtimeError("saving snapshot: %w", err)
	}
	for _, diag := range saved.Diagnostics {
		logger.Debug("scan: " + diag)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot #%d.\n", saved.ID)
	return nil
}

func applyScanFlags() {
	if len(flagScanRoots) > 0 {
		cfg.Roots = flagScanRoots
	}
	cfg.JSON = cfg.JSON || flagScanJSON
	cfg.Progressive = cfg.Progressive || flagScanProgressive
	cfg.DisabledDetectors = append(cfg.DisabledDetectors, flagScanDisable...)
	cfg.NoDocker = cfg.NoDocker || flagScanNoDocker
	if flagScanTimeout > 0 {
		cfg.SubprocessTimeout = time.Duration(flagScanTimeout) * time.Second
	}
}
