package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/claustra01/yungsbettertfc/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	DB string
}

// RunReport is the JSON payload of a single-run report.
type RunReport struct {
	Run     store.Run     `json:"run"`
	Summary store.Summary `json:"summary"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [run-id]",
		Short: "Report audited remap runs",
		Long: `List the runs stored in an audit database, or summarize one run.

Examples:
  ybtfc report --db audit.db
  ybtfc report --db audit.db 019234ab-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "audit database path (default from configuration)")

	return cmd
}

func runReport(cmd *cobra.Command, opts *ReportOptions, args []string) error {
	path := opts.DB
	if path == "" {
		e, err := loadEnv(opts.RootOptions)
		if err != nil {
			return err
		}
		path = e.cfg.Store
	}
	if path == "" {
		return NewExitError(ExitCommandError, "no audit database: set --db or store in the configuration")
	}

	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open audit database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	if len(args) == 0 {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		if opts.Format == "json" {
			if runs == nil {
				runs = []store.Run{}
			}
			return jsonOK(w, runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s  %s  %s\n", idText(r.ID), r.StartedAt.Format(time.RFC3339), r.Dimension, r.Source)
		}
		return nil
	}

	run, err := st.ReadRun(ctx, args[0])
	if errors.Is(err, store.ErrRunNotFound) {
		return WrapExitError(ExitFailure, "unknown run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	summary, err := st.Summary(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to summarize run", err)
	}

	if opts.Format == "json" {
		return jsonOK(w, RunReport{Run: run, Summary: summary})
	}

	fmt.Fprintf(w, "Run:       %s\n", run.ID)
	fmt.Fprintf(w, "Source:    %s\n", run.Source)
	if !run.Origin.IsZero() {
		fmt.Fprintf(w, "Origin:    %s\n", run.Origin)
	}
	fmt.Fprintf(w, "Dimension: %s\n", run.Dimension)
	fmt.Fprintf(w, "Anchor:    %s\n", run.Anchor)
	fmt.Fprintf(w, "Started:   %s\n", run.StartedAt.Format(time.RFC3339))
	if run.Digest != "" {
		fmt.Fprintf(w, "Digest:    %s\n", run.Digest)
	}
	fmt.Fprintf(w, "Blocks:    %d\n", summary.Blocks)
	fmt.Fprintf(w, "Entities:  %d\n", summary.Entities)
	writeCounts(w, "Reasons", summary.Reasons)
	writeCounts(w, "Categories", summary.Categories)
	return nil
}

func writeCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-18s %d\n", k, counts[k])
	}
}
