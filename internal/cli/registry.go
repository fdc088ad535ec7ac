package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/claustra01/yungsbettertfc/internal/registry"
)

// RegistryFileResult is the validation outcome of one registry file.
type RegistryFileResult struct {
	Path  string          `json:"path"`
	Valid bool            `json:"valid"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
	Stats *registry.Stats `json:"stats,omitempty"`
}

// NewRegistryCommand creates the registry command group.
func NewRegistryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and validate target registries",
	}
	cmd.AddCommand(newRegistryValidateCommand(rootOpts))
	cmd.AddCommand(newRegistryStatsCommand(rootOpts))
	return cmd
}

func newRegistryValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate registry files",
		Long: `Validate registry files written in CUE, JSON or YAML against the
registry schema.

Exit codes:
  0 - All files are valid
  1 - One or more files are invalid

Examples:
  ybtfc registry validate extra_blocks.cue
  ybtfc registry validate addons/*.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegistryValidate(cmd, opts, args)
		},
	}
}

func runRegistryValidate(cmd *cobra.Command, opts *RootOptions, paths []string) error {
	results := make([]RegistryFileResult, len(paths))
	invalid := 0
	for i, path := range paths {
		results[i] = validateRegistryFile(path)
		if !results[i].Valid {
			invalid++
		}
	}

	if opts.Format == "json" {
		if invalid > 0 {
			if err := jsonFailure(cmd.OutOrStdout(), "E_INVALID_REGISTRY",
				fmt.Sprintf("%d file(s) invalid", invalid), results); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) invalid", invalid))
		}
		return jsonOK(cmd.OutOrStdout(), results)
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		if r.Valid {
			pass(w, "%s: %d blocks, %d items", r.Path, r.Stats.Blocks, r.Stats.Items)
			continue
		}
		fail(w, "%s", r.Path)
		fmt.Fprintf(w, "  %s\n", r.Error)
	}
	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) invalid", invalid))
	}
	return nil
}

func validateRegistryFile(path string) RegistryFileResult {
	m, err := registry.LoadFile(path)
	if err != nil {
		r := RegistryFileResult{Path: path, Error: err.Error()}
		var le *registry.LoadError
		if errors.As(err, &le) {
			r.Code = string(le.Code)
		}
		return r
	}
	stats := m.Stats()
	return RegistryFileResult{Path: path, Valid: true, Stats: &stats}
}

func newRegistryStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the configured target registry",
		Long: `Summarize the target registry built from the configuration: the
built-in catalogue, the nether companion set and every configured registry
file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(opts)
			if err != nil {
				return err
			}
			stats := e.reg.Stats()
			if opts.Format == "json" {
				return jsonOK(cmd.OutOrStdout(), stats)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Blocks: %d\n", stats.Blocks)
			fmt.Fprintf(w, "Items:  %d\n", stats.Items)
			namespaces := make([]string, 0, len(stats.Namespaces))
			for ns := range stats.Namespaces {
				namespaces = append(namespaces, ns)
			}
			slices.Sort(namespaces)
			for _, ns := range namespaces {
				fmt.Fprintf(w, "  %-12s %d\n", ns, stats.Namespaces[ns])
			}
			return nil
		},
	}
}
