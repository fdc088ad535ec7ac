package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/engine"
)

// ClassifyOptions holds flags for the classify command.
type ClassifyOptions struct {
	*RootOptions
	Dimension string
	Anchor    string
	Terrain   []string
}

// ClassifyResult is the JSON payload of the classify command.
type ClassifyResult struct {
	Decisions []engine.BlockDecision `json:"decisions"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classify <state>...",
		Short: "Show how block states would be remapped",
		Long: `Classify block states against the replacement chain.

Each state is remapped as if it were placed at the anchor above the given
terrain column. Terrain blocks are listed top down, starting at the anchor.

Examples:
  ybtfc classify minecraft:stone_bricks
  ybtfc classify 'minecraft:oak_stairs[facing=east,half=top]' --terrain minecraft:spruce_log
  ybtfc classify minecraft:chest --dimension the_nether --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Dimension, "dimension", "overworld", "dimension the structure is placed in")
	cmd.Flags().StringVar(&opts.Anchor, "anchor", "0,64,0", "placement anchor as x,y,z")
	cmd.Flags().StringArrayVar(&opts.Terrain, "terrain", nil, "terrain column below the anchor, top down (repeatable)")

	return cmd
}

func runClassify(cmd *cobra.Command, opts *ClassifyOptions, args []string) error {
	dim, err := parseDimension(opts.Dimension)
	if err != nil {
		return err
	}
	anchor, err := parseAnchor(opts.Anchor)
	if err != nil {
		return err
	}
	world, err := parseColumn(anchor, opts.Terrain)
	if err != nil {
		return err
	}

	states := make([]blockstate.State, len(args))
	for i, arg := range args {
		st, err := blockstate.Parse(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid block state %q", arg), err)
		}
		states[i] = st
	}

	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	worker := e.engine(opts.RootOptions).NewWorker()

	result := ClassifyResult{Decisions: make([]engine.BlockDecision, len(states))}
	for i, st := range states {
		result.Decisions[i] = worker.Remap(world, anchor, dim, st)
	}

	if opts.Format == "json" {
		return jsonOK(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	for _, d := range result.Decisions {
		line := fmt.Sprintf("%s -> %s %s", d.In, d.Out, dimText(describeReason(d)))
		if d.Reason.Changed() {
			pass(w, "%s", line)
		} else {
			fail(w, "%s", line)
		}
		if len(d.Skipped) > 0 {
			fmt.Fprintf(w, "  skipped properties: %v\n", d.Skipped)
		}
	}
	return nil
}

// describeReason renders the reason and, when known, the category.
func describeReason(d engine.BlockDecision) string {
	if d.Category == "" {
		return fmt.Sprintf("(%s)", d.Reason)
	}
	if d.Reason == engine.ReasonUnregistered {
		return fmt.Sprintf("(%s %s: %s)", d.Reason, d.Category, d.Candidate)
	}
	return fmt.Sprintf("(%s %s)", d.Reason, d.Category)
}
