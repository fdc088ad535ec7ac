package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Scope string
}

// CategoryInfo lists the source patterns of one rule category.
type CategoryInfo struct {
	Category string   `json:"category"`
	Sources  []string `json:"sources"`
}

// RulesResult is the JSON payload of the rules command.
type RulesResult struct {
	Scope      string         `json:"scope"`
	Categories []CategoryInfo `json:"categories"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the replacement chain for a scope",
		Long: `List the rule categories consulted for a scope, in chain order,
with the base-game block paths each one matches. '*' marks a species or
colour wildcard.

Examples:
  ybtfc rules
  ybtfc rules --scope utility_only`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scope, "scope", string(scope.Full), "rule scope (full|utility_only)")

	return cmd
}

func runRules(cmd *cobra.Command, opts *RulesOptions) error {
	sc := scope.Scope(opts.Scope)
	if err := sc.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid scope", err)
	}

	result := RulesResult{Scope: string(sc)}
	for _, cat := range rules.Chain(sc) {
		result.Categories = append(result.Categories, CategoryInfo{
			Category: string(cat),
			Sources:  rules.Sources(cat),
		})
	}

	if opts.Format == "json" {
		return jsonOK(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scope: %s\n", result.Scope)
	for i, c := range result.Categories {
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, idText(c.Category), dimText(fmt.Sprintf("(%d)", len(c.Sources))))
		fmt.Fprintf(w, "    %s\n", strings.Join(c.Sources, ", "))
	}
	return nil
}
