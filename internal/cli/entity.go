package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/claustra01/yungsbettertfc/internal/equipment"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/placement"
)

// EntityOptions holds flags for the entity command.
type EntityOptions struct {
	*RootOptions
	Origin string
	File   string
}

// EntityResult is the JSON payload of the entity command.
type EntityResult struct {
	Entity  string             `json:"entity,omitempty"`
	Tier    string             `json:"tier,omitempty"`
	Changes []equipment.Change `json:"changes"`
	NBT     nbt.Compound       `json:"nbt"`
}

// NewEntityCommand creates the entity command.
func NewEntityCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EntityOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "entity [nbt-json]",
		Short: "Rewrite the equipment of an entity",
		Long: `Rewrite the displayed equipment of an entity given as NBT in JSON form.

The metal tier is chosen from the namespace of --origin, the template the
entity belongs to.

Examples:
  ybtfc entity '{"id":"minecraft:item_frame","Item":{"id":"minecraft:iron_sword","Count":1}}'
  ybtfc entity --file stand.json --origin betterstrongholds:rooms/armoury`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntity(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Origin, "origin", "", "template identifier the entity belongs to")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the NBT from a file ('-' for stdin)")

	return cmd
}

func runEntity(cmd *cobra.Command, opts *EntityOptions, args []string) error {
	data, err := entityInput(cmd, opts, args)
	if err != nil {
		return err
	}
	var compound nbt.Compound
	if err := json.Unmarshal(data, &compound); err != nil {
		return WrapExitError(ExitCommandError, "invalid entity NBT", err)
	}
	if compound == nil {
		return NewExitError(ExitCommandError, "invalid entity NBT: expected an object")
	}

	var origin ident.ID
	if opts.Origin != "" {
		if origin, err = ident.Parse(opts.Origin); err != nil {
			return WrapExitError(ExitCommandError, "invalid origin", err)
		}
	}

	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	worker := e.engine(opts.RootOptions).NewWorker()
	info, d := worker.Entity(placement.EntityInfo{NBT: compound}, origin)

	result := EntityResult{Tier: d.Tier, Changes: d.Changes, NBT: info.NBT}
	if !d.Entity.IsZero() {
		result.Entity = d.Entity.String()
	}
	if result.Changes == nil {
		result.Changes = []equipment.Change{}
	}

	if opts.Format == "json" {
		return jsonOK(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	if len(d.Changes) == 0 {
		fmt.Fprintln(w, "No equipment rewritten.")
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", idText(result.Entity), dimText("(tier "+d.Tier+")"))
	for _, c := range d.Changes {
		pass(w, "%s[%d] %s -> %s", c.Slot, c.Index, c.From, c.To)
	}
	out, err := json.MarshalIndent(info.NBT, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func entityInput(cmd *cobra.Command, opts *EntityOptions, args []string) ([]byte, error) {
	switch {
	case opts.File == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
		return data, nil
	case opts.File != "":
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read entity file", err)
		}
		return data, nil
	case len(args) == 1:
		return []byte(args[0]), nil
	default:
		return nil, NewExitError(ExitCommandError, "entity NBT is required as an argument or --file")
	}
}
