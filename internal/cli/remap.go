package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/store"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// RemapOptions holds flags for the remap command.
type RemapOptions struct {
	*RootOptions
	Out         string
	Dimension   string
	Anchor      string
	Terrain     []string
	DB          string
	Compress    bool
	ChangedOnly bool
}

// TemplateResult summarizes one remapped template.
type TemplateResult struct {
	ID       string `json:"id"`
	Path     string `json:"path"`
	Blocks   int    `json:"blocks"`
	Replaced int    `json:"replaced"`
	Entities int    `json:"entities"`
	Active   bool   `json:"active"`
	RunID    string `json:"runId,omitempty"`
	Digest   string `json:"digest,omitempty"`
}

// RemapResult is the JSON payload of the remap command.
type RemapResult struct {
	Templates   []TemplateResult `json:"templates"`
	Diagnostics engine.Snapshot  `json:"diagnostics"`
}

// remapped is the in-memory outcome of one template.
type remapped struct {
	id      ident.ID
	active  bool
	records []trace.Record
	summary TemplateResult
}

// NewRemapCommand creates the remap command.
func NewRemapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemapOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remap <templates-dir>",
		Short: "Remap a tree of structure templates",
		Long: `Remap every template under a directory laid out as
<dir>/<namespace>/<path>.json (or .json.zst).

Each template is placed at the anchor above the given terrain column and
the processed blocks and entities are written to the output directory
under the same identifier. Templates whose namespace is not enabled in the
configuration are copied unchanged.

With --db, every template placement is stored as an audit run.

Examples:
  ybtfc remap ./structures --out ./remapped
  ybtfc remap ./structures --out ./remapped --terrain tfc:grass/loam --terrain tfc:rock/raw/granite
  ybtfc remap ./structures --out ./remapped --dimension the_nether --db audit.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemap(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output directory (required)")
	cmd.Flags().StringVar(&opts.Dimension, "dimension", "overworld", "dimension the structures are placed in")
	cmd.Flags().StringVar(&opts.Anchor, "anchor", "0,64,0", "placement anchor as x,y,z")
	cmd.Flags().StringArrayVar(&opts.Terrain, "terrain", nil, "terrain column below the anchor, top down (repeatable)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "audit database path (default from configuration)")
	cmd.Flags().BoolVar(&opts.Compress, "compress", false, "write zstd-compressed templates")
	cmd.Flags().BoolVar(&opts.ChangedOnly, "changed-only", false, "audit only decisions that changed a block or entity")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runRemap(cmd *cobra.Command, opts *RemapOptions, root string) error {
	dim, err := parseDimension(opts.Dimension)
	if err != nil {
		return err
	}
	anchor, err := parseAnchor(opts.Anchor)
	if err != nil {
		return err
	}
	// Validate the column up front; each template gets its own copy.
	if _, err := parseColumn(anchor, opts.Terrain); err != nil {
		return err
	}

	e, err := loadEnv(opts.RootOptions)
	if err != nil {
		return err
	}
	logger := opts.Logger()

	origins := placement.NewOriginTable()
	manager := template.NewManager(root, template.WithRecorder(origins))
	ids, err := manager.List()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list templates", err)
	}
	if len(ids) == 0 {
		if opts.Format == "json" {
			return jsonOK(cmd.OutOrStdout(), RemapResult{Templates: []TemplateResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
		return nil
	}

	eng := e.engine(opts.RootOptions, engine.WithOriginLookup(origins.Lookup))
	ext := template.ExtJSON
	if opts.Compress {
		ext = template.ExtCompressed
	}

	results := make([]remapped, len(ids))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(e.cfg.Workers)
	for i, id := range ids {
		g.Go(func() error {
			out := filepath.Join(opts.Out, id.Namespace, filepath.FromSlash(id.Path)+ext)
			r, err := remapOne(ctx, eng, manager, id, dim, anchor, opts, out)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			logger.Debug("remapped template",
				"template", id.String(),
				"active", r.active,
				"replaced", r.summary.Replaced,
			)
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitCommandError, "remap failed", err)
	}

	dbPath := opts.DB
	if dbPath == "" {
		dbPath = e.cfg.Store
	}
	if dbPath != "" {
		if err := auditRuns(cmd.Context(), dbPath, dim, anchor, results); err != nil {
			return err
		}
	}

	snapshot, err := e.diag.Snapshot()
	if err != nil {
		logger.Warn("failed to read diagnostics", "error", err)
	}
	result := RemapResult{Templates: make([]TemplateResult, len(results)), Diagnostics: snapshot}
	for i, r := range results {
		result.Templates[i] = r.summary
	}

	if opts.Format == "json" {
		return jsonOK(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	for _, t := range result.Templates {
		if !t.Active {
			fmt.Fprintf(w, "- %s %s\n", t.ID, dimText("(not enabled, copied)"))
			continue
		}
		pass(w, "%s: %d/%d blocks replaced, %d entities rewritten", idText(t.ID), t.Replaced, t.Blocks, t.Entities)
		if t.RunID != "" {
			fmt.Fprintf(w, "  run %s\n", t.RunID)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Remapped %d template(s) into %s\n", len(result.Templates), opts.Out)
	return nil
}

// remapOne places one template with a fresh worker and terrain column and
// writes the processed template to out.
func remapOne(ctx context.Context, eng *engine.Engine, manager *template.Manager, id ident.ID,
	dim ident.ID, anchor terrain.Pos, opts *RemapOptions, out string) (remapped, error) {
	tpl, err := manager.GetOrCreate(id)
	if err != nil {
		return remapped{}, err
	}
	world, err := parseColumn(anchor, opts.Terrain)
	if err != nil {
		return remapped{}, err
	}

	var recOpts []trace.RecorderOption
	if opts.ChangedOnly {
		recOpts = append(recOpts, trace.ChangedOnly())
	}
	rec := trace.NewRecorder(recOpts...)
	worker := eng.NewWorker(rec.WorkerOptions()...)

	settings := placement.NewSettings(dim)
	placed, err := placement.Place(ctx, world, tpl, anchor, settings, worker.Attach)
	if err != nil {
		return remapped{}, err
	}
	if err := template.Save(out, relativize(tpl.Size, placed, anchor)); err != nil {
		return remapped{}, err
	}

	r := remapped{
		id:      id,
		active:  settings.HasProcessor(engine.ProcessorName),
		records: rec.Records(),
		summary: TemplateResult{
			ID:     id.String(),
			Path:   out,
			Blocks: len(tpl.Blocks),
		},
	}
	r.summary.Active = r.active
	for _, record := range r.records {
		switch {
		case record.Block != nil && record.Block.Reason.Changed():
			r.summary.Replaced++
		case record.Entity != nil && len(record.Entity.Changes) > 0:
			r.summary.Entities++
		}
	}
	return r, nil
}

// relativize turns a placement result back into a template whose positions
// are relative to the anchor.
func relativize(size terrain.Pos, placed placement.Result, anchor terrain.Pos) *template.Template {
	back := terrain.Pos{X: -anchor.X, Y: -anchor.Y, Z: -anchor.Z}
	t := &template.Template{
		Size:     size,
		Blocks:   make([]template.Block, len(placed.Blocks)),
		Entities: make([]template.Entity, len(placed.Entities)),
	}
	for i, b := range placed.Blocks {
		t.Blocks[i] = template.Block{Pos: b.Pos.Add(back), State: b.State, NBT: b.NBT}
	}
	for i, e := range placed.Entities {
		t.Entities[i] = template.Entity{Pos: e.Pos.Add(back), BlockPos: e.BlockPos.Add(back), NBT: e.NBT}
	}
	return t
}

// auditRuns stores one run per active template. SQLite has a single
// writer, so runs are written sequentially after the parallel remap.
func auditRuns(ctx context.Context, path string, dim ident.ID, anchor terrain.Pos, results []remapped) error {
	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open audit database", err)
	}
	defer st.Close()

	for i := range results {
		r := &results[i]
		if !r.active {
			continue
		}
		run, err := st.CreateRun(ctx, store.Run{
			Source:    r.id.String(),
			Origin:    r.id,
			Dimension: dim,
			Anchor:    anchor,
		})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create run", err)
		}
		if err := st.WriteRecords(ctx, run.ID, r.records); err != nil {
			return WrapExitError(ExitCommandError, "failed to write records", err)
		}
		digest, err := st.FinishRun(ctx, run.ID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to finish run", err)
		}
		r.summary.RunID = run.ID
		r.summary.Digest = digest
	}
	return nil
}
