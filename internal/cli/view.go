package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"shipdesk/internal/domain"
	"shipdesk/internal/export"
	"shipdesk/internal/remote"
	"shipdesk/internal/view"
)

const formatTable = "table"

type viewOptions struct {
	hide     []string
	moves    []string
	query    string
	format   string
	output   string
	remote   bool
	maxWidth int
}

func newViewCmd(a *app) *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Render or export an extracted records file",
		Long: `Loads an extraction result (or a JSON array of records) from FILE, or stdin
when FILE is "-", applies the requested view changes in order (hide, move, query)
and prints the visible table or exports it.`,
		Example: `  shipdesk view records.json --hide po_number,seal --move customer:office_name
  shipdesk view records.json --query newark --format csv -o newark.csv
  shipdesk view records.json --format excel --remote -o shipments.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd, args[0], opts)
		},
	}
	opts.bindFlags(cmd.Flags())
	return cmd
}

func (o *viewOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.hide, "hide", nil, "comma-separated field ids to hide")
	fs.StringArrayVar(&o.moves, "move", nil, "move a column onto another's slot, as SOURCE:TARGET (repeatable)")
	fs.StringVarP(&o.query, "query", "q", "", "keep rows whose visible cells contain this text")
	fs.StringVarP(&o.format, "format", "f", formatTable, "output format: table|json|csv|excel")
	fs.StringVarP(&o.output, "output", "o", "", "write the export to this file instead of stdout")
	fs.BoolVar(&o.remote, "remote", false, "send the export through the remote export service")
	fs.IntVar(&o.maxWidth, "max-width", 28, "truncate table cells wider than this (0 disables)")
}

func (a *app) runView(cmd *cobra.Command, path string, opts *viewOptions) error {
	result, err := readIngestResult(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	engine := view.NewEngine(a.cfg.Table.Schema())
	if err := engine.Ingest(result); err != nil {
		return err
	}
	if !engine.HasData() {
		cmd.Println("No shipping data extracted.")
		return nil
	}

	for _, id := range opts.hide {
		engine.SetVisible(domain.FieldID(strings.TrimSpace(id)), false)
	}
	for _, mv := range opts.moves {
		src, dst, ok := strings.Cut(mv, ":")
		if !ok || src == "" || dst == "" {
			return fmt.Errorf("%w: --move wants SOURCE:TARGET, got %q", domain.ErrInvalidRequest, mv)
		}
		engine.Reorder(domain.FieldID(src), domain.FieldID(dst))
	}
	p := engine.SetQuery(opts.query)

	if opts.format == formatTable {
		if err := renderTable(cmd.OutOrStdout(), p, opts.maxWidth); err != nil {
			return err
		}
		cmd.Println(engine.RecordCount())
		return nil
	}

	format, err := domain.ParseExportFormat(opts.format)
	if err != nil {
		return err
	}
	return a.export(cmd, format, p, opts)
}

func (a *app) export(cmd *cobra.Command, format domain.ExportFormat, p domain.Projection, opts *viewOptions) error {
	local := export.NewLocalExporter(a.cfg.Export.FilenamePrefix)
	var x export.Exporter = local
	if opts.remote {
		x = export.NewDelegatingExporter(remote.NewExportClient(&a.cfg.Remote), local)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := x.Export(ctx, format, p)
	if err != nil {
		return err
	}
	a.log.V(1).Info("export ready", "format", res.Format, "source", res.Source, "bytes", len(res.Body))

	if len(res.Body) == 0 {
		if res.DownloadURL == "" {
			return fmt.Errorf("%w: export service returned no payload", domain.ErrExportFailed)
		}
		cmd.Println(res.DownloadURL)
		return nil
	}

	target := opts.output
	if target == "" && format == domain.ExportFormatExcel {
		target = res.Filename
	}
	if target == "" {
		_, err := cmd.OutOrStdout().Write(res.Body)
		return err
	}
	if err := os.WriteFile(target, res.Body, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	cmd.Printf("Wrote %s (%d bytes)\n", target, len(res.Body))
	return nil
}
