// Package cli implements the shipdesk command line: it renders and exports an
// extracted records file through the same engine the server uses.
package cli

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"shipdesk/internal/config"
	"shipdesk/internal/logger"
)

// app carries what the subcommands share once flags are parsed.
type app struct {
	cfg *config.Config
	log *logr.Logger

	logLevel string
}

// NewRootCmd builds the shipdesk command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "shipdesk",
		Short: "Explore and export extracted shipment records",
		Long: `shipdesk renders extracted shipment records as a table.
Columns can be hidden and moved, rows filtered, and the visible view exported
as JSON or CSV locally, or as a spreadsheet through the export service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error (default from SHIPDESK_LOG_LEVEL)")

	root.AddCommand(newViewCmd(a))
	root.AddCommand(newInspectCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log = logger.Init(cfg.Log)
	return nil
}
