package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"shipdesk/internal/export"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.xlsx",
		Short: "Show the sheet, header and row count of an exported spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			info, err := export.InspectWorkbook(data)
			if err != nil {
				return err
			}
			cmd.Printf("Sheet:   %s\n", info.Sheet)
			cmd.Printf("Columns: %s\n", strings.Join(info.Header, ", "))
			cmd.Printf("Rows:    %d\n", info.Rows)
			return nil
		},
	}
}
