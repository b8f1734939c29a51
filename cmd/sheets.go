package cmd

import (
	"fmt"

	"roster-audit/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sheetsCmd lists the worksheets of a roster workbook.
var sheetsCmd = &cobra.Command{
	Use:   "sheets <file|storage://object>",
	Short: "List the worksheets of a roster workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := bootstrap()
		if err != nil {
			return err
		}
		defer l.Sync()

		src, err := audit.ParseSource(args[0], "")
		if err != nil {
			return err
		}

		svc, err := newService(cfg, l, needs(src))
		if err != nil {
			return err
		}

		sheets, err := svc.Sheets(cmd.Context(), src)
		if err != nil {
			return err
		}

		l.Debug("Listed sheets", zap.String("source", src.String()), zap.Int("count", len(sheets)))
		for _, s := range sheets {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sheetsCmd)
}
