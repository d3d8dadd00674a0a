package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oncoseq/clinplan/internal/app"
)

var panelFlags appFlags

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Plan a generic panel analysis",
	Long: "Plan the generic panel analysis for one patient: alignment and merging\n" +
		"per unique capture, germline and somatic variant calling, copy-number\n" +
		"calling, MSI, contamination checks, and QC.",
	RunE: runPanel,
}

func init() {
	panelFlags.register(panelCmd)
}

func runPanel(cmd *cobra.Command, _ []string) error {
	a, err := app.New(os.Stderr, panelFlags.config())
	if err != nil {
		return err
	}
	return a.RunPanel(cmd.Context())
}
