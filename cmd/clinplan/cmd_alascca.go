package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/oncoseq/clinplan/internal/app"
)

var alasccaFlags struct {
	appFlags
	referralDB string
	addresses  string
}

var alasccaCmd = &cobra.Command{
	Use:   "alascca",
	Short: "Plan an ALASCCA study analysis",
	Long: "Plan the ALASCCA study analysis for one patient: the full panel analysis\n" +
		"for the study's one-blood-one-tumor cohort, followed by the clinical\n" +
		"report chain.",
	RunE: runAlascca,
}

func init() {
	alasccaFlags.register(alasccaCmd)
	f := alasccaCmd.Flags()
	f.StringVar(&alasccaFlags.referralDB, "referral-db", "", "Referral database configuration for report metadata")
	f.StringVar(&alasccaFlags.addresses, "addresses", "", "Clinic address table for report metadata")
}

func runAlascca(cmd *cobra.Command, _ []string) error {
	config := alasccaFlags.config()
	config.ReferralDBConf = alasccaFlags.referralDB
	config.Addresses = alasccaFlags.addresses

	a, err := app.New(os.Stderr, config)
	if err != nil {
		return err
	}
	return a.RunAlascca(cmd.Context())
}
