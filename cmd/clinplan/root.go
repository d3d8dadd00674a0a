package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "clinplan",
	Short: "Plan clinical sequencing analysis job graphs",
	Long: "Clinplan expands a patient's sample description and reference-data bundle\n" +
		"into a complete, dependency-ordered analysis job graph, without executing\n" +
		"any job.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(alasccaCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
