package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medrag",
	Short: "Grounded medical report explanations",
	Long: `medrag explains medical reports in patient-friendly language.
Every statement is grounded in a retrieved medical knowledge base,
uncertainties are marked explicitly and low-confidence output is routed
to doctor review.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(demoCmd, chatCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
