// cmd/admissionctl/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "admissionctl",
	Short: "Operator tooling for the admission analysis pipeline",
	Long: `admissionctl runs the admission chance engine offline, seeds the
college search index, and sends test reports through the configured
email provider.

The seed-colleges and send-test-report commands read the same
configs/config.yaml (plus environment overrides) as the services.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}
