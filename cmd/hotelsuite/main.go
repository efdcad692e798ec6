package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adactin-qa/hotelsuite/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hotelsuite",
		Short: "Hotel booking E2E suite tooling",
		Long: `hotelsuite supports the browser suite of the hotel booking application.

It records new flows with the Playwright code generator, shows the capture
switches in effect and inspects the API log artifacts written by failed tests.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", ".", "Directory holding killswitch.yaml")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCodegenCmd())
	root.AddCommand(newSwitchesCmd())
	root.AddCommand(newArtifactsCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(version.Get())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hotelsuite %s\n", version.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
