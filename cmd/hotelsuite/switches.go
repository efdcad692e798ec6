package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adactin-qa/hotelsuite/internal/config"
)

const switchesFile = "killswitch.yaml"

func newSwitchesCmd() *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "switches",
		Short: "Show the capture switches in effect",
		Long: `switches prints the effective capture switches after killswitch.yaml and
HOTELSUITE_* environment overrides are applied.

With --init a killswitch.yaml holding the defaults is written to the config directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("config")
			if initFile {
				path, err := writeDefaultSwitches(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
				return nil
			}

			if err := config.Load(dir); err != nil {
				return err
			}
			return printSwitches(cmd, config.Get())
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "Write a killswitch.yaml with the defaults")
	return cmd
}

func printSwitches(cmd *cobra.Command, s config.Switches) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode switches: %w", err)
	}
	return enc.Close()
}

func writeDefaultSwitches(dir string) (string, error) {
	path := filepath.Join(dir, switchesFile)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return "", fmt.Errorf("failed to encode switches: %w", err)
	}
	header := []byte("# Capture switches; HOTELSUITE_<KEY> environment variables override these values\n")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
