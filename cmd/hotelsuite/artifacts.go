package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/adactin-qa/hotelsuite/internal/capture"
	"github.com/adactin-qa/hotelsuite/internal/config"
	"github.com/adactin-qa/hotelsuite/internal/finalize"
	"github.com/adactin-qa/hotelsuite/internal/logger"
)

func newArtifactsCmd() *cobra.Command {
	var resultsDir string
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "List the API log artifacts written by finished tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := artifactsDir(cmd, resultsDir)
			if err != nil {
				return err
			}
			return listArtifacts(cmd, dir)
		},
	}
	cmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "", "Results directory (defaults to the results_dir switch)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <file>",
		Short: "Print the failed calls of one artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showArtifact(cmd, args[0])
		},
	})
	return cmd
}

func artifactsDir(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	dir, _ := cmd.Flags().GetString("config")
	if err := config.Load(dir); err != nil {
		return "", err
	}
	return config.Get().ResultsDir, nil
}

func listArtifacts(cmd *cobra.Command, resultsDir string) error {
	paths, err := finalize.ListArtifacts(resultsDir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "No API logs under %s\n", filepath.Join(resultsDir, finalize.LogsDirName))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FILE\tREQUESTS\tRESPONSES\tFAILED\tERROR")
	for _, p := range paths {
		a, err := finalize.LoadArtifact(p)
		if err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%v\n", filepath.Base(p), err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", filepath.Base(p),
			a.Summary.TotalRequests, a.Summary.TotalResponses, a.Summary.FailedResponses,
			logger.TruncateBody(a.Error.Message, 60))
	}
	return w.Flush()
}

func showArtifact(cmd *cobra.Command, path string) error {
	a, err := finalize.LoadArtifact(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", a.TestInfo, a.Timestamp)
	fmt.Fprintf(out, "Error: %s\n", a.Error.Message)

	var failed []capture.Record
	for _, r := range a.Logs {
		if r.IsFailed() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		fmt.Fprintln(out, color.GreenString("All API requests were successful!"))
		return nil
	}
	fmt.Fprintln(out, color.RedString("Found %d failed API requests:", len(failed)))
	for i, r := range failed {
		fmt.Fprintf(out, "%d. [%s] %d - %s (%s)\n", i+1, r.Method, r.StatusCode(), r.URL, r.Timestamp)
		fmt.Fprintf(out, "   Response: %s\n", logger.TruncateBody(r.Body(), logger.BodyPreviewLimit))
	}
	return nil
}
