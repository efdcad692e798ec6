package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"

	"github.com/adactin-qa/hotelsuite/internal/config"
)

const defaultEnv = "qa"

func newCodegenCmd() *cobra.Command {
	var install bool
	cmd := &cobra.Command{
		Use:   "codegen [route]",
		Short: "Record a new flow with the Playwright code generator",
		Long: `codegen opens a browser with the Playwright inspector on route.

A relative route is resolved against BASE_URL. ENV is passed through to the
generator and defaults to "qa".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv(".env")
			route := "/"
			if len(args) == 1 {
				route = args[0]
			}
			env := os.Getenv("ENV")
			if env == "" {
				env = defaultEnv
			}
			target, err := resolveRoute(route, os.Getenv("BASE_URL"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\nStarting Playwright Codegen")
			fmt.Fprintf(out, "ENV: %s\n", env)
			fmt.Fprintf(out, "Route: %s\n\n", target)

			if install {
				if err := playwright.Install(); err != nil {
					return fmt.Errorf("could not install playwright: %w", err)
				}
			}
			driver, err := playwright.NewDriver(&playwright.RunOptions{})
			if err != nil {
				return fmt.Errorf("could not locate playwright driver: %w", err)
			}

			run := driver.Command("codegen", target)
			run.Stdin = os.Stdin
			run.Stdout = out
			run.Stderr = cmd.ErrOrStderr()
			run.Env = codegenEnv(os.Environ(), env)
			return run.Run()
		},
	}
	cmd.Flags().BoolVar(&install, "install", false, "Install the driver and browsers before starting")
	return cmd
}

// resolveRoute joins a relative route onto baseURL; absolute URLs are kept
func resolveRoute(route, baseURL string) (string, error) {
	if strings.Contains(route, "://") || baseURL == "" {
		return route, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid BASE_URL %q: %w", baseURL, err)
	}
	ref, err := url.Parse(route)
	if err != nil {
		return "", fmt.Errorf("invalid route %q: %w", route, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// codegenEnv replaces ENV in environ
func codegenEnv(environ []string, env string) []string {
	out := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		if strings.HasPrefix(kv, "ENV=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "ENV="+env)
}
