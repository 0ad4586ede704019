package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gnomegl/mcavail/internal/cli"
	"github.com/gnomegl/mcavail/internal/client"
	"github.com/gnomegl/mcavail/internal/core"
	"github.com/gnomegl/mcavail/internal/utils"
)

func newRootCmd() *cobra.Command {
	config := cli.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "mcavail",
		Short: "Minecraft username availability checker",
		Long: `mcavail reads candidate names (one per line) and checks each one
against the Mojang profile lookup API, pacing requests to stay clear of
rate limits. Available names are written to a timestamped report.

Features:
  - Fixed pacing: 0.8s between lookups, 2s cool-down every 50
  - Fail-closed: lookups that error out are never reported as available
  - Live progress with ETA
  - Proxy support (single proxy or proxies file rotation)
  - Optional JSON and CSV exports of every result`,
		Version:      core.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.ConfigPath, "config", "c", "", "Path to a YAML config file")
	flags.StringVarP(&config.InputPath, "input", "i", config.InputPath, "File with one name per line")
	flags.StringVarP(&config.OutputPath, "output", "o", config.OutputPath, "File to write available names to")
	flags.StringVar(&config.APIBaseURL, "api-url", config.APIBaseURL, "Profile lookup base URL")
	flags.StringVarP(&config.Proxy, "proxy", "p", "", "Proxy server (http://proxy:port, socks5://proxy:port)")
	flags.StringVarP(&config.ProxyFile, "proxy-file", "F", "", "File containing proxies (one per line)")
	flags.IntVarP(&config.Timeout, "timeout", "t", config.Timeout, "Request timeout in seconds")
	flags.StringVar(&config.Impersonate, "impersonate", config.Impersonate, "User-Agent preset (chrome, firefox, safari, edge, none)")
	flags.BoolVarP(&config.NoColor, "no-color", "C", false, "Disable colored output")
	flags.BoolVarP(&config.NoProgressbar, "no-progressbar", "P", false, "Disable progress bar")
	flags.BoolVarP(&config.ShowDetails, "show-details", "d", false, "Show detailed output")
	flags.StringVar(&config.CSVPath, "csv-output", "", "Export every result to CSV (path required)")
	flags.StringVar(&config.JSONPath, "json-output", "", "Export every result to JSON (path required)")
	_ = flags.MarkHidden("api-url")

	return cmd
}

func runCheck(cmd *cobra.Command, config cli.Config) error {
	out := cmd.OutOrStdout()

	if config.ConfigPath != "" {
		if err := cli.ApplyConfigFile(&config, config.ConfigPath, cmd.Flags().Changed); err != nil {
			return err
		}
	}

	if config.NoColor {
		cli.DisableColor()
	}

	if err := validateConfig(config); err != nil {
		return err
	}

	fmt.Fprintf(out, "Reading names from %s...\n", config.InputPath)
	names, err := cli.LoadNames(config.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "Error: File '%s' not found!\n", config.InputPath)
		} else {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		return nil
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "No names to check in %s\n", config.InputPath)
		return nil
	}

	fmt.Fprintf(out, "Checking %d names...\n\n", len(names))

	httpClient, err := client.NewHTTPClient(client.ClientConfig{
		Timeout:     config.Timeout,
		Impersonate: client.BrowserImpersonation(config.Impersonate),
		Proxy:       config.Proxy,
		ProxyFile:   config.ProxyFile,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}
	defer httpClient.CloseIdleConnections()

	checker := core.NewChecker(httpClient, config.APIBaseURL)
	run := func(ctx context.Context, obs core.Observer) (core.RunSummary, error) {
		return core.NewRunner(checker, obs).Run(ctx, names)
	}

	var summary core.RunSummary
	if !config.NoProgressbar && isTerminal(out) {
		summary, err = cli.RunWithProgressBar(cmd.Context(), len(names), config.ShowDetails, out, run)
	} else {
		summary, err = run(cmd.Context(), cli.NewLineObserver(out, config.ShowDetails))
	}
	if err != nil {
		return fmt.Errorf("run interrupted, no report written: %w", err)
	}

	exporter := cli.NewExporter(summary, out)
	if err := exporter.WriteReport(config.OutputPath); err != nil {
		return err
	}

	displaySummary(out, summary, config.OutputPath)
	return exportResults(exporter, config)
}

func validateConfig(config cli.Config) error {
	if err := utils.ValidateTimeout(config.Timeout); err != nil {
		return err
	}
	if err := utils.ValidateProxy(config.Proxy); err != nil {
		return err
	}
	if err := utils.ValidateImpersonate(config.Impersonate); err != nil {
		return err
	}
	if err := utils.ValidateAPIURL(config.APIBaseURL); err != nil {
		return err
	}
	return utils.ValidatePaths(config.InputPath, config.OutputPath)
}

func displaySummary(out io.Writer, summary core.RunSummary, outputPath string) {
	fmt.Fprintf(out, "\nDone! Found %d available names out of %d\n", len(summary.Available), summary.Total)
	if errs := summary.CountByStatus(core.CheckStatusError); errs > 0 {
		fmt.Fprintf(out, "%d lookups failed and were counted as taken\n", errs)
	}
	fmt.Fprintf(out, "Results saved to %s\n", outputPath)
	fmt.Fprintf(out, "Total time: %.1f minutes\n", time.Since(summary.StartedAt).Minutes())
}

func exportResults(exporter *cli.Exporter, config cli.Config) error {
	if config.JSONPath != "" {
		if err := exporter.ExportJSON(config.JSONPath); err != nil {
			return fmt.Errorf("error exporting JSON: %w", err)
		}
	}

	if config.CSVPath != "" {
		if err := exporter.ExportCSV(config.CSVPath); err != nil {
			return fmt.Errorf("error exporting CSV: %w", err)
		}
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
