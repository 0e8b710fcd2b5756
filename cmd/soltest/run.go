package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/ayrat555/solidity/internal/frontend"
	"github.com/ayrat555/solidity/internal/runner"
	"github.com/ayrat555/solidity/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file|directory ...]",
	Short: "Run syntax-test fixtures against the compiler frontend",
	Long: `Run fixture files (test source plus expected diagnostics behind a "// ----"
delimiter) against the configured compiler frontend and report every mismatch`,
	RunE: runFixtures,
}

func init() {
	runCmd.Flags().String("compiler", "", "compiler command line (overrides soltest.toml)")
	runCmd.Flags().String("source-prefix", "", "synthetic source prelude the compiler sees (overrides soltest.toml)")
	runCmd.Flags().String("extension", "", "fixture file extension (default .sol)")
	runCmd.Flags().Int("jobs", 0, "max parallel fixture runs (0=auto)")
	runCmd.Flags().Bool("accept", false, "rewrite failing fixtures' expectations from the obtained diagnostics")
	runCmd.Flags().Bool("cache", false, "skip fixtures whose content already passed")
	runCmd.Flags().String("ui", "off", "live progress display (auto|on|off)")
}

func runFixtures(cmd *cobra.Command, args []string) error {
	formatted, err := resolveColorMode(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	accept, err := cmd.Flags().GetBool("accept")
	if err != nil {
		return fmt.Errorf("failed to get accept flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	fe, searchDirs, ext, err := configureRun(cmd, args)
	if err != nil {
		return err
	}

	files, err := collectFixtures(searchDirs, ext)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no %s fixtures found in %s\n", ext, strings.Join(searchDirs, ", "))
		return nil
	}

	opts := runner.Options{
		Jobs:      jobs,
		Accept:    accept,
		Formatted: formatted,
	}
	if useCache {
		cache, err := runner.OpenCache("soltest")
		if err != nil {
			return fmt.Errorf("failed to open result cache: %w", err)
		}
		opts.Cache = cache
	}

	var summary runner.Summary
	var results []runner.FileResult
	if shouldUseTUI(uiMode) {
		summary, results, err = runWithUI(cmd, fe, files, opts)
	} else {
		summary, results, err = runner.Run(cmd.Context(), fe, files, opts)
	}
	if err != nil {
		return err
	}

	printResults(cmd, results, quiet)
	printSummary(cmd, summary)

	if summary.Failed > 0 || summary.Errored > 0 {
		os.Exit(1)
	}
	return nil
}

// configureRun merges soltest.toml with command flags; flags win.
func configureRun(cmd *cobra.Command, args []string) (frontend.Frontend, []string, string, error) {
	var cfg testConfig
	manifest, found, err := loadTestManifest(".")
	if err != nil {
		return nil, nil, "", err
	}
	if found {
		cfg = manifest.Config
	}

	compilerFlag, err := cmd.Flags().GetString("compiler")
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get compiler flag: %w", err)
	}
	if compilerFlag != "" {
		cfg.Compiler.Command = strings.Fields(compilerFlag)
	}
	if len(cfg.Compiler.Command) == 0 {
		return nil, nil, "", fmt.Errorf("no compiler configured: set --compiler or [compiler].command in soltest.toml")
	}

	prefixFlag, err := cmd.Flags().GetString("source-prefix")
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get source-prefix flag: %w", err)
	}
	if cmd.Flags().Changed("source-prefix") {
		cfg.Compiler.SourcePrefix = prefixFlag
	}

	ext, err := cmd.Flags().GetString("extension")
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to get extension flag: %w", err)
	}
	if ext == "" {
		ext = cfg.Tests.Extension
	}
	if ext == "" {
		ext = ".sol"
	}

	searchDirs := args
	if len(searchDirs) == 0 {
		dir := cfg.Tests.Dir
		if dir == "" {
			dir = "test"
		}
		if found && !filepath.IsAbs(dir) {
			dir = filepath.Join(manifest.Root, dir)
		}
		searchDirs = []string{dir}
	}

	fe := &frontend.Exec{
		Command:      cfg.Compiler.Command,
		SourcePrefix: cfg.Compiler.SourcePrefix,
	}
	return fe, searchDirs, ext, nil
}

func collectFixtures(paths []string, ext string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := runner.ListFiles(path, ext)
			if err != nil {
				return nil, fmt.Errorf("failed to list fixtures in %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	return files, nil
}

func runWithUI(cmd *cobra.Command, fe frontend.Frontend, files []string, opts runner.Options) (runner.Summary, []runner.FileResult, error) {
	type outcome struct {
		summary runner.Summary
		results []runner.FileResult
		err     error
	}

	events := make(chan runner.Event, 256)
	outcomeCh := make(chan outcome, 1)
	opts.Events = events

	go func() {
		summary, results, err := runner.Run(cmd.Context(), fe, files, opts)
		outcomeCh <- outcome{summary: summary, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("running syntax tests", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.summary, out.results, uiErr
	}
	return out.summary, out.results, out.err
}

func printResults(cmd *cobra.Command, results []runner.FileResult, quiet bool) {
	out := cmd.OutOrStdout()
	nameWidth := 0
	for _, r := range results {
		if w := runewidth.StringWidth(r.Path); w > nameWidth {
			nameWidth = w
		}
	}

	for _, r := range results {
		name := runewidth.FillRight(r.Path, nameWidth)
		switch r.Status {
		case runner.StatusPassed:
			if !quiet {
				fmt.Fprintf(out, "  ok   %s\n", name)
			}
		case runner.StatusSkipped:
			if !quiet {
				fmt.Fprintf(out, "  skip %s (cached)\n", name)
			}
		case runner.StatusErrored:
			fmt.Fprintf(out, "  ERR  %s: %v\n", name, r.Err)
		case runner.StatusFailed:
			fmt.Fprintf(out, "  FAIL %s\n", name)
			fmt.Fprint(out, r.Output)
			if !strings.HasSuffix(r.Output, "\n") {
				fmt.Fprintln(out)
			}
			if r.Updated {
				fmt.Fprintf(out, "  updated expectations in %s\n", r.Path)
			}
		}
	}
}

func printSummary(cmd *cobra.Command, summary runner.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nTest results: %d total, %d passed, %d failed, %d errored, %d skipped (%.2fs)\n",
		summary.Total, summary.Passed, summary.Failed, summary.Errored, summary.Skipped, summary.Duration.Seconds())
}

type uiModeValue string

const (
	uiModeAuto uiModeValue = "auto"
	uiModeOn   uiModeValue = "on"
	uiModeOff  uiModeValue = "off"
)

func readUIMode(value string) (uiModeValue, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiModeValue) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
