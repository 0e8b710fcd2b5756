package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ayrat555/solidity/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "soltest",
	Short: "Syntax test runner for Solidity-style compiler frontends",
	Long:  `soltest runs fixture files with embedded diagnostic expectations against a compiler frontend and reports expectation mismatches`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only report failing fixtures")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColorMode turns the persistent --color flag into a concrete
// decision and keeps the fatih/color global in sync for printers that
// consult it.
func resolveColorMode(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var formatted bool
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		formatted = isTerminal(os.Stdout)
	case "on":
		formatted = true
	case "off":
		formatted = false
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	color.NoColor = !formatted
	return formatted, nil
}
