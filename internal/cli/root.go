// Package cli wires the tapemark commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/tapemark/tapemark/internal/config"
)

var (
	cfgFile string
	cfg     config.Config

	// Global JSON output flag - inherited by all subcommands
	jsonOutput bool

	// Global color control flag - inherited by all subcommands
	noColor bool

	verbose bool

	// Build information - set by goreleaser via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tapemark",
	Short: "Timeline annotation editor for time-based media",
	Long: `Tapemark is a terminal editor for annotating time-based media:
drag segments and drop timestamps onto tracks, label them from a
taxonomy, and export the marks as JSON for downstream pipelines.

Quick Start:
  tapemark edit game.tapemark.json       # Open the editor
  tapemark export game.tapemark.json     # Print time_marks JSON
  tapemark labels --file labels.yaml     # Inspect a label taxonomy`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			os.Setenv("NO_COLOR", "1")
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		setupLogging()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := config.Validate(&cfg); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		return nil
	},
}

// setupLogging routes slog away from stdout so log lines never tear the
// TUI. Verbose runs log to stderr, everything else to a file next to the
// config.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return
	}
	p, err := config.DefaultPath()
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		return
	}
	dir := filepath.Dir(p)
	_ = os.MkdirAll(dir, 0o755)
	f, err := os.OpenFile(filepath.Join(dir, "tapemark.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if !jsonOutput {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/tapemark/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (machine-readable)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to stderr")

	rootCmd.AddCommand(
		newEditCmd(),
		newExportCmd(),
		newLabelsCmd(),
		newTracksCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				fmt.Fprintf(cmd.OutOrStdout(), `{"version":%q,"commit":%q,"date":%q}`+"\n", Version, Commit, Date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tapemark %s (%s, %s)\n", Version, Commit, Date)
			return nil
		},
	}
}
