package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/tui"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	style      string
	maxEntries int
	Logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "txview <har-file>",
		Short: "An inspector for captured API transactions",
		Long: `txview reads a HAR file exported by an API traffic capture, including the
request and response validation findings attached to each entry, and lets you
explore every transaction in a terminal inspector. Bodies are pretty printed and
highlighted by content type, forms are decoded and binary data is suppressed.`,
		Args: cobra.ExactArgs(1),
		Example: `  txview recording.har
  txview recording.har --style dracula
  txview recording.har -v`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runInspector,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&style, "style", inspect.DefaultFormatterOptions().HighlightStyle, "Syntax highlighting style")
	rootCmd.PersistentFlags().IntVar(&maxEntries, "max-entries", 0, "Stop reading after this many entries (0 = no limit)")

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

func runInspector(cmd *cobra.Command, args []string) error {
	harFile := args[0]

	if err := ValidateHARFile(harFile); err != nil {
		return fmt.Errorf("invalid HAR file: %w", err)
	}

	opts := tui.DefaultOptions()
	opts.Formatter.HighlightStyle = style
	opts.Reader.MaxEntries = maxEntries
	opts.Logger = GetLogger()

	if err := LaunchTUI(harFile, opts); err != nil {
		return fmt.Errorf("failed to launch TUI: %w", err)
	}

	return nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// ValidateHARFile checks that the HAR file exists and is not a directory.
func ValidateHARFile(harFile string) error {
	if harFile == "" {
		return fmt.Errorf("HAR file path is required")
	}

	info, err := os.Stat(harFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("HAR file does not exist: %s", harFile)
		}
		return fmt.Errorf("error accessing HAR file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", harFile)
	}

	return nil
}
