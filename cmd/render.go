package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pb33f/txview/inspect"
	"github.com/pb33f/txview/motor"
	"github.com/pb33f/txview/motor/model"
	"github.com/pb33f/txview/tui"
	"github.com/spf13/cobra"
)

var (
	renderEntryIndex int
	renderFormat     string
	renderWidth      int
)

var renderCmd = &cobra.Command{
	Use:   "render <har-file>",
	Short: "Print the inspector view of a single transaction",
	Long: `Render one transaction of a HAR file without the interactive inspector. The
html format writes a standalone page with class based highlighting and its
stylesheet, the terminal formats print every inspector tab with ANSI colours.`,
	Args: cobra.ExactArgs(1),
	Example: `  txview render recording.har --entry 3
  txview render recording.har -e 0 --format html > entry.html
  txview render recording.har -e 2 --format terminal16m --style dracula`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVarP(&renderEntryIndex, "entry", "e", 0, "Zero based index of the entry to render")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", inspect.HighlightTerminal256, "Output format: html, terminal256 or terminal16m")
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 100, "Width of terminal output")
}

// renderOptions configures a single render pass
type renderOptions struct {
	Format string
	Style  string
	Width  int
	Logger *slog.Logger
}

func runRender(cmd *cobra.Command, args []string) error {
	harFile := args[0]
	logger := GetLogger()

	if err := ValidateHARFile(harFile); err != nil {
		return fmt.Errorf("invalid HAR file: %w", err)
	}
	if renderEntryIndex < 0 {
		return fmt.Errorf("entry index must not be negative: %d", renderEntryIndex)
	}

	// nothing past the wanted entry is needed
	readerOpts := motor.DefaultReaderOptions()
	readerOpts.MaxEntries = renderEntryIndex + 1

	entries, err := motor.NewHARReader(readerOpts, logger).ReadFile(cmd.Context(), harFile)
	if err != nil {
		return err
	}
	if renderEntryIndex >= len(entries) {
		return fmt.Errorf("entry %d out of range, the file holds %d entries", renderEntryIndex, len(entries))
	}

	entry := entries[renderEntryIndex]
	logger.Debug("rendering entry", "index", entry.Index, "method", entry.Method(), "url", entry.URL())

	return renderTransaction(cmd.OutOrStdout(), entry.Transaction, renderOptions{
		Format: renderFormat,
		Style:  style,
		Width:  renderWidth,
		Logger: logger,
	})
}

// renderTransaction writes the composed view of tx to w in the requested format.
func renderTransaction(w io.Writer, tx *model.HttpTransaction, opts renderOptions) error {
	if opts.Style == "" {
		opts.Style = inspect.DefaultFormatterOptions().HighlightStyle
	}

	formatter, err := inspect.NewFormatter(inspect.FormatterOptions{
		HighlightFormat: opts.Format,
		HighlightStyle:  opts.Style,
		Logger:          opts.Logger,
	})
	if err != nil {
		return err
	}

	if opts.Format == inspect.HighlightHTML {
		return renderHTML(w, tx, formatter, opts)
	}
	return renderTerminal(w, tx, formatter, opts)
}

// renderTerminal prints every tab of the terminal inspector one after the other.
func renderTerminal(w io.Writer, tx *model.HttpTransaction, formatter *inspect.Formatter, opts renderOptions) error {
	inspector := tui.NewInspector(formatter, opts.Logger)
	inspector.SetTransaction(tx)

	var b strings.Builder
	for _, tab := range []tui.Tab{tui.TabViolations, tui.TabRequest, tui.TabResponse} {
		inspector.SetTab(tab)
		b.WriteString(inspector.Render(opts.Width))
		b.WriteString("\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
