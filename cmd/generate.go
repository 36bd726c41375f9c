package cmd

import (
	"fmt"

	"github.com/pb33f/txview/hargen"
	"github.com/spf13/cobra"
)

var (
	genEntryCount int
	genOutputFile string
	genSeed       int64
	genDictPath   string
	genMaxDepth   int
	genMaxNodes   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sample HAR file with validation findings",
	Long: `Generate a HAR (HTTP Archive) file for trying out the inspector. Entries cycle
through every body type the inspector understands (json, xml, html, binary,
form-urlencoded, multipart, plain text and broken json) and carry request and
response validation findings.`,
	Example: `  txview generate -n 100 -o sample.har
  txview generate --entries 16 --seed 42`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genEntryCount, "entries", "n", hargen.DefaultGenerateOptions.EntryCount, "Number of HAR entries to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: a temp file)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVarP(&genDictPath, "dict", "d", hargen.DefaultGenerateOptions.DictionaryPath, "Dictionary file path")
	generateCmd.Flags().IntVar(&genMaxDepth, "max-depth", hargen.DefaultGenerateOptions.MaxJSONDepth, "Maximum JSON nesting depth")
	generateCmd.Flags().IntVar(&genMaxNodes, "max-nodes", hargen.DefaultGenerateOptions.MaxJSONNodes, "Maximum JSON nodes per level")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genEntryCount < 0 {
		return fmt.Errorf("entries must not be negative: %d", genEntryCount)
	}

	opts := hargen.GenerateOptions{
		EntryCount:     genEntryCount,
		DictionaryPath: genDictPath,
		MaxJSONDepth:   genMaxDepth,
		MaxJSONNodes:   genMaxNodes,
		Seed:           genSeed,
	}

	out := cmd.OutOrStdout()
	GetLogger().Debug("generating har", "entries", genEntryCount, "seed", genSeed)

	path := genOutputFile
	total := genEntryCount
	if path != "" {
		if _, err := hargen.GenerateToFile(path, opts); err != nil {
			return fmt.Errorf("failed to generate HAR: %w", err)
		}
	} else {
		result, err := hargen.Generate(opts)
		if err != nil {
			return fmt.Errorf("failed to generate HAR: %w", err)
		}
		path = result.HARFilePath
		total = result.TotalEntries
	}

	fmt.Fprintf(out, "Generated HAR file: %s\n", path)
	fmt.Fprintf(out, "  Total entries: %d\n", total)

	return nil
}
