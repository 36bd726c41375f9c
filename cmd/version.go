package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// These variables are typically set during build time using ldflags
// Example: go build -ldflags "-X github.com/pb33f/txview/cmd.Version=1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version information about txview.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, RenderBanner())
	fmt.Fprintf(w, "txview - API Transaction Inspector\n")
	fmt.Fprintf(w, "Version:    %s\n", Version)
	fmt.Fprintf(w, "Git Commit: %s\n", GitCommit)
	fmt.Fprintf(w, "Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
