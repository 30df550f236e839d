package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cfnlite/cfnlite/internal/graph"
)

func newGraphCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph of the compiled template.

The output can be rendered with Graphviz:
    cfnlite graph stack.yaml | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    cfnlite graph stack.yaml -f mermaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")

	return cmd
}

func runGraph(path, format string) error {
	var graphFormat graph.Format
	switch format {
	case "dot":
		graphFormat = graph.FormatDOT
	case "mermaid":
		graphFormat = graph.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	result := compile(path)
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	gen := &graph.Generator{Format: graphFormat}
	return gen.Generate(&result.Template, os.Stdout)
}
