// Command cfnlite generates CloudFormation templates from cfnlite files.
//
// Usage:
//
//	cfnlite build stack.yaml --dry-run     Print the generated template
//	cfnlite explain ec2                    Show supported properties for a kind
//	cfnlite graph stack.yaml               Dependency graph of the template
//	cfnlite lint stack.yaml                Lint the generated template
//	cfnlite watch stack.yaml               Rebuild on file changes
//	cfnlite version                        Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "cfnlite",
		Short: "Generate CloudFormation templates from cfnlite files",
		Long: `cfnlite compiles a short, flat resource description into a complete
CloudFormation template.

A cfnlite file names the stack and lists resources by kind:

    name: myStack
    resources:
      vpc:
        tags:
          team: platform
      internetgateway: {}

cfnlite fills in required fields, resolves "ref <name>" tokens and
synthesizes the attachment/association resources the resources need:

    cfnlite build stack.yaml --dry-run`,
	}

	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newBuildCmd(),
		newExplainCmd(),
		newGraphCmd(),
		newLintCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger: human-readable debug output with
// --verbose, silent otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cfnlite %s\n", getVersion())
		},
	}
}
