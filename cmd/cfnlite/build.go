package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/assemble"
	"github.com/cfnlite/cfnlite/internal/litefile"
	"github.com/cfnlite/cfnlite/internal/serialize"
)

func newBuildCmd() *cobra.Command {
	var (
		dryRun       bool
		outputFile   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Generate a CloudFormation template from a cfnlite file",
		Long: `Build compiles a cfnlite file into a CloudFormation template.

With no output flag, build only compiles and reports errors.

Examples:
    cfnlite build stack.yaml --dry-run
    cfnlite build stack.yaml --output-file template.yaml
    cfnlite build stack.yaml --dry-run --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], dryRun, outputFile, outputFormat)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print generated template to console")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "File to write the template to")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "Output format: json or yaml")

	return cmd
}

func runBuild(path string, dryRun bool, outputFile, format string) error {
	if dryRun && outputFile != "" {
		return fmt.Errorf("either print to console or write to a file, not both")
	}

	result := compile(path)

	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	if !dryRun && outputFile == "" {
		// compile check only
		return nil
	}

	var data []byte
	var err error

	switch format {
	case "json":
		data, err = serialize.ToJSON(&result.Template)
	case "yaml":
		data, err = serialize.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}

// compile loads and assembles a cfnlite file into a build result.
func compile(path string) cfnlite.BuildResult {
	doc, err := litefile.Load(path)
	if err != nil {
		return cfnlite.BuildResult{Errors: []string{err.Error()}}
	}

	tmpl, err := assemble.New(newLogger()).Assemble(doc)
	if err != nil {
		return cfnlite.BuildResult{Errors: []string{err.Error()}}
	}

	names := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	return cfnlite.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: names,
	}
}
