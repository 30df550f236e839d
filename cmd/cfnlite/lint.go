package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cfnlite/cfnlite/internal/serialize"
	"github.com/cfnlite/cfnlite/internal/validation"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Lint the template generated from a cfnlite file",
		Long: `Lint compiles a cfnlite file and runs cfn-lint against the result.

cfnlite itself only checks what it needs to compile; lint catches the
CloudFormation-level problems the compiler does not look for.

Example:
    cfnlite lint stack.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(args[0])
		},
	}
}

func runLint(path string) error {
	result := compile(path)
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	data, err := serialize.ToJSON(&result.Template)
	if err != nil {
		return err
	}

	// cfn-lint-go wants a file on disk
	tmpDir, err := os.MkdirTemp("", "cfnlite-lint-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	tmpPath := filepath.Join(tmpDir, "template.json")
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	lintResult, err := validation.LintFile(tmpPath)
	if err != nil {
		return err
	}

	for _, issue := range lintResult.Errors {
		fmt.Printf("ERROR   %s\n", issue)
	}
	for _, issue := range lintResult.Warnings {
		fmt.Printf("WARNING %s\n", issue)
	}
	for _, issue := range lintResult.Informational {
		fmt.Printf("INFO    %s\n", issue)
	}

	if !lintResult.Passed {
		return fmt.Errorf("lint failed: %d issues", lintResult.TotalIssues())
	}

	fmt.Println("Lint passed")
	return nil
}
