package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfnlite/cfnlite/internal/catalog"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [resources|protocols|<kind>]",
		Short: "Show supported resource kinds and their properties",
		Long: `Explain lists what cfnlite can generate.

With no argument (or "resources") it lists the supported resource kinds.
"protocols" lists the protocol presets security group and network ACL rules
expand from. With a kind name it shows the kind's CloudFormation type, the
properties it accepts and the defaults it fills in.

Examples:
    cfnlite explain
    cfnlite explain protocols
    cfnlite explain ec2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "resources" {
				for _, kind := range catalog.Kinds() {
					fmt.Println(kind)
				}
				return nil
			}
			if args[0] == "protocols" {
				for _, name := range catalog.PresetNames() {
					fmt.Println(name)
				}
				return nil
			}
			return explainKind(args[0])
		},
	}
}

func explainKind(name string) error {
	desc, err := catalog.Describe(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
