package builders

import (
	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
	"github.com/cfnlite/cfnlite/internal/props"
)

// Statements arrive flattened: a list of mappings with statement-level keys
// (action, effect, principal, resources, sid) instead of the full nested
// policy document. The builders below expand the shorthand.

const defaultPolicyName = "Example cfnlite policy"

func buildRole(in Input) ([]Built, error) {
	userProps := make(map[string]any, len(in.Props))
	for k, v := range in.Props {
		userProps[k] = v
	}

	if raw, ok := userProps["AssumeRolePolicyDocument"]; ok {
		doc, err := policyDocument(in.Entry, raw)
		if err != nil {
			return nil, err
		}
		userProps["AssumeRolePolicyDocument"] = doc
	}

	if raw, ok := userProps["Policies"]; ok {
		doc, err := policyDocument(in.Entry, raw)
		if err != nil {
			return nil, err
		}
		// inline policies are a list of named documents
		userProps["Policies"] = []any{map[string]any{
			"PolicyName":     defaultPolicyName,
			"PolicyDocument": doc,
		}}
	}

	return buildWith(in, userProps)
}

func buildPolicy(in Input) ([]Built, error) {
	userProps := make(map[string]any, len(in.Props))
	for k, v := range in.Props {
		userProps[k] = v
	}

	if raw, ok := userProps["Statement"]; ok {
		delete(userProps, "Statement")
		doc, err := policyDocument(in.Entry, raw)
		if err != nil {
			return nil, err
		}
		userProps["PolicyDocument"] = doc
	}

	return buildWith(in, userProps)
}

func buildWith(in Input, userProps map[string]any) ([]Built, error) {
	def, err := assemble(in, userProps)
	if err != nil {
		return nil, err
	}
	return []Built{{LogicalID: in.LogicalID, Def: def}}, nil
}

// policyDocument wraps flattened statements into a versioned document.
func policyDocument(entry catalog.Entry, raw any) (map[string]any, error) {
	statements, err := flattenStatements(entry, raw)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"Version":   "2012-10-17",
		"Statement": statements,
	}, nil
}

// flattenStatements normalizes each shorthand statement against the statement
// pseudo entry: keys are case normalized, scalars coerced to lists where the
// schema wants lists, defaults applied and pruned back to what the user set
// plus the statement's required trio.
func flattenStatements(entry catalog.Entry, raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	stmtEntry := catalog.StatementEntry()

	out := make([]any, 0, len(items))
	for _, item := range items {
		mapping, ok := item.(map[string]any)
		if !ok {
			return nil, &cfnlite.InvalidPropertyValueError{
				Kind: string(entry.Kind), Property: "Statement",
				Reason: "statements must be mappings",
			}
		}

		normalized, err := props.Normalize(stmtEntry, mapping)
		if err != nil {
			return nil, err
		}

		merged := merge(stmtEntry.Defaults(), normalized)
		out = append(out, prune(merged, normalized, stmtEntry.Required))
	}
	return out, nil
}
