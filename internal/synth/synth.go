// Package synth adds companion resources after every declaration is built:
// the association and attachment resources that link declared kinds together
// (subnet to route table, gateway to VPC, and so on).
//
// Synthesis is presence based. A rule fires when both of its kinds are in the
// document, and the companions it emits are append only; declared resources
// are never modified.
package synth

import (
	"sort"

	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
	"github.com/cfnlite/cfnlite/internal/resolve"
)

// Resource is one synthesized companion.
type Resource struct {
	LogicalID string
	Def       cfnlite.ResourceDef
}

// Companions runs the rule set over the document's kinds and returns the
// companions to append, in rule order. byKind maps each declared kind onto
// the logical IDs of its instances; a rule whose kind has more than one
// instance cannot pick a link target and fails instead of guessing.
func Companions(ix *resolve.Index, byKind map[catalog.Kind][]string) ([]Resource, error) {
	var out []Resource

	for _, rule := range catalog.CompanionRules() {
		primary, ok, err := single(rule, rule.Primary, byKind)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		secondary, ok, err := single(rule, rule.Secondary, byKind)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		id := primary + rule.Suffix
		if err := ix.Reserve(id); err != nil {
			return nil, err
		}

		props := map[string]any{
			rule.PrimaryProp:   intrinsics.Ref{LogicalName: primary},
			rule.SecondaryProp: intrinsics.Ref{LogicalName: secondary},
		}
		for k, v := range rule.Extra {
			props[k] = v
		}

		dependsOn := []string{primary, secondary}
		sort.Strings(dependsOn)

		out = append(out, Resource{
			LogicalID: id,
			Def: cfnlite.ResourceDef{
				Type:       rule.TargetType,
				Properties: props,
				DependsOn:  dependsOn,
			},
		})
	}

	return out, nil
}

func single(rule catalog.CompanionRule, kind catalog.Kind, byKind map[catalog.Kind][]string) (string, bool, error) {
	ids := byKind[kind]
	switch len(ids) {
	case 0:
		return "", false, nil
	case 1:
		return ids[0], true, nil
	default:
		return "", false, &cfnlite.AmbiguousCompanionLinkError{
			Companion: rule.Suffix,
			Kind:      string(kind),
			Count:     len(ids),
		}
	}
}
