package builders

import (
	"strings"

	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
)

// buildNetworkACL builds the ACL itself plus one NetworkAclEntry resource per
// protocol preset in the ingress/egress pseudo properties. Entry logical IDs
// are derived from the ACL's: <aclID>Rule<PRESET><In|Out>.
func buildNetworkACL(in Input) ([]Built, error) {
	userProps := make(map[string]any, len(in.Props))
	for k, v := range in.Props {
		if k == "Ingress" || k == "Egress" {
			continue
		}
		userProps[k] = v
	}

	def, err := assemble(in, userProps)
	if err != nil {
		return nil, err
	}
	out := []Built{{LogicalID: in.LogicalID, Def: def}}

	for _, direction := range []string{"Ingress", "Egress"} {
		raw, ok := in.Props[direction]
		if !ok {
			continue
		}
		entries, err := naclEntries(in, direction, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}

	return out, nil
}

func naclEntries(in Input, direction string, raw any) ([]Built, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &cfnlite.InvalidPropertyValueError{
			Kind: string(in.Entry.Kind), Property: direction,
			Reason: "expected a list of protocol presets",
		}
	}
	egress := direction == "Egress"

	suffix := "In"
	if egress {
		suffix = "Out"
	}

	out := make([]Built, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, &cfnlite.InvalidPropertyValueError{
				Kind: string(in.Entry.Kind), Property: direction,
				Reason: "entries must be protocol preset names",
			}
		}

		id := in.LogicalID + "Rule" + strings.ToUpper(name) + suffix
		if err := in.Index.Reserve(id); err != nil {
			return nil, err
		}

		out = append(out, Built{
			LogicalID: id,
			Def: cfnlite.ResourceDef{
				Type:       "AWS::EC2::NetworkAclEntry",
				Properties: naclEntry(in, name, egress),
			},
		})
	}
	return out, nil
}

func naclEntry(in Input, name string, egress bool) map[string]any {
	props := map[string]any{
		"CidrBlock":    "0.0.0.0/0",
		"Egress":       egress,
		"NetworkAclId": intrinsics.Ref{LogicalName: in.LogicalID},
		"RuleAction":   "allow",
	}

	preset, err := catalog.Protocol(strings.ToLower(name))
	if err != nil {
		preset = catalog.FallbackPreset(name)
	}

	if preset.Transport == "icmp" {
		// ICMP is a network layer protocol: no port range, typed instead.
		// Type 8 is echo request, type 0 echo reply.
		icmpType := 8
		if egress {
			icmpType = 0
		}
		props["Protocol"] = catalog.ProtocolNumberICMP
		props["Icmp"] = map[string]any{"Code": 0, "Type": icmpType}
		props["RuleNumber"] = 100
		return props
	}

	props["Protocol"] = catalog.ProtocolNumberTCP
	props["PortRange"] = map[string]any{"From": preset.Port, "To": preset.Port}
	props["RuleNumber"] = preset.Port
	return props
}
