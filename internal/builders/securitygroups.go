package builders

import (
	"fmt"
	"strings"

	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
	"github.com/cfnlite/cfnlite/internal/resolve"
)

// buildSecurityGroups expands protocol presets in the ingress/egress lists
// into full security group rules. Presets name application layer protocols;
// the emitted rule carries the transport layer protocol CloudFormation
// actually wants. Mapping rule entries and ref tokens pass through untouched.
func buildSecurityGroups(in Input) ([]Built, error) {
	userProps := make(map[string]any, len(in.Props))
	for k, v := range in.Props {
		userProps[k] = v
	}

	for _, direction := range []string{"SecurityGroupIngress", "SecurityGroupEgress"} {
		raw, ok := userProps[direction]
		if ok {
			expanded, err := securityGroupRules(in, direction, raw)
			if err != nil {
				return nil, err
			}
			userProps[direction] = expanded
		}
	}

	def, err := assemble(in, userProps)
	if err != nil {
		return nil, err
	}

	return []Built{{
		LogicalID: in.LogicalID,
		Def:       def,
		AttrContexts: map[string]string{
			"SecurityGroupEgress":  "GroupId",
			"SecurityGroupIngress": "GroupId",
		},
	}}, nil
}

func securityGroupRules(in Input, direction string, raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, &cfnlite.InvalidPropertyValueError{
			Kind: string(in.Entry.Kind), Property: direction,
			Reason: "expected a list of protocol presets or rules",
		}
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok || resolve.IsRefToken(item) {
			// hand-written rule mappings and references pass through
			out = append(out, item)
			continue
		}
		out = append(out, securityGroupRule(in, direction, name))
	}
	return out, nil
}

func securityGroupRule(in Input, direction, name string) map[string]any {
	preset, err := catalog.Protocol(strings.ToLower(name))
	if err != nil {
		// unknown presets fall back to plain HTTP rather than aborting
		preset = catalog.FallbackPreset(name)
	}

	flow := "Inbound"
	if direction == "SecurityGroupEgress" {
		flow = "Outbound"
	}

	fromPort := preset.Port
	// ICMP ingress needs the echo request type in FromPort
	if preset.Transport == "icmp" && direction == "SecurityGroupIngress" {
		fromPort = 8
	}

	return map[string]any{
		"CidrIp":      "0.0.0.0/0",
		"Description": fmt.Sprintf("%s %s traffic", flow, strings.ToUpper(name)),
		"FromPort":    fromPort,
		"GroupId":     intrinsics.GetAtt{LogicalName: in.LogicalID, Attribute: "GroupId"},
		"IpProtocol":  preset.Transport,
		"ToPort":      preset.Port,
	}
}
