package builders

import (
	"testing"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfnlite/cfnlite"
)

func TestBuildNetworkACL_entriesPerPresetPerDirection(t *testing.T) {
	in := testInput(t, "networkacl", map[string]any{
		"Ingress": []any{"ssh", "https"},
		"Egress":  []any{"https"},
	})

	built, err := buildNetworkACL(in)
	require.NoError(t, err)
	require.Len(t, built, 4)

	acl := built[0]
	assert.Equal(t, "stackNETWORKACL", acl.LogicalID)
	assert.Equal(t, "AWS::EC2::NetworkAcl", acl.Def.Type)
	assert.Equal(t, "id-example-vpc", acl.Def.Properties["VpcId"])
	// the pseudo properties never reach the ACL resource itself
	assert.NotContains(t, acl.Def.Properties, "Ingress")
	assert.NotContains(t, acl.Def.Properties, "Egress")

	ssh := built[1]
	assert.Equal(t, "stackNETWORKACLRuleSSHIn", ssh.LogicalID)
	assert.Equal(t, "AWS::EC2::NetworkAclEntry", ssh.Def.Type)
	assert.Equal(t, map[string]any{
		"CidrBlock":    "0.0.0.0/0",
		"Egress":       false,
		"NetworkAclId": intrinsics.Ref{LogicalName: "stackNETWORKACL"},
		"PortRange":    map[string]any{"From": 22, "To": 22},
		"Protocol":     6,
		"RuleAction":   "allow",
		"RuleNumber":   22,
	}, ssh.Def.Properties)

	assert.Equal(t, "stackNETWORKACLRuleHTTPSIn", built[2].LogicalID)

	out := built[3]
	assert.Equal(t, "stackNETWORKACLRuleHTTPSOut", out.LogicalID)
	assert.Equal(t, true, out.Def.Properties["Egress"])
	assert.Equal(t, 443, out.Def.Properties["RuleNumber"])
}

func TestBuildNetworkACL_icmpEntries(t *testing.T) {
	in := testInput(t, "networkacl", map[string]any{
		"Ingress": []any{"icmp"},
		"Egress":  []any{"icmp"},
	})

	built, err := buildNetworkACL(in)
	require.NoError(t, err)
	require.Len(t, built, 3)

	ingress := built[1].Def.Properties
	assert.Equal(t, 1, ingress["Protocol"])
	assert.Equal(t, map[string]any{"Code": 0, "Type": 8}, ingress["Icmp"])
	assert.Equal(t, 100, ingress["RuleNumber"])
	assert.NotContains(t, ingress, "PortRange")

	egress := built[2].Def.Properties
	assert.Equal(t, map[string]any{"Code": 0, "Type": 0}, egress["Icmp"])
}

func TestBuildNetworkACL_entryIDsReserved(t *testing.T) {
	in := testInput(t, "networkacl", map[string]any{
		"Ingress": []any{"ssh"},
	})

	_, err := buildNetworkACL(in)
	require.NoError(t, err)

	// the entry's logical ID is taken now
	err = in.Index.Reserve("stackNETWORKACLRuleSSHIn")
	var dupErr *cfnlite.DuplicateLogicalIDError
	require.ErrorAs(t, err, &dupErr)
}

func TestBuildNetworkACL_nonStringEntryRejected(t *testing.T) {
	in := testInput(t, "networkacl", map[string]any{
		"Ingress": []any{42},
	})

	_, err := buildNetworkACL(in)

	var invalidErr *cfnlite.InvalidPropertyValueError
	require.ErrorAs(t, err, &invalidErr)
}
