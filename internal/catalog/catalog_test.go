package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfnlite/cfnlite"
)

func TestLookup_caseInsensitive(t *testing.T) {
	for _, name := range []string{"vpc", "VPC", "Vpc"} {
		entry, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, KindVPC, entry.Kind)
		assert.Equal(t, "AWS::EC2::VPC", entry.TargetType)
	}
}

func TestLookup_unknownKind(t *testing.T) {
	_, err := Lookup("lambda")

	var unknownErr *cfnlite.UnknownResourceKindError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "lambda", unknownErr.HumanName)
}

func TestDefaults_freshCopyPerCall(t *testing.T) {
	entry, err := Lookup("ec2")
	require.NoError(t, err)

	first := entry.Defaults()
	first["ImageId"] = "mutated"

	assert.Equal(t, "ami-0b45ae66668865cd6", entry.Defaults()["ImageId"])
}

func TestKinds_sortedAndComplete(t *testing.T) {
	assert.Equal(t, []string{
		"ec2", "internetgateway", "networkacl", "policy", "role",
		"routetable", "securitygroups", "subnet", "vpc",
	}, Kinds())
}

func TestLang_derivedFromProps(t *testing.T) {
	entry, err := Lookup("role")
	require.NoError(t, err)

	// AssumeRolePolicyDocument contributes its four words
	assert.Contains(t, entry.Lang, "Assume")
	assert.Contains(t, entry.Lang, "Role")
	assert.Contains(t, entry.Lang, "Policy")
	assert.Contains(t, entry.Lang, "Document")
}

func TestDescribe(t *testing.T) {
	desc, err := Describe("routetable")
	require.NoError(t, err)

	assert.Equal(t, "routetable", desc.Kind)
	assert.Equal(t, "AWS::EC2::RouteTable", desc.TargetType)
	assert.Equal(t, []string{"Tags", "VpcId"}, desc.Properties)
	assert.Equal(t, map[string]any{"VpcId": "id-example-vpc"}, desc.Defaults)
}

func TestProtocol(t *testing.T) {
	tests := []struct {
		name      string
		port      int
		transport string
	}{
		{"http", 80, "tcp"},
		{"https", 443, "tcp"},
		{"ssh", 22, "tcp"},
		{"icmp", 0, "icmp"},
		{"mysql", 3306, "tcp"},
		{"psql", 5432, "tcp"},
		{"redis", 6379, "tcp"},
		{"mongo", 27017, "tcp"},
		{"memcached", 11211, "tcp"},
		{"ntp", 123, "tcp"},
		{"smtp", 25, "tcp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Protocol(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.port, p.Port)
			assert.Equal(t, tt.transport, p.Transport)
		})
	}
}

func TestProtocol_unknownPreset(t *testing.T) {
	_, err := Protocol("gopher")

	var unknownErr *cfnlite.UnknownProtocolPresetError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "gopher", unknownErr.Name)
}

func TestFallbackPreset(t *testing.T) {
	p := FallbackPreset("gopher")
	assert.Equal(t, Preset{Name: "gopher", Port: 80, Transport: "tcp"}, p)
}

func TestCompanionRules_order(t *testing.T) {
	rules := CompanionRules()
	require.Len(t, rules, 4)

	suffixes := make([]string, len(rules))
	for i, r := range rules {
		suffixes[i] = r.Suffix
	}
	assert.Equal(t, []string{
		"SubnetToRouteTable", "SubnetToNACL", "RouteToIGW", "Attachment",
	}, suffixes)
}

func TestCompanionKinds(t *testing.T) {
	assert.Equal(t,
		[]Kind{KindRouteTable, KindNetworkACL},
		CompanionKinds(KindSubnet))
	assert.Equal(t,
		[]Kind{KindInternetGateway},
		CompanionKinds(KindVPC))
}
