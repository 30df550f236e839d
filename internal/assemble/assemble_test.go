package assemble

import (
	"testing"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/litefile"
	"github.com/cfnlite/cfnlite/internal/serialize"
)

func doc(name string, resources map[string]map[string]any) *litefile.Document {
	return &litefile.Document{Name: name, Resources: resources}
}

func TestAssemble_singleResource(t *testing.T) {
	tmpl, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"vpc": {},
	}))
	require.NoError(t, err)

	data, err := serialize.ToJSON(tmpl)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources": {
			"appVPC": {
				"Type": "AWS::EC2::VPC",
				"Properties": {
					"CidrBlock": "10.0.0.0/16",
					"Tags": [
						{"Key": "default-cfnlite-resource-name", "Value": "appVPC"}
					]
				}
			}
		}
	}`, string(data))
}

func TestAssemble_forwardReferenceResolvesToRef(t *testing.T) {
	// ec2 references the security group declared "later"; two-pass
	// resolution makes declaration order irrelevant
	tmpl, err := New(nil).Assemble(doc("web", map[string]map[string]any{
		"ec2": {
			"securityGroups": "ref securitygroups",
		},
		"securitygroups": {
			"groupDescription": "web traffic",
		},
	}))
	require.NoError(t, err)

	ec2 := tmpl.Resources["webEC2"]
	assert.Equal(t,
		[]any{intrinsics.Ref{LogicalName: "webSECURITYGROUPS"}},
		ec2.Properties["SecurityGroups"])

	sg := tmpl.Resources["webSECURITYGROUPS"]
	assert.Equal(t, "web traffic", sg.Properties["GroupDescription"])
}

func TestAssemble_companionSynthesis(t *testing.T) {
	tmpl, err := New(nil).Assemble(doc("net", map[string]map[string]any{
		"vpc":             {},
		"internetgateway": {},
	}))
	require.NoError(t, err)

	attachment, ok := tmpl.Resources["netINTERNETGATEWAYAttachment"]
	require.True(t, ok, "gateway attachment should be synthesized")

	assert.Equal(t, "AWS::EC2::VPCGatewayAttachment", attachment.Type)
	assert.Equal(t,
		intrinsics.Ref{LogicalName: "netVPC"},
		attachment.Properties["VpcId"])
	assert.Equal(t,
		[]string{"netINTERNETGATEWAY", "netVPC"},
		attachment.DependsOn)
}

func TestAssemble_networkACLEntriesInTemplate(t *testing.T) {
	tmpl, err := New(nil).Assemble(doc("net", map[string]map[string]any{
		"networkacl": {
			"ingress": []any{"ssh"},
			"vpcid":   "vpc-123",
		},
	}))
	require.NoError(t, err)

	require.Contains(t, tmpl.Resources, "netNETWORKACL")
	require.Contains(t, tmpl.Resources, "netNETWORKACLRuleSSHIn")

	entry := tmpl.Resources["netNETWORKACLRuleSSHIn"]
	assert.Equal(t,
		intrinsics.Ref{LogicalName: "netNETWORKACL"},
		entry.Properties["NetworkAclId"])
}

func TestAssemble_dependsOnAttribute(t *testing.T) {
	tmpl, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"routetable": {
			"dependsOn": "ref vpc",
		},
		"vpc": {},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"appVPC"}, tmpl.Resources["appROUTETABLE"].DependsOn)
}

func TestAssemble_resourceAttributesInTemplate(t *testing.T) {
	tmpl, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"vpc": {
			"deletionPolicy": "Retain",
			"metadata":       map[string]any{"owner": "platform"},
		},
	}))
	require.NoError(t, err)

	vpc := tmpl.Resources["appVPC"]
	assert.Equal(t, "Retain", vpc.DeletionPolicy)
	assert.Equal(t, map[string]any{"owner": "platform"}, vpc.Metadata)

	data, err := serialize.ToJSON(tmpl)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DeletionPolicy": "Retain"`)
}

func TestAssemble_description(t *testing.T) {
	d := doc("app", map[string]map[string]any{"vpc": {}})
	d.Description = "network baseline"

	tmpl, err := New(nil).Assemble(d)
	require.NoError(t, err)
	assert.Equal(t, "network baseline", tmpl.Description)
}

func TestAssemble_missingName(t *testing.T) {
	_, err := New(nil).Assemble(&litefile.Document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestAssemble_unknownKind(t *testing.T) {
	_, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"lambda": {},
	}))

	var unknownErr *cfnlite.UnknownResourceKindError
	require.ErrorAs(t, err, &unknownErr)
}

func TestAssemble_duplicateKindAcrossCasings(t *testing.T) {
	_, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"ec2": {},
		"EC2": {},
	}))

	var dupErr *cfnlite.DuplicateResourceKindError
	require.ErrorAs(t, err, &dupErr)
}

func TestAssemble_unresolvedReference(t *testing.T) {
	_, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"ec2": {"securityGroups": "ref securitygroups"},
	}))

	var unresolvedErr *cfnlite.UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolvedErr)
	assert.Equal(t, "securitygroups", unresolvedErr.Target)
}

func TestAssemble_referenceCycle(t *testing.T) {
	_, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"ec2": {"additionalInfo": "ref vpc"},
		"vpc": {"cidrBlock": "ref ec2"},
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestAssemble_unknownProperty(t *testing.T) {
	_, err := New(nil).Assemble(doc("app", map[string]map[string]any{
		"vpc": {"bucketName": "nope"},
	}))

	var unknownErr *cfnlite.UnknownPropertyError
	require.ErrorAs(t, err, &unknownErr)
}

func TestAssemble_deterministicOutput(t *testing.T) {
	input := map[string]map[string]any{
		"vpc":             {"tags": map[string]any{"team": "net"}},
		"subnet":          {"vpcId": "ref vpc"},
		"routetable":      {"vpcId": "ref vpc"},
		"internetgateway": {},
	}

	first, err := New(nil).Assemble(doc("stack", input))
	require.NoError(t, err)
	second, err := New(nil).Assemble(doc("stack", input))
	require.NoError(t, err)

	firstJSON, err := serialize.ToJSON(first)
	require.NoError(t, err)
	secondJSON, err := serialize.ToJSON(second)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
}
