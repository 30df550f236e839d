package resolve

import (
	"testing"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfnlite/cfnlite"
)

func TestLogicalID(t *testing.T) {
	assert.Equal(t, "myStackEC2", LogicalID("myStack", "ec2"))
	assert.Equal(t, "myStackVPC", LogicalID("myStack", "vpc"))
	assert.Equal(t, "sSECURITYGROUPS", LogicalID("s", "securityGroups"))
}

func TestIndex_AddAndLookup(t *testing.T) {
	ix := NewIndex("stack")

	id, err := ix.Add("vpc", "vpc")
	require.NoError(t, err)
	assert.Equal(t, "stackVPC", id)

	// lookups are case insensitive on the human name
	got, err := ix.LogicalID("VPC")
	require.NoError(t, err)
	assert.Equal(t, "stackVPC", got)
}

func TestIndex_duplicateKind(t *testing.T) {
	ix := NewIndex("stack")

	_, err := ix.Add("ec2", "ec2")
	require.NoError(t, err)

	_, err = ix.Add("EC2", "ec2")

	var dupErr *cfnlite.DuplicateResourceKindError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "ec2", dupErr.Kind)
}

func TestIndex_reserveCollision(t *testing.T) {
	ix := NewIndex("stack")

	_, err := ix.Add("vpc", "vpc")
	require.NoError(t, err)

	err = ix.Reserve("stackVPC")

	var dupErr *cfnlite.DuplicateLogicalIDError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "stackVPC", dupErr.LogicalID)
}

func TestIndex_unresolvedReference(t *testing.T) {
	ix := NewIndex("stack")

	_, err := ix.LogicalID("subnet")

	var unresolvedErr *cfnlite.UnresolvedReferenceError
	require.ErrorAs(t, err, &unresolvedErr)
	assert.Equal(t, "subnet", unresolvedErr.Target)
}

func TestIsRefToken(t *testing.T) {
	assert.True(t, IsRefToken("ref vpc"))
	assert.True(t, IsRefToken("  ref vpc  "))
	assert.True(t, IsRefToken("ref"), "bare keyword must be caught, not passed through")

	assert.False(t, IsRefToken("reference"))
	assert.False(t, IsRefToken("refvpc"))
	assert.False(t, IsRefToken(42))
	assert.False(t, IsRefToken(nil))
}

func TestRefTarget(t *testing.T) {
	target, err := RefTarget("ref vpc")
	require.NoError(t, err)
	assert.Equal(t, "vpc", target)

	for _, token := range []string{"ref", "ref a b"} {
		_, err := RefTarget(token)
		var invalidErr *cfnlite.InvalidPropertyValueError
		require.ErrorAs(t, err, &invalidErr, token)
	}
}

func TestResolveValue(t *testing.T) {
	ix := NewIndex("stack")
	_, err := ix.Add("vpc", "vpc")
	require.NoError(t, err)

	got, err := ix.ResolveValue(map[string]any{
		"VpcId": "ref vpc",
		"Nested": []any{
			"plain string",
			map[string]any{"deep": "ref vpc"},
		},
		"Port": 443,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"VpcId": intrinsics.Ref{LogicalName: "stackVPC"},
		"Nested": []any{
			"plain string",
			map[string]any{"deep": intrinsics.Ref{LogicalName: "stackVPC"}},
		},
		"Port": 443,
	}, got)
}

func TestResolveValue_attributeContext(t *testing.T) {
	ix := NewIndex("stack")
	_, err := ix.Add("securitygroups", "securitygroups")
	require.NoError(t, err)

	got, err := ix.ResolveValue("ref securitygroups", "GroupId")
	require.NoError(t, err)

	assert.Equal(t, intrinsics.GetAtt{
		LogicalName: "stackSECURITYGROUPS",
		Attribute:   "GroupId",
	}, got)
}

func TestResolveValue_intrinsicNodesPassThrough(t *testing.T) {
	ix := NewIndex("stack")

	ref := intrinsics.Ref{LogicalName: "stackVPC"}
	got, err := ix.ResolveValue(ref, "")
	require.NoError(t, err)
	assert.Equal(t, ref, got)
}

func TestRefTargets(t *testing.T) {
	targets, err := RefTargets(map[string]any{
		"a": "ref vpc",
		"b": []any{"ref subnet", "literal"},
		"c": 7,
	}, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"vpc", "subnet"}, targets)
}

func TestRefTargets_malformedToken(t *testing.T) {
	_, err := RefTargets("ref a b", nil)

	var invalidErr *cfnlite.InvalidPropertyValueError
	require.ErrorAs(t, err, &invalidErr)
}
