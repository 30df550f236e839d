package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
)

func ec2Entry(t *testing.T) catalog.Entry {
	t.Helper()
	entry, err := catalog.Lookup("ec2")
	require.NoError(t, err)
	return entry
}

func TestMatchKey(t *testing.T) {
	entry := ec2Entry(t)

	tests := []struct {
		name string
		key  string
		want []string
	}{
		{"lower case", "imageid", []string{"Image", "Id"}},
		{"upper case", "IMAGEID", []string{"Image", "Id"}},
		{"camel case", "securityGroups", []string{"Security", "Groups"}},
		{"three words", "blockdevicemappings", []string{"Block", "Device", "Mappings"}},
		{"resource attribute", "dependson", []string{"Depends", "On"}},
		{"not in language", "bucketname", nil},
		{"partial match only", "imageidx", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchKey(tt.key, entry.Lang))
		})
	}
}

func TestCanonicalName(t *testing.T) {
	entry := ec2Entry(t)

	name, err := CanonicalName("SECURITYGROUPS", entry)
	require.NoError(t, err)
	assert.Equal(t, "SecurityGroups", name)

	name, err = CanonicalName("dependsOn", entry)
	require.NoError(t, err)
	assert.Equal(t, "DependsOn", name)
}

func TestCanonicalName_unknownKey(t *testing.T) {
	entry := ec2Entry(t)

	_, err := CanonicalName("notathing", entry)

	var unknownErr *cfnlite.UnknownPropertyError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "notathing", unknownErr.Key)
}

func TestCanonicalName_wordsMustFormSupportedProperty(t *testing.T) {
	// Id and Image are both words in the language but "IdImage" is not a
	// property, so recombination alone must not be accepted.
	entry := ec2Entry(t)

	_, err := CanonicalName("idimage", entry)

	var unknownErr *cfnlite.UnknownPropertyError
	require.ErrorAs(t, err, &unknownErr)
}

func TestNormalize(t *testing.T) {
	entry := ec2Entry(t)

	got, err := Normalize(entry, map[string]any{
		"imageid":        "ami-123",
		"instancetype":   "t3.small",
		"securityGroups": "ref securitygroups",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"ImageId":      "ami-123",
		"InstanceType": "t3.small",
		// scalar coerced into a list for a list-shaped property
		"SecurityGroups": []any{"ref securitygroups"},
	}, got)
}

func TestNormalize_duplicateKeyAcrossCasings(t *testing.T) {
	entry := ec2Entry(t)

	_, err := Normalize(entry, map[string]any{
		"imageid": "ami-123",
		"ImageId": "ami-456",
	})

	var dupErr *cfnlite.DuplicatePropertyError
	require.ErrorAs(t, err, &dupErr)
}

func TestNormalize_listAndMapValuesPassThrough(t *testing.T) {
	entry := ec2Entry(t)

	got, err := Normalize(entry, map[string]any{
		"securitygroups": []any{"a", "b"},
		"tags":           map[string]any{"team": "infra"},
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, got["SecurityGroups"])
	assert.Equal(t, map[string]any{"team": "infra"}, got["Tags"])
}
